// Package project discovers the module landscape around a target directory:
// configured search roots, roots from the environment, and the enclosing Go
// module, which together feed import-path derivation.
package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// RootsEnv is the environment variable holding extra search roots, separated
// by the platform list separator (like PATH).
const RootsEnv = "STENCIL_ROOTS"

// ModuleInfo contains information from an enclosing go.mod.
type ModuleInfo struct {
	Dir       string // Directory containing go.mod
	Path      string // Module path (e.g., "github.com/user/repo")
	GoVersion string // Go version requirement, if declared
}

// FindModule walks up from dir looking for a go.mod and returns the module
// info, or nil if dir is not inside a module.
func FindModule(dir string) (*ModuleInfo, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		modPath := filepath.Join(dir, "go.mod")
		data, err := os.ReadFile(modPath)
		if err == nil {
			mf, err := modfile.Parse(modPath, data, nil)
			if err != nil {
				return nil, fmt.Errorf("parsing %s: %w", modPath, err)
			}
			info := &ModuleInfo{Dir: dir, Path: mf.Module.Mod.Path}
			if mf.Go != nil {
				info.GoVersion = mf.Go.Version
			}
			return info, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", modPath, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// SearchRoots assembles the candidate package roots for import-path
// derivation: configured roots first, then STENCIL_ROOTS entries, then the
// root of the Go module enclosing targetDir (if any). Duplicates are dropped,
// order is preserved otherwise.
func SearchRoots(configured []string, targetDir string) []string {
	var roots []string
	seen := make(map[string]bool)

	add := func(root string) {
		if root == "" {
			return
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return
		}
		abs = filepath.Clean(abs)
		if !seen[abs] {
			seen[abs] = true
			roots = append(roots, abs)
		}
	}

	for _, root := range configured {
		add(root)
	}
	if env := os.Getenv(RootsEnv); env != "" {
		for _, root := range strings.Split(env, string(os.PathListSeparator)) {
			add(root)
		}
	}
	if mod, err := FindModule(targetDir); err == nil && mod != nil {
		add(mod.Dir)
	}

	return roots
}
