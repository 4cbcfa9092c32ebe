package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/stencilkit/stencil"
)

// Context is the substitution mapping handed to the render engine. It is
// built once per run and read-only afterwards.
type Context map[string]any

// Reserved metadata keys. Pass-through options must not shadow them.
const (
	keyToolVersion = "stencil_version"
	keyDocsVersion = "docs_version"
)

// buildContext assembles the full substitution context: derived values,
// pass-through options, and static metadata. Key collisions are a
// programming-contract violation and panic.
func buildContext(opts *Options, topDir string, descriptor StrategyDescriptor) (Context, error) {
	importPath, err := deriveImportPath(opts.SearchRoots, topDir, opts.Name)
	if err != nil {
		return nil, err
	}

	base := string(opts.Kind)
	ctx := Context{}

	set := func(key string, value any) {
		if _, dup := ctx[key]; dup {
			panic(fmt.Sprintf("scaffold: context key %q defined twice", key))
		}
		ctx[key] = value
	}

	for key, value := range opts.Extras {
		set(key, value)
	}
	set("verbose_name", opts.VerboseName)
	set("is_parameterized", opts.Parameterized)
	set("strategy", descriptor)

	set(base+"_name", opts.Name)
	set(base+"_directory", topDir)
	set("camel_case_"+base+"_name", camelCaseName(opts.Name))
	set(base+"_import_path", importPath)
	if opts.Kind == KindFunction {
		set(base+"_url_name", strings.ReplaceAll(opts.Name, "_", "-"))
	}

	set(keyToolVersion, stencil.Version)
	set(keyDocsVersion, stencil.DocsVersion)

	return ctx, nil
}

// camelCaseName derives the CamelCase identifier from a package name:
// title-case at each word boundary, then strip underscores. Character case
// elsewhere is preserved.
//
//	my_function → MyFunction
//	already_made → AlreadyMade
func camelCaseName(name string) string {
	var b strings.Builder
	boundary := true
	for _, r := range name {
		switch {
		case r == '_':
			boundary = true
		case boundary && unicode.IsLetter(r):
			b.WriteRune(unicode.ToUpper(r))
			boundary = false
		default:
			b.WriteRune(r)
			boundary = !unicode.IsLetter(r)
		}
	}
	return b.String()
}

// deriveImportPath computes the logical import path of the new package from
// its location. Candidate roots are search roots that are a parent of the
// target directory, minus any root whose join with the generated name equals
// the target exactly (that root is the invocation directory itself, not a
// package root). The lexicographically greatest survivor wins.
//
// The max-root choice is a heuristic: when several roots share a prefix it
// picks the deepest-sorting one, which is not guaranteed to be the intended
// root. The behavior is kept deliberately and covered by tests.
func deriveImportPath(roots []string, topDir, name string) (string, error) {
	topDir = filepath.Clean(topDir)

	var best string
	for _, root := range roots {
		root = filepath.Clean(root)
		if !strings.HasPrefix(topDir, root+string(filepath.Separator)) {
			continue
		}
		if filepath.Join(root, name) == topDir {
			continue
		}
		if root > best {
			best = root
		}
	}
	if best == "" {
		return "", &ConfigurationError{Reason: fmt.Sprintf("no search root contains %s; cannot derive import path", topDir)}
	}

	suffix := strings.TrimPrefix(topDir, best+string(filepath.Separator))
	return filepath.ToSlash(suffix), nil
}
