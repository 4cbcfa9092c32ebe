package scaffold

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/stencilkit/stencil/internal/output"
	"github.com/stencilkit/stencil/internal/render"
)

// suffixRewrites maps template filename suffixes to their destination form.
// Ordered; the first matching rule wins and is applied at most once.
var suffixRewrites = [][2]string{
	{".go-tpl", ".go"},
	{".js-tpl", ".js"},
	{".mod-tpl", ".mod"},
	{".yml-tpl", ".yml"},
}

// artifactSuffixes are cache/editor droppings that never belong in output.
var artifactSuffixes = []string{".pyc", ".pyo", ".swp", "~"}

// pruneDirs are build-artifact directories excluded from traversal, in
// addition to every directory starting with a dot.
var pruneDirs = map[string]bool{
	"__pycache__":  true,
	"node_modules": true,
}

// paramsDialogToken marks the optional parameters-dialog file in function
// templates. With Parameterized set the destination is prefixed with the
// CamelCase name; otherwise the file is skipped entirely.
const paramsDialogToken = "ParamsDialog"

// classification decides what happens to a single template file.
type classification int

const (
	classRender classification = iota
	classCopy
	classSkip
)

// walker renders one resolved template tree into the target directory.
type walker struct {
	opts      *Options
	topDir    string
	camelName string
	ctx       Context
	renderer  *render.Renderer
	removal   *RemovalSet
}

// walk traverses templateDir top-down, creating directories and files under
// the target. Directory and file names have the base-name placeholder
// replaced by the real name; file contents are rendered or copied per their
// classification.
func (w *walker) walk(templateDir string) error {
	baseName := w.opts.baseName()

	return filepath.WalkDir(templateDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == templateDir {
			return nil
		}

		rel, err := filepath.Rel(templateDir, path)
		if err != nil {
			return err
		}
		rel = strings.ReplaceAll(rel, baseName, w.opts.Name)

		if d.IsDir() {
			name := d.Name()
			if strings.HasPrefix(name, ".") || pruneDirs[name] {
				return filepath.SkipDir
			}
			// Idempotent: template variants may target pre-existing
			// structure below the (already verified) top directory.
			if err := os.MkdirAll(filepath.Join(w.topDir, rel), 0o755); err != nil {
				return fmt.Errorf("creating directory %s: %w", rel, err)
			}
			return nil
		}

		return w.visitFile(path, rel, d.Name())
	})
}

// visitFile computes the destination for one template file, enforces the
// conflict invariant, classifies it, and performs the write.
func (w *walker) visitFile(srcPath, relDest, srcName string) error {
	if srcName == manifestFile {
		return nil
	}
	for _, suffix := range artifactSuffixes {
		if strings.HasSuffix(srcName, suffix) {
			return nil
		}
	}

	relDest = rewriteSuffix(relDest)
	destPath := filepath.Join(w.topDir, relDest)

	if _, err := os.Stat(destPath); err == nil {
		return &ConflictError{Path: destPath}
	}

	switch w.classify(destPath, srcName) {
	case classSkip:
		// Queue the would-be destination so cleanup guarantees absence.
		w.removal.Add(destPath)
		output.Verbose(fmt.Sprintf("Skipping %s", relDest))
		return nil
	case classRender:
		destPath = w.renameCompanion(destPath)
		if _, err := os.Stat(destPath); err == nil {
			return &ConflictError{Path: destPath}
		}
		if err := w.renderFile(srcPath, destPath); err != nil {
			return err
		}
	case classCopy:
		destPath = w.renameCompanion(destPath)
		if _, err := os.Stat(destPath); err == nil {
			return &ConflictError{Path: destPath}
		}
		if err := copyFile(srcPath, destPath); err != nil {
			return err
		}
	}

	output.Verbose(fmt.Sprintf("Creating %s", destPath))
	copyModeBits(srcPath, destPath)
	return nil
}

// classify picks render, copy, or skip for a file: render when the
// destination extension is configured or the source filename is explicitly
// listed; the function kind's parameters-dialog hook can force a skip.
func (w *walker) classify(destPath, srcName string) classification {
	if w.opts.Kind == KindFunction && strings.Contains(filepath.Base(destPath), paramsDialogToken) && !w.opts.Parameterized {
		return classSkip
	}

	ext := strings.ToLower(filepath.Ext(destPath))
	for _, allowed := range w.opts.Extensions {
		if ext == allowed {
			return classRender
		}
	}
	for _, name := range w.opts.ExtraFiles {
		if srcName == name {
			return classRender
		}
	}
	return classCopy
}

// renameCompanion prefixes the parameters-dialog file with the CamelCase
// name when the parameterization option is enabled, so multiple generated
// functions can register dialogs side by side.
func (w *walker) renameCompanion(destPath string) string {
	base := filepath.Base(destPath)
	if w.opts.Kind != KindFunction || !w.opts.Parameterized || !strings.Contains(base, paramsDialogToken) {
		return destPath
	}
	renamed := strings.Replace(base, paramsDialogToken, w.camelName+paramsDialogToken, 1)
	return filepath.Join(filepath.Dir(destPath), renamed)
}

// renderFile substitutes context variables into the source text, optionally
// normalizes structured source, and writes the result.
func (w *walker) renderFile(srcPath, destPath string) error {
	text, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading template file %s: %w", srcPath, err)
	}

	rendered, err := w.renderer.Render(srcPath, string(text), w.ctx)
	if err != nil {
		return err
	}

	content := []byte(rendered)
	if w.opts.Normalize {
		content = render.NormalizeGo(content, destPath)
	}

	if err := os.WriteFile(destPath, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", destPath, err)
	}
	return nil
}

// rewriteSuffix applies the first matching suffix rewrite rule, at most once.
func rewriteSuffix(path string) string {
	for _, rule := range suffixRewrites {
		if strings.HasSuffix(path, rule[0]) {
			return path[:len(path)-len(rule[0])] + rule[1]
		}
	}
	return path
}

// copyFile writes a byte-identical copy of src at dest.
func copyFile(src, dest string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("copying to %s: %w", dest, err)
	}
	return nil
}

// copyModeBits carries the source permission bits to the destination and
// makes it writable. Filesystems differ here, so failure is a warning, not
// an abort.
func copyModeBits(src, dest string) {
	info, err := os.Stat(src)
	if err == nil {
		err = os.Chmod(dest, info.Mode().Perm()|0o200)
	}
	if err != nil {
		output.Warning(fmt.Sprintf("Couldn't set permission bits on %s; generation continues", dest))
	}
}
