package scaffold

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/stencilkit/stencil/internal/output"
)

//go:embed all:templates
var builtinTemplates embed.FS

// resolveTemplate turns a template reference into a local directory that is
// guaranteed to exist. Temporary directories created along the way (built-in
// materialization, downloads, archive extraction) are registered in removal
// for cleanup after generation.
//
// Resolution order follows the reference shape:
//   - empty reference: the built-in template for the run's kind and variant
//   - existing local directory (after file:// stripping and ~ expansion)
//   - URL: downloaded once, then extracted; no retries
//   - existing local archive: extracted
func resolveTemplate(ref string, opts *Options, removal *RemovalSet) (string, error) {
	if ref == "" {
		return materializeBuiltin(opts.templateSubdir(), removal)
	}

	raw := ref
	ref = strings.TrimPrefix(ref, "file://")
	ref = expandHome(ref)
	ref = filepath.Clean(ref)

	if info, err := os.Stat(ref); err == nil && info.IsDir() {
		return ref, nil
	}

	if isURL(raw) {
		archive, err := download(raw, removal)
		if err != nil {
			return "", &ResolutionError{Ref: raw, Err: err}
		}
		return extract(archive, removal)
	}

	abs, err := filepath.Abs(ref)
	if err != nil {
		return "", &ResolutionError{Ref: raw, Err: err}
	}
	if _, err := os.Stat(abs); err == nil {
		return extract(abs, removal)
	}

	return "", &ResolutionError{Ref: raw}
}

// materializeBuiltin copies an embedded template tree into a temporary
// directory so the walker can treat every template source uniformly.
func materializeBuiltin(subdir string, removal *RemovalSet) (string, error) {
	root := "templates/" + subdir
	if _, err := fs.Stat(builtinTemplates, root); err != nil {
		return "", &ResolutionError{Ref: subdir, Err: err}
	}

	tmpDir, err := os.MkdirTemp("", "stencil-template-")
	if err != nil {
		return "", fmt.Errorf("creating template staging dir: %w", err)
	}
	removal.Add(tmpDir)

	err = fs.WalkDir(builtinTemplates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel := strings.TrimPrefix(path, root)
		dest := filepath.Join(tmpDir, filepath.FromSlash(rel))
		if d.IsDir() {
			return os.MkdirAll(dest, 0o755)
		}
		data, err := builtinTemplates.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(dest, data, 0o644)
	})
	if err != nil {
		return "", fmt.Errorf("staging built-in template %s: %w", subdir, err)
	}

	output.Verbose(fmt.Sprintf("Staged built-in template %s at %s", subdir, tmpDir))
	return tmpDir, nil
}

func isURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// download fetches a remote template archive. A single attempt: failure
// propagates immediately.
func download(url string, removal *RemovalSet) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	name := filepath.Base(url)
	if name == "." || name == "/" || name == "" {
		name = "template-archive"
	}
	tmpDir, err := os.MkdirTemp("", "stencil-download-")
	if err != nil {
		return "", err
	}
	removal.Add(tmpDir)

	destPath := filepath.Join(tmpDir, name)
	f, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing download: %w", err)
	}

	output.Verbose(fmt.Sprintf("Downloaded %s to %s", url, destPath))
	return destPath, nil
}

// extract unpacks a template archive into a temporary directory registered
// for removal. When the archive holds a single top-level directory, that
// directory is returned, matching the usual layout of packaged templates.
func extract(archivePath string, removal *RemovalSet) (string, error) {
	tmpDir, err := os.MkdirTemp("", "stencil-extract-")
	if err != nil {
		return "", err
	}
	removal.Add(tmpDir)

	switch {
	case strings.HasSuffix(archivePath, ".zip"):
		err = extractZip(archivePath, tmpDir)
	case strings.HasSuffix(archivePath, ".tar.gz"), strings.HasSuffix(archivePath, ".tgz"):
		err = extractTarGz(archivePath, tmpDir)
	default:
		err = fmt.Errorf("unsupported archive format")
	}
	if err != nil {
		return "", &ResolutionError{Ref: archivePath, Err: err}
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return "", err
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(tmpDir, entries[0].Name()), nil
	}
	return tmpDir, nil
}

// safeJoin joins an archive entry name under destDir, rejecting entries that
// would escape it.
func safeJoin(destDir, name string) (string, error) {
	dest := filepath.Join(destDir, filepath.FromSlash(name))
	if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(filepath.Separator)) {
		return "", fmt.Errorf("archive entry %q escapes extraction directory", name)
	}
	return dest, nil
}

func extractZip(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("opening zip archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		dest, err := safeJoin(destDir, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening zip entry %s: %w", f.Name, err)
		}
		out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, f.Mode().Perm())
		if err != nil {
			rc.Close()
			return err
		}
		_, err = io.Copy(out, rc)
		out.Close()
		rc.Close()
		if err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}
	return nil
}

func extractTarGz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("creating gzip reader: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading tar entry: %w", err)
		}
		dest, err := safeJoin(destDir, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return err
			}
			out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(hdr.Mode).Perm())
			if err != nil {
				return err
			}
			_, err = io.Copy(out, tr)
			out.Close()
			if err != nil {
				return fmt.Errorf("extracting %s: %w", hdr.Name, err)
			}
		}
	}
	return nil
}
