package scaffold

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveTemplate_Builtin(t *testing.T) {
	opts := &Options{Kind: KindFunction, Name: "send_email", Variant: VariantSync}
	var removal RemovalSet

	dir, err := resolveTemplate("", opts, &removal)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "function.go-tpl"))
	assert.FileExists(t, filepath.Join(dir, "ParamsDialog.js-tpl"))

	// The staging directory is queued for cleanup.
	require.Len(t, removal.Paths(), 1)
	assert.Equal(t, dir, removal.Paths()[0])

	require.NoError(t, removal.Clean())
	assert.NoDirExists(t, dir)
}

func TestResolveTemplate_BuiltinVariants(t *testing.T) {
	var removal RemovalSet
	defer removal.Clean()

	sync, err := resolveTemplate("", &Options{Kind: KindFunction, Name: "x"}, &removal)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(sync, "worker.go-tpl"))

	async, err := resolveTemplate("", &Options{Kind: KindFunction, Name: "x", Variant: VariantAsync}, &removal)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(async, "worker.go-tpl"))

	app, err := resolveTemplate("", &Options{Kind: KindApplication, Name: "x"}, &removal)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(app, manifestFile))
}

func TestResolveTemplate_LocalDir(t *testing.T) {
	templateDir := t.TempDir()
	var removal RemovalSet

	dir, err := resolveTemplate(templateDir, &Options{}, &removal)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(templateDir), dir)

	// Local directories are used in place, nothing to clean up.
	assert.Empty(t, removal.Paths())
}

func TestResolveTemplate_FileURI(t *testing.T) {
	templateDir := t.TempDir()
	var removal RemovalSet

	dir, err := resolveTemplate("file://"+templateDir, &Options{}, &removal)
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(templateDir), dir)
}

func TestResolveTemplate_Unresolved(t *testing.T) {
	var removal RemovalSet

	_, err := resolveTemplate(filepath.Join(t.TempDir(), "no-such-template"), &Options{}, &removal)
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Contains(t, resErr.Ref, "no-such-template")
}

// zipTemplate builds an archive with a single top-level directory, the usual
// layout of packaged templates.
func zipTemplate(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range map[string]string{
		"mytemplate/app.go-tpl":    "package {{.application_name}}\n",
		"mytemplate/docs/notes.md": "notes\n",
	} {
		f, err := zw.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestResolveTemplate_LocalArchive(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "template.zip")
	require.NoError(t, os.WriteFile(archive, zipTemplate(t), 0o644))

	var removal RemovalSet
	defer removal.Clean()

	dir, err := resolveTemplate(archive, &Options{}, &removal)
	require.NoError(t, err)

	// The single top-level directory inside the archive is the template root.
	assert.Equal(t, "mytemplate", filepath.Base(dir))
	assert.FileExists(t, filepath.Join(dir, "app.go-tpl"))
	assert.FileExists(t, filepath.Join(dir, "docs", "notes.md"))
	require.Len(t, removal.Paths(), 1)
}

func TestResolveTemplate_RemoteArchive(t *testing.T) {
	payload := zipTemplate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	var removal RemovalSet
	defer removal.Clean()

	dir, err := resolveTemplate(server.URL+"/template.zip", &Options{}, &removal)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "app.go-tpl"))

	// Both the download directory and the extraction directory are queued.
	assert.Len(t, removal.Paths(), 2)
}

func TestResolveTemplate_RemoteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	var removal RemovalSet
	defer removal.Clean()

	_, err := resolveTemplate(server.URL+"/missing.zip", &Options{}, &removal)
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
}
