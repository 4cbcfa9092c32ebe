package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	manifest := `render:
  extensions: [sql, ".SH"]
  files:
    - Makefile
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestFile), []byte(manifest), 0o644))

	m, err := loadManifest(dir)
	require.NoError(t, err)
	require.NotNil(t, m)

	opts := &Options{Extensions: []string{".go"}, ExtraFiles: []string{"go.mod-tpl"}}
	m.apply(opts)

	assert.Equal(t, []string{".go", ".sql", ".sh"}, opts.Extensions)
	assert.Equal(t, []string{"go.mod-tpl", "Makefile"}, opts.ExtraFiles)
}

func TestLoadManifest_Absent(t *testing.T) {
	m, err := loadManifest(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, m)

	// A nil manifest leaves the options untouched.
	opts := &Options{Extensions: []string{".go"}}
	m.apply(opts)
	assert.Equal(t, []string{".go"}, opts.Extensions)
}

func TestLoadManifest_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, manifestFile), []byte("render: [not a map"), 0o644))

	_, err := loadManifest(dir)
	require.Error(t, err)
}
