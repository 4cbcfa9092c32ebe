package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindModule(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(root, "go.mod"),
		[]byte("module example.com/acme/platform\n\ngo 1.25\n"),
		0o644))

	nested := filepath.Join(root, "apps", "billing", "functions")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	mod, err := FindModule(nested)
	require.NoError(t, err)
	require.NotNil(t, mod)
	assert.Equal(t, root, mod.Dir)
	assert.Equal(t, "example.com/acme/platform", mod.Path)
	assert.Equal(t, "1.25", mod.GoVersion)
}

func TestFindModule_NotInModule(t *testing.T) {
	mod, err := FindModule(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, mod)
}

func TestSearchRoots(t *testing.T) {
	root := t.TempDir()
	extra := t.TempDir()
	t.Setenv(RootsEnv, extra+string(os.PathListSeparator)+root)

	roots := SearchRoots([]string{root}, t.TempDir())

	// Configured first, env after, duplicates dropped.
	assert.Equal(t, []string{root, extra}, roots)
}

func TestSearchRoots_AddsEnclosingModule(t *testing.T) {
	t.Setenv(RootsEnv, "")

	modRoot := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(modRoot, "go.mod"),
		[]byte("module example.com/acme\n"),
		0o644))
	target := filepath.Join(modRoot, "functions")
	require.NoError(t, os.MkdirAll(target, 0o755))

	roots := SearchRoots(nil, target)
	assert.Contains(t, roots, modRoot)
}
