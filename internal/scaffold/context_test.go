package scaffold

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelCaseName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my_function", "MyFunction"},
		{"already_made", "AlreadyMade"},
		{"send_email", "SendEmail"},
		{"single", "Single"},
		{"a_b_c", "ABC"},
		{"report2_export", "Report2Export"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, camelCaseName(tt.in))
	}
}

func TestDeriveImportPath(t *testing.T) {
	sep := string(filepath.Separator)
	root := filepath.Join(sep+"srv", "work")
	topDir := filepath.Join(root, "apps", "billing", "functions", "send_email")

	got, err := deriveImportPath([]string{root}, topDir, "send_email")
	require.NoError(t, err)
	assert.Equal(t, "apps/billing/functions/send_email", got)
}

// When several roots share a prefix, the lexicographically greatest candidate
// wins. That is a heuristic, not a guaranteed-correct resolution; the test
// pins the documented behavior.
func TestDeriveImportPath_MaxRootHeuristic(t *testing.T) {
	sep := string(filepath.Separator)
	shallow := filepath.Join(sep+"srv", "work")
	deep := filepath.Join(sep+"srv", "work", "apps")
	topDir := filepath.Join(deep, "billing", "functions", "send_email")

	got, err := deriveImportPath([]string{shallow, deep}, topDir, "send_email")
	require.NoError(t, err)
	assert.Equal(t, "billing/functions/send_email", got)
}

// A root whose join with the generated name equals the target exactly is the
// invocation directory masquerading as a package root and must be ignored.
func TestDeriveImportPath_ExcludesInvocationRoot(t *testing.T) {
	sep := string(filepath.Separator)
	packageRoot := filepath.Join(sep+"srv", "work")
	invocationDir := filepath.Join(packageRoot, "apps", "functions")
	topDir := filepath.Join(invocationDir, "send_email")

	got, err := deriveImportPath([]string{packageRoot, invocationDir}, topDir, "send_email")
	require.NoError(t, err)
	assert.Equal(t, "apps/functions/send_email", got)

	// With only the invocation directory available, derivation must fail.
	_, err = deriveImportPath([]string{invocationDir}, topDir, "send_email")
	var confErr *ConfigurationError
	require.ErrorAs(t, err, &confErr)
}

func TestBuildContext(t *testing.T) {
	sep := string(filepath.Separator)
	root := filepath.Join(sep+"srv", "work")
	topDir := filepath.Join(root, "functions", "send_email")

	opts := &Options{
		Kind:          KindFunction,
		Name:          "send_email",
		VerboseName:   "Send email",
		Parameterized: true,
		SearchRoots:   []string{root},
	}
	descriptor, err := SelectStrategy(StrategyLazySaving)
	require.NoError(t, err)

	ctx, err := buildContext(opts, topDir, descriptor)
	require.NoError(t, err)

	assert.Equal(t, "send_email", ctx["function_name"])
	assert.Equal(t, topDir, ctx["function_directory"])
	assert.Equal(t, "SendEmail", ctx["camel_case_function_name"])
	assert.Equal(t, "functions/send_email", ctx["function_import_path"])
	assert.Equal(t, "send-email", ctx["function_url_name"])
	assert.Equal(t, "Send email", ctx["verbose_name"])
	assert.Equal(t, true, ctx["is_parameterized"])
	assert.Equal(t, descriptor, ctx["strategy"])
	assert.NotEmpty(t, ctx["stencil_version"])
	assert.NotEmpty(t, ctx["docs_version"])
}

func TestBuildContext_KeyCollisionPanics(t *testing.T) {
	sep := string(filepath.Separator)
	root := filepath.Join(sep+"srv", "work")
	topDir := filepath.Join(root, "functions", "send_email")

	opts := &Options{
		Kind:        KindFunction,
		Name:        "send_email",
		SearchRoots: []string{root},
		Extras:      map[string]any{"function_name": "shadowed"},
	}
	descriptor, err := SelectStrategy(StrategyBase)
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = buildContext(opts, topDir, descriptor)
	})
}
