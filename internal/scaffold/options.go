package scaffold

import "strings"

// Kind selects which template family a run scaffolds.
type Kind string

const (
	KindProject     Kind = "project"
	KindApplication Kind = "application"
	KindFunction    Kind = "function"
)

// Variant selects the execution model for the function kind.
type Variant string

const (
	VariantSync  Variant = "sync"
	VariantAsync Variant = "async"
)

// Options are the invocation parameters for one scaffolding run. They are
// assembled by the CLI layer and read-only once the pipeline starts.
type Options struct {
	Kind      Kind
	Name      string
	TargetDir string // optional; empty means create cwd/Name
	Template  string // optional template reference (dir, file://, URL)

	Extensions []string // destination extensions eligible for rendering
	ExtraFiles []string // source filenames always rendered

	Strategy      StrategyID
	Variant       Variant // function kind only
	Parameterized bool    // include the parameters dialog file
	VerboseName   string  // human-readable name, passed through to templates

	SearchRoots []string // candidate package roots for import-path derivation
	Normalize   bool     // run Go destinations through the source normalizer

	// Extras are pass-through context values beyond the flags above. Keys
	// must not collide with derived or reserved keys.
	Extras map[string]any
}

// baseName is the placeholder token substituted in paths and contents,
// e.g. "function_name" for the function kind.
func (o *Options) baseName() string { return string(o.Kind) + "_name" }

// templateSubdir names the built-in template tree for this run.
func (o *Options) templateSubdir() string {
	if o.Kind == KindFunction {
		variant := o.Variant
		if variant == "" {
			variant = VariantSync
		}
		return string(o.Kind) + "_" + string(variant) + "_template"
	}
	return string(o.Kind) + "_template"
}

// normalizeExtensions canonicalizes an extension list to lowercase,
// dot-prefixed form ("go", ".GO" → ".go") and drops duplicates.
func normalizeExtensions(exts []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if !seen[ext] {
			seen[ext] = true
			out = append(out, ext)
		}
	}
	return out
}
