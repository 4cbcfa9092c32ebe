package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// manifestFile is an optional per-template manifest at the template root. It
// lets a template declare additional render rules without touching the CLI
// invocation. The manifest itself is never copied into the output.
const manifestFile = ".stencil.yml"

// Manifest holds template-declared render rules.
type Manifest struct {
	Render struct {
		Extensions []string `yaml:"extensions"` // extra render extensions
		Files      []string `yaml:"files"`      // extra always-render filenames
	} `yaml:"render"`
}

// loadManifest reads the template manifest, returning nil when the template
// does not carry one.
func loadManifest(templateDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(templateDir, manifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", manifestFile, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", manifestFile, err)
	}
	return &m, nil
}

// apply merges the manifest's render rules into the run options.
func (m *Manifest) apply(opts *Options) {
	if m == nil {
		return
	}
	opts.Extensions = normalizeExtensions(append(opts.Extensions, m.Render.Extensions...))
	opts.ExtraFiles = append(opts.ExtraFiles, m.Render.Files...)
}
