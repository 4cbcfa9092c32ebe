package commands

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Settings are tool-level defaults read from stencil.yml in the working
// directory. A missing file yields the built-in defaults.
type Settings struct {
	SearchRoots []string // scaffold.search_roots
	Extensions  []string // scaffold.extensions
	Normalize   bool     // scaffold.normalize (default true)
}

// LoadSettings reads stencil.yml when present.
func LoadSettings() (Settings, error) {
	s := Settings{Normalize: true}

	if _, err := os.Stat("stencil.yml"); os.IsNotExist(err) {
		return s, nil
	}

	v := viper.New()
	v.SetConfigName("stencil")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetDefault("scaffold.normalize", true)

	if err := v.ReadInConfig(); err != nil {
		return s, fmt.Errorf("reading stencil.yml: %w", err)
	}

	s.SearchRoots = v.GetStringSlice("scaffold.search_roots")
	s.Extensions = v.GetStringSlice("scaffold.extensions")
	s.Normalize = v.GetBool("scaffold.normalize")
	return s, nil
}
