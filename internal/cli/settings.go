package cli

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// Output formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Settings controls how the CLI builds its options object.
// Precedence: flags > environment > defaults.
type Settings struct {
	// Default is the weakest location, usually shipped with the program.
	Default    string `env:"FIGCON_DEFAULT"`
	Secondary  string `env:"FIGCON_SECONDARY"`
	Primary    string `env:"FIGCON_PRIMARY"`
	ConfigName string `env:"FIGCON_CONFIG_NAME"`
	Format     string `env:"FIGCON_FORMAT"`
	Verbose    bool   `env:"FIGCON_VERBOSE"`
}

func defaultSettings() Settings {
	return Settings{Format: FormatYAML}
}

func parseEnv() (Settings, error) {
	var cfg Settings
	if err := env.Parse(&cfg); err != nil {
		return Settings{}, fmt.Errorf("error getting env configs: %w", err)
	}
	return cfg, nil
}

// resolveSettings layers env and flag settings over the defaults. Zero values
// never override.
func resolveSettings(layers ...Settings) (Settings, error) {
	resolved := defaultSettings()
	for _, layer := range layers {
		if err := mergo.Merge(&resolved, layer, mergo.WithOverride); err != nil {
			return Settings{}, fmt.Errorf("error merging settings: %w", err)
		}
	}
	resolved.Format = strings.ToLower(strings.TrimSpace(resolved.Format))
	return resolved, resolved.validate()
}

var errUnknownFormat = errors.New("unknown output format")

func (s Settings) validate() error {
	switch s.Format {
	case FormatYAML, FormatJSON:
		return nil
	default:
		return fmt.Errorf("%w %q, expected %s or %s", errUnknownFormat, s.Format, FormatYAML, FormatJSON)
	}
}
