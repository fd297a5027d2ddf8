package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Settings holds user preferences loaded from the TOML settings file.
// Command-line flags always override these.
type Settings struct {
	// Format is the default render output format: svg, png, or pdf.
	Format string `toml:"format"`

	// Scale is the default render scale factor.
	Scale float64 `toml:"scale"`

	// DepthLabels enables per-column depth capacity labels by default.
	DepthLabels bool `toml:"depth_labels"`

	// NoCache disables the rendered artifact cache.
	NoCache bool `toml:"no_cache"`

	// Font configures plan labels when the plan itself carries none.
	Font FontSettings `toml:"font"`
}

// FontSettings is the [font] section of the settings file.
type FontSettings struct {
	Family string  `toml:"family"`
	Size   float64 `toml:"size"`
}

// DefaultSettings returns the built-in defaults used when no settings file
// exists.
func DefaultSettings() Settings {
	return Settings{
		Format: "svg",
		Scale:  1.0,
	}
}

// LoadSettings reads a TOML settings file on top of the defaults.
// A missing file is not an error; a malformed one is.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, err
	}

	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return DefaultSettings(), fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func (s *Settings) validate() error {
	switch s.Format {
	case "", "svg", "png", "pdf":
	default:
		return fmt.Errorf("invalid format: %s (must be 'svg', 'png', or 'pdf')", s.Format)
	}
	if s.Format == "" {
		s.Format = "svg"
	}
	if s.Scale <= 0 {
		s.Scale = 1.0
	}
	return nil
}
