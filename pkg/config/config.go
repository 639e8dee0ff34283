package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config carries the layout constants and viewport size. It is passed by
// value through the tokenizer, layout and render constructors.
type Config struct {
	// HStep is the left and right margin in content units.
	HStep float64 `toml:"hstep" yaml:"hstep"`
	// VStep is the top margin and the extra gap after a paragraph.
	VStep float64 `toml:"vstep" yaml:"vstep"`
	// ScrollStep is the delta applied by one scroll action.
	ScrollStep float64 `toml:"scroll_step" yaml:"scroll_step"`
	Width      float64 `toml:"width" yaml:"width"`
	Height     float64 `toml:"height" yaml:"height"`
	// BaseFontSize is the size layout starts at before any <big>/<small>.
	BaseFontSize float64 `toml:"base_font_size" yaml:"base_font_size"`
}

func Default() Config {
	return Config{
		HStep:        6,
		VStep:        18,
		ScrollStep:   100,
		Width:        800,
		Height:       600,
		BaseFontSize: 16,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: viewport %gx%g must be positive", ErrInvalid, c.Width, c.Height)
	case c.HStep < 0 || c.VStep < 0:
		return fmt.Errorf("%w: margins hstep=%g vstep=%g must not be negative", ErrInvalid, c.HStep, c.VStep)
	case c.ScrollStep < 0:
		return fmt.Errorf("%w: scroll_step %g must not be negative", ErrInvalid, c.ScrollStep)
	case c.BaseFontSize <= 0:
		return fmt.Errorf("%w: base_font_size %g must be positive", ErrInvalid, c.BaseFontSize)
	}
	return nil
}

// Load reads a TOML or YAML file (chosen by extension) over the defaults.
// Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config format %q", ext)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
