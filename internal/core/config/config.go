// Package config handles configuration loading and validation for veil.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/veil/internal/anim"
	"github.com/hay-kot/veil/internal/overlay"
)

// Bounds enforced by Validate.
const (
	MaxFPS      = 240
	MinMaxWidth = 20
)

// Config holds the application configuration.
type Config struct {
	Animation Animation `yaml:"animation"`
	Keys      Keys      `yaml:"keys"`
	Backdrop  Backdrop  `yaml:"backdrop"`
	Frame     Frame     `yaml:"frame"`
}

// Animation controls the open and close transitions.
type Animation struct {
	Duration time.Duration `yaml:"duration"`
	FPS      int           `yaml:"fps"`
	// Disabled completes every transition immediately.
	Disabled bool `yaml:"disabled"`
}

// Keys holds the keys handled by the overlay controller.
type Keys struct {
	Close []string `yaml:"close"`
}

// Backdrop controls the layer drawn below each frame.
type Backdrop struct {
	Dim bool `yaml:"dim"`
}

// Frame controls frame placement.
type Frame struct {
	DefaultVariant overlay.Variant `yaml:"default_variant"`
	MaxWidth       int             `yaml:"max_width"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Animation: Animation{
			Duration: anim.DefaultDuration,
			FPS:      anim.DefaultFPS,
		},
		Keys: Keys{
			Close: []string{"esc"},
		},
		Backdrop: Backdrop{
			Dim: true,
		},
		Frame: Frame{
			DefaultVariant: overlay.VariantDefault,
			MaxWidth:       overlay.DefaultMaxWidth,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Animation.FPS == 0 {
		c.Animation.FPS = defaults.Animation.FPS
	}
	if len(c.Keys.Close) == 0 {
		c.Keys.Close = defaults.Keys.Close
	}
	if c.Frame.DefaultVariant == "" {
		c.Frame.DefaultVariant = defaults.Frame.DefaultVariant
	}
	if c.Frame.MaxWidth == 0 {
		c.Frame.MaxWidth = defaults.Frame.MaxWidth
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.Animation.Duration < 0 {
		errs = errs.Append("animation.duration", fmt.Errorf("must not be negative, got %s", c.Animation.Duration))
	}

	if c.Animation.FPS < 1 || c.Animation.FPS > MaxFPS {
		errs = errs.Append("animation.fps", fmt.Errorf("must be between 1 and %d, got %d", MaxFPS, c.Animation.FPS))
	}

	for i, k := range c.Keys.Close {
		if k == "" {
			errs = errs.Append(fmt.Sprintf("keys.close[%d]", i), fmt.Errorf("key cannot be empty"))
		}
	}

	if !c.Frame.DefaultVariant.Valid() {
		errs = errs.Append("frame.default_variant", fmt.Errorf("unknown variant %q (want %q or %q)",
			c.Frame.DefaultVariant, overlay.VariantDefault, overlay.VariantDrawer))
	}

	if c.Frame.MaxWidth < MinMaxWidth {
		errs = errs.Append("frame.max_width", fmt.Errorf("must be at least %d, got %d", MinMaxWidth, c.Frame.MaxWidth))
	}

	return errs.ToError()
}

// Animator returns the animation driver described by the config.
func (c *Config) Animator() anim.Animator {
	if c.Animation.Disabled || c.Animation.Duration == 0 {
		return anim.Instant{}
	}
	return anim.NewTween(c.Animation.Duration, c.Animation.FPS)
}

// KeyMap returns the overlay key bindings.
func (c *Config) KeyMap() overlay.KeyMap {
	return overlay.NewKeyMap(c.Keys.Close)
}

// ControllerOptions returns the overlay controller options described by the
// config. Extra options are applied last.
func (c *Config) ControllerOptions(extra ...overlay.Option) []overlay.Option {
	opts := []overlay.Option{
		overlay.WithAnimator(c.Animator()),
		overlay.WithKeyMap(c.KeyMap()),
		overlay.WithBackdropDim(c.Backdrop.Dim),
		overlay.WithMaxWidth(c.Frame.MaxWidth),
	}
	return append(opts, extra...)
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}
