// Package config holds the guided-dragging tool settings.
//
// A [Config] is passed explicitly to the drag controller, the renderers and
// the servers; nothing in this module reads settings from global state.
// Settings can be loaded from a TOML file:
//
//	enabled = true
//	tolerance = 6
//	search_distance = 1000
//	snap = true
//	realtime = true
//	width = 1
//
//	[colors]
//	horizontal = "gray"
//	vertical = "gray"
//	center = "red"
//
// Keys missing from the file keep their [Default] values. Unknown keys are
// rejected so that typos do not silently fall back to defaults.
package config

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/guidedrag/pkg/errors"
	"github.com/matzehuels/guidedrag/pkg/guide"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultTolerance is the snap distance in pixels.
	DefaultTolerance = 6.0

	// DefaultSearchDistance bounds how far from the dragged node targets are considered.
	DefaultSearchDistance = 1000.0

	// DefaultWidth is the guide line width in pixels.
	DefaultWidth = 1.0

	// DefaultHorizontalColor, DefaultVerticalColor and DefaultCenterColor
	// are the guide colors per style class.
	DefaultHorizontalColor = "gray"
	DefaultVerticalColor   = "gray"
	DefaultCenterColor     = "red"
)

// appName is used for the config directory.
const appName = "guidedrag"

// FileName is the config file name inside the config directory.
const FileName = "config.toml"

// =============================================================================
// Config
// =============================================================================

// Colors maps each guideline style class to a color.
// Values are color names ("blue") or hex strings ("#00ff00").
type Colors struct {
	Horizontal string `toml:"horizontal" json:"horizontal"`
	Vertical   string `toml:"vertical" json:"vertical"`
	Center     string `toml:"center" json:"center"`
}

// For returns the configured color for a style class.
func (c Colors) For(s guide.Style) string {
	switch s {
	case guide.StyleHorizontal:
		return c.Horizontal
	case guide.StyleVertical:
		return c.Vertical
	case guide.StyleCenter:
		return c.Center
	}
	return ""
}

// Config contains every recognized guided-dragging option.
type Config struct {
	// Enabled turns the whole behavior on. When false, dragging is raw:
	// no candidates, no guidelines, no snapping.
	Enabled bool `toml:"enabled" json:"enabled"`

	// Tolerance is the maximum distance at which a candidate may be selected.
	Tolerance float64 `toml:"tolerance" json:"tolerance"`

	// SearchDistance limits targets to those intersecting the dragged node's
	// bounds inflated by this amount. Zero means unlimited.
	SearchDistance float64 `toml:"search_distance" json:"search_distance"`

	// Snap moves nodes onto matches. When false guidelines are shown only.
	Snap bool `toml:"snap" json:"snap"`

	// Realtime snaps on every move. When false, moves follow the pointer
	// and the snap is applied once, on drop.
	Realtime bool `toml:"realtime" json:"realtime"`

	// Width is the guide line width in pixels.
	Width float64 `toml:"width" json:"width"`

	Colors Colors `toml:"colors" json:"colors"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Enabled:        true,
		Tolerance:      DefaultTolerance,
		SearchDistance: DefaultSearchDistance,
		Snap:           true,
		Realtime:       true,
		Width:          DefaultWidth,
		Colors: Colors{
			Horizontal: DefaultHorizontalColor,
			Vertical:   DefaultVerticalColor,
			Center:     DefaultCenterColor,
		},
	}
}

// Validate checks that every value is usable.
func (c Config) Validate() error {
	if !finite(c.Tolerance) || c.Tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "tolerance must be a non-negative number, got %v", c.Tolerance)
	}
	if !finite(c.SearchDistance) || c.SearchDistance < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "search_distance must be a non-negative number, got %v", c.SearchDistance)
	}
	if !finite(c.Width) || c.Width <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "width must be positive, got %v", c.Width)
	}
	for _, s := range guide.Styles {
		if _, err := ParseColor(c.Colors.For(s)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "colors.%s", s)
		}
	}
	return nil
}

// ValidateAndSetDefaults fills empty colors and a zero width with defaults,
// then validates.
func (c *Config) ValidateAndSetDefaults() error {
	d := Default()
	if c.Width == 0 {
		c.Width = d.Width
	}
	if c.Colors.Horizontal == "" {
		c.Colors.Horizontal = d.Colors.Horizontal
	}
	if c.Colors.Vertical == "" {
		c.Colors.Vertical = d.Colors.Vertical
	}
	if c.Colors.Center == "" {
		c.Colors.Center = d.Colors.Center
	}
	return c.Validate()
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// =============================================================================
// Loading and Saving
// =============================================================================

// Parse decodes TOML data on top of [Default] and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the config file at path.
//
// When path is empty the default location is used, and a missing file there
// yields [Default]. A missing file at an explicit path is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !explicit {
				return Default(), nil
			}
			return Config{}, errors.New(errors.ErrCodeFileNotFound, "config file %s does not exist", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// String returns c as TOML.
func (c Config) String() string {
	var buf bytes.Buffer
	_ = c.Write(&buf)
	return buf.String()
}

// Save writes c to path, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/guidedrag/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, FileName), nil
}
