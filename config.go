package drapery

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// WindowConfig sizes the application window.
type WindowConfig struct {
	Title  string `yaml:"title" validate:"required"`
	Width  int    `yaml:"width" validate:"gt=0"`
	Height int    `yaml:"height" validate:"gt=0"`
}

// CanvasConfig sizes the preview canvas. The canvas sits at the left of the
// window and the control panel fills the remaining width.
type CanvasConfig struct {
	Width  int `yaml:"width" validate:"gt=0"`
	Height int `yaml:"height" validate:"gt=0"`
}

// AssetConfig names the photograph and fabric mask files.
type AssetConfig struct {
	Scene string `yaml:"scene"`
	Mask  string `yaml:"mask"`
}

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `yaml:"level" validate:"log_level"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
}

// Config is the visualizer configuration.
type Config struct {
	Window        WindowConfig `yaml:"window"`
	Canvas        CanvasConfig `yaml:"canvas"`
	Assets        AssetConfig  `yaml:"assets"`
	Catalog       string       `yaml:"catalog"`
	Log           LogConfig    `yaml:"log"`
	Debug         bool         `yaml:"debug"`
	ScreenshotDir string       `yaml:"screenshot_dir" validate:"required"`
	Script        string       `yaml:"script"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Window:        WindowConfig{Title: "Drapery · Curtain Visualizer", Width: 1240, Height: 600},
		Canvas:        CanvasConfig{Width: 880, Height: 600},
		Assets:        AssetConfig{Scene: "assets/scene.jpg", Mask: "assets/mask.png"},
		Log:           LogConfig{Level: "info", Format: "console"},
		ScreenshotDir: "screenshots",
	}
}

// LoadConfig reads a YAML config file over the defaults and validates it.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks field rules and the window/canvas geometry.
func (c Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, describeValidation(err))
	}
	if c.Canvas.Width >= c.Window.Width {
		return fmt.Errorf("%w: canvas width %d leaves no room for the panel in a %d wide window",
			ErrInvalidConfig, c.Canvas.Width, c.Window.Width)
	}
	if c.Canvas.Height > c.Window.Height {
		return fmt.Errorf("%w: canvas height %d exceeds window height %d",
			ErrInvalidConfig, c.Canvas.Height, c.Window.Height)
	}
	return nil
}

// Environment variables read by ApplyEnv.
const (
	EnvScene         = "DRAPERY_SCENE"
	EnvMask          = "DRAPERY_MASK"
	EnvCatalog       = "DRAPERY_CATALOG"
	EnvLogLevel      = "DRAPERY_LOG_LEVEL"
	EnvLogFormat     = "DRAPERY_LOG_FORMAT"
	EnvDebug         = "DRAPERY_DEBUG"
	EnvScreenshotDir = "DRAPERY_SCREENSHOT_DIR"
	EnvScript        = "DRAPERY_SCRIPT"
)

// ApplyEnv overrides fields from DRAPERY_* variables found by lookup
// (usually os.LookupEnv) and revalidates.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		key string
		dst *string
	}{
		{EnvScene, &c.Assets.Scene},
		{EnvMask, &c.Assets.Mask},
		{EnvCatalog, &c.Catalog},
		{EnvLogLevel, &c.Log.Level},
		{EnvLogFormat, &c.Log.Format},
		{EnvScreenshotDir, &c.ScreenshotDir},
		{EnvScript, &c.Script},
	}
	for _, s := range strs {
		if v, ok := lookup(s.key); ok {
			*s.dst = v
		}
	}
	if v, ok := lookup(EnvDebug); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvDebug, err)
		}
		c.Debug = b
	}
	return c.Validate()
}

// CanvasViewport returns the screen rectangle of the preview.
func (c Config) CanvasViewport() Rect {
	return Rect{Width: float64(c.Canvas.Width), Height: float64(c.Canvas.Height)}
}

// PanelBounds returns the screen rectangle of the control panel.
func (c Config) PanelBounds() Rect {
	return Rect{
		X:      float64(c.Canvas.Width),
		Width:  float64(c.Window.Width - c.Canvas.Width),
		Height: float64(c.Window.Height),
	}
}

// LogOptions returns the logger options the config selects.
func (c Config) LogOptions() LogOptions {
	return LogOptions{Level: c.Log.Level, HumanReadable: c.Log.Format != "json"}
}
