package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/foot-shape-mcp/internal/footshape"
)

// EnvConfigPath names the environment variable holding the config file path.
const EnvConfigPath = "FOOT_MCP_CONFIG"

// EnvLogLevel overrides LogLevel when set.
const EnvLogLevel = "FOOT_MCP_LOG_LEVEL"

// Config holds the application configuration
type Config struct {
	Segmentation SegmentationConfig `json:"segmentation"`
	Loader       LoaderConfig       `json:"loader"`
	Overlay      OverlayConfig      `json:"overlay"`
	LogLevel     string             `json:"log_level"`
}

// SegmentationConfig holds the thresholds used by the analysis engine
type SegmentationConfig struct {
	Mode           string  `json:"mode"`
	FixedThreshold float64 `json:"fixed_threshold"`
	AdaptiveFactor float64 `json:"adaptive_factor"`
	AlphaThreshold int     `json:"alpha_threshold"`
}

// LoaderConfig controls how photos are prepared before segmentation
type LoaderConfig struct {
	// MaxWidth downsizes wider photos, keeping aspect ratio. 0 disables.
	MaxWidth   int     `json:"max_width"`
	BlurRadius float64 `json:"blur_radius"`
	AutoOrient bool    `json:"auto_orient"`
}

// OverlayConfig holds the debug overlay palette as hex colors
type OverlayConfig struct {
	BoxColor      string  `json:"box_color"`
	CentroidColor string  `json:"centroid_color"`
	SliceColor    string  `json:"slice_color"`
	LandmarkColor string  `json:"landmark_color"`
	MaskColor     string  `json:"mask_color"`
	MaskOpacity   float64 `json:"mask_opacity"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Segmentation: SegmentationConfig{
			Mode:           footshape.FixedThreshold.String(),
			FixedThreshold: footshape.DefaultFixedThreshold,
			AdaptiveFactor: footshape.DefaultAdaptiveFactor,
			AlphaThreshold: footshape.DefaultAlphaThreshold,
		},
		Loader: LoaderConfig{
			MaxWidth:   480,
			BlurRadius: 0,
			AutoOrient: true,
		},
		Overlay: OverlayConfig{
			BoxColor:      "#00c853",
			CentroidColor: "#ff0000",
			SliceColor:    "#2979ff",
			LandmarkColor: "#ff5722",
			MaskColor:     "#ffeb3b",
			MaskOpacity:   0.4,
		},
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a JSON file. Fields absent from the
// file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load resolves the configuration for the process: the file named by
// FOOT_MCP_CONFIG if set, otherwise the default path if it exists, otherwise
// defaults. FOOT_MCP_LOG_LEVEL overrides the log level.
func Load() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	explicit := path != ""
	if !explicit {
		path = GetConfigPath()
	}

	config, err := LoadFromFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, os.ErrNotExist):
		config = Default()
	default:
		return nil, err
	}

	if level := os.Getenv(EnvLogLevel); level != "" {
		config.LogLevel = level
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// SaveToFile saves configuration to a JSON file
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := footshape.ParseThresholdMode(c.Segmentation.Mode); err != nil {
		return fmt.Errorf("segmentation.mode: %w", err)
	}

	if c.Segmentation.FixedThreshold <= 0 || c.Segmentation.FixedThreshold > 255 {
		return fmt.Errorf("segmentation.fixed_threshold must be in (0, 255]")
	}

	if c.Segmentation.AdaptiveFactor <= 0 || c.Segmentation.AdaptiveFactor > 1 {
		return fmt.Errorf("segmentation.adaptive_factor must be in (0, 1]")
	}

	if c.Segmentation.AlphaThreshold < 0 || c.Segmentation.AlphaThreshold > 254 {
		return fmt.Errorf("segmentation.alpha_threshold must be between 0 and 254")
	}

	if c.Loader.MaxWidth < 0 {
		return fmt.Errorf("loader.max_width must not be negative")
	}

	if c.Loader.BlurRadius < 0 {
		return fmt.Errorf("loader.blur_radius must not be negative")
	}

	for name, hex := range map[string]string{
		"box_color":      c.Overlay.BoxColor,
		"centroid_color": c.Overlay.CentroidColor,
		"slice_color":    c.Overlay.SliceColor,
		"landmark_color": c.Overlay.LandmarkColor,
		"mask_color":     c.Overlay.MaskColor,
	} {
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("overlay.%s: %w", name, err)
		}
	}

	if c.Overlay.MaskOpacity < 0 || c.Overlay.MaskOpacity > 1 {
		return fmt.Errorf("overlay.mask_opacity must be between 0 and 1")
	}

	switch c.LogLevel {
	case "", "info", "debug":
	default:
		return fmt.Errorf("log_level must be info or debug")
	}

	return nil
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// EngineOptions converts the segmentation settings for footshape.New.
func (c *Config) EngineOptions() footshape.Options {
	return footshape.Options{
		FixedThreshold: c.Segmentation.FixedThreshold,
		AdaptiveFactor: c.Segmentation.AdaptiveFactor,
		AlphaThreshold: uint8(c.Segmentation.AlphaThreshold),
	}
}

// ThresholdMode returns the configured default mode. It assumes Validate passed.
func (c *Config) ThresholdMode() footshape.ThresholdMode {
	mode, _ := footshape.ParseThresholdMode(c.Segmentation.Mode)
	return mode
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./config.json"
	}
	return filepath.Join(home, ".config", "foot-shape-mcp", "config.json")
}
