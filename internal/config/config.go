package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/screenswap/internal/logger"
	"github.com/1broseidon/screenswap/internal/platform"
	"github.com/1broseidon/screenswap/internal/swap"
	"gopkg.in/yaml.v3"
)

// Screens holds the two horizontal spans windows are swapped between.
type Screens struct {
	First  swap.Screen `yaml:"first"`
	Second swap.Screen `yaml:"second"`
}

// Config holds the application configuration.
type Config struct {
	Screens Screens `yaml:"screens"`
	// DetectScreens replaces Screens with the two leftmost displays
	// reported by the window system.
	DetectScreens  bool     `yaml:"detect_screens"`
	ExcludeClasses []string `yaml:"exclude_classes"`
	LogLevel       string   `yaml:"log_level"`
	// LogFormat is "console" or "json".
	LogFormat string `yaml:"log_format"`
}

const (
	DefaultScreenWidth = 2560
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "console"
)

func DefaultConfig() *Config {
	return &Config{
		Screens: Screens{
			First:  swap.Screen{Left: 0, Right: DefaultScreenWidth},
			Second: swap.Screen{Left: DefaultScreenWidth, Right: DefaultScreenWidth * 2},
		},
		DetectScreens:  false,
		ExcludeClasses: append([]string(nil), platform.DefaultExcludeClasses...),
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// LoggerOptions returns the logger options derived from the config.
func (c *Config) LoggerOptions() logger.Options {
	return logger.Options{
		Level: c.LogLevel,
		JSON:  c.LogFormat == "json",
	}
}

// BackendOptions returns the platform options derived from the config.
func (c *Config) BackendOptions() platform.Options {
	return platform.Options{ExcludeClasses: c.ExcludeClasses}
}

// Validate checks the configuration for values the swap cannot run with.
// The configured screens are ignored when detect_screens is on.
func (c *Config) Validate() error {
	if !c.DetectScreens {
		if err := c.Screens.First.Validate(); err != nil {
			return &ValidationError{Path: "screens.first", Err: err}
		}
		if err := c.Screens.Second.Validate(); err != nil {
			return &ValidationError{Path: "screens.second", Err: err}
		}
		if err := swap.ValidatePair(c.Screens.First, c.Screens.Second); err != nil {
			return &ValidationError{Path: "screens", Err: err}
		}
	}
	for i, class := range c.ExcludeClasses {
		if strings.TrimSpace(class) == "" {
			return &ValidationError{Path: fmt.Sprintf("exclude_classes[%d]", i), Err: fmt.Errorf("class name must not be empty")}
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return &ValidationError{Path: "log_format", Err: fmt.Errorf("log_format must be one of: console, json")}
	}
	return nil
}

// Save writes the config to the default location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config as YAML to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
