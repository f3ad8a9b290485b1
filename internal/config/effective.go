package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig overlays raw file values onto the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.Screens != nil {
		cfg.Screens.First = raw.Screens.First.apply(cfg.Screens.First)
		cfg.Screens.Second = raw.Screens.Second.apply(cfg.Screens.Second)
	}
	if raw.DetectScreens != nil {
		cfg.DetectScreens = *raw.DetectScreens
	}
	if raw.ExcludeClasses != nil {
		cfg.ExcludeClasses = append([]string{}, (*raw.ExcludeClasses)...)
	}
	if raw.LogLevel != nil {
		level := strings.ToLower(strings.TrimSpace(*raw.LogLevel))
		if level == "warning" {
			level = "warn"
		}
		cfg.LogLevel = level
	}
	if raw.LogFormat != nil {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(*raw.LogFormat))
	}

	return cfg
}
