package config

import "github.com/1broseidon/screenswap/internal/swap"

// RawScreen mirrors swap.Screen with optional fields so partial overrides
// keep the defaults for whatever is left out.
type RawScreen struct {
	Left  *int `yaml:"left"`
	Right *int `yaml:"right"`
}

type RawScreens struct {
	First  *RawScreen `yaml:"first"`
	Second *RawScreen `yaml:"second"`
}

// RawConfig is the file representation before defaults are applied.
type RawConfig struct {
	Screens        *RawScreens `yaml:"screens"`
	DetectScreens  *bool       `yaml:"detect_screens"`
	ExcludeClasses *[]string   `yaml:"exclude_classes"`
	LogLevel       *string     `yaml:"log_level"`
	LogFormat      *string     `yaml:"log_format"`
}

func (s *RawScreen) apply(base swap.Screen) swap.Screen {
	if s == nil {
		return base
	}
	if s.Left != nil {
		base.Left = *s.Left
	}
	if s.Right != nil {
		base.Right = *s.Right
	}
	return base
}
