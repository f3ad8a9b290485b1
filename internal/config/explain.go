package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	screens.first.left
//	screens.first.right
//	screens.second.left
//	screens.second.right
//	detect_screens
//	exclude_classes
//	log_level
//	log_format
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "screens.first.left":
		return cfg.Screens.First.Left, nil
	case "screens.first.right":
		return cfg.Screens.First.Right, nil
	case "screens.second.left":
		return cfg.Screens.Second.Left, nil
	case "screens.second.right":
		return cfg.Screens.Second.Right, nil
	case "detect_screens":
		return cfg.DetectScreens, nil
	case "exclude_classes":
		return cfg.ExcludeClasses, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "log_format":
		return cfg.LogFormat, nil
	default:
		return nil, fmt.Errorf("unknown config path %q", path)
	}
}
