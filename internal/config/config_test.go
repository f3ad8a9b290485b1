package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/screenswap/internal/platform"
	"github.com/1broseidon/screenswap/internal/swap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Screens.First != (swap.Screen{Left: 0, Right: 2560}) {
		t.Fatalf("unexpected first screen %s", cfg.Screens.First)
	}
	if cfg.Screens.Second != (swap.Screen{Left: 2560, Right: 5120}) {
		t.Fatalf("unexpected second screen %s", cfg.Screens.Second)
	}
	if len(cfg.ExcludeClasses) != 1 || cfg.ExcludeClasses[0] != "Progman" {
		t.Fatalf("unexpected exclude_classes %v", cfg.ExcludeClasses)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file, got %q", res.File)
	}
	if res.Config.LogLevel != DefaultLogLevel {
		t.Fatalf("expected log_level %q, got %q", DefaultLogLevel, res.Config.LogLevel)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Screens != DefaultConfig().Screens {
		t.Fatalf("expected default screens, got %+v", res.Config.Screens)
	}
}

func TestLoadFromPath_PartialScreenOverride(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"screens:",
		"  first:",
		"    right: 1920",
		"  second:",
		"    left: 1920",
		"    right: 3840",
		"log_level: Warning",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Screens.First != (swap.Screen{Left: 0, Right: 1920}) {
		t.Fatalf("unexpected first screen %s", cfg.Screens.First)
	}
	if cfg.Screens.Second != (swap.Screen{Left: 1920, Right: 3840}) {
		t.Fatalf("unexpected second screen %s", cfg.Screens.Second)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected log_level warn, got %q", cfg.LogLevel)
	}

	val, src, err := Explain(res, "screens.second.right")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 3840 {
		t.Fatalf("expected 3840, got %v", val)
	}
	if src.Kind != SourceFile || src.Line != 6 {
		t.Fatalf("expected file source at line 6, got %+v", src)
	}

	_, src, err = Explain(res, "screens.first.left")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if src.Kind != SourceDefault {
		t.Fatalf("expected default source, got %+v", src)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, "screen_width: 1920\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected unknown key error")
	}
	if !strings.Contains(err.Error(), "screen_width") {
		t.Fatalf("expected error to mention key, got %v", err)
	}
}

func TestLoadFromPath_OverlappingScreensHaveSourceContext(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"screens:",
		"  second:",
		"    left: 2000",
		"",
	}, "\n"))

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, swap.ErrOverlappingScreens) {
		t.Fatalf("expected ErrOverlappingScreens, got %v", err)
	}
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Source.Kind != SourceFile {
		t.Fatalf("expected file source on validation error, got %v", err)
	}
}

func TestLoadFromPath_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level: verbose\n")

	_, err := LoadFromPath(path)
	if err == nil || !strings.Contains(err.Error(), "log_level") {
		t.Fatalf("expected log_level error, got %v", err)
	}
}

func TestLoadFromPath_EmptyExcludeClassesDisablesDefault(t *testing.T) {
	path := writeConfig(t, "exclude_classes: []\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.ExcludeClasses == nil || len(res.Config.ExcludeClasses) != 0 {
		t.Fatalf("expected empty non-nil exclude_classes, got %#v", res.Config.ExcludeClasses)
	}
}

func TestSaveTo_RoundTrips(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DetectScreens = true
	cfg.ExcludeClasses = []string{"Progman", "WorkerW"}

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !res.Config.DetectScreens {
		t.Fatalf("expected detect_screens true")
	}
	if len(res.Config.ExcludeClasses) != 2 || res.Config.ExcludeClasses[1] != "WorkerW" {
		t.Fatalf("unexpected exclude_classes %v", res.Config.ExcludeClasses)
	}
}

type fakeDisplays struct {
	displays []platform.Display
	err      error
}

func (f fakeDisplays) Displays() ([]platform.Display, error) {
	return f.displays, f.err
}

func TestResolveScreens_UsesConfiguredScreens(t *testing.T) {
	cfg := DefaultConfig()
	first, second, err := cfg.ResolveScreens(fakeDisplays{err: errors.New("not called")})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first != cfg.Screens.First || second != cfg.Screens.Second {
		t.Fatalf("unexpected screens %s %s", first, second)
	}
}

func TestResolveScreens_DetectsTwoLeftmostDisplays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DetectScreens = true

	src := fakeDisplays{displays: []platform.Display{
		{ID: 0, Name: "DP-2", Bounds: platform.Rect{Left: 1920, Top: 0, Right: 3840, Bottom: 1080}},
		{ID: 1, Name: "HDMI-1", Bounds: platform.Rect{Left: 3840, Top: 0, Right: 5120, Bottom: 1024}},
		{ID: 2, Name: "DP-1", Bounds: platform.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}},
	}}

	first, second, err := cfg.ResolveScreens(src)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first != (swap.Screen{Left: 0, Right: 1920}) {
		t.Fatalf("unexpected first screen %s", first)
	}
	if second != (swap.Screen{Left: 1920, Right: 3840}) {
		t.Fatalf("unexpected second screen %s", second)
	}
}

func TestResolveScreens_DetectNeedsTwoDisplays(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DetectScreens = true

	src := fakeDisplays{displays: []platform.Display{
		{ID: 0, Name: "eDP-1", Bounds: platform.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}},
	}}
	if _, _, err := cfg.ResolveScreens(src); err == nil {
		t.Fatalf("expected error with a single display")
	}
}

func TestLoadFromPath_DetectScreensIgnoresConfiguredScreens(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"detect_screens: true",
		"screens:",
		"  first: {left: 0, right: 0}",
		"  second: {left: 0, right: 100}",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("expected unused screens to be ignored, got %v", err)
	}
	if !res.Config.DetectScreens {
		t.Fatalf("expected detect_screens to be set")
	}

	path = writeConfig(t, "screens:\n  first: {left: 0, right: 0}\n")
	if _, err := LoadFromPath(path); !errors.Is(err, swap.ErrInvalidScreen) {
		t.Fatalf("expected ErrInvalidScreen without detection, got %v", err)
	}
}

func TestLoadFromPath_LogFormat(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantJSON bool
		wantErr  bool
	}{
		{"default", "", false, false},
		{"console", "log_format: console\n", false, false},
		{"json", "log_format: JSON\n", true, false},
		{"unknown", "log_format: xml\n", false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := LoadFromPath(writeConfig(t, tt.content))
			if tt.wantErr {
				var verr *ValidationError
				if !errors.As(err, &verr) || verr.Path != "log_format" {
					t.Fatalf("expected log_format validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			opts := res.Config.LoggerOptions()
			if opts.JSON != tt.wantJSON {
				t.Fatalf("expected JSON=%v, got %v", tt.wantJSON, opts.JSON)
			}
			if opts.Level != DefaultLogLevel {
				t.Fatalf("expected level %q, got %q", DefaultLogLevel, opts.Level)
			}
		})
	}
}

func TestExplain_LogFormat(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nlog_format: json\n")
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	value, src, err := Explain(res, "log_format")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if value != "json" || src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("unexpected explain result %v %+v", value, src)
	}
}

func TestSave_WritesDefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if err := DefaultConfig().Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if !strings.HasPrefix(path, home) {
		t.Fatalf("expected path under %s, got %s", home, path)
	}

	res, err := LoadWithSources()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File == "" {
		t.Fatalf("expected saved file to be loaded")
	}
	if res.Config.LogFormat != DefaultLogFormat {
		t.Fatalf("unexpected log_format %q", res.Config.LogFormat)
	}
}
