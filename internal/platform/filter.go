package platform

import "strings"

// DefaultExcludeClasses holds the class of the legacy desktop-shell background window.
var DefaultExcludeClasses = []string{"Progman"}

// WindowState is the raw per-window information a backend gathers before
// deciding whether the window belongs in a snapshot.
type WindowState struct {
	Title   string
	Class   string
	Visible bool
	Cloaked bool
	// Desktop marks the desktop-shell background window when the window
	// system identifies it by type rather than by class.
	Desktop bool
}

// Filter decides which enumerated windows are actionable.
type Filter struct {
	ExcludeClasses []string
}

// NewFilter builds a filter from backend options, falling back to
// DefaultExcludeClasses when none are configured.
func NewFilter(opts Options) Filter {
	classes := opts.ExcludeClasses
	if classes == nil {
		classes = DefaultExcludeClasses
	}
	return Filter{ExcludeClasses: classes}
}

// Accept reports whether a window should be part of the snapshot. Untitled,
// invisible, cloaked and desktop-shell windows are rejected.
func (f Filter) Accept(s WindowState) bool {
	if s.Title == "" || !s.Visible || s.Cloaked || s.Desktop {
		return false
	}
	return !f.excludedClass(s.Class)
}

func (f Filter) excludedClass(class string) bool {
	class = strings.TrimSpace(class)
	if class == "" {
		return false
	}
	for _, c := range f.ExcludeClasses {
		if strings.EqualFold(c, class) {
			return true
		}
	}
	return false
}
