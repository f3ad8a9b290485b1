package platform

import "errors"

// ErrUnsupported is returned by New on platforms without a window backend.
var ErrUnsupported = errors.New("window backend not supported on this platform")

// WindowID is a platform-neutral window identifier. On Windows it carries the
// HWND, on X11 the window XID. The operating system owns the underlying window.
type WindowID uintptr

// Rect describes a rectangle in virtual-desktop coordinates.
// Right and Bottom are exclusive.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// Width returns the horizontal extent of the rectangle.
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns the vertical extent of the rectangle.
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Translate returns r shifted horizontally by dx.
func (r Rect) Translate(dx int) Rect {
	r.Left += dx
	r.Right += dx
	return r
}

// Point is a position in virtual-desktop coordinates.
type Point struct {
	X int
	Y int
}

// ShowState is the window show command. Values match the Win32 SW_* constants.
type ShowState uint32

const (
	ShowHidden    ShowState = 0
	ShowNormal    ShowState = 1
	ShowMinimized ShowState = 2
	ShowMaximized ShowState = 3
)

func (s ShowState) String() string {
	switch s {
	case ShowHidden:
		return "hidden"
	case ShowNormal:
		return "normal"
	case ShowMinimized:
		return "minimized"
	case ShowMaximized:
		return "maximized"
	default:
		return "other"
	}
}

// Placement is the show state plus the rectangle a window returns to when it
// is restored from the maximized or minimized state.
type Placement struct {
	Flags       uint32
	ShowState   ShowState
	MinPosition Point
	MaxPosition Point
	Normal      Rect
}

// Maximized reports whether the window is currently maximized.
func (p Placement) Maximized() bool {
	return p.ShowState == ShowMaximized
}

// Window is a snapshot of a top-level window.
type Window struct {
	ID        WindowID
	Title     string
	Class     string
	Bounds    Rect
	Placement Placement
}

// SkippedWindow records a window that could not be read during enumeration.
type SkippedWindow struct {
	ID  WindowID
	Err error
}

// Snapshot is the result of a single enumeration pass.
type Snapshot struct {
	Windows []Window
	Skipped []SkippedWindow
}

// Display describes a physical display.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
}

// Options configures a backend.
type Options struct {
	// ExcludeClasses lists window class names that are never enumerated.
	ExcludeClasses []string
}

// Backend abstracts the window-system operations needed to swap windows
// between two screens.
type Backend interface {
	// Windows enumerates the actionable top-level windows. Failures reading a
	// single window are reported in Snapshot.Skipped; only a failure of the
	// enumeration itself returns an error.
	Windows() (Snapshot, error)
	// Elevated reports whether the process runs with elevated privileges.
	Elevated() (bool, error)
	Displays() ([]Display, error)
	// SetPosition moves the window's top-left corner without resizing it,
	// changing its Z-order or activating it.
	SetPosition(id WindowID, x, y int) error
	// SetPlacement commits the full placement back to the window.
	SetPlacement(id WindowID, p Placement) error
	Close()
}
