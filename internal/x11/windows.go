package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"
)

const (
	stateHidden    = "_NET_WM_STATE_HIDDEN"
	stateMaxHorz   = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaxVert   = "_NET_WM_STATE_MAXIMIZED_VERT"
	typeDesktop    = "_NET_WM_WINDOW_TYPE_DESKTOP"
	wmStateRemove  = 0
	wmStateAdd     = 1
	mapStateViewed = xproto.MapStateViewable
)

// WindowState summarizes the EWMH state atoms relevant to moving a window.
type WindowState struct {
	Hidden    bool
	Maximized bool
}

// ClientWindows returns the managed client windows in stacking order.
func (c *Connection) ClientWindows() ([]xproto.Window, error) {
	return ewmh.ClientListGet(c.XUtil)
}

// GetWindowState reads _NET_WM_STATE. A window is maximized only when both
// the horizontal and vertical maximized atoms are present.
func (c *Connection) GetWindowState(windowID xproto.Window) (WindowState, error) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return WindowState{}, err
	}

	var st WindowState
	hasMaxH := false
	hasMaxV := false
	for _, state := range states {
		switch state {
		case stateHidden:
			st.Hidden = true
		case stateMaxHorz:
			hasMaxH = true
		case stateMaxVert:
			hasMaxV = true
		}
	}
	st.Maximized = hasMaxH && hasMaxV
	return st, nil
}

// IsViewable reports whether the window is mapped and all its ancestors are mapped.
func (c *Connection) IsViewable(windowID xproto.Window) (bool, error) {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return false, err
	}
	return attrs.MapState == mapStateViewed, nil
}

// IsDesktopWindow checks for the desktop background window type
func (c *Connection) IsDesktopWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == typeDesktop {
			return true
		}
	}
	return false
}

// WindowTitle prefers _NET_WM_NAME and falls back to WM_NAME
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// WindowClass returns the class part of WM_CLASS
func (c *Connection) WindowClass(windowID xproto.Window) string {
	wmClass, err := icccm.WmClassGet(c.XUtil, windowID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(wmClass.Class)
}

// FrameGeometry returns the window's outer geometry (including decorations)
// in root coordinates.
func (c *Connection) FrameGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xwindow.New(c.XUtil, windowID).DecorGeometry()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to read geometry: %w", err)
	}
	return geom.X(), geom.Y(), geom.Width(), geom.Height(), nil
}

// GetFrameExtents returns the window decoration sizes (if available)
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int, err error) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		// No frame extents available, return zeros
		return 0, 0, 0, 0, nil
	}

	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom), nil
}

// MoveWindow moves a window's frame to x, y without resizing it. Window
// managers that ignore _NET_MOVERESIZE_WINDOW get a plain configure request.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) error {
	if err := ewmh.MoveWindow(c.XUtil, windowID, x, y); err == nil {
		return nil
	}
	return c.configure(windowID,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(x)), uint32(int32(y))})
}

// MoveResizeWindow places the frame at x, y and sizes the client area to
// width by height. Callers subtract the frame extents from outer sizes.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err == nil {
		return nil
	}
	return c.configure(windowID,
		xproto.ConfigWindowX|xproto.ConfigWindowY|xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(int32(x)), uint32(int32(y)), uint32(width), uint32(height)})
}

func (c *Connection) configure(windowID xproto.Window, mask uint16, values []uint32) error {
	if err := xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, mask, values).Check(); err != nil {
		return fmt.Errorf("failed to configure window %#x: %w", uint32(windowID), err)
	}
	return nil
}

// SetMaximized adds or removes both maximized state atoms
func (c *Connection) SetMaximized(windowID xproto.Window, maximized bool) error {
	action := wmStateRemove
	if maximized {
		action = wmStateAdd
	}
	return ewmh.WmStateReqExtra(c.XUtil, windowID, action, stateMaxHorz, stateMaxVert, 2)
}
