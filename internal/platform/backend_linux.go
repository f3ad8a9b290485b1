//go:build linux

package platform

import (
	"fmt"
	"os"
	"sort"

	"github.com/1broseidon/screenswap/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// xConn is the subset of *x11.Connection the backend drives.
type xConn interface {
	ClientWindows() ([]xproto.Window, error)
	GetWindowState(windowID xproto.Window) (x11.WindowState, error)
	IsViewable(windowID xproto.Window) (bool, error)
	IsDesktopWindow(windowID xproto.Window) bool
	WindowTitle(windowID xproto.Window) string
	WindowClass(windowID xproto.Window) string
	FrameGeometry(windowID xproto.Window) (x, y, width, height int, err error)
	GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int, err error)
	MoveWindow(windowID xproto.Window, x, y int) error
	MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error
	SetMaximized(windowID xproto.Window, maximized bool) error
	GetMonitors() ([]x11.Monitor, error)
	Close()
}

var _ xConn = (*x11.Connection)(nil)

// LinuxBackend implements Backend on an EWMH-compliant X11 window manager.
type LinuxBackend struct {
	conn   xConn
	filter Filter
}

var _ Backend = (*LinuxBackend)(nil)

// New creates a Linux backend by opening a fresh X11 connection.
func New(opts Options) (Backend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn, filter: NewFilter(opts)}, nil
}

// Close closes the underlying X11 connection.
func (b *LinuxBackend) Close() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Windows lists the managed client windows. Hidden windows stand in for
// cloaked ones and the desktop window type for the desktop shell.
func (b *LinuxBackend) Windows() (Snapshot, error) {
	conn, err := b.connection()
	if err != nil {
		return Snapshot{}, err
	}

	clients, err := conn.ClientWindows()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read client list: %w", err)
	}

	var snap Snapshot
	for _, windowID := range clients {
		w, keep, err := b.readWindow(windowID)
		if err != nil {
			snap.Skipped = append(snap.Skipped, SkippedWindow{ID: WindowID(windowID), Err: err})
			continue
		}
		if keep {
			snap.Windows = append(snap.Windows, w)
		}
	}
	return snap, nil
}

func (b *LinuxBackend) readWindow(windowID xproto.Window) (Window, bool, error) {
	conn := b.conn

	viewable, err := conn.IsViewable(windowID)
	if err != nil {
		return Window{}, false, fmt.Errorf("failed to read attributes: %w", err)
	}

	// A missing _NET_WM_STATE just means no state atoms are set.
	state, _ := conn.GetWindowState(windowID)

	title := conn.WindowTitle(windowID)
	class := conn.WindowClass(windowID)

	ws := WindowState{
		Title:   title,
		Class:   class,
		Visible: viewable,
		Cloaked: state.Hidden,
		Desktop: conn.IsDesktopWindow(windowID),
	}
	if !b.filter.Accept(ws) {
		return Window{}, false, nil
	}

	x, y, width, height, err := conn.FrameGeometry(windowID)
	if err != nil {
		return Window{}, false, err
	}
	bounds := Rect{Left: x, Top: y, Right: x + width, Bottom: y + height}

	show := ShowNormal
	if state.Maximized {
		show = ShowMaximized
	}

	return Window{
		ID:     WindowID(windowID),
		Title:  title,
		Class:  class,
		Bounds: bounds,
		// X11 keeps no separate restore rectangle; the window manager restores
		// relative to the monitor the window currently occupies.
		Placement: Placement{ShowState: show, Normal: bounds},
	}, true, nil
}

// Elevated reports whether the process runs as root.
func (b *LinuxBackend) Elevated() (bool, error) {
	return os.Geteuid() == 0, nil
}

// Displays returns the active RandR monitors ordered by their left edge.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, Display{
			ID:   m.ID,
			Name: m.Name,
			Bounds: Rect{
				Left:   m.X,
				Top:    m.Y,
				Right:  m.X + m.Width,
				Bottom: m.Y + m.Height,
			},
		})
	}

	sort.SliceStable(displays, func(i, j int) bool {
		return displays[i].Bounds.Left < displays[j].Bounds.Left
	})
	return displays, nil
}

// SetPosition moves a window. Maximized windows are released from the
// maximized state for the move and maximized again on the new monitor,
// since most window managers pin them in place otherwise.
func (b *LinuxBackend) SetPosition(id WindowID, x, y int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	windowID := xproto.Window(id)
	state, _ := conn.GetWindowState(windowID)
	if state.Maximized {
		if err := conn.SetMaximized(windowID, false); err != nil {
			return fmt.Errorf("failed to unmaximize: %w", err)
		}
	}

	if err := conn.MoveWindow(windowID, x, y); err != nil {
		return err
	}

	if state.Maximized {
		if err := conn.SetMaximized(windowID, true); err != nil {
			return fmt.Errorf("failed to maximize: %w", err)
		}
	}
	return nil
}

// SetPlacement applies the normal rectangle to windows that are not
// maximized. For maximized windows SetPosition already moved them.
// The rectangle is the outer frame; the window manager sizes the client
// area, so the decorations are taken off first.
func (b *LinuxBackend) SetPlacement(id WindowID, p Placement) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if p.Maximized() {
		return nil
	}

	windowID := xproto.Window(id)
	left, right, top, bottom, err := conn.GetFrameExtents(windowID)
	if err != nil {
		return fmt.Errorf("failed to read frame extents: %w", err)
	}
	width, height := clientSize(p.Normal, left+right, top+bottom)

	return conn.MoveResizeWindow(windowID, p.Normal.Left, p.Normal.Top, width, height)
}

// clientSize returns the client area of an outer frame rectangle given the
// total horizontal and vertical decoration sizes.
func clientSize(frame Rect, decorW, decorH int) (int, int) {
	return max(frame.Width()-decorW, 1), max(frame.Height()-decorH, 1)
}

func (b *LinuxBackend) connection() (xConn, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}
