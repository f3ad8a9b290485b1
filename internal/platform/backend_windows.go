//go:build windows

package platform

import (
	"fmt"
	"sort"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                    = windows.NewLazySystemDLL("user32.dll")
	dwmapi                    = windows.NewLazySystemDLL("dwmapi.dll")
	procEnumWindows           = user32.NewProc("EnumWindows")
	procGetWindowTextW        = user32.NewProc("GetWindowTextW")
	procGetClassNameW         = user32.NewProc("GetClassNameW")
	procGetWindowInfo         = user32.NewProc("GetWindowInfo")
	procGetWindowPlacement    = user32.NewProc("GetWindowPlacement")
	procSetWindowPlacement    = user32.NewProc("SetWindowPlacement")
	procSetWindowPos          = user32.NewProc("SetWindowPos")
	procEnumDisplayMonitors   = user32.NewProc("EnumDisplayMonitors")
	procGetMonitorInfoW       = user32.NewProc("GetMonitorInfoW")
	procDwmGetWindowAttribute = dwmapi.NewProc("DwmGetWindowAttribute")
)

const (
	wsVisible = 0x10000000

	dwmwaCloaked = 14

	swpNoSize        = 0x0001
	swpNoZOrder      = 0x0004
	swpNoActivate    = 0x0010
	swpNoOwnerZOrder = 0x0200

	hwndTop = 0

	maxTitleLen = 512
	maxClassLen = 256
)

type winPoint struct {
	X int32
	Y int32
}

type winRect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

type windowInfo struct {
	CbSize          uint32
	RcWindow        winRect
	RcClient        winRect
	DwStyle         uint32
	DwExStyle       uint32
	DwWindowStatus  uint32
	CxWindowBorders uint32
	CyWindowBorders uint32
	AtomWindowType  uint16
	WCreatorVersion uint16
}

type windowPlacement struct {
	Length           uint32
	Flags            uint32
	ShowCmd          uint32
	PtMinPosition    winPoint
	PtMaxPosition    winPoint
	RcNormalPosition winRect
}

type monitorInfo struct {
	CbSize    uint32
	RcMonitor winRect
	RcWork    winRect
	DwFlags   uint32
}

// WindowsBackend implements Backend on top of user32 and dwmapi.
type WindowsBackend struct {
	filter Filter
}

var _ Backend = (*WindowsBackend)(nil)

// New creates the Windows backend.
func New(opts Options) (Backend, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("failed to load user32.dll: %w", err)
	}
	return &WindowsBackend{filter: NewFilter(opts)}, nil
}

// Close is a no-op; the backend holds no resources.
func (b *WindowsBackend) Close() {}

// Windows enumerates top-level windows with EnumWindows. The callback only
// collects handles; each handle is read after enumeration finishes so that a
// failing window is reported instead of unwinding through the callback.
func (b *WindowsBackend) Windows() (Snapshot, error) {
	var handles []windows.HWND
	cb := windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		handles = append(handles, hwnd)
		return 1
	})
	if r, _, err := procEnumWindows.Call(cb, 0); r == 0 {
		return Snapshot{}, fmt.Errorf("EnumWindows failed: %w", err)
	}

	var snap Snapshot
	for _, hwnd := range handles {
		w, keep, err := b.readWindow(hwnd)
		if err != nil {
			snap.Skipped = append(snap.Skipped, SkippedWindow{ID: WindowID(hwnd), Err: err})
			continue
		}
		if keep {
			snap.Windows = append(snap.Windows, w)
		}
	}
	return snap, nil
}

func (b *WindowsBackend) readWindow(hwnd windows.HWND) (Window, bool, error) {
	title := windowText(hwnd)

	info := windowInfo{CbSize: uint32(unsafe.Sizeof(windowInfo{}))}
	if r, _, err := procGetWindowInfo.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&info))); r == 0 {
		return Window{}, false, fmt.Errorf("GetWindowInfo: %w", err)
	}

	wp := windowPlacement{Length: uint32(unsafe.Sizeof(windowPlacement{}))}
	if r, _, err := procGetWindowPlacement.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&wp))); r == 0 {
		return Window{}, false, fmt.Errorf("GetWindowPlacement: %w", err)
	}

	cloaked, err := isCloaked(hwnd)
	if err != nil {
		return Window{}, false, err
	}

	class := className(hwnd)

	state := WindowState{
		Title:   title,
		Class:   class,
		Visible: info.DwStyle&wsVisible != 0,
		Cloaked: cloaked,
	}
	if !b.filter.Accept(state) {
		return Window{}, false, nil
	}

	return Window{
		ID:        WindowID(hwnd),
		Title:     title,
		Class:     class,
		Bounds:    rectFromWin(info.RcWindow),
		Placement: placementFromWin(wp),
	}, true, nil
}

// Elevated reports whether the process token is elevated.
func (b *WindowsBackend) Elevated() (bool, error) {
	token, err := windows.OpenCurrentProcessToken()
	if err != nil {
		return false, fmt.Errorf("failed to open process token: %w", err)
	}
	defer token.Close()
	return token.IsElevated(), nil
}

// Displays lists the attached monitors ordered by their left edge.
func (b *WindowsBackend) Displays() ([]Display, error) {
	var monitors []windows.Handle
	cb := windows.NewCallback(func(hmon windows.Handle, _ windows.Handle, _ *winRect, _ uintptr) uintptr {
		monitors = append(monitors, hmon)
		return 1
	})
	if r, _, err := procEnumDisplayMonitors.Call(0, 0, cb, 0); r == 0 {
		return nil, fmt.Errorf("EnumDisplayMonitors failed: %w", err)
	}

	displays := make([]Display, 0, len(monitors))
	for i, hmon := range monitors {
		mi := monitorInfo{CbSize: uint32(unsafe.Sizeof(monitorInfo{}))}
		if r, _, err := procGetMonitorInfoW.Call(uintptr(hmon), uintptr(unsafe.Pointer(&mi))); r == 0 {
			return nil, fmt.Errorf("GetMonitorInfoW failed: %w", err)
		}
		displays = append(displays, Display{
			ID:     i,
			Name:   fmt.Sprintf("DISPLAY%d", i+1),
			Bounds: rectFromWin(mi.RcMonitor),
		})
	}

	sort.SliceStable(displays, func(i, j int) bool {
		return displays[i].Bounds.Left < displays[j].Bounds.Left
	})
	return displays, nil
}

// SetPosition moves a window's top-left corner without resizing or
// activating it and without touching the Z-order.
func (b *WindowsBackend) SetPosition(id WindowID, x, y int) error {
	r, _, err := procSetWindowPos.Call(
		uintptr(id),
		hwndTop,
		uintptr(int32(x)),
		uintptr(int32(y)),
		0, 0,
		swpNoZOrder|swpNoOwnerZOrder|swpNoActivate|swpNoSize,
	)
	if r == 0 {
		return fmt.Errorf("SetWindowPos failed: %w", err)
	}
	return nil
}

// SetPlacement commits a placement with SetWindowPlacement.
func (b *WindowsBackend) SetPlacement(id WindowID, p Placement) error {
	wp := placementToWin(p)
	if r, _, err := procSetWindowPlacement.Call(uintptr(id), uintptr(unsafe.Pointer(&wp))); r == 0 {
		return fmt.Errorf("SetWindowPlacement failed: %w", err)
	}
	return nil
}

func windowText(hwnd windows.HWND) string {
	var buf [maxTitleLen]uint16
	n, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), maxTitleLen)
	return windows.UTF16ToString(buf[:n])
}

func className(hwnd windows.HWND) string {
	var buf [maxClassLen]uint16
	n, _, _ := procGetClassNameW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), maxClassLen)
	return windows.UTF16ToString(buf[:n])
}

func isCloaked(hwnd windows.HWND) (bool, error) {
	var cloaked uint32
	hr, _, _ := procDwmGetWindowAttribute.Call(
		uintptr(hwnd),
		dwmwaCloaked,
		uintptr(unsafe.Pointer(&cloaked)),
		unsafe.Sizeof(cloaked),
	)
	if hr != 0 {
		return false, fmt.Errorf("DwmGetWindowAttribute: %w", windows.Errno(hr))
	}
	return cloaked != 0, nil
}

func rectFromWin(r winRect) Rect {
	return Rect{
		Left:   int(r.Left),
		Top:    int(r.Top),
		Right:  int(r.Right),
		Bottom: int(r.Bottom),
	}
}

func rectToWin(r Rect) winRect {
	return winRect{
		Left:   int32(r.Left),
		Top:    int32(r.Top),
		Right:  int32(r.Right),
		Bottom: int32(r.Bottom),
	}
}

func placementFromWin(wp windowPlacement) Placement {
	return Placement{
		Flags:       wp.Flags,
		ShowState:   ShowState(wp.ShowCmd),
		MinPosition: Point{X: int(wp.PtMinPosition.X), Y: int(wp.PtMinPosition.Y)},
		MaxPosition: Point{X: int(wp.PtMaxPosition.X), Y: int(wp.PtMaxPosition.Y)},
		Normal:      rectFromWin(wp.RcNormalPosition),
	}
}

func placementToWin(p Placement) windowPlacement {
	return windowPlacement{
		Length:           uint32(unsafe.Sizeof(windowPlacement{})),
		Flags:            p.Flags,
		ShowCmd:          uint32(p.ShowState),
		PtMinPosition:    winPoint{X: int32(p.MinPosition.X), Y: int32(p.MinPosition.Y)},
		PtMaxPosition:    winPoint{X: int32(p.MaxPosition.X), Y: int32(p.MaxPosition.Y)},
		RcNormalPosition: rectToWin(p.Normal),
	}
}
