//go:build windows

package win32

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"github.com/lxn/win"
	"github.com/mitchellh/go-ps"
	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
	"golang.org/x/sys/windows"
)

type titleBarInfo struct {
	CbSize     uint32
	RcTitleBar win.RECT
	RgState    [titleBarInfoStateSize]uint32
}

// System implements platform.WindowSystem with the Win32 API.
type System struct{}

var _ platform.WindowSystem = (*System)(nil)

// NewSystem returns a Win32 window system.
func NewSystem() *System {
	return &System{}
}

// TopLevelWindows enumerates windows in z-order and keeps the ones a user
// would consider application windows: visible, titled, not cloaked by DWM,
// and with a visible title bar.
func (s *System) TopLevelWindows() ([]platform.WindowRef, error) {
	var refs []platform.WindowRef
	cb := windows.NewCallback(func(h uintptr, _ uintptr) uintptr {
		hwnd := win.HWND(h)
		if !isMainWindow(hwnd) {
			return 1
		}
		var pid uint32
		win.GetWindowThreadProcessId(hwnd, &pid)
		refs = append(refs, platform.WindowRef{Handle: model.Handle(h), PID: int(pid)})
		return 1
	})
	r, _, err := procEnumWindows.Call(cb, 0)
	if r == 0 {
		return nil, fmt.Errorf("EnumWindows failed: %w", err)
	}
	return refs, nil
}

func (s *System) WindowTitle(h model.Handle) (string, error) {
	hwnd := win.HWND(h)
	if !isWindow(hwnd) {
		return "", platform.ErrInvalidHandle
	}
	return windowText(hwnd), nil
}

func (s *System) WindowRect(h model.Handle) (model.Rect, error) {
	var rc win.RECT
	if !win.GetWindowRect(win.HWND(h), &rc) {
		return model.Rect{}, fmt.Errorf("GetWindowRect failed for window %#x", uintptr(h))
	}
	return fromRECT(rc), nil
}

func (s *System) IsWindow(h model.Handle) bool {
	return h != 0 && isWindow(win.HWND(h))
}

func (s *System) ApplicationName(pid int) (string, error) {
	proc, err := ps.FindProcess(pid)
	if err != nil {
		return "", fmt.Errorf("failed to find process for PID %d: %w", pid, err)
	}
	if proc == nil {
		return "", fmt.Errorf("no process with PID %d", pid)
	}
	return filepath.Base(proc.Executable()), nil
}

// SetZOrder repositions the window without moving, resizing or activating it.
func (s *System) SetZOrder(h model.Handle, z platform.ZOrder) error {
	var after win.HWND
	switch z {
	case platform.ZTop:
		after = win.HWND_TOP
	case platform.ZBottom:
		after = win.HWND_BOTTOM
	case platform.ZTopMost:
		after = win.HWND_TOPMOST
	case platform.ZNotTopMost:
		after = win.HWND_NOTOPMOST
	default:
		return fmt.Errorf("unsupported z-order %v", z)
	}
	if !win.SetWindowPos(win.HWND(h), after, 0, 0, 0, 0, win.SWP_NOSIZE|win.SWP_NOMOVE|win.SWP_NOACTIVATE) {
		return fmt.Errorf("SetWindowPos(%v) failed for window %#x", z, uintptr(h))
	}
	return nil
}

func (s *System) MenuHandle(h model.Handle) (model.MenuHandle, error) {
	if !isWindow(win.HWND(h)) {
		return 0, platform.ErrInvalidHandle
	}
	r, _, _ := procGetMenu.Call(uintptr(h))
	return model.MenuHandle(r), nil
}

func (s *System) MenuItemCount(m model.MenuHandle) (int, error) {
	n := win.GetMenuItemCount(win.HMENU(m))
	if n < 0 {
		return 0, fmt.Errorf("GetMenuItemCount failed for menu %#x", uintptr(m))
	}
	return int(n), nil
}

// MenuItemAt reads the item by position. The label is fetched in two steps:
// the first call reports its length, the second fills the buffer.
func (s *System) MenuItemAt(m model.MenuHandle, index int) (platform.MenuItem, error) {
	mii := win.MENUITEMINFO{
		FMask: win.MIIM_STRING | win.MIIM_SUBMENU | win.MIIM_ID | win.MIIM_FTYPE,
	}
	mii.CbSize = uint32(unsafe.Sizeof(mii))
	if err := getMenuItemInfo(m, index, &mii); err != nil {
		return platform.MenuItem{}, err
	}

	item := platform.MenuItem{
		SubMenu:   model.MenuHandle(mii.HSubMenu),
		CommandID: mii.WID,
	}
	if mii.Cch == 0 {
		return item, nil
	}

	buf := make([]uint16, mii.Cch+1)
	mii.DwTypeData = &buf[0]
	mii.Cch = uint32(len(buf))
	if err := getMenuItemInfo(m, index, &mii); err != nil {
		return platform.MenuItem{}, err
	}
	item.Text = windows.UTF16ToString(buf)
	return item, nil
}

func (s *System) MenuItemScreenRect(h model.Handle, m model.MenuHandle, index int) (model.Rect, error) {
	var rc win.RECT
	r, _, err := procGetMenuItemRect.Call(uintptr(h), uintptr(m), uintptr(index), uintptr(unsafe.Pointer(&rc)))
	if r == 0 {
		return model.Rect{}, fmt.Errorf("GetMenuItemRect failed for item %d of menu %#x: %w", index, uintptr(m), err)
	}
	return fromRECT(rc), nil
}

// PostCommand queues WM_COMMAND for the window and returns immediately.
func (s *System) PostCommand(h model.Handle, commandID uint32) error {
	if win.PostMessage(win.HWND(h), win.WM_COMMAND, uintptr(commandID), 0) == 0 {
		return fmt.Errorf("PostMessage(WM_COMMAND %d) failed for window %#x", commandID, uintptr(h))
	}
	return nil
}

func getMenuItemInfo(m model.MenuHandle, index int, mii *win.MENUITEMINFO) error {
	if !win.GetMenuItemInfo(win.HMENU(m), uint32(index), win.TRUE, mii) {
		return fmt.Errorf("GetMenuItemInfo failed for item %d of menu %#x", index, uintptr(m))
	}
	return nil
}

func isMainWindow(hwnd win.HWND) bool {
	if !win.IsWindowVisible(hwnd) || windowText(hwnd) == "" || isCloaked(hwnd) {
		return false
	}
	var tbi titleBarInfo
	tbi.CbSize = uint32(unsafe.Sizeof(tbi))
	procGetTitleBarInfo.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&tbi)))
	return tbi.RgState[0]&stateSystemInvisible == 0
}

func isCloaked(hwnd win.HWND) bool {
	var cloaked uint32
	hr, _, _ := procDwmGetWindowAttribute.Call(
		uintptr(hwnd),
		dwmwaCloaked,
		uintptr(unsafe.Pointer(&cloaked)),
		unsafe.Sizeof(cloaked),
	)
	return hr == 0 && cloaked != 0
}

func windowText(hwnd win.HWND) string {
	l, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	length := int(l)
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf)
}

func fromRECT(rc win.RECT) model.Rect {
	return model.Rect{
		Left:   int(rc.Left),
		Top:    int(rc.Top),
		Right:  int(rc.Right),
		Bottom: int(rc.Bottom),
	}
}
