//go:build windows

package win32

import (
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")
	dwmapi = windows.NewLazySystemDLL("dwmapi.dll")

	procEnumWindows          = user32.NewProc("EnumWindows")
	procIsWindow             = user32.NewProc("IsWindow")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetTitleBarInfo      = user32.NewProc("GetTitleBarInfo")
	procGetMenu              = user32.NewProc("GetMenu")
	procGetMenuItemRect      = user32.NewProc("GetMenuItemRect")

	procDwmGetWindowAttribute = dwmapi.NewProc("DwmGetWindowAttribute")
)

// isWindow wraps IsWindow, which lxn/win does not export.
func isWindow(hwnd win.HWND) bool {
	r, _, _ := procIsWindow.Call(uintptr(hwnd))
	return r != 0
}

const (
	dwmwaCloaked          = 14
	stateSystemInvisible  = 0x00008000
	titleBarInfoStateSize = 6
)
