package platform

import "github.com/mj1618/winctl/internal/model"

// Enumerator lists top-level windows and reads their basic attributes.
type Enumerator interface {
	// TopLevelWindows returns the visible, non-cloaked, titled top-level
	// windows ordered top-most first.
	TopLevelWindows() ([]WindowRef, error)

	WindowTitle(h model.Handle) (string, error)
	WindowRect(h model.Handle) (model.Rect, error)

	// IsWindow reports whether h still refers to a live window.
	IsWindow(h model.Handle) bool

	// ApplicationName returns the executable name of the process, e.g. "notepad.exe".
	ApplicationName(pid int) (string, error)
}

// Stacker changes a window's position in the z-order.
type Stacker interface {
	SetZOrder(h model.Handle, z ZOrder) error
}

// MenuReader reads a window's native menu bar.
type MenuReader interface {
	// MenuHandle returns the window's menu bar, or 0 when it has none.
	MenuHandle(h model.Handle) (model.MenuHandle, error)
	MenuItemCount(m model.MenuHandle) (int, error)
	MenuItemAt(m model.MenuHandle, index int) (MenuItem, error)

	// MenuItemScreenRect returns the absolute screen rectangle of the item
	// at index within m, as displayed for window h.
	MenuItemScreenRect(h model.Handle, m model.MenuHandle, index int) (model.Rect, error)
}

// Commander delivers menu commands to a window.
type Commander interface {
	// PostCommand queues the command for the window without waiting for it
	// to be handled.
	PostCommand(h model.Handle, commandID uint32) error
}

// WindowSystem is everything the query, menu and watch packages need from
// the native window manager.
type WindowSystem interface {
	Enumerator
	Stacker
	MenuReader
	Commander
}
