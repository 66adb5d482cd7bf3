// Package window wraps a single native window with the operations the CLI
// and server expose: title and geometry, stacking, and menu access.
package window

import (
	"sync"
	"time"

	"github.com/mj1618/winctl/internal/menu"
	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
	"github.com/mj1618/winctl/internal/watch"
	"go.uber.org/zap"
)

// Options configures a Window.
type Options struct {
	// PollInterval is the always-on-bottom poll interval. Zero selects
	// watch.DefaultInterval.
	PollInterval time.Duration
	Logger       *zap.SugaredLogger
}

// Window is a handle to one top-level window. It is safe for concurrent use.
type Window struct {
	sys    platform.WindowSystem
	hwnd   model.Handle
	logger *zap.SugaredLogger
	bottom *watch.BottomWatcher

	menuOnce sync.Once
	menu     *menu.Tree
}

// New wraps hwnd. No OS call is made until a method needs one.
func New(sys platform.WindowSystem, hwnd model.Handle, opts Options) *Window {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Window{
		sys:    sys,
		hwnd:   hwnd,
		logger: logger,
		bottom: watch.New(sys, hwnd, opts.PollInterval, logger),
	}
}

// Handle returns the native handle.
func (w *Window) Handle() model.Handle { return w.hwnd }

// Title returns the current title, or "" if the window is gone.
func (w *Window) Title() string {
	title, err := w.sys.WindowTitle(w.hwnd)
	if err != nil {
		w.logger.Debugw("Failed to get window title", "window", w.hwnd, "error", err)
		return ""
	}
	return title
}

// Rect returns the window's screen rectangle, or a zero rectangle.
func (w *Window) Rect() model.Rect {
	r, err := w.sys.WindowRect(w.hwnd)
	if err != nil {
		w.logger.Debugw("Failed to get window rect", "window", w.hwnd, "error", err)
		return model.Rect{}
	}
	return r
}

// AppName returns the executable name of the owning process, or "".
func (w *Window) AppName() string {
	refs, err := w.sys.TopLevelWindows()
	if err != nil {
		w.logger.Debugw("Failed to enumerate windows", "error", err)
		return ""
	}
	for _, ref := range refs {
		if ref.Handle != w.hwnd {
			continue
		}
		name, err := w.sys.ApplicationName(ref.PID)
		if err != nil {
			w.logger.Debugw("Failed to resolve application name", "pid", ref.PID, "error", err)
		}
		return name
	}
	return ""
}

// IsAlive reports whether the handle still refers to a window.
func (w *Window) IsAlive() bool { return w.sys.IsWindow(w.hwnd) }

// Raise brings the window to the top of the stacking order.
func (w *Window) Raise() bool { return w.setZOrder(platform.ZTop) }

// Lower sends the window to the bottom of the stacking order once.
func (w *Window) Lower() bool { return w.setZOrder(platform.ZBottom) }

// AlwaysOnTop pins the window above all non-topmost windows, or unpins it.
// Pinning stops any always-on-bottom loop.
func (w *Window) AlwaysOnTop(on bool) bool {
	if !on {
		return w.setZOrder(platform.ZNotTopMost)
	}
	w.bottom.Disable()
	return w.setZOrder(platform.ZTopMost)
}

// AlwaysOnBottom keeps the window at the bottom of the stacking order until
// turned off or the window closes.
func (w *Window) AlwaysOnBottom(on bool) bool {
	if !on {
		w.bottom.Disable()
		return true
	}
	if !w.setZOrder(platform.ZNotTopMost) || !w.setZOrder(platform.ZBottom) {
		return false
	}
	w.bottom.Enable()
	return true
}

// Bottom returns the always-on-bottom watcher.
func (w *Window) Bottom() *watch.BottomWatcher { return w.bottom }

// Menu returns the window's menu tree, created on first use.
func (w *Window) Menu() *menu.Tree {
	w.menuOnce.Do(func() {
		w.menu = menu.New(w.sys, w.hwnd, w.logger)
	})
	return w.menu
}

// Close stops background work. The native window is not affected.
func (w *Window) Close() {
	w.bottom.Disable()
}

func (w *Window) setZOrder(z platform.ZOrder) bool {
	if err := w.sys.SetZOrder(w.hwnd, z); err != nil {
		w.logger.Debugw("Failed to change z-order", "window", w.hwnd, "order", z.String(), "error", err)
		return false
	}
	return true
}
