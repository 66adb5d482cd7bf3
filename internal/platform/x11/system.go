//go:build linux

package x11

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/mitchellh/go-ps"
	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
)

const (
	stateRemove = 0
	stateAdd    = 1

	stateAbove  = "_NET_WM_STATE_ABOVE"
	stateHidden = "_NET_WM_STATE_HIDDEN"
)

// System implements platform.WindowSystem on top of an X11 connection.
type System struct {
	xu   *xgbutil.XUtil
	root xproto.Window
}

var _ platform.WindowSystem = (*System)(nil)

// NewSystem opens a connection to the X server named by $DISPLAY.
func NewSystem() (*System, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	return &System{xu: xu, root: xu.RootWin()}, nil
}

// Close disconnects from the X server.
func (s *System) Close() error {
	s.xu.Conn().Close()
	return nil
}

// TopLevelWindows returns managed, non-hidden, titled client windows.
// _NET_CLIENT_LIST_STACKING is bottom-to-top, so it is reversed.
func (s *System) TopLevelWindows() ([]platform.WindowRef, error) {
	clients, err := ewmh.ClientListStackingGet(s.xu)
	if err != nil {
		return nil, fmt.Errorf("failed to read client stacking list: %w", err)
	}

	refs := make([]platform.WindowRef, 0, len(clients))
	for i := len(clients) - 1; i >= 0; i-- {
		win := clients[i]
		if !s.isNormalWindow(win) || s.isHidden(win) || s.title(win) == "" {
			continue
		}
		pid := 0
		if p, err := ewmh.WmPidGet(s.xu, win); err == nil {
			pid = int(p)
		}
		refs = append(refs, platform.WindowRef{Handle: model.Handle(win), PID: pid})
	}
	return refs, nil
}

func (s *System) WindowTitle(h model.Handle) (string, error) {
	if !s.IsWindow(h) {
		return "", platform.ErrInvalidHandle
	}
	return s.title(xproto.Window(h)), nil
}

func (s *System) WindowRect(h model.Handle) (model.Rect, error) {
	win := xproto.Window(h)
	geom, err := xproto.GetGeometry(s.xu.Conn(), xproto.Drawable(win)).Reply()
	if err != nil {
		return model.Rect{}, fmt.Errorf("failed to get geometry of window %d: %w", win, err)
	}
	translate, err := xproto.TranslateCoordinates(s.xu.Conn(), win, s.root, 0, 0).Reply()
	if err != nil {
		return model.Rect{}, fmt.Errorf("failed to translate coordinates of window %d: %w", win, err)
	}
	x, y := int(translate.DstX), int(translate.DstY)
	return model.Rect{
		Left:   x,
		Top:    y,
		Right:  x + int(geom.Width),
		Bottom: y + int(geom.Height),
	}, nil
}

func (s *System) IsWindow(h model.Handle) bool {
	if h == 0 {
		return false
	}
	_, err := xproto.GetGeometry(s.xu.Conn(), xproto.Drawable(h)).Reply()
	return err == nil
}

func (s *System) ApplicationName(pid int) (string, error) {
	return processName(pid)
}

// SetZOrder restacks the window. Raise and lower are ConfigureWindow
// requests, which the window manager intercepts and applies to the frame;
// topmost is the EWMH "above" state.
func (s *System) SetZOrder(h model.Handle, z platform.ZOrder) error {
	win := xproto.Window(h)
	switch z {
	case platform.ZTop:
		return s.restack(win, xproto.StackModeAbove)
	case platform.ZBottom:
		return s.restack(win, xproto.StackModeBelow)
	case platform.ZTopMost:
		return ewmh.WmStateReq(s.xu, win, stateAdd, stateAbove)
	case platform.ZNotTopMost:
		return ewmh.WmStateReq(s.xu, win, stateRemove, stateAbove)
	default:
		return fmt.Errorf("unsupported z-order %v", z)
	}
}

func (s *System) MenuHandle(model.Handle) (model.MenuHandle, error) { return 0, nil }

func (s *System) MenuItemCount(model.MenuHandle) (int, error) { return 0, platform.ErrNoMenu }

func (s *System) MenuItemAt(model.MenuHandle, int) (platform.MenuItem, error) {
	return platform.MenuItem{}, platform.ErrNoMenu
}

func (s *System) MenuItemScreenRect(model.Handle, model.MenuHandle, int) (model.Rect, error) {
	return model.Rect{}, platform.ErrNoMenu
}

func (s *System) PostCommand(model.Handle, uint32) error { return platform.ErrNoMenu }

func (s *System) restack(win xproto.Window, mode byte) error {
	return xproto.ConfigureWindowChecked(
		s.xu.Conn(),
		win,
		xproto.ConfigWindowStackMode,
		[]uint32{uint32(mode)},
	).Check()
}

func (s *System) title(win xproto.Window) string {
	title, err := ewmh.WmNameGet(s.xu, win)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(s.xu, win)
	if err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

func (s *System) isHidden(win xproto.Window) bool {
	states, err := ewmh.WmStateGet(s.xu, win)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == stateHidden {
			return true
		}
	}
	return false
}

// isNormalWindow rejects desktops, docks, splash screens and notifications.
func (s *System) isNormalWindow(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(s.xu, win)
	if err != nil {
		return true
	}
	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}
	return len(types) == 0
}

func processName(pid int) (string, error) {
	if pid <= 0 {
		return "", fmt.Errorf("invalid pid %d", pid)
	}
	proc, err := ps.FindProcess(pid)
	if err != nil {
		return "", fmt.Errorf("failed to look up process %d: %w", pid, err)
	}
	if proc == nil {
		return "", fmt.Errorf("no process with pid %d", pid)
	}
	return filepath.Base(proc.Executable()), nil
}
