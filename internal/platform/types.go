package platform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mj1618/winctl/internal/model"
)

// ZOrder is a z-order placement request.
type ZOrder int

const (
	ZTop ZOrder = iota
	ZBottom
	ZTopMost
	ZNotTopMost
)

var zOrderNames = [...]string{"top", "bottom", "topmost", "notopmost"}

func (z ZOrder) String() string {
	if z < 0 || int(z) >= len(zOrderNames) {
		return fmt.Sprintf("zorder(%d)", int(z))
	}
	return zOrderNames[z]
}

// ParseZOrder converts a string flag value to ZOrder.
func ParseZOrder(s string) (ZOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top", "raise":
		return ZTop, nil
	case "bottom", "lower":
		return ZBottom, nil
	case "topmost", "always-on-top":
		return ZTopMost, nil
	case "notopmost", "not-topmost":
		return ZNotTopMost, nil
	default:
		return ZTop, fmt.Errorf("unknown z-order: %q (expected top, bottom, topmost, or notopmost)", s)
	}
}

// ParseHandle parses a window handle given in decimal or as 0x-prefixed hex.
func ParseHandle(s string) (model.Handle, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid handle %q: empty", s)
	}
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid handle %q: %w", s, err)
	}
	if v == 0 {
		return 0, fmt.Errorf("invalid handle %q: must be non-zero", s)
	}
	return model.Handle(v), nil
}

// WindowRef is the minimum a backend reports per enumerated window.
type WindowRef struct {
	Handle model.Handle
	PID    int
}

// MenuItem is the raw information a backend reports for one menu entry.
type MenuItem struct {
	// Text is the raw label, which may contain '&' mnemonics and a
	// tab-separated shortcut.
	Text      string
	SubMenu   model.MenuHandle
	CommandID uint32
}
