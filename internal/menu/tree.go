// Package menu reads a window's native menu bar into a title-addressed tree
// and drives it by path or command ID.
//
// All operations are best-effort. A window without a menu, a window that
// has gone away, or a failing OS call yields an empty tree, false, or a zero
// rectangle instead of an error.
package menu

import (
	"strings"
	"sync"

	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
	"go.uber.org/zap"
)

var mnemonics = strings.NewReplacer("&&", "&", "&", "")

// Tree is the menu of one window. The tree is built on first use and only
// rebuilt by an explicit Build.
type Tree struct {
	sys    platform.WindowSystem
	hwnd   model.Handle
	logger *zap.SugaredLogger

	mu   sync.Mutex
	root *model.MenuChildren
}

// New returns an unbuilt tree for the window. A nil logger disables logging.
func New(sys platform.WindowSystem, hwnd model.Handle, logger *zap.SugaredLogger) *Tree {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Tree{sys: sys, hwnd: hwnd, logger: logger.Named("menu")}
}

// Window returns the handle of the window that owns the menu.
func (t *Tree) Window() model.Handle { return t.hwnd }

// MenuHandle returns the window's current menu bar handle, or 0.
func (t *Tree) MenuHandle() model.MenuHandle {
	h, err := t.sys.MenuHandle(t.hwnd)
	if err != nil {
		t.logger.Debugw("Failed to get menu handle", "window", t.hwnd, "error", err)
		return 0
	}
	return h
}

// Build reads the whole menu from the OS, replacing any cached tree.
func (t *Tree) Build() *model.MenuChildren {
	root := t.build()
	t.mu.Lock()
	t.root = root
	t.mu.Unlock()
	return root
}

// Root returns the cached tree, building it on first use.
func (t *Tree) Root() *model.MenuChildren {
	t.mu.Lock()
	root := t.root
	t.mu.Unlock()
	if root != nil {
		return root
	}
	return t.Build()
}

// Lookup resolves a path of titles against the cached tree.
func (t *Tree) Lookup(path []string) (*model.MenuNode, bool) {
	return t.Root().Lookup(path)
}

// ClickPath posts the command of the item at path. It reports whether a
// resolvable command was dispatched, not whether the application acted on it.
// Nothing is posted when any segment is missing or the item opens a submenu.
func (t *Tree) ClickPath(path []string) bool {
	if t.MenuHandle() == 0 {
		return false
	}
	node, ok := t.Lookup(path)
	if !ok || node.IsSubMenu() || node.CommandID == 0 {
		return false
	}
	return t.post(node.CommandID)
}

// ClickID posts a command ID directly, without consulting the tree.
func (t *Tree) ClickID(id uint32) bool {
	if id == 0 || t.MenuHandle() == 0 {
		return false
	}
	return t.post(id)
}

// ItemCount returns the number of items in a submenu, or in the menu bar
// when sub is 0.
func (t *Tree) ItemCount(sub model.MenuHandle) int {
	if sub == 0 {
		sub = t.MenuHandle()
		if sub == 0 {
			return 0
		}
	}
	n, err := t.sys.MenuItemCount(sub)
	if err != nil {
		t.logger.Debugw("Failed to count menu items", "menu", sub, "error", err)
		return 0
	}
	return n
}

// ItemRect returns the live screen rectangle of the item with the given
// command ID inside submenu sub (the menu bar when sub is 0 or the bar's own
// handle). The item is located in the cached tree and re-queried at its
// recorded position. A zero rectangle means the ID is 0 or unknown, the
// submenu is unknown, or the menu has shrunk since the tree was built.
func (t *Tree) ItemRect(sub model.MenuHandle, id uint32) model.Rect {
	bar := t.MenuHandle()
	if bar == 0 || id == 0 {
		return model.Rect{}
	}
	if sub == 0 {
		sub = bar
	}

	var items *model.MenuChildren
	if sub == bar {
		items = t.Root()
	} else {
		node, ok := t.Root().FindSubMenu(sub)
		if !ok {
			return model.Rect{}
		}
		items = node.Children
	}

	pos := -1
	for _, n := range items.Nodes() {
		if n.CommandID == id {
			pos = n.Position
			break
		}
	}
	if pos < 0 || pos >= t.ItemCount(sub) {
		return model.Rect{}
	}

	r, err := t.sys.MenuItemScreenRect(t.hwnd, sub, pos)
	if err != nil {
		t.logger.Debugw("Failed to get menu item rect", "menu", sub, "position", pos, "error", err)
		return model.Rect{}
	}
	return r
}

func (t *Tree) post(id uint32) bool {
	if err := t.sys.PostCommand(t.hwnd, id); err != nil {
		t.logger.Debugw("Failed to post menu command", "window", t.hwnd, "id", id, "error", err)
		return false
	}
	t.logger.Debugw("Posted menu command", "window", t.hwnd, "id", id)
	return true
}
