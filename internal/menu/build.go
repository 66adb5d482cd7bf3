package menu

import (
	"strings"

	"github.com/mj1618/winctl/internal/model"
)

func (t *Tree) build() *model.MenuChildren {
	root := model.NewMenuChildren()
	bar := t.MenuHandle()
	if bar == 0 {
		return root
	}
	origin, err := t.sys.WindowRect(t.hwnd)
	if err != nil {
		t.logger.Debugw("Failed to get window rect", "window", t.hwnd, "error", err)
		return root
	}

	t.fill(bar, root, origin, nil, make(map[model.MenuHandle]bool))
	t.logger.Debugw("Built menu tree", "window", t.hwnd, "items", root.Len())
	return root
}

// fill inserts the items of menu m depth-first. Submenus already on the
// current path are not entered again, so the result is always a tree.
func (t *Tree) fill(m model.MenuHandle, into *model.MenuChildren, origin model.Rect, parentRect *model.Rect, onPath map[model.MenuHandle]bool) {
	onPath[m] = true
	defer delete(onPath, m)

	count, err := t.sys.MenuItemCount(m)
	if err != nil {
		t.logger.Debugw("Failed to count menu items", "menu", m, "error", err)
		return
	}

	for i := 0; i < count; i++ {
		item, err := t.sys.MenuItemAt(m, i)
		if err != nil {
			t.logger.Debugw("Failed to read menu item", "menu", m, "position", i, "error", err)
			continue
		}
		if item.Text == "" && item.SubMenu == 0 && item.CommandID == 0 {
			continue
		}

		title, shortcut := splitLabel(item.Text)
		node := &model.MenuNode{
			Title:     title,
			Parent:    m,
			SubMenu:   item.SubMenu,
			CommandID: item.CommandID,
			Position:  i,
			Shortcut:  shortcut,
			Rect:      t.itemRect(m, i, origin, parentRect),
		}
		into.Add(node)

		if item.SubMenu != 0 && !onPath[item.SubMenu] {
			node.Children = model.NewMenuChildren()
			t.fill(item.SubMenu, node.Children, origin, node.Rect, onPath)
		}
	}
}

// itemRect returns the item's rectangle relative to the window. Flyout items
// take the left edge of the item that opened them.
func (t *Tree) itemRect(m model.MenuHandle, index int, origin model.Rect, parentRect *model.Rect) *model.Rect {
	abs, err := t.sys.MenuItemScreenRect(t.hwnd, m, index)
	if err != nil {
		t.logger.Debugw("Failed to get menu item rect", "menu", m, "position", index, "error", err)
		return nil
	}
	r := abs.RelativeTo(origin)
	if parentRect != nil {
		r.Left = parentRect.Left
	}
	return &r
}

// splitLabel separates "&Save\tCtrl+S" into ("Save", "Ctrl+S").
func splitLabel(text string) (title, shortcut string) {
	label, shortcut, _ := strings.Cut(text, "\t")
	title = mnemonics.Replace(label)
	if title == "" {
		title = model.SeparatorTitle
	}
	return title, shortcut
}
