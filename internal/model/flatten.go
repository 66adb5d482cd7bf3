package model

import "strings"

// PathSeparator joins menu titles in flattened paths.
const PathSeparator = " > "

// FlatMenuItem is a menu item with a path breadcrumb instead of children.
type FlatMenuItem struct {
	Path      string     `yaml:"path"               json:"path"`
	Title     string     `yaml:"title"              json:"title"`
	CommandID uint32     `yaml:"id,omitempty"       json:"id,omitempty"`
	SubMenu   MenuHandle `yaml:"submenu,omitempty"  json:"submenu,omitempty"`
	Shortcut  string     `yaml:"shortcut,omitempty" json:"shortcut,omitempty"`
	Rect      *Rect      `yaml:"rect,omitempty"     json:"rect,omitempty"`
}

// FlattenMenu converts a menu tree into a flat list in depth-first order.
// Each item gets a path string showing its location in the tree using
// titles joined with " > ".
func FlattenMenu(root *MenuChildren) []FlatMenuItem {
	var result []FlatMenuItem
	for _, n := range root.Nodes() {
		flattenRecursive(n, "", &result)
	}
	return result
}

func flattenRecursive(n *MenuNode, parentPath string, result *[]FlatMenuItem) {
	currentPath := n.Title
	if parentPath != "" {
		currentPath = parentPath + PathSeparator + n.Title
	}

	*result = append(*result, FlatMenuItem{
		Path:      currentPath,
		Title:     n.Title,
		CommandID: n.CommandID,
		SubMenu:   n.SubMenu,
		Shortcut:  n.Shortcut,
		Rect:      n.Rect,
	})

	for _, child := range n.Children.Nodes() {
		flattenRecursive(child, currentPath, result)
	}
}

// SplitPath parses a "File > Save" style path into its titles.
// Both ">" and " > " separate segments; blank segments are dropped.
func SplitPath(s string) []string {
	var path []string
	for _, part := range strings.Split(s, ">") {
		part = strings.TrimSpace(part)
		if part != "" {
			path = append(path, part)
		}
	}
	return path
}
