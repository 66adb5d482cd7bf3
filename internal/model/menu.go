package model

import (
	"encoding/json"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SeparatorTitle is the key used for menu items whose label is empty.
const SeparatorTitle = "separator"

// MenuNode is one item of a window's menu.
//
// A node carries a CommandID when it is a leaf action and Children when it
// opens a submenu. A bare separator has neither.
type MenuNode struct {
	Title     string        `yaml:"title"              json:"title"`
	Parent    MenuHandle    `yaml:"parent"             json:"parent"`
	SubMenu   MenuHandle    `yaml:"submenu,omitempty"  json:"submenu,omitempty"`
	CommandID uint32        `yaml:"id,omitempty"       json:"id,omitempty"`
	Position  int           `yaml:"position"           json:"position"`
	Shortcut  string        `yaml:"shortcut,omitempty" json:"shortcut,omitempty"`
	Rect      *Rect         `yaml:"rect,omitempty"     json:"rect,omitempty"`
	Children  *MenuChildren `yaml:"entries,omitempty"  json:"entries,omitempty"`
}

// IsSubMenu reports whether the node opens a submenu.
func (n *MenuNode) IsSubMenu() bool { return n != nil && n.SubMenu != 0 }

// MenuChildren is an insertion-ordered title -> node mapping.
// All methods are safe on a nil receiver, which behaves as an empty mapping.
type MenuChildren struct {
	m *orderedmap.OrderedMap[string, *MenuNode]
}

// NewMenuChildren returns an empty mapping.
func NewMenuChildren() *MenuChildren {
	return &MenuChildren{m: orderedmap.New[string, *MenuNode]()}
}

// Add inserts n keyed by its title. When the title is already taken the key
// gets a "#2", "#3", ... suffix and n.Title is updated to the key actually used.
func (c *MenuChildren) Add(n *MenuNode) string {
	key := n.Title
	for i := 2; ; i++ {
		if _, taken := c.m.Get(key); !taken {
			break
		}
		key = n.Title + "#" + strconv.Itoa(i)
	}
	n.Title = key
	c.m.Set(key, n)
	return key
}

// Get returns the child with the given title.
func (c *MenuChildren) Get(title string) (*MenuNode, bool) {
	if c == nil {
		return nil, false
	}
	return c.m.Get(title)
}

// Len returns the number of children.
func (c *MenuChildren) Len() int {
	if c == nil {
		return 0
	}
	return c.m.Len()
}

// IsZero lets yaml omitempty drop empty mappings.
func (c *MenuChildren) IsZero() bool { return c.Len() == 0 }

// Keys returns the titles in insertion order.
func (c *MenuChildren) Keys() []string {
	keys := make([]string, 0, c.Len())
	for _, n := range c.Nodes() {
		keys = append(keys, n.Title)
	}
	return keys
}

// Nodes returns the children in insertion order.
func (c *MenuChildren) Nodes() []*MenuNode {
	if c == nil {
		return nil
	}
	nodes := make([]*MenuNode, 0, c.m.Len())
	for pair := c.m.Oldest(); pair != nil; pair = pair.Next() {
		nodes = append(nodes, pair.Value)
	}
	return nodes
}

// Lookup walks path one title per level and returns the node it ends on.
func (c *MenuChildren) Lookup(path []string) (*MenuNode, bool) {
	if len(path) == 0 {
		return nil, false
	}
	level := c
	var node *MenuNode
	for _, title := range path {
		n, ok := level.Get(title)
		if !ok {
			return nil, false
		}
		node = n
		level = n.Children
	}
	return node, true
}

// FindSubMenu returns the node (at any depth) whose submenu handle is h.
func (c *MenuChildren) FindSubMenu(h MenuHandle) (*MenuNode, bool) {
	if h == 0 {
		return nil, false
	}
	for _, n := range c.Nodes() {
		if n.SubMenu == h {
			return n, true
		}
		if found, ok := n.Children.FindSubMenu(h); ok {
			return found, true
		}
	}
	return nil, false
}

// MarshalYAML renders the mapping as an ordered list of nodes.
func (c *MenuChildren) MarshalYAML() (interface{}, error) {
	return c.Nodes(), nil
}

// MarshalJSON renders the mapping as an ordered list of nodes.
func (c *MenuChildren) MarshalJSON() ([]byte, error) {
	nodes := c.Nodes()
	if nodes == nil {
		nodes = []*MenuNode{}
	}
	return json.Marshal(nodes)
}
