package model

// FilterMenu returns a copy of the tree that keeps only the nodes for which
// keep returns true, together with their ancestors. Children of a kept node
// are themselves filtered, so a matching submenu does not drag its whole
// subtree along.
func FilterMenu(root *MenuChildren, keep func(*MenuNode) bool) *MenuChildren {
	result := NewMenuChildren()
	for _, n := range root.Nodes() {
		childMatches := FilterMenu(n.Children, keep)

		if keep(n) || childMatches.Len() > 0 {
			filtered := *n
			filtered.Children = nil
			if childMatches.Len() > 0 {
				filtered.Children = childMatches
			}
			result.Add(&filtered)
		}
	}
	return result
}

// WindowsAt returns the windows whose bounds contain the point (x, y),
// preserving the input order.
func WindowsAt(windows []Window, x, y int) []Window {
	var result []Window
	for _, w := range windows {
		if w.Bounds.Contains(x, y) {
			result = append(result, w)
		}
	}
	return result
}
