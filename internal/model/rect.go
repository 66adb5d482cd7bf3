package model

// Rect is a rectangle given by its edges, in screen or window-relative coordinates.
type Rect struct {
	Left   int `yaml:"left"   json:"left"`
	Top    int `yaml:"top"    json:"top"`
	Right  int `yaml:"right"  json:"right"`
	Bottom int `yaml:"bottom" json:"bottom"`
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() int { return r.Bottom - r.Top }

// IsZero reports whether r is the zero rectangle.
func (r Rect) IsZero() bool { return r == Rect{} }

// Contains reports whether the point (x, y) lies inside r.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// RelativeTo expresses r relative to the top-left corner of origin.
func (r Rect) RelativeTo(origin Rect) Rect {
	return Rect{
		Left:   r.Left - origin.Left,
		Top:    r.Top - origin.Top,
		Right:  r.Right - origin.Left,
		Bottom: r.Bottom - origin.Top,
	}
}

// Intersects checks if two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && r.Right > o.Left && r.Top < o.Bottom && r.Bottom > o.Top
}
