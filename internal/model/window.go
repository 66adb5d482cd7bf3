package model

// Handle is an opaque native window handle.
type Handle uintptr

// MenuHandle is an opaque native menu or submenu handle. Zero means "no menu".
type MenuHandle uintptr

// Window represents a top-level window as reported by the window system.
// Records are produced fresh for every query and are never cached.
type Window struct {
	Handle   Handle `yaml:"handle"            json:"handle"`
	PID      int    `yaml:"pid"               json:"pid"`
	App      string `yaml:"app"               json:"app"`
	Title    string `yaml:"title"             json:"title"`
	Position int    `yaml:"position"          json:"position"`
	Bounds   Rect   `yaml:"bounds"            json:"bounds"`
}

// AppWindows groups the titles of every visible window of one application.
type AppWindows struct {
	App    string   `yaml:"app"    json:"app"`
	Titles []string `yaml:"titles" json:"titles"`
}
