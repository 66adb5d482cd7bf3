// Package query finds windows and applications by title or name.
package query

import (
	"github.com/mj1618/winctl/internal/match"
	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
	"go.uber.org/zap"
)

// Engine enumerates windows through a platform.Enumerator and filters them
// with the match package. Every call enumerates afresh; nothing is cached.
type Engine struct {
	sys    platform.Enumerator
	logger *zap.SugaredLogger
}

// New returns an Engine. A nil logger disables logging.
func New(sys platform.Enumerator, logger *zap.SugaredLogger) *Engine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Engine{sys: sys, logger: logger.Named("query")}
}

// Windows returns every visible top-level window, front to back.
// Enumeration failures yield an empty result.
func (e *Engine) Windows() []model.Window {
	refs, err := e.sys.TopLevelWindows()
	if err != nil {
		e.logger.Debugw("Failed to enumerate windows", "error", err)
		return nil
	}

	apps := make(map[int]string)
	windows := make([]model.Window, 0, len(refs))
	for _, ref := range refs {
		title, err := e.sys.WindowTitle(ref.Handle)
		if err != nil {
			e.logger.Debugw("Skipping window without title", "handle", ref.Handle, "error", err)
			continue
		}
		rect, err := e.sys.WindowRect(ref.Handle)
		if err != nil {
			e.logger.Debugw("Failed to get window rect", "handle", ref.Handle, "error", err)
		}
		windows = append(windows, model.Window{
			Handle:   ref.Handle,
			PID:      ref.PID,
			App:      e.appName(apps, ref.PID),
			Title:    title,
			Position: len(windows),
			Bounds:   rect,
		})
	}
	return windows
}

// Titles returns the titles of all visible windows, front to back.
func (e *Engine) Titles() []string {
	windows := e.Windows()
	titles := make([]string, 0, len(windows))
	for _, w := range windows {
		titles = append(titles, w.Title)
	}
	return titles
}

// FindByTitle returns the windows whose title matches pattern, in
// enumeration order. When apps is non-empty, the window's application name
// must also be one of them. An empty pattern is "no query" and returns
// nothing; windows with empty titles never match. Only a malformed regular
// expression produces an error.
func (e *Engine) FindByTitle(pattern string, cond match.Condition, flags match.Flags, apps []string) ([]model.Window, error) {
	m, err := match.Compile(pattern, cond, flags)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return nil, nil
	}

	allowed := make(map[string]bool, len(apps))
	for _, a := range apps {
		allowed[a] = true
	}

	var result []model.Window
	for _, w := range e.Windows() {
		if w.Title == "" || !m.Match(w.Title) {
			continue
		}
		if len(allowed) > 0 && !allowed[w.App] {
			continue
		}
		result = append(result, w)
	}
	return result, nil
}

// AppNames returns the distinct application names owning visible windows,
// in the order they are first seen front to back.
func (e *Engine) AppNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, w := range e.Windows() {
		if w.App == "" || seen[w.App] {
			continue
		}
		seen[w.App] = true
		names = append(names, w.App)
	}
	return names
}

// FindAppsByName applies the same matching rules as FindByTitle to the
// distinct application names.
func (e *Engine) FindAppsByName(pattern string, cond match.Condition, flags match.Flags) ([]string, error) {
	m, err := match.Compile(pattern, cond, flags)
	if err != nil {
		return nil, err
	}
	if pattern == "" {
		return nil, nil
	}

	var result []string
	for _, name := range e.AppNames() {
		if m.Match(name) {
			result = append(result, name)
		}
	}
	return result, nil
}

// AppsWindowsTitles groups window titles by application, preserving the
// first-seen order of applications and the front-to-back order of titles.
func (e *Engine) AppsWindowsTitles() []model.AppWindows {
	var result []model.AppWindows
	index := make(map[string]int)
	for _, w := range e.Windows() {
		i, ok := index[w.App]
		if !ok {
			i = len(result)
			index[w.App] = i
			result = append(result, model.AppWindows{App: w.App})
		}
		result[i].Titles = append(result[i].Titles, w.Title)
	}
	return result
}

// WindowsAt returns the windows containing the screen point, front to back.
func (e *Engine) WindowsAt(x, y int) []model.Window {
	return model.WindowsAt(e.Windows(), x, y)
}

// TopWindowAt returns the front-most window containing the point.
func (e *Engine) TopWindowAt(x, y int) (model.Window, bool) {
	windows := e.WindowsAt(x, y)
	if len(windows) == 0 {
		return model.Window{}, false
	}
	return windows[0], true
}

// First returns the first window matching pattern, front to back.
func (e *Engine) First(pattern string, cond match.Condition, flags match.Flags) (model.Window, bool, error) {
	windows, err := e.FindByTitle(pattern, cond, flags, nil)
	if err != nil || len(windows) == 0 {
		return model.Window{}, false, err
	}
	return windows[0], true, nil
}

func (e *Engine) appName(cache map[int]string, pid int) string {
	if name, ok := cache[pid]; ok {
		return name
	}
	name, err := e.sys.ApplicationName(pid)
	if err != nil {
		e.logger.Debugw("Failed to resolve application name", "pid", pid, "error", err)
	}
	cache[pid] = name
	return name
}
