// Package fake provides an in-memory platform.WindowSystem for tests.
package fake

import (
	"fmt"
	"sync"

	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
)

// Window describes one simulated top-level window.
type Window struct {
	Handle model.Handle
	PID    int
	Title  string
	Rect   model.Rect
	Menu   model.MenuHandle
}

// Item is one simulated menu entry together with its absolute screen rectangle.
type Item struct {
	platform.MenuItem
	Rect model.Rect
}

// ZCall records one SetZOrder request.
type ZCall struct {
	Handle model.Handle
	Order  platform.ZOrder
}

// Command records one PostCommand request.
type Command struct {
	Handle    model.Handle
	CommandID uint32
}

// System is a mutex-guarded, in-memory window system. The zero value is not
// usable; call New.
type System struct {
	mu sync.Mutex

	order   []model.Handle // top-most first
	windows map[model.Handle]*Window
	topmost map[model.Handle]bool
	apps    map[int]string
	menus   map[model.MenuHandle][]Item

	enumErr   error
	rectErrs  map[model.MenuHandle]error
	enumCalls int
	zCalls    []ZCall
	commands  []Command
}

var _ platform.WindowSystem = (*System)(nil)

// New returns an empty System.
func New() *System {
	return &System{
		windows:  make(map[model.Handle]*Window),
		topmost:  make(map[model.Handle]bool),
		apps:     make(map[int]string),
		menus:    make(map[model.MenuHandle][]Item),
		rectErrs: make(map[model.MenuHandle]error),
	}
}

// AddWindow appends w at the bottom of the z-order.
func (s *System) AddWindow(w Window) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := w
	s.windows[w.Handle] = &cp
	s.order = append(s.order, w.Handle)
}

// SetApp names the executable of pid.
func (s *System) SetApp(pid int, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps[pid] = name
}

// SetMenu stores the entries of menu m.
func (s *System) SetMenu(m model.MenuHandle, items ...Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menus[m] = items
}

// SetTitle changes the title of an existing window.
func (s *System) SetTitle(h model.Handle, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w, ok := s.windows[h]; ok {
		w.Title = title
	}
}

// Destroy removes a window, after which IsWindow reports false.
func (s *System) Destroy(h model.Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, h)
	delete(s.topmost, h)
	s.order = remove(s.order, h)
}

// SetEnumError makes TopLevelWindows fail with err until cleared with nil.
func (s *System) SetEnumError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enumErr = err
}

// SetRectError makes MenuItemScreenRect fail with err for every item of menu
// m, while MenuItemAt keeps working. A nil err clears it.
func (s *System) SetRectError(m model.MenuHandle, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.rectErrs, m)
		return
	}
	s.rectErrs[m] = err
}

// Order returns the current z-order, top-most first.
func (s *System) Order() []model.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Handle(nil), s.order...)
}

// EnumerationCount returns how many times TopLevelWindows was called.
func (s *System) EnumerationCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enumCalls
}

// ZCalls returns every SetZOrder request received so far.
func (s *System) ZCalls() []ZCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ZCall(nil), s.zCalls...)
}

// Commands returns every posted menu command so far.
func (s *System) Commands() []Command {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Command(nil), s.commands...)
}

// IsTopMost reports whether h was last placed with ZTopMost.
func (s *System) IsTopMost(h model.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.topmost[h]
}

func (s *System) TopLevelWindows() ([]platform.WindowRef, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enumCalls++
	if s.enumErr != nil {
		return nil, s.enumErr
	}
	refs := make([]platform.WindowRef, 0, len(s.order))
	for _, h := range s.order {
		w := s.windows[h]
		if w.Title == "" {
			continue
		}
		refs = append(refs, platform.WindowRef{Handle: h, PID: w.PID})
	}
	return refs, nil
}

func (s *System) WindowTitle(h model.Handle) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[h]
	if !ok {
		return "", platform.ErrInvalidHandle
	}
	return w.Title, nil
}

func (s *System) WindowRect(h model.Handle) (model.Rect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[h]
	if !ok {
		return model.Rect{}, platform.ErrInvalidHandle
	}
	return w.Rect, nil
}

func (s *System) IsWindow(h model.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.windows[h]
	return ok
}

func (s *System) ApplicationName(pid int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.apps[pid]
	if !ok {
		return "", fmt.Errorf("no process with pid %d", pid)
	}
	return name, nil
}

func (s *System) SetZOrder(h model.Handle, z platform.ZOrder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.windows[h]; !ok {
		return platform.ErrInvalidHandle
	}
	s.zCalls = append(s.zCalls, ZCall{Handle: h, Order: z})
	switch z {
	case platform.ZBottom:
		s.order = append(remove(s.order, h), h)
	case platform.ZTop:
		s.order = append([]model.Handle{h}, remove(s.order, h)...)
	case platform.ZTopMost:
		s.topmost[h] = true
		s.order = append([]model.Handle{h}, remove(s.order, h)...)
	case platform.ZNotTopMost:
		delete(s.topmost, h)
	}
	return nil
}

func (s *System) MenuHandle(h model.Handle) (model.MenuHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.windows[h]
	if !ok {
		return 0, platform.ErrInvalidHandle
	}
	return w.Menu, nil
}

func (s *System) MenuItemCount(m model.MenuHandle) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.menus[m]
	if !ok {
		return 0, fmt.Errorf("unknown menu %#x", uintptr(m))
	}
	return len(items), nil
}

func (s *System) MenuItemAt(m model.MenuHandle, index int) (platform.MenuItem, error) {
	item, err := s.item(m, index)
	return item.MenuItem, err
}

func (s *System) MenuItemScreenRect(h model.Handle, m model.MenuHandle, index int) (model.Rect, error) {
	s.mu.Lock()
	rectErr := s.rectErrs[m]
	s.mu.Unlock()
	if rectErr != nil {
		return model.Rect{}, rectErr
	}
	item, err := s.item(m, index)
	return item.Rect, err
}

func (s *System) PostCommand(h model.Handle, commandID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.windows[h]; !ok {
		return platform.ErrInvalidHandle
	}
	s.commands = append(s.commands, Command{Handle: h, CommandID: commandID})
	return nil
}

func (s *System) item(m model.MenuHandle, index int) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, ok := s.menus[m]
	if !ok {
		return Item{}, fmt.Errorf("unknown menu %#x", uintptr(m))
	}
	if index < 0 || index >= len(items) {
		return Item{}, fmt.Errorf("menu %#x: index %d out of range", uintptr(m), index)
	}
	return items[index], nil
}

func remove(hs []model.Handle, h model.Handle) []model.Handle {
	out := make([]model.Handle, 0, len(hs))
	for _, x := range hs {
		if x != h {
			out = append(out, x)
		}
	}
	return out
}
