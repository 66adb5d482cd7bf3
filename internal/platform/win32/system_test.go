//go:build windows

package win32

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/lxn/win"
	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
	"golang.org/x/sys/windows"
)

const bogus model.Handle = 0x7ffffff0

func TestIsWindow(t *testing.T) {
	s := NewSystem()
	if s.IsWindow(0) {
		t.Error("handle 0 should not be a window")
	}
	if s.IsWindow(bogus) {
		t.Error("bogus handle should not be a window")
	}
	if !s.IsWindow(model.Handle(win.GetDesktopWindow())) {
		t.Error("desktop window should be a window")
	}
}

func TestInvalidHandle(t *testing.T) {
	s := NewSystem()
	if _, err := s.WindowTitle(bogus); !errors.Is(err, platform.ErrInvalidHandle) {
		t.Errorf("WindowTitle err = %v, want ErrInvalidHandle", err)
	}
	if _, err := s.MenuHandle(bogus); !errors.Is(err, platform.ErrInvalidHandle) {
		t.Errorf("MenuHandle err = %v, want ErrInvalidHandle", err)
	}
}

func TestMenuItems(t *testing.T) {
	m := win.CreatePopupMenu()
	if m == 0 {
		t.Fatal("CreatePopupMenu failed")
	}
	defer win.DestroyMenu(m)

	for i, label := range []string{"&Open\tCtrl+O", "&Save"} {
		text, err := windows.UTF16PtrFromString(label)
		if err != nil {
			t.Fatal(err)
		}
		mii := win.MENUITEMINFO{
			FMask:      win.MIIM_STRING | win.MIIM_ID,
			WID:        uint32(i + 1),
			DwTypeData: text,
		}
		mii.CbSize = uint32(unsafe.Sizeof(mii))
		if !win.InsertMenuItem(m, uint32(i), true, &mii) {
			t.Fatalf("InsertMenuItem %q failed", label)
		}
	}

	s := NewSystem()
	n, err := s.MenuItemCount(model.MenuHandle(m))
	if err != nil || n != 2 {
		t.Fatalf("MenuItemCount = %d, %v; want 2", n, err)
	}

	item, err := s.MenuItemAt(model.MenuHandle(m), 0)
	if err != nil {
		t.Fatalf("MenuItemAt: %v", err)
	}
	if item.Text != "&Open\tCtrl+O" || item.CommandID != 1 || item.SubMenu != 0 {
		t.Errorf("item 0 = %+v", item)
	}

	if _, err := s.MenuItemAt(model.MenuHandle(m), 5); err == nil {
		t.Error("expected error for a position past the end")
	}
	if _, err := s.MenuItemCount(model.MenuHandle(bogus)); err == nil {
		t.Error("expected error for a bogus menu handle")
	}
}
