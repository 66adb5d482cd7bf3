package window

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
	"github.com/mj1618/winctl/internal/platform/fake"
)

func newDesktop() *fake.System {
	sys := fake.New()
	sys.AddWindow(fake.Window{Handle: 1, PID: 10, Title: "Notes", Rect: model.Rect{Left: 1, Top: 2, Right: 3, Bottom: 4}, Menu: 500})
	sys.AddWindow(fake.Window{Handle: 2, PID: 20, Title: "Browser"})
	sys.SetApp(10, "notes.exe")
	sys.SetMenu(500, fake.Item{MenuItem: platform.MenuItem{Text: "&Quit", CommandID: 9}})
	return sys
}

func TestWindow_Attributes(t *testing.T) {
	w := New(newDesktop(), 1, Options{})
	if w.Title() != "Notes" {
		t.Errorf("Title = %q", w.Title())
	}
	if w.Rect() != (model.Rect{Left: 1, Top: 2, Right: 3, Bottom: 4}) {
		t.Errorf("Rect = %+v", w.Rect())
	}
	if w.AppName() != "notes.exe" {
		t.Errorf("AppName = %q", w.AppName())
	}
	if !w.IsAlive() || w.Handle() != 1 {
		t.Error("window should be alive")
	}
}

func TestWindow_Gone(t *testing.T) {
	sys := newDesktop()
	w := New(sys, 1, Options{})
	sys.Destroy(1)
	if w.IsAlive() || w.Title() != "" || !w.Rect().IsZero() || w.AppName() != "" {
		t.Error("a closed window should report empty values")
	}
	if w.Raise() || w.Lower() {
		t.Error("stacking a closed window should fail")
	}
}

func TestWindow_RaiseLower(t *testing.T) {
	sys := newDesktop()
	w := New(sys, 1, Options{})
	if !w.Lower() {
		t.Fatal("Lower failed")
	}
	if got := sys.Order(); !reflect.DeepEqual(got, []model.Handle{2, 1}) {
		t.Errorf("order after Lower = %v", got)
	}
	if !w.Raise() {
		t.Fatal("Raise failed")
	}
	if got := sys.Order(); !reflect.DeepEqual(got, []model.Handle{1, 2}) {
		t.Errorf("order after Raise = %v", got)
	}
}

func TestWindow_AlwaysOnBottom(t *testing.T) {
	sys := newDesktop()
	w := New(sys, 1, Options{PollInterval: time.Hour})
	defer w.Close()

	if !w.AlwaysOnBottom(true) {
		t.Fatal("AlwaysOnBottom(true) failed")
	}
	if !w.Bottom().Running() {
		t.Error("bottom watcher should be running")
	}
	if got := sys.Order(); got[len(got)-1] != 1 {
		t.Errorf("window should be last, order = %v", got)
	}

	w.AlwaysOnBottom(false)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := w.Bottom().Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if w.Bottom().Running() {
		t.Error("bottom watcher should be stopped")
	}
}

func TestWindow_AlwaysOnTopStopsBottom(t *testing.T) {
	sys := newDesktop()
	w := New(sys, 1, Options{PollInterval: time.Hour})
	defer w.Close()

	w.AlwaysOnBottom(true)
	if !w.AlwaysOnTop(true) {
		t.Fatal("AlwaysOnTop(true) failed")
	}
	if !sys.IsTopMost(1) {
		t.Error("window should be topmost")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := w.Bottom().Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if w.Bottom().Running() {
		t.Error("always-on-top must stop the bottom watcher")
	}

	w.AlwaysOnTop(false)
	if sys.IsTopMost(1) {
		t.Error("window should no longer be topmost")
	}
}

func TestWindow_Menu(t *testing.T) {
	sys := newDesktop()
	w := New(sys, 1, Options{})
	if w.Menu() != w.Menu() {
		t.Error("Menu should return the same tree")
	}
	if !w.Menu().ClickPath([]string{"Quit"}) {
		t.Fatal("ClickPath(Quit) failed")
	}
	want := []fake.Command{{Handle: 1, CommandID: 9}}
	if got := sys.Commands(); !reflect.DeepEqual(got, want) {
		t.Errorf("commands = %v, want %v", got, want)
	}
}
