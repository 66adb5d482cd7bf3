package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
	"github.com/mj1618/winctl/internal/platform/fake"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	editor   model.Handle = 0x10
	terminal model.Handle = 0x20
	browser  model.Handle = 0x30

	menuBar  model.MenuHandle = 1000
	fileMenu model.MenuHandle = 1100
)

func menuItem(text string, sub model.MenuHandle, id uint32, r model.Rect) fake.Item {
	return fake.Item{MenuItem: platform.MenuItem{Text: text, SubMenu: sub, CommandID: id}, Rect: r}
}

// useFakeDesktop points the commands at an in-memory desktop with three
// windows, front to back: an editor with a menu, a terminal and a browser.
func useFakeDesktop(t *testing.T) *fake.System {
	t.Helper()
	sys := fake.New()
	sys.AddWindow(fake.Window{Handle: editor, PID: 10, Title: "notes.txt - Editor", Rect: model.Rect{Left: 100, Top: 100, Right: 500, Bottom: 400}, Menu: menuBar})
	sys.AddWindow(fake.Window{Handle: terminal, PID: 20, Title: "bash", Rect: model.Rect{Left: 0, Top: 0, Right: 300, Bottom: 200}})
	sys.AddWindow(fake.Window{Handle: browser, PID: 30, Title: "Docs - Browser", Rect: model.Rect{Left: 0, Top: 0, Right: 1920, Bottom: 1080}})
	sys.SetApp(10, "editor.exe")
	sys.SetApp(20, "term.exe")
	sys.SetApp(30, "browser.exe")

	sys.SetMenu(menuBar,
		menuItem("&File", fileMenu, 0, model.Rect{Left: 110, Top: 130, Right: 150, Bottom: 150}),
		menuItem("&Help", 0, 90, model.Rect{Left: 150, Top: 130, Right: 190, Bottom: 150}),
	)
	sys.SetMenu(fileMenu,
		menuItem("&Open\tCtrl+O", 0, 1, model.Rect{Left: 112, Top: 150, Right: 300, Bottom: 170}),
		menuItem("&Save\tCtrl+S", 0, 2, model.Rect{Left: 112, Top: 170, Right: 300, Bottom: 190}),
	)

	prev := newProvider
	newProvider = func() (*platform.Provider, error) {
		return &platform.Provider{System: sys, Backend: "fake"}, nil
	}
	t.Cleanup(func() { newProvider = prev })
	return sys
}

// execute runs the root command with args against a throwaway config file
// and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfgFile := filepath.Join(t.TempDir(), "winctl.yaml")
	if err := os.WriteFile(cfgFile, []byte("poll_interval: 10ms\nlog_level: error\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", cfgFile}, args...))
	defer func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default so runs do not leak into
// each other.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestMatchFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"defaults", nil, false},
		{"regex", []string{"--condition", "match", "--regex-flags", "im"}, false},
		{"fuzzy", []string{"--condition", "diffratio", "--threshold", "70"}, false},
		{"unknown condition", []string{"--condition", "sounds-like"}, true},
		{"regex flags on contains", []string{"--regex-flags", "i"}, true},
		{"threshold on is", []string{"--condition", "is", "--threshold", "70"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &cobra.Command{Use: "test"}
			addMatchFlags(c)
			if err := c.ParseFlags(tt.args); err != nil {
				t.Fatal(err)
			}
			_, _, err := matchFlags(c)
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWindowSelection_Errors(t *testing.T) {
	useFakeDesktop(t)

	tests := []struct {
		name string
		args []string
	}{
		{"no selector", []string{"stack", "--position", "top"}},
		{"bad handle", []string{"stack", "--position", "top", "--handle", "nope"}},
		{"closed handle", []string{"stack", "--position", "top", "--handle", "0x99"}},
		{"no title match", []string{"stack", "--position", "top", "--title", "Spreadsheet"}},
		{"malformed regex", []string{"stack", "--position", "top", "--title", "([", "--condition", "match"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
