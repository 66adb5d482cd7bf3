package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mj1618/winctl/internal/output"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	expected := []string{"list", "find", "at", "stack", "bottom", "menu", "serve"}
	found := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestMenuCommand_HasSubcommands(t *testing.T) {
	expected := []string{"show", "click", "rect", "map"}
	found := make(map[string]bool)
	for _, c := range menuCmd.Commands() {
		found[c.Name()] = true
	}
	for _, name := range expected {
		if !found[name] {
			t.Errorf("expected menu subcommand %q not found", name)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	if rootCmd.Version == "" {
		t.Error("root command version should be set")
	}
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	for _, name := range []string{"format", "pretty", "config", "verbose"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}

func TestRootCommand_Format(t *testing.T) {
	useFakeDesktop(t)
	t.Cleanup(func() {
		output.OutputFormat = output.FormatYAML
		output.PrettyOutput = false
	})

	out, err := execute(t, "list", "--format", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var result struct {
		Windows []struct {
			Handle uint64 `json:"handle"`
			Title  string `json:"title"`
		} `json:"windows"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("expected JSON output: %v\n%s", err, out)
	}
	if len(result.Windows) != 3 || result.Windows[0].Handle != uint64(editor) {
		t.Errorf("unexpected windows: %+v", result.Windows)
	}

	out, err = execute(t, "list", "--format", "json", "--pretty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "\n  ") {
		t.Errorf("expected indented JSON, got %s", out)
	}

	if _, err := execute(t, "list", "--format", "xml"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestRootCommand_MissingConfig(t *testing.T) {
	useFakeDesktop(t)
	rootCmd.SetArgs([]string{"--config", "/nonexistent/winctl.yaml", "list"})
	defer func() {
		resetFlags(rootCmd)
		rootCmd.SetArgs(nil)
	}()
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error for a missing explicit config file")
	}
}
