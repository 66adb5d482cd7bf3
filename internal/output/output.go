package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mj1618/winctl/internal/model"
	"gopkg.in/yaml.v3"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// ParseFormat converts a --format flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatYAML:
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (use yaml or json)", s)
	}
}

// WindowsResult is the output of the `list`, `find` and `at` commands.
type WindowsResult struct {
	TS      int64          `yaml:"ts"      json:"ts"`
	Windows []model.Window `yaml:"windows" json:"windows"`
}

// AppsResult is the output of `list --apps` and `find --apps-only`.
type AppsResult struct {
	TS   int64    `yaml:"ts"   json:"ts"`
	Apps []string `yaml:"apps" json:"apps"`
}

// MenuResult is the output of `menu show`.
type MenuResult struct {
	Window  model.Handle        `yaml:"window"            json:"window"`
	Title   string              `yaml:"title,omitempty"   json:"title,omitempty"`
	Menu    model.MenuHandle    `yaml:"menu"              json:"menu"`
	TS      int64               `yaml:"ts"                json:"ts"`
	Entries *model.MenuChildren `yaml:"entries,omitempty" json:"entries,omitempty"`
}

// MenuFlatResult is the output of `menu show --flat`.
type MenuFlatResult struct {
	Window model.Handle         `yaml:"window"          json:"window"`
	Title  string               `yaml:"title,omitempty" json:"title,omitempty"`
	TS     int64                `yaml:"ts"              json:"ts"`
	Items  []model.FlatMenuItem `yaml:"items"           json:"items"`
}

// ActionResult reports the outcome of a command that changes something.
type ActionResult struct {
	OK      bool         `yaml:"ok"                json:"ok"`
	Action  string       `yaml:"action"            json:"action"`
	Window  model.Handle `yaml:"window,omitempty"  json:"window,omitempty"`
	Title   string       `yaml:"title,omitempty"   json:"title,omitempty"`
	Path    string       `yaml:"path,omitempty"    json:"path,omitempty"`
	ID      uint32       `yaml:"id,omitempty"      json:"id,omitempty"`
	Rect    *model.Rect  `yaml:"rect,omitempty"    json:"rect,omitempty"`
	Message string       `yaml:"message,omitempty" json:"message,omitempty"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return writeJSON(w, v, PrettyOutput)
	case FormatYAML:
		return writeYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// PrintJSON serializes v to stdout as compact single-line JSON.
func PrintJSON(v interface{}) error {
	return writeJSON(os.Stdout, v, false)
}

// PrintPrettyJSON serializes v to stdout as indented JSON.
func PrintPrettyJSON(v interface{}) error {
	return writeJSON(os.Stdout, v, true)
}

// PrintYAML serializes v to stdout as YAML.
func PrintYAML(v interface{}) error {
	return writeYAML(os.Stdout, v)
}

// YAMLString renders v as a YAML document.
func YAMLString(v interface{}) (string, error) {
	var b strings.Builder
	if err := writeYAML(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}
