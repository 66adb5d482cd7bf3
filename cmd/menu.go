package cmd

import (
	"time"

	"github.com/mj1618/winctl/internal/match"
	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/output"
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Read and invoke a window's native menu",
	Long: `Read a window's menu bar into a tree of titles and invoke its commands.

Menu titles have their mnemonic markers removed ("&File" becomes "File") and
keyboard shortcuts split into a separate field. Empty labels are named
"separator"; repeated titles under one parent get a "#2", "#3"... suffix.
Item rectangles are relative to the window's top-left corner.

Only windows with a native menu bar (Win32) have menus; on other backends the
tree is empty.`,
}

var menuShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a window's menu tree",
	Long: `Print a window's menu tree.

Examples:
  winctl menu show --title "Notepad"
  winctl menu show --title "Notepad" --flat
  winctl menu show --handle 0x3012c --filter "save"`,
	Args: cobra.NoArgs,
	RunE: runMenuShow,
}

func init() {
	rootCmd.AddCommand(menuCmd)
	menuCmd.AddCommand(menuShowCmd)
	menuShowCmd.Flags().Bool("flat", false, "Print 'File > Save' paths instead of a tree")
	menuShowCmd.Flags().String("filter", "", "Only items whose title contains this text (case-insensitive), with their ancestors")
	addWindowFlags(menuShowCmd)
}

func runMenuShow(cmd *cobra.Command, args []string) error {
	flat, _ := cmd.Flags().GetBool("flat")
	filter, _ := cmd.Flags().GetString("filter")

	provider, q, err := openProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown()

	w, err := selectWindow(cmd, provider, q)
	if err != nil {
		return err
	}
	defer w.Close()

	tree := w.Menu()
	root := tree.Build()
	if filter != "" {
		m := match.MustCompile(filter, match.Contains, match.IgnoreCase)
		root = model.FilterMenu(root, func(n *model.MenuNode) bool { return m.Match(n.Title) })
	}

	ts := time.Now().UnixMilli()
	if flat {
		items := model.FlattenMenu(root)
		if items == nil {
			items = []model.FlatMenuItem{}
		}
		return printResult(cmd, output.MenuFlatResult{Window: w.Handle(), Title: w.Title(), TS: ts, Items: items})
	}
	return printResult(cmd, output.MenuResult{
		Window:  w.Handle(),
		Title:   w.Title(),
		Menu:    tree.MenuHandle(),
		TS:      ts,
		Entries: root,
	})
}
