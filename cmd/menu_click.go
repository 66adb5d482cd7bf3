package cmd

import (
	"fmt"

	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/output"
	"github.com/spf13/cobra"
)

var menuClickCmd = &cobra.Command{
	Use:   "click",
	Short: "Invoke a menu command by path or command ID",
	Long: `Post a menu command to a window, as if the user had picked the item.

The command is posted without waiting for the application to handle it.
A path must end at a command item; submenu titles cannot be clicked.

Examples:
  winctl menu click --title "Notepad" --path "File > Save"
  winctl menu click --title "Notepad" --path "Edit>Select All"
  winctl menu click --handle 0x3012c --id 57603`,
	Args: cobra.NoArgs,
	RunE: runMenuClick,
}

func init() {
	menuCmd.AddCommand(menuClickCmd)
	menuClickCmd.Flags().String("path", "", "Menu path, titles separated by '>'")
	menuClickCmd.Flags().Uint32("id", 0, "Command ID to post directly")
	menuClickCmd.MarkFlagsOneRequired("path", "id")
	menuClickCmd.MarkFlagsMutuallyExclusive("path", "id")
	addWindowFlags(menuClickCmd)
}

func runMenuClick(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("path")
	id, _ := cmd.Flags().GetUint32("id")

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

	result := output.ActionResult{Action: "menu click", Window: w.Handle(), Title: w.Title()}
	tree := w.Menu()
	if path != "" {
		segments := model.SplitPath(path)
		if len(segments) == 0 {
			return fmt.Errorf("invalid menu path %q", path)
		}
		result.Path = path
		result.OK = tree.ClickPath(segments)
		if !result.OK {
			result.Message = "no command item at path"
		}
	} else {
		result.ID = id
		result.OK = tree.ClickID(id)
		if !result.OK {
			result.Message = "window has no menu or the command could not be posted"
		}
	}
	return printAction(cmd, result)
}
