package cmd

import (
	"fmt"

	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/output"
	"github.com/mj1618/winctl/internal/platform"
	"github.com/spf13/cobra"
)

var menuRectCmd = &cobra.Command{
	Use:   "rect",
	Short: "Print the live screen rectangle of a menu item",
	Long: `Print the current screen rectangle of the item with command ID --id in
submenu --submenu (the menu bar when omitted). Submenu handles are listed by
'winctl menu show'.

Examples:
  winctl menu rect --title "Notepad" --id 2
  winctl menu rect --title "Notepad" --submenu 0x1a04f3 --id 3`,
	Args: cobra.NoArgs,
	RunE: runMenuRect,
}

func init() {
	menuCmd.AddCommand(menuRectCmd)
	menuRectCmd.Flags().String("submenu", "", "Submenu handle containing the item (default: menu bar)")
	menuRectCmd.Flags().Uint32("id", 0, "Command ID of the item")
	_ = menuRectCmd.MarkFlagRequired("id")
	addWindowFlags(menuRectCmd)
}

func runMenuRect(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetUint32("id")
	if id == 0 {
		return fmt.Errorf("--id must be a non-zero command ID")
	}
	var sub model.MenuHandle
	if raw, _ := cmd.Flags().GetString("submenu"); raw != "" {
		h, err := platform.ParseHandle(raw)
		if err != nil {
			return err
		}
		sub = model.MenuHandle(h)
	}

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

	rect := w.Menu().ItemRect(sub, id)
	result := output.ActionResult{OK: !rect.IsZero(), Action: "menu rect", Window: w.Handle(), ID: id, Rect: &rect}
	if !result.OK {
		result.Message = "item not found in menu"
	}
	return printAction(cmd, result)
}
