package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/output"
	"github.com/mj1618/winctl/internal/overlay"
	"github.com/spf13/cobra"
)

var menuMapCmd = &cobra.Command{
	Use:   "map",
	Short: "Draw a window's menu item rectangles to a PNG",
	Long: `Render every menu item rectangle recorded in the tree onto a canvas the size
of the window and save it as PNG. Command items are outlined in red and
submenu titles in blue.

Rectangles are captured when the tree is built, so items of closed submenus
usually have no geometry; open the submenu first to map it.

Examples:
  winctl menu map --title "Notepad" --out notepad-menu.png
  winctl menu map --title "Notepad" --labels ids`,
	Args: cobra.NoArgs,
	RunE: runMenuMap,
}

func init() {
	menuCmd.AddCommand(menuMapCmd)
	menuMapCmd.Flags().StringP("out", "o", "menu-map.png", "Output PNG file")
	menuMapCmd.Flags().String("labels", "titles", "Box labels: titles, ids")
	addWindowFlags(menuMapCmd)
}

func runMenuMap(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	labels, _ := cmd.Flags().GetString("labels")

	var mode overlay.LabelMode
	switch labels {
	case "titles":
		mode = overlay.LabelTitles
	case "ids":
		mode = overlay.LabelIDs
	default:
		return fmt.Errorf("unsupported labels: %s (use titles or ids)", labels)
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

	items := model.FlattenMenu(w.Menu().Build())
	img := overlay.Render(w.Rect(), items, mode)

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := overlay.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	logger.Debugw("Wrote menu map", "path", out, "items", len(items))
	return printAction(cmd, output.ActionResult{
		OK:      true,
		Action:  "menu map",
		Window:  w.Handle(),
		Title:   w.Title(),
		Path:    out,
		Message: fmt.Sprintf("%d items, %dx%d", len(items), img.Bounds().Dx(), img.Bounds().Dy()),
	})
}
