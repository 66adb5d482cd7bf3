package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/output"
	"github.com/spf13/cobra"
)

var atCmd = &cobra.Command{
	Use:   "at X Y",
	Short: "List windows under a screen point",
	Long:  "List the visible windows whose bounds contain the screen point (X, Y), front to back. With --top only the frontmost one is returned.",
	Args:  cobra.ExactArgs(2),
	RunE:  runAt,
}

func init() {
	rootCmd.AddCommand(atCmd)
	atCmd.Flags().Bool("top", false, "Return only the frontmost window")
}

func runAt(cmd *cobra.Command, args []string) error {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid X coordinate %q: %w", args[0], err)
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid Y coordinate %q: %w", args[1], err)
	}
	top, _ := cmd.Flags().GetBool("top")

	provider, q, err := openProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown()

	var windows []model.Window
	if top {
		if w, ok := q.TopWindowAt(x, y); ok {
			windows = []model.Window{w}
		}
	} else {
		windows = q.WindowsAt(x, y)
	}
	return printResult(cmd, output.WindowsResult{TS: time.Now().UnixMilli(), Windows: nonNil(windows)})
}
