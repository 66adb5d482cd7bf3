package cmd

import (
	"github.com/mj1618/winctl/internal/output"
	"github.com/mj1618/winctl/internal/platform"
	"github.com/spf13/cobra"
)

var stackCmd = &cobra.Command{
	Use:   "stack",
	Short: "Change a window's stacking position",
	Long: `Move a window in the stacking order.

Positions:
  top         raise above other normal windows
  bottom      send below every other window once
  topmost     pin above all non-topmost windows
  notopmost   remove the topmost pin

Examples:
  winctl stack --title "Notepad" --position top
  winctl stack --handle 0x3012c --position topmost`,
	Args: cobra.NoArgs,
	RunE: runStack,
}

func init() {
	rootCmd.AddCommand(stackCmd)
	stackCmd.Flags().String("position", "", "top, bottom, topmost or notopmost")
	_ = stackCmd.MarkFlagRequired("position")
	addWindowFlags(stackCmd)
}

func runStack(cmd *cobra.Command, args []string) error {
	position, _ := cmd.Flags().GetString("position")
	z, err := platform.ParseZOrder(position)
	if err != nil {
		return err
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

	var ok bool
	switch z {
	case platform.ZTop:
		ok = w.Raise()
	case platform.ZBottom:
		ok = w.Lower()
	case platform.ZTopMost:
		ok = w.AlwaysOnTop(true)
	case platform.ZNotTopMost:
		ok = w.AlwaysOnTop(false)
	}

	result := output.ActionResult{OK: ok, Action: "stack", Window: w.Handle(), Title: w.Title(), Message: z.String()}
	return printAction(cmd, result)
}
