package cmd

import (
	"time"

	"github.com/mj1618/winctl/internal/output"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible windows and applications",
	Long:  "List visible top-level windows front to back with their handle, PID, application, title, stacking position and bounds.",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().Bool("apps", false, "List distinct application names instead of windows")
	listCmd.Flags().Bool("titles", false, "List window titles only")
	listCmd.Flags().Bool("by-app", false, "Group window titles by application")
}

func runList(cmd *cobra.Command, args []string) error {
	apps, _ := cmd.Flags().GetBool("apps")
	titles, _ := cmd.Flags().GetBool("titles")
	byApp, _ := cmd.Flags().GetBool("by-app")

	provider, q, err := openProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown()

	switch {
	case apps:
		names := q.AppNames()
		if names == nil {
			names = []string{}
		}
		return printResult(cmd, output.AppsResult{TS: time.Now().UnixMilli(), Apps: names})
	case byApp:
		return printResult(cmd, q.AppsWindowsTitles())
	case titles:
		list := q.Titles()
		if list == nil {
			list = []string{}
		}
		return printResult(cmd, list)
	default:
		return printResult(cmd, output.WindowsResult{TS: time.Now().UnixMilli(), Windows: nonNil(q.Windows())})
	}
}
