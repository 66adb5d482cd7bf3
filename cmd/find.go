package cmd

import (
	"time"

	"github.com/mj1618/winctl/internal/output"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Find windows by title or applications by name",
	Long: `Find visible windows whose title matches a pattern, front to back.

The pattern is compared using --condition (default: contains). Regular
expressions use --condition match with optional --regex-flags; fuzzy matching
uses --condition editdistance or diffratio with --threshold (default 90).

Examples:
  winctl find --title "Notepad"
  winctl find --title "^untitled" --condition match --regex-flags i
  winctl find --title "Calculater" --condition editdistance --threshold 80
  winctl find --title "Untitled" --condition notcontains --app code.exe --app notepad.exe
  winctl find --title "chrome" --apps-only`,
	Args: cobra.NoArgs,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("title", "", "Pattern to match against window titles (or application names with --apps-only)")
	findCmd.Flags().StringArray("app", nil, "Only windows owned by this application (exact executable name, repeatable)")
	findCmd.Flags().Bool("apps-only", false, "Match application names instead of window titles")
	addMatchFlags(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	pattern, _ := cmd.Flags().GetString("title")
	apps, _ := cmd.Flags().GetStringArray("app")
	appsOnly, _ := cmd.Flags().GetBool("apps-only")

	cond, flags, err := matchFlags(cmd)
	if err != nil {
		return err
	}

	provider, q, err := openProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown()

	ts := time.Now().UnixMilli()
	if appsOnly {
		names, err := q.FindAppsByName(pattern, cond, flags)
		if err != nil {
			return err
		}
		if names == nil {
			names = []string{}
		}
		return printResult(cmd, output.AppsResult{TS: ts, Apps: names})
	}

	windows, err := q.FindByTitle(pattern, cond, flags, apps)
	if err != nil {
		return err
	}
	return printResult(cmd, output.WindowsResult{TS: ts, Windows: nonNil(windows)})
}
