package cmd

import (
	"errors"
	"fmt"

	"github.com/mj1618/winctl/internal/match"
	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/output"
	"github.com/mj1618/winctl/internal/platform"
	"github.com/mj1618/winctl/internal/query"
	"github.com/mj1618/winctl/internal/window"
	"github.com/spf13/cobra"
)

var errNoWindowSelector = errors.New("--handle or --title is required")

// addMatchFlags registers the flags that build a match.Options.
func addMatchFlags(cmd *cobra.Command) {
	cmd.Flags().String("condition", "contains", "Match condition: is, contains, startswith, endswith, match, editdistance, diffratio (prefix not- to negate the first five)")
	cmd.Flags().Bool("ignore-case", false, "Case-insensitive comparison")
	cmd.Flags().String("regex-flags", "", "Regex flags for match/notmatch: i, m, s, U")
	cmd.Flags().Int("threshold", 0, "Similarity threshold 1-100 for editdistance/diffratio (default 90)")
}

// addWindowFlags registers the flags that select one window.
func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().String("handle", "", "Window handle, decimal or 0x hex")
	cmd.Flags().String("title", "", "Select the frontmost window whose title matches")
	addMatchFlags(cmd)
}

// matchFlags reads the flags registered by addMatchFlags.
func matchFlags(cmd *cobra.Command) (match.Condition, match.Flags, error) {
	cond, _ := cmd.Flags().GetString("condition")
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")
	regexFlags, _ := cmd.Flags().GetString("regex-flags")
	threshold, _ := cmd.Flags().GetInt("threshold")

	return match.Options{
		Condition:  cond,
		IgnoreCase: ignoreCase,
		RegexFlags: regexFlags,
		Threshold:  threshold,
	}.Resolve(match.Contains)
}

// openProvider opens the backend and returns a query engine over it.
// The caller must call provider.Shutdown.
func openProvider() (*platform.Provider, *query.Engine, error) {
	provider, err := newProvider()
	if err != nil {
		return nil, nil, err
	}
	logger.Debugw("Opened window system", "backend", provider.Backend)
	return provider, query.New(provider.System, logger), nil
}

// selectHandle resolves --handle or --title to a live window handle.
func selectHandle(cmd *cobra.Command, provider *platform.Provider, q *query.Engine) (model.Handle, error) {
	if raw, _ := cmd.Flags().GetString("handle"); raw != "" {
		h, err := platform.ParseHandle(raw)
		if err != nil {
			return 0, err
		}
		if !provider.System.IsWindow(h) {
			return 0, fmt.Errorf("no window with handle %s", raw)
		}
		return h, nil
	}

	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		return 0, errNoWindowSelector
	}
	cond, flags, err := matchFlags(cmd)
	if err != nil {
		return 0, err
	}
	w, ok, err := q.First(title, cond, flags)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("no window title %s %q", cond, title)
	}
	logger.Debugw("Selected window", "handle", w.Handle, "title", w.Title, "app", w.App)
	return w.Handle, nil
}

// selectWindow is selectHandle wrapped in a window.Window using the
// configured poll interval.
func selectWindow(cmd *cobra.Command, provider *platform.Provider, q *query.Engine) (*window.Window, error) {
	h, err := selectHandle(cmd, provider, q)
	if err != nil {
		return nil, err
	}
	return window.New(provider.System, h, window.Options{PollInterval: cfg.PollInterval, Logger: logger}), nil
}

// printResult writes v to the command's output in the selected format.
func printResult(cmd *cobra.Command, v interface{}) error {
	return output.Fprint(cmd.OutOrStdout(), v)
}

// printAction writes an action result and turns a failed action into an
// error so the process exits non-zero.
func printAction(cmd *cobra.Command, result output.ActionResult) error {
	if err := printResult(cmd, result); err != nil {
		return err
	}
	if !result.OK {
		return fmt.Errorf("%s failed: %s", result.Action, result.Message)
	}
	return nil
}

// nonNil keeps empty results rendering as [] rather than null.
func nonNil(windows []model.Window) []model.Window {
	if windows == nil {
		return []model.Window{}
	}
	return windows
}
