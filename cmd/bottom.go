package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mj1618/winctl/internal/output"
	"github.com/mj1618/winctl/internal/window"
	"github.com/spf13/cobra"
)

var bottomCmd = &cobra.Command{
	Use:   "bottom",
	Short: "Keep a window at the bottom of the stacking order",
	Long: `Send a window to the bottom of the stacking order and keep it there,
re-checking every --interval, until interrupted or the window closes.

Examples:
  winctl bottom --title "Desktop Notes"
  winctl bottom --handle 0x3012c --interval 250ms`,
	Args: cobra.NoArgs,
	RunE: runBottom,
}

func init() {
	rootCmd.AddCommand(bottomCmd)
	bottomCmd.Flags().Duration("interval", 0, "Poll interval (default: poll_interval from config, 500ms)")
	addWindowFlags(bottomCmd)
}

func runBottom(cmd *cobra.Command, args []string) error {
	interval, _ := cmd.Flags().GetDuration("interval")
	if interval < 0 {
		return fmt.Errorf("--interval must be positive, got %s", interval)
	}

	provider, q, err := openProvider()
	if err != nil {
		return err
	}
	defer provider.Shutdown()

	h, err := selectHandle(cmd, provider, q)
	if err != nil {
		return err
	}
	if interval == 0 {
		interval = cfg.PollInterval
	}
	w := window.New(provider.System, h, window.Options{PollInterval: interval, Logger: logger})
	defer w.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return printAction(cmd, keepAtBottom(ctx, w))
}

// keepAtBottom pins w to the bottom and blocks until ctx is done or the
// window closes.
func keepAtBottom(ctx context.Context, w *window.Window) output.ActionResult {
	result := output.ActionResult{Action: "bottom", Window: w.Handle(), Title: w.Title()}
	if !w.AlwaysOnBottom(true) {
		result.Message = "could not reposition window"
		return result
	}

	start := time.Now()
	if output.IsOutputPiped() {
		logger.Infow("Keeping window at the bottom", "window", w.Handle(), "interval", w.Bottom().Interval())
	} else {
		fmt.Fprintf(os.Stderr, "Keeping %q at the bottom every %s. Press Ctrl+C to stop.\n", result.Title, w.Bottom().Interval())
	}

	err := w.Bottom().Wait(ctx)
	w.AlwaysOnBottom(false)

	result.OK = true
	if err != nil {
		result.Message = fmt.Sprintf("stopped after %s", time.Since(start).Round(time.Second))
	} else {
		result.Message = fmt.Sprintf("window closed after %s", time.Since(start).Round(time.Second))
	}
	return result
}
