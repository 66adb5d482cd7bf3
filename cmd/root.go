package cmd

import (
	"os"

	"github.com/mj1618/winctl/internal/config"
	"github.com/mj1618/winctl/internal/logging"
	"github.com/mj1618/winctl/internal/output"
	"github.com/mj1618/winctl/internal/platform"
	"github.com/mj1618/winctl/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "winctl",
	Short: "Find desktop windows, drive their menus and control stacking",
	Long: `winctl finds top-level windows by title or application name, reads and
invokes their native menus, and changes their stacking order, including
keeping a window pinned to the bottom of the desktop.

It can also run as an MCP server so agents can call the same operations as tools.`,
	SilenceUsage: true,
}

// Populated by the root command's PersistentPreRunE.
var (
	cfg       *config.Config
	cfgLoader *config.Loader
	logger    = logging.Nop()
	logLevel  zap.AtomicLevel
)

// newProvider opens the window system backend. Tests replace it.
var newProvider = platform.NewProvider

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.PersistentFlags().String("format", "yaml", "Output format: yaml, json")
	rootCmd.PersistentFlags().Bool("pretty", false, "Pretty-print JSON output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: winctl.yaml in . or the user config dir)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentPreRunE = setup
}

func setup(cmd *cobra.Command, args []string) error {
	format, _ := rootCmd.PersistentFlags().GetString("format")
	f, err := output.ParseFormat(format)
	if err != nil {
		return err
	}
	output.OutputFormat = f
	output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	configPath, _ := rootCmd.PersistentFlags().GetString("config")

	boot := logging.Nop()
	if verbose {
		if boot, _, err = logging.New(logging.Options{Level: "debug"}); err != nil {
			return err
		}
	}

	cfgLoader = config.NewLoader(configPath, boot)
	if cfg, err = cfgLoader.Load(); err != nil {
		return err
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger, logLevel, err = logging.New(logging.Options{Level: level, File: cfg.LogFile})
	if err != nil {
		return err
	}
	logger.Debugw("Starting", "command", cmd.CommandPath(), "version", version.Version, "config", cfgLoader.ConfigFile())
	return nil
}
