package cmd

import (
	"fmt"

	"github.com/mj1618/winctl/internal/config"
	"github.com/mj1618/winctl/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start an MCP server exposing winctl tools",
	Long: `Start a Model Context Protocol (MCP) server that exposes window queries,
menu access and stacking control as tools. AI agents can call tools directly
without shell overhead.

Supported transports:
  stdio             Standard I/O (default, for MCP clients)
  streamable-http   Streamable HTTP transport (for remote agents)

Menu trees are cached per window for --cache-ttl; click_menu invalidates the
window's entry. When a config file is in use, edits to log_level and
poll_interval apply without a restart.

Examples:
  winctl serve
  winctl serve --transport streamable-http --port 8080
  winctl serve --cache-ttl 0`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("transport", "", "Transport: stdio, streamable-http (default: serve.transport from config)")
	serveCmd.Flags().Int("port", 0, "HTTP port for streamable-http (default: serve.port from config)")
	serveCmd.Flags().Duration("cache-ttl", 0, "Menu tree cache TTL, 0 to disable (default: menu_cache.ttl from config)")
}

// serveConfig merges the serve flags over the loaded configuration.
func serveConfig(cmd *cobra.Command, c *config.Config) (server.Config, error) {
	sc := server.Config{
		Transport:    c.Serve.Transport,
		Port:         c.Serve.Port,
		CacheTTL:     c.MenuCache.TTL,
		CacheSize:    c.MenuCache.Size,
		PollInterval: c.PollInterval,
	}
	if cmd.Flags().Changed("transport") {
		sc.Transport, _ = cmd.Flags().GetString("transport")
	}
	if cmd.Flags().Changed("port") {
		sc.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("cache-ttl") {
		sc.CacheTTL, _ = cmd.Flags().GetDuration("cache-ttl")
	}

	switch sc.Transport {
	case config.TransportStdio, config.TransportHTTP:
	default:
		return sc, fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", sc.Transport)
	}
	if sc.Port < 1 || sc.Port > 65535 {
		return sc, fmt.Errorf("--port must be in 1..65535, got %d", sc.Port)
	}
	if sc.CacheTTL < 0 {
		return sc, fmt.Errorf("--cache-ttl must not be negative, got %s", sc.CacheTTL)
	}
	return sc, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	sc, err := serveConfig(cmd, cfg)
	if err != nil {
		return err
	}

	provider, err := newProvider()
	if err != nil {
		return fmt.Errorf("failed to open window system: %w", err)
	}
	defer provider.Shutdown()

	srv := server.New(provider, sc, logger)
	defer srv.Close()

	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	cfgLoader.Watch(func(c *config.Config) {
		srv.SetPollInterval(c.PollInterval)
		if verbose {
			return
		}
		level := logLevel.Level()
		if err := logLevel.UnmarshalText([]byte(c.LogLevel)); err != nil {
			logger.Warnw("Ignoring invalid log level", "level", c.LogLevel, "error", err)
		} else if logLevel.Level() != level {
			logger.Infow("Log level changed", "from", level, "to", logLevel.Level())
		}
	})

	return srv.Serve(sc)
}
