// Package server exposes window queries, menu access and stacking control
// as MCP tools.
package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/winctl/internal/config"
	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/platform"
	"github.com/mj1618/winctl/internal/query"
	"github.com/mj1618/winctl/internal/version"
	"github.com/mj1618/winctl/internal/window"
	"go.uber.org/zap"
)

// Config holds MCP server configuration.
type Config struct {
	Transport    string
	Port         int
	CacheTTL     time.Duration
	CacheSize    int
	PollInterval time.Duration
}

// Server wraps the MCP server with the platform provider, the menu cache
// and the windows it has touched.
type Server struct {
	provider *platform.Provider
	query    *query.Engine
	cache    *MenuCache
	logger   *zap.SugaredLogger
	poll     time.Duration

	// providerMu serializes tool calls against the window system.
	providerMu sync.Mutex
	windows    map[model.Handle]*window.Window

	mcp *mcpserver.MCPServer
}

// New creates a server with all winctl tools registered.
func New(provider *platform.Provider, cfg Config, logger *zap.SugaredLogger) *Server {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	logger = logger.Named("server")

	s := &Server{
		provider: provider,
		query:    query.New(provider.System, logger),
		cache:    NewMenuCache(cfg.CacheSize, cfg.CacheTTL),
		logger:   logger,
		poll:     cfg.PollInterval,
		windows:  make(map[model.Handle]*window.Window),
	}

	s.mcp = mcpserver.NewMCPServer("winctl", version.Version)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the MCP server with the configured transport and blocks.
func (s *Server) Serve(cfg Config) error {
	s.logger.Infow("Starting MCP server", "transport", cfg.Transport, "backend", s.provider.Backend)
	switch cfg.Transport {
	case "", config.TransportStdio:
		return mcpserver.ServeStdio(s.mcp)
	case config.TransportHTTP:
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// Close stops every always-on-bottom loop started through the server.
func (s *Server) Close() {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()
	for h, w := range s.windows {
		w.Close()
		delete(s.windows, h)
	}
	s.cache.InvalidateAll()
}

// SetPollInterval changes the always-on-bottom interval for windows
// first touched after the call.
func (s *Server) SetPollInterval(d time.Duration) {
	s.providerMu.Lock()
	s.poll = d
	s.providerMu.Unlock()
}

// windowFor returns the registered window for h, creating it on first use.
// The caller must hold providerMu.
func (s *Server) windowFor(h model.Handle) *window.Window {
	if w, ok := s.windows[h]; ok {
		return w
	}
	w := window.New(s.provider.System, h, window.Options{PollInterval: s.poll, Logger: s.logger})
	s.windows[h] = w
	return w
}

// prune forgets windows that no longer exist. The caller must hold providerMu.
func (s *Server) prune() {
	for h, w := range s.windows {
		if !w.IsAlive() {
			w.Close()
			delete(s.windows, h)
			s.cache.Invalidate(h)
		}
	}
}

func (s *Server) registerTools() {
	matcherOpts := []mcp.ToolOption{
		mcp.WithString("condition", mcp.Description("Match condition: is, contains, startswith, endswith, match, editdistance, diffratio, or a not- form of the first five")),
		mcp.WithNumber("flags", mcp.Description("Raw flags: 1 ignore case, 2 multiline, 4 dot-all, 8 ungreedy; threshold 1-100 for fuzzy conditions")),
		mcp.WithBoolean("ignore_case", mcp.Description("Case-insensitive comparison")),
		mcp.WithString("regex_flags", mcp.Description("Regex flag letters for match/notmatch: i, m, s, U")),
		mcp.WithNumber("threshold", mcp.Description("Similarity threshold 1-100 for editdistance/diffratio (default: 90)")),
	}
	windowOpts := append([]mcp.ToolOption{
		mcp.WithString("handle", mcp.Description("Native window handle, decimal or 0x hex")),
		mcp.WithString("title", mcp.Description("Select the frontmost window whose title matches")),
	}, matcherOpts...)

	// list_windows
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List visible top-level windows in front-to-back order with handle, PID, application, title and bounds"),
		),
		s.handleListWindows,
	)

	// list_apps
	s.mcp.AddTool(
		mcp.NewTool("list_apps",
			mcp.WithDescription("List applications that own visible windows"),
			mcp.WithBoolean("with_titles", mcp.Description("Include each application's window titles")),
		),
		s.handleListApps,
	)

	// find_windows
	s.mcp.AddTool(
		mcp.NewTool("find_windows",
			append([]mcp.ToolOption{
				mcp.WithDescription("Find windows whose title matches a pattern"),
				mcp.WithString("pattern", mcp.Description("Pattern to match against window titles"), mcp.Required()),
				mcp.WithArray("apps", mcp.Description("Only windows owned by these applications (exact names)"), mcp.WithStringItems()),
			}, matcherOpts...)...,
		),
		s.handleFindWindows,
	)

	// find_apps
	s.mcp.AddTool(
		mcp.NewTool("find_apps",
			append([]mcp.ToolOption{
				mcp.WithDescription("Find applications whose executable name matches a pattern"),
				mcp.WithString("pattern", mcp.Description("Pattern to match against application names"), mcp.Required()),
			}, matcherOpts...)...,
		),
		s.handleFindApps,
	)

	// get_menu
	s.mcp.AddTool(
		mcp.NewTool("get_menu",
			append([]mcp.ToolOption{
				mcp.WithDescription("Read a window's menu bar as a tree of titles with command IDs, shortcuts and window-relative rectangles"),
				mcp.WithBoolean("flat", mcp.Description("Return a flat list of 'A > B > C' paths instead of a tree")),
				mcp.WithString("filter", mcp.Description("Only items whose title contains this text, with their ancestors")),
				mcp.WithBoolean("refresh", mcp.Description("Rebuild the menu instead of using the cached tree")),
			}, windowOpts...)...,
		),
		s.handleGetMenu,
	)

	// click_menu
	s.mcp.AddTool(
		mcp.NewTool("click_menu",
			append([]mcp.ToolOption{
				mcp.WithDescription("Invoke a menu command by title path (e.g. 'File > Save') or by command ID"),
				mcp.WithString("path", mcp.Description("Menu path, segments separated by '>'")),
				mcp.WithNumber("id", mcp.Description("Command ID to post directly")),
			}, windowOpts...)...,
		),
		s.handleClickMenu,
	)

	// menu_item_rect
	s.mcp.AddTool(
		mcp.NewTool("menu_item_rect",
			append([]mcp.ToolOption{
				mcp.WithDescription("Get the live screen rectangle of a menu item by command ID"),
				mcp.WithString("submenu", mcp.Description("Submenu handle containing the item (default: menu bar)")),
				mcp.WithNumber("id", mcp.Description("Command ID of the item"), mcp.Required()),
			}, windowOpts...)...,
		),
		s.handleMenuItemRect,
	)

	// set_zorder
	s.mcp.AddTool(
		mcp.NewTool("set_zorder",
			append([]mcp.ToolOption{
				mcp.WithDescription("Change a window's stacking position"),
				mcp.WithString("position", mcp.Description("top, bottom, topmost or notopmost"), mcp.Required()),
			}, windowOpts...)...,
		),
		s.handleSetZOrder,
	)

	// always_on_bottom
	s.mcp.AddTool(
		mcp.NewTool("always_on_bottom",
			append([]mcp.ToolOption{
				mcp.WithDescription("Keep a window at the bottom of the stacking order until disabled or the window closes"),
				mcp.WithBoolean("enabled", mcp.Description("Enable (default) or disable")),
			}, windowOpts...)...,
		),
		s.handleAlwaysOnBottom,
	)
}
