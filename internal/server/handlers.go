package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/winctl/internal/match"
	"github.com/mj1618/winctl/internal/model"
	"github.com/mj1618/winctl/internal/output"
	"github.com/mj1618/winctl/internal/platform"
	"github.com/mj1618/winctl/internal/window"
	"gopkg.in/yaml.v3"
)

var errNoWindowSelector = errors.New("handle or title is required")

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}
	return string(b)
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(resultToText(v)), nil
}

// actionResult reports a write action. A false ok is returned as a tool
// error so agents notice it.
func actionResult(result output.ActionResult) (*mcp.CallToolResult, error) {
	if !result.OK {
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	return mcp.NewToolResultText(resultToText(result)), nil
}

// resolveWindow selects a window by handle or by title. The caller must
// hold providerMu.
func (s *Server) resolveWindow(params map[string]interface{}) (*window.Window, error) {
	if raw := stringParam(params, "handle", ""); raw != "" {
		h, err := platform.ParseHandle(raw)
		if err != nil {
			return nil, err
		}
		if !s.provider.System.IsWindow(h) {
			return nil, fmt.Errorf("no window with handle %s", raw)
		}
		return s.windowFor(h), nil
	}

	title := stringParam(params, "title", "")
	if title == "" {
		return nil, errNoWindowSelector
	}
	cond, flags, err := matcherParams(params, match.Contains)
	if err != nil {
		return nil, err
	}
	w, ok, err := s.query.First(title, cond, flags)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no window title %s %q", cond, title)
	}
	return s.windowFor(w.Handle), nil
}

func (s *Server) handleListWindows(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	return textResult(output.WindowsResult{TS: time.Now().UnixMilli(), Windows: s.query.Windows()})
}

func (s *Server) handleListApps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	withTitles := boolParam(params, "with_titles", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	if withTitles {
		return textResult(s.query.AppsWindowsTitles())
	}
	return textResult(output.AppsResult{TS: time.Now().UnixMilli(), Apps: s.query.AppNames()})
}

func (s *Server) handleFindWindows(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	pattern := stringParam(params, "pattern", "")
	apps := stringSliceParam(params, "apps")
	cond, flags, err := matcherParams(params, match.Contains)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	windows, err := s.query.FindByTitle(pattern, cond, flags, apps)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(output.WindowsResult{TS: time.Now().UnixMilli(), Windows: windows})
}

func (s *Server) handleFindApps(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	pattern := stringParam(params, "pattern", "")
	cond, flags, err := matcherParams(params, match.Contains)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	apps, err := s.query.FindAppsByName(pattern, cond, flags)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(output.AppsResult{TS: time.Now().UnixMilli(), Apps: apps})
}

func (s *Server) handleGetMenu(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	flat := boolParam(params, "flat", false)
	filter := stringParam(params, "filter", "")
	refresh := boolParam(params, "refresh", false)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	s.prune()
	w, err := s.resolveWindow(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if refresh {
		s.cache.Invalidate(w.Handle())
	}

	tree := w.Menu()
	root := s.cache.Tree(tree)
	if filter != "" {
		m := match.MustCompile(filter, match.Contains, match.IgnoreCase)
		root = model.FilterMenu(root, func(n *model.MenuNode) bool { return m.Match(n.Title) })
	}

	ts := time.Now().UnixMilli()
	if flat {
		return textResult(output.MenuFlatResult{
			Window: w.Handle(),
			Title:  w.Title(),
			TS:     ts,
			Items:  model.FlattenMenu(root),
		})
	}
	return textResult(output.MenuResult{
		Window:  w.Handle(),
		Title:   w.Title(),
		Menu:    tree.MenuHandle(),
		TS:      ts,
		Entries: root,
	})
}

func (s *Server) handleClickMenu(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	path := stringParam(params, "path", "")
	id := intParam(params, "id", 0)
	if (path == "") == (id == 0) {
		return mcp.NewToolResultError("exactly one of path or id is required"), nil
	}
	if id < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid command id %d", id)), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	w, err := s.resolveWindow(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tree := w.Menu()
	result := output.ActionResult{Action: "click_menu", Window: w.Handle(), Title: w.Title()}
	if path != "" {
		s.cache.Tree(tree)
		result.Path = path
		result.OK = tree.ClickPath(model.SplitPath(path))
		if !result.OK {
			result.Message = "no command item at path"
		}
	} else {
		result.ID = uint32(id)
		result.OK = tree.ClickID(uint32(id))
		if !result.OK {
			result.Message = "window has no menu or the command could not be posted"
		}
	}

	// Commands commonly toggle or rename items.
	s.cache.Invalidate(w.Handle())
	return actionResult(result)
}

func (s *Server) handleMenuItemRect(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := intParam(params, "id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("id must be a positive command ID"), nil
	}
	var sub model.MenuHandle
	if raw := stringParam(params, "submenu", ""); raw != "" {
		h, err := platform.ParseHandle(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sub = model.MenuHandle(h)
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	w, err := s.resolveWindow(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	tree := w.Menu()
	s.cache.Tree(tree)
	rect := tree.ItemRect(sub, uint32(id))
	result := output.ActionResult{
		OK:     !rect.IsZero(),
		Action: "menu_item_rect",
		Window: w.Handle(),
		ID:     uint32(id),
		Rect:   &rect,
	}
	if !result.OK {
		result.Message = "item not found in menu"
	}
	return actionResult(result)
}

func (s *Server) handleSetZOrder(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	z, err := platform.ParseZOrder(stringParam(params, "position", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	w, err := s.resolveWindow(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

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
	return actionResult(output.ActionResult{
		OK:      ok,
		Action:  "set_zorder",
		Window:  w.Handle(),
		Title:   w.Title(),
		Message: z.String(),
	})
}

func (s *Server) handleAlwaysOnBottom(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	enabled := boolParam(params, "enabled", true)

	s.providerMu.Lock()
	defer s.providerMu.Unlock()

	s.prune()
	w, err := s.resolveWindow(params)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ok := w.AlwaysOnBottom(enabled)
	msg := "disabled"
	if enabled {
		msg = fmt.Sprintf("enabled, polling every %s", w.Bottom().Interval())
	}
	return actionResult(output.ActionResult{
		OK:      ok,
		Action:  "always_on_bottom",
		Window:  w.Handle(),
		Title:   w.Title(),
		Message: msg,
	})
}
