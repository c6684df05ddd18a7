// Package mcp exposes Tactyo project data as read-only MCP tools so
// agents can query boards, sprints, and change requests over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tactyo/tactyo/internal/api"
	"github.com/tactyo/tactyo/internal/board"
	"github.com/tactyo/tactyo/internal/classify"
	"github.com/tactyo/tactyo/internal/hierarchy"
)

// Server wraps the API client and exposes it as MCP tools.
type Server struct {
	client *api.Client
}

// NewServer creates the MCP server wrapper.
func NewServer(client *api.Client) *Server {
	return &Server{client: client}
}

// MCPServer returns a configured mcp-go server with all tools
// registered.
func (s *Server) MCPServer() *server.MCPServer {
	srv := server.NewMCPServer("tactyo", "1.0.0", server.WithToolCapabilities(true))

	srv.AddTool(s.listProjectsTool())
	srv.AddTool(s.listItemsTool())
	srv.AddTool(s.boardTool())
	srv.AddTool(s.hierarchyTool())
	srv.AddTool(s.sprintDashboardTool())
	srv.AddTool(s.listRequestsTool())

	return srv
}

// ServeStdio starts the stdio transport, blocking until ctx is
// cancelled.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := s.MCPServer()
	stdioServer := server.NewStdioServer(srv)
	return stdioServer.Listen(ctx, os.Stdin, os.Stdout)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// tactyo_list_projects
func (s *Server) listProjectsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tactyo_list_projects",
		mcp.WithDescription("List the projects the authenticated user can access. Returns a JSON array with id, owner, number, name, and last sync time."),
	)
	return tool, s.handleListProjects
}

func (s *Server) handleListProjects(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projects, err := s.client.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list projects: %v", err)), nil
	}
	return jsonResult(projects)
}

// tactyo_list_items
func (s *Server) listItemsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tactyo_list_items",
		mcp.WithDescription("List the active project's items with optional filters. Each item carries a derived type label and epic name."),
		mcp.WithString("status", mcp.Description("Filter by status column, e.g. \"In Progress\"")),
		mcp.WithString("iteration", mcp.Description("Filter by sprint/iteration name")),
		mcp.WithString("epic", mcp.Description("Filter by epic name")),
		mcp.WithString("search", mcp.Description("Search in item titles")),
	)
	return tool, s.handleListItems
}

func (s *Server) handleListItems(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := api.ItemFilter{
		Status:    request.GetString("status", ""),
		Iteration: request.GetString("iteration", ""),
		Epic:      request.GetString("epic", ""),
		Search:    request.GetString("search", ""),
	}
	items, err := s.client.Items(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list items: %v", err)), nil
	}

	type itemOut struct {
		ID        int      `json:"id"`
		Title     string   `json:"title"`
		Status    string   `json:"status,omitempty"`
		Type      string   `json:"type"`
		Epic      string   `json:"epic,omitempty"`
		Iteration string   `json:"iteration,omitempty"`
		Estimate  *float64 `json:"estimate,omitempty"`
		Assignees []string `json:"assignees,omitempty"`
		URL       string   `json:"url,omitempty"`
	}

	out := make([]itemOut, len(items))
	for i, item := range items {
		c := classify.Item(item)
		out[i] = itemOut{
			ID:        item.ID,
			Title:     item.Title,
			Status:    item.Status,
			Type:      c.TypeLabel,
			Epic:      c.EpicName,
			Iteration: item.Iteration,
			Estimate:  item.Estimate,
			Assignees: item.Assignees,
			URL:       item.URL,
		}
	}
	return jsonResult(out)
}

// tactyo_board
func (s *Server) boardTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tactyo_board",
		mcp.WithDescription("Get the roadmap board: ordered status columns with their items, unassigned first and Done last."),
	)
	return tool, s.handleBoard
}

func (s *Server) handleBoard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := s.client.CurrentProject(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load project: %v", err)), nil
	}
	items, err := s.client.Items(ctx, api.ItemFilter{})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list items: %v", err)), nil
	}

	observed := make([]string, len(items))
	for i, item := range items {
		observed[i] = item.Status
	}
	columns := board.BuildColumns(project.StatusColumns, observed)

	type columnOut struct {
		Key    string   `json:"key"`
		Title  string   `json:"title"`
		Titles []string `json:"items"`
	}

	grouped := map[string][]string{}
	for _, item := range items {
		key := board.ColumnKeyForStatus(item.Status)
		grouped[key] = append(grouped[key], item.Title)
	}

	out := make([]columnOut, len(columns))
	for i, col := range columns {
		titles := grouped[col.Key]
		if titles == nil {
			titles = []string{}
		}
		out[i] = columnOut{Key: col.Key, Title: col.Title, Titles: titles}
	}
	return jsonResult(out)
}

// tactyo_hierarchy
func (s *Server) hierarchyTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tactyo_hierarchy",
		mcp.WithDescription("Get the flattened epic → story → task hierarchy with per-type counts."),
	)
	return tool, s.handleHierarchy
}

func (s *Server) handleHierarchy(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h, err := s.client.Hierarchy(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load hierarchy: %v", err)), nil
	}

	flat := hierarchy.Flatten(h)

	type nodeOut struct {
		ID     int    `json:"id"`
		Title  string `json:"title"`
		Type   string `json:"type,omitempty"`
		Status string `json:"status,omitempty"`
		Epic   string `json:"epic,omitempty"`
		Depth  int    `json:"depth"`
		Orphan bool   `json:"orphan,omitempty"`
	}

	nodes := make([]nodeOut, len(flat))
	for i, fi := range flat {
		nodes[i] = nodeOut{
			ID:     fi.Item.ID,
			Title:  fi.Item.Title,
			Type:   fi.Item.ItemType,
			Status: fi.Item.Status,
			Epic:   fi.EpicName,
			Depth:  fi.Depth,
			Orphan: fi.Orphan,
		}
	}

	out := struct {
		Items  []nodeOut      `json:"items"`
		Counts map[string]int `json:"counts"`
	}{Items: nodes, Counts: hierarchy.CountByType(flat)}

	return jsonResult(out)
}

// tactyo_sprint_dashboard
func (s *Server) sprintDashboardTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tactyo_sprint_dashboard",
		mcp.WithDescription("Get per-sprint summaries: item counts, completion, and estimates."),
	)
	return tool, s.handleSprintDashboard
}

func (s *Server) handleSprintDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dash, err := s.client.IterationDashboard(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load sprint dashboard: %v", err)), nil
	}
	return jsonResult(dash)
}

// tactyo_list_requests
func (s *Server) listRequestsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("tactyo_list_requests",
		mcp.WithDescription("List change requests with their workflow status (pending, approved, rejected, converted)."),
		mcp.WithString("status", mcp.Description("Filter by workflow status")),
	)
	return tool, s.handleListRequests
}

func (s *Server) handleListRequests(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	requests, err := s.client.Requests(ctx, request.GetString("status", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list requests: %v", err)), nil
	}
	return jsonResult(requests)
}
