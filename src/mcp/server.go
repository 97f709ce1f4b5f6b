// Package mcp exposes the build history store over the Model Context
// Protocol, so agents can query recent build outcomes without talking to the
// CI service directly.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"buildwatch/src/contracts"
	"buildwatch/src/store"
)

// Server is the MCP server for buildwatch.
type Server struct {
	mcpServer *server.MCPServer
	store     store.Store
}

// NewServer creates a new MCP server backed by st.
func NewServer(st store.Store) *Server {
	s := server.NewMCPServer(
		"buildwatch",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		store:     st,
	}
	srv.registerTools()

	return srv
}

// registerTools registers all available tools.
func (s *Server) registerTools() {
	recentTool := mcp.NewTool("recent_builds",
		mcp.WithDescription("List the most recently observed builds for a watched project. Returns normalized status, duration description, revision and link per build."),
		mcp.WithString("adapter_key",
			mcp.Required(),
			mcp.Description("Adapter key (the configured project collection URL)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max builds to return (default: 20)"),
		),
	)

	statusTool := mcp.NewTool("build_status",
		mcp.WithDescription("Get the recorded status of one build by its build number. Use after recent_builds to drill into a single build."),
		mcp.WithString("adapter_key",
			mcp.Required(),
			mcp.Description("Adapter key (the configured project collection URL)"),
		),
		mcp.WithString("build_id",
			mcp.Required(),
			mcp.Description("Build number from recent_builds"),
		),
	)

	s.mcpServer.AddTool(recentTool, s.handleRecentBuilds)
	s.mcpServer.AddTool(statusTool, s.handleBuildStatus)
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// handleRecentBuilds handles the recent_builds tool call.
func (s *Server) handleRecentBuilds(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	adapterKey := request.GetString("adapter_key", "")
	if adapterKey == "" {
		return mcp.NewToolResultError("adapter_key parameter is required"), nil
	}
	limit := request.GetInt("limit", 20)

	records, err := s.store.RecentBuilds(ctx, adapterKey, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	return jsonResult(recentBuildsResponse{
		AdapterKey: adapterKey,
		Count:      len(records),
		Builds:     summarize(records),
	})
}

// handleBuildStatus handles the build_status tool call.
func (s *Server) handleBuildStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	adapterKey := request.GetString("adapter_key", "")
	buildID := request.GetString("build_id", "")
	if adapterKey == "" || buildID == "" {
		return mcp.NewToolResultError("adapter_key and build_id parameters are required"), nil
	}

	record, err := s.store.GetBuild(ctx, adapterKey, buildID)
	if err != nil {
		if errors.Is(err, store.ErrBuildNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("build %s not recorded for %s", buildID, adapterKey)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("query failed: %v", err)), nil
	}

	return jsonResult(toSummary(*record))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

// recentBuildsResponse is the recent_builds tool payload.
type recentBuildsResponse struct {
	AdapterKey string         `json:"adapter_key"`
	Count      int            `json:"count"`
	Builds     []buildSummary `json:"builds"`
}

// buildSummary is one build in a tool response.
type buildSummary struct {
	BuildID     string   `json:"build_id"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Start       string   `json:"start"`
	Commits     []string `json:"commits"`
	URL         string   `json:"url"`
}

func toSummary(r contracts.BuildRecord) buildSummary {
	return buildSummary{
		BuildID:     r.BuildID,
		Status:      r.Status,
		Description: r.Description,
		Start:       r.Start.UTC().Format("2006-01-02T15:04:05Z"),
		Commits:     r.Commits,
		URL:         r.URL,
	}
}

func summarize(records []contracts.BuildRecord) []buildSummary {
	summaries := make([]buildSummary, 0, len(records))
	for _, r := range records {
		summaries = append(summaries, toSummary(r))
	}
	return summaries
}
