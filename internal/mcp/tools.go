package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"codescope/internal/blocks"
	"codescope/internal/config"
	"codescope/internal/gitdiff"
	"codescope/internal/impact"
	"codescope/internal/inventory"
	"codescope/internal/relevance"
	"codescope/internal/resolver"
	"codescope/internal/source"
)

// addImpactTool registers the analyze_impact tool.
func addImpactTool(s *server.MCPServer, cfg *config.Config, provider *source.Provider, res *resolver.Resolver, inv *inventory.Discovery) {
	tool := mcp.NewTool(
		"analyze_impact",
		mcp.WithDescription("Analyze what a file depends on and what depends on it: forward dependencies (bounded depth), reverse dependents (full project scan), and which exports are used externally."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path of the file to analyze, absolute or relative to the project root")),
		mcp.WithNumber("max_depth",
			mcp.Description("Forward traversal depth bound (default: 3)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		file, ok := argsMap["file"].(string)
		if !ok || file == "" {
			return mcp.NewToolResultError("file parameter is required"), nil
		}

		maxDepth := cfg.Analysis.MaxDepth
		if d, ok := argsMap["max_depth"].(float64); ok && int(d) > 0 {
			maxDepth = int(d)
		}

		analyzer := impact.NewAnalyzer(provider, res, inv, impact.WithMaxDepth(maxDepth))
		analysis, err := analyzer.Analyze(ctx, resolveTarget(res.Root(), file))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return jsonResult(analysis)
	})
}

// addChangesTool registers the analyze_changes tool.
func addChangesTool(s *server.MCPServer, provider *source.Provider, root string) {
	tool := mcp.NewTool(
		"analyze_changes",
		mcp.WithDescription("Map the staged git changes onto the named declarations (functions, methods, classes, interfaces, components) they touch."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		extractor := gitdiff.NewExtractor(root, nil)
		changes, err := extractor.StagedChanges()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		return jsonResult(blocks.AnalyzeChanges(provider, root, changes))
	})
}

// addContextTool registers the find_context tool.
func addContextTool(s *server.MCPServer, provider *source.Provider, inv *inventory.Discovery, root string) {
	tool := mcp.NewTool(
		"find_context",
		mcp.WithDescription("Rank project files by relevance to free-text keywords, matching file names, paths, exported symbols, function names and type names."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Free-text keywords describing the task at hand")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of matches to return (default: 20)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		query, ok := argsMap["query"].(string)
		if !ok || strings.TrimSpace(query) == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		limit := 20
		if l, ok := argsMap["limit"].(float64); ok && int(l) > 0 {
			limit = int(l)
		}

		files, err := inv.List()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		matches := relevance.NewScorer(provider, root).Rank(files, query)
		if len(matches) > limit {
			matches = matches[:limit]
		}

		return jsonResult(matches)
	})
}

// resolveTarget anchors a relative file argument at the project root.
func resolveTarget(root, file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(root, file)
}

// jsonResult marshals v into a text tool result.
func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
