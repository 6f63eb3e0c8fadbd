// Package mcp exposes the analysis core as MCP tools over stdio.
package mcp

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"codescope/internal/config"
	"codescope/internal/inventory"
	"codescope/internal/resolver"
	"codescope/internal/source"
)

// Server wraps an MCP server over one project tree.
type Server struct {
	mcp      *server.MCPServer
	provider *source.Provider
}

// NewServer creates the MCP server and registers all analysis tools.
func NewServer(cfg *config.Config, root, version string) (*Server, error) {
	provider, err := source.NewProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to create source provider: %w", err)
	}

	inv, err := inventory.New(root, cfg.Paths.Source, cfg.Paths.Ignore)
	if err != nil {
		provider.Close()
		return nil, fmt.Errorf("invalid path patterns: %w", err)
	}

	res := resolver.New(root, resolver.WithAliasPrefix(cfg.Analysis.AliasPrefix))

	s := server.NewMCPServer(
		"codescope",
		version,
		server.WithToolCapabilities(false),
	)

	addImpactTool(s, cfg, provider, res, inv)
	addChangesTool(s, provider, root)
	addContextTool(s, provider, inv, root)

	return &Server{mcp: s, provider: provider}, nil
}

// ServeStdio blocks serving MCP requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	defer s.provider.Close()
	return server.ServeStdio(s.mcp)
}
