package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/loadwatch/internal/config"
)

// Config holds MCP server configuration.
type Config struct {
	ConfigPath string
}

// Server wraps the MCP SDK server exposing the decision pipeline as tools.
type Server struct {
	mcpServer *mcpsdk.Server
	cfg       *config.Config
}

// New creates an MCP server with loaded thresholds and registered tools.
func New(cfg Config) (*Server, error) {
	loaded, err := config.Load(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	s := &Server{cfg: loaded}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "loadwatch",
			Version: "0.1.0",
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// registerTools adds all loadwatch tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "loadwatch_evaluate",
		Description: "Run the full decision pipeline on life-load inputs: state evaluation, active rules, authority derivation, and recovery check.",
	}, s.handleEvaluate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "loadwatch_recovery",
		Description: "Check whether current inputs satisfy the recovery conditions for a return to NORMAL mode.",
	}, s.handleRecovery)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "loadwatch_plan",
		Description: "Request a planning advisory for a task list. Blocked when the derived authority denies planning.",
	}, s.handlePlan)
}
