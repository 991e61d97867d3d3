package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/gridsnap/internal/ipc"
)

const (
	ServerName    = "gridsnap"
	ServerVersion = "0.1.0"
)

// ipcClient is the subset of the IPC client the MCP tools need.
// Abstracted so tests can substitute a fake daemon.
type ipcClient interface {
	GetStatus() (*ipc.StatusData, error)
	ListBindings() (*ipc.BindingsData, error)
	Trigger(binding string) error
	GetMonitors() (*ipc.MonitorsData, error)
}

// Server exposes the daemon's bindings and monitors as MCP tools.
// All tools proxy to the running daemon over its IPC socket.
type Server struct {
	mcpServer *mcpsdk.Server
	client    ipcClient
}

// NewServer creates a new MCP server backed by the daemon's IPC socket.
func NewServer() (*Server, error) {
	client, err := ipc.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create IPC client: %w", err)
	}
	return newServerWithClient(client), nil
}

func newServerWithClient(client ipcClient) *Server {
	s := &Server{client: client}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_bindings",
		Description: "List the configured snap and move bindings with their hotkeys and action cycles. Requires the gridsnap daemon to be running.",
	}, s.handleListBindings)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "trigger_binding",
		Description: "Trigger a binding by name on the focused window, exactly as pressing its hotkey would. Cycling state is derived from the window's current geometry.",
	}, s.handleTriggerBinding)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_monitors",
		Description: "List connected monitors with their usable work areas as seen by the daemon.",
	}, s.handleGetMonitors)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "daemon_status",
		Description: "Report daemon status: binding count, remembered placement exceptions, and uptime.",
	}, s.handleDaemonStatus)
}
