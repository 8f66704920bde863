package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/denysvitali/dirscope-runtime/pkg/service"
	"github.com/denysvitali/dirscope-runtime/pkg/telemetry"
)

// Server wraps the mcp-go server with the introspection tools
type Server struct {
	logger    *logrus.Logger
	service   *service.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server using the mcp-go library
func NewServer(logger *logrus.Logger, svc *service.Service) *Server {
	mcpServer := server.NewMCPServer(
		telemetry.ServiceName,
		telemetry.ServiceVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s := &Server{
		logger:    logger,
		service:   svc,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	homeDirTool := mcp.NewTool("home_dir",
		mcp.WithDescription("Resolve the current user's home directory"),
		mcp.WithReadOnlyHintAnnotation(true),
	)
	s.mcpServer.AddTool(homeDirTool, s.handleHomeDir)

	listDirTool := mcp.NewTool("list_dir",
		mcp.WithDescription("List the immediate children of a directory, sorted by name"),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the directory to list"),
		),
	)
	s.mcpServer.AddTool(listDirTool, s.handleListDir)
}

// ServeStdio serves MCP over stdin/stdout until the input is closed
func (s *Server) ServeStdio() error {
	s.logger.Info("Serving MCP over stdio")
	return server.ServeStdio(s.mcpServer)
}

// HTTPHandler returns a streamable HTTP handler for the MCP endpoint
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcpServer)
}

func (s *Server) handleHomeDir(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	home, err := s.service.HomeDir(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(home), nil
}

func (s *Server) handleListDir(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("path parameter error: %v", err)), nil
	}

	listing, err := s.service.ListDir(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := json.Marshal(listing)
	if err != nil {
		s.logger.Errorf("Failed to marshal listing: %v", err)
		return nil, err
	}

	return mcp.NewToolResultText(string(data)), nil
}
