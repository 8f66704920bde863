package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denysvitali/dirscope-runtime/pkg/config"
	"github.com/denysvitali/dirscope-runtime/pkg/mcp"
	"github.com/denysvitali/dirscope-runtime/pkg/service"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the home_dir and list_dir tools over MCP stdio",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	svc := service.New(cfg, logger)
	return mcp.NewServer(logger, svc).ServeStdio()
}
