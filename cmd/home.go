package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/denysvitali/dirscope-runtime/pkg/config"
	"github.com/denysvitali/dirscope-runtime/pkg/service"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Print the current user's home directory",
	Args:  cobra.NoArgs,
	RunE:  runHome,
}

func init() {
	rootCmd.AddCommand(homeCmd)
}

func runHome(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	home, err := service.New(cfg, GetLogger()).HomeDir(cmd.Context())
	if err != nil {
		return report(cmd, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), home)
	return nil
}
