package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/denysvitali/dirscope-runtime/pkg/config"
	"github.com/denysvitali/dirscope-runtime/pkg/service"
)

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List the immediate children of a directory",
	Long: `List the immediate children of a directory sorted by name.
Without a path the home directory is listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)

	lsCmd.Flags().StringP("output", "o", outputTable, "Output format (table, json, yaml)")
	_ = viper.BindPFlag("ls.output", lsCmd.Flags().Lookup("output"))
}

func runLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	svc := service.New(cfg, GetLogger())
	ctx := cmd.Context()

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		path, err = svc.HomeDir(ctx)
		if err != nil {
			return report(cmd, err)
		}
	}

	listing, err := svc.ListDir(ctx, path)
	if err != nil {
		return report(cmd, err)
	}

	return renderListing(cmd.OutOrStdout(), path, listing, viper.GetString("ls.output"))
}
