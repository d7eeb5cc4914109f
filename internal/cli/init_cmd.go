package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/routecat/routecat/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter .routecat.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			const path = ".routecat.yaml"
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.WriteConfig(config.Default(), path); err != nil {
				return fmt.Errorf("write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}
}
