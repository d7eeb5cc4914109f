// Package cli implements the command-line interface for routecat.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "routecat",
	Short: "routecat - static HTTP route catalogue extractor for TypeScript projects",
	Long: `routecat statically analyzes a TypeScript project's source and emits a
normalized catalogue of HTTP-callable endpoints: Next.js app-router and
pages-router handlers, and tRPC procedure trees.

Commands:
  extract    Run all parsers and print the merged route catalogue
  trpc       Run only the tRPC parser and print its full aggregate
  watch      Re-run extraction whenever a source file changes
  init       Write a starter .routecat.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .routecat.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	bindFlag := func(key, flag string) {
		if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind %s flag: %v", flag, err))
		}
	}
	bindFlag("config_file", "config")

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newTrpcCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}
