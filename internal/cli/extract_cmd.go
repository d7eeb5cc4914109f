package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/routecat/routecat/internal/config"
	"github.com/routecat/routecat/internal/extract"
)

func newExtractCmd() *cobra.Command {
	var outPath string
	var format string

	cmd := &cobra.Command{
		Use:   "extract <root>",
		Short: "Run all parsers and print the merged route catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadExtractOptions()
			if err != nil {
				return err
			}
			result, err := extract.Extract(args[0], opts)
			if err != nil {
				return err
			}
			return writeRoutes(cmd, result.Routes, outPath, format)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write output to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")

	return cmd
}

func loadExtractOptions() (extract.Options, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return extract.Options{}, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return extract.Options{}, fmt.Errorf("invalid config: %w", err)
	}

	pattern, err := cfg.CompiledRouterIdentifierPattern()
	if err != nil {
		return extract.Options{}, fmt.Errorf("invalid config: %w", err)
	}

	logger := extract.LogFunc(nil)
	if verbose || cfg.Extract.Verbose {
		logger = func(level, format string, args ...any) {
			fmt.Fprintf(os.Stderr, "["+level+"] "+format+"\n", args...)
		}
	}

	return extract.Options{
		TSConfigPath:            cfg.Extract.TSConfigPath,
		Include:                 cfg.Extract.Include,
		RouterFactories:         cfg.Trpc.RouterFactories,
		RouterIdentifierPattern: pattern,
		Logger:                  logger,
	}, nil
}

func writeRoutes(cmd *cobra.Command, routes any, outPath, format string) error {
	var body []byte
	var err error
	switch format {
	case "yaml":
		body, err = yaml.Marshal(routes)
	default:
		body, err = json.MarshalIndent(routes, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	if outPath == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(body))
		return nil
	}
	if err := os.WriteFile(outPath, append(body, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outPath)
	return nil
}
