package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/routecat/routecat/internal/config"
	"github.com/routecat/routecat/internal/extract"
	"github.com/routecat/routecat/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <root>",
		Short: "Re-run extraction whenever a source file changes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve root: %w", err)
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}

			opts, err := loadExtractOptions()
			if err != nil {
				return err
			}

			runOnce := func() error {
				result, err := extract.Extract(root, opts)
				if err != nil {
					return err
				}
				body, err := json.MarshalIndent(result.Routes, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(body))
				return nil
			}

			if err := runOnce(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "extract: %v\n", err)
			}

			w, err := watcher.NewWatcher(watcher.WatcherConfig{
				Paths:           []string{root},
				ExcludePatterns: cfg.Watch.Exclude,
			})
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}
			defer w.Close()

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down...")
				cancel()
			}()

			events, err := w.Start(ctx)
			if err != nil {
				return fmt.Errorf("start watcher: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", root)
			for evt := range events {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s %s, re-extracting...\n", evt.Op, evt.Path)
				if err := runOnce(); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "extract: %v\n", err)
				}
			}
			return nil
		},
	}

	return cmd
}
