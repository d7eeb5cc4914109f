package cli

import (
	"github.com/spf13/cobra"

	"github.com/routecat/routecat/internal/extract"
)

// trpcAggregate is the JSON/YAML shape emitted by `routecat trpc`: the
// route list plus the raw per-procedure and per-router node lists.
type trpcAggregate struct {
	Routes  any `json:"routes" yaml:"routes"`
	Procs   any `json:"procedures" yaml:"procedures"`
	Routers any `json:"routers" yaml:"routers"`
}

func newTrpcCmd() *cobra.Command {
	var outPath string
	var format string

	cmd := &cobra.Command{
		Use:   "trpc <root>",
		Short: "Run only the tRPC parser and print its full aggregate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadExtractOptions()
			if err != nil {
				return err
			}
			result, err := extract.ExtractTrpc(args[0], opts)
			if err != nil {
				return err
			}
			agg := trpcAggregate{Routes: result.Routes, Procs: result.TrpcProcs, Routers: result.TrpcRouters}
			return writeRoutes(cmd, agg, outPath, format)
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "", "write output to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")

	return cmd
}
