package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	taleaio "github.com/taleakit/talea/pkg/io"
	"github.com/taleakit/talea/pkg/pipeline"
	"github.com/taleakit/talea/pkg/shortest"
)

// routeOpts holds the command-line flags for the route command.
type routeOpts struct {
	from    int
	to      int
	engine  string // "dijkstra" or "floyd"
	output  string
	weights string
	noCache bool
	dir     string // file cache directory override
	redis   string // redis address; overrides the file cache
}

// newRouteCmd creates the route command: answer one start/end query.
func newRouteCmd() *cobra.Command {
	var opts routeOpts

	cmd := &cobra.Command{
		Use:   "route <records.json> --from <id> --to <id>",
		Short: "Find the cheapest chain between two records",
		Long: `Find the cheapest chain from one record to another.

The default engine is Dijkstra, best for one-off queries. With
--engine floyd the command precomputes all-pairs matrices instead and
caches them, so repeated queries against the same record set skip the
cubic precomputation. The cache is content-addressed: any change to the
records or weights computes fresh matrices.

Examples:
  talea route matches.json --from 1 --to 6
  talea route matches.json --from 1 --to 6 --engine floyd
  talea route matches.json --from 1 --to 6 --engine floyd --redis localhost:6379`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			records, err := taleaio.ImportRecords(args[0])
			if err != nil {
				return err
			}
			weights, err := loadWeights(opts.weights)
			if err != nil {
				return err
			}

			var path shortest.Path
			switch opts.engine {
			case "dijkstra":
				res, err := newPipeline(logger, weights, nil).Route(cmd.Context(), records, opts.from, opts.to)
				if err != nil {
					return err
				}
				path = res.Path

			case "floyd":
				c, err := openCache(cmd.Context(), opts.noCache, opts.dir, opts.redis)
				if err != nil {
					return err
				}
				defer c.Close()

				spin := newSpinner(cmd.Context(), "Computing all-pairs matrices...")
				spin.Start()
				g, m, err := newPipeline(logger, weights, c).AllPairs(cmd.Context(), records)
				if err != nil {
					spin.StopWithError("Matrix computation failed")
					return err
				}
				spin.Stop()

				path, err = m.Path(g, opts.from, opts.to)
				if err != nil {
					return err
				}

			default:
				return fmt.Errorf("unknown engine %q (want dijkstra or floyd)", opts.engine)
			}

			w, closeOut, err := openOutput(opts.output)
			if err != nil {
				return err
			}
			if err := taleaio.WritePath(path, w); err != nil {
				_ = closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return err
			}

			prog.done("Routed")
			printSuccess("%s", pipeline.Describe(path))
			if opts.output != "" {
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.from, "from", 0, "starting record ID")
	cmd.Flags().IntVar(&opts.to, "to", 0, "ending record ID")
	cmd.Flags().StringVar(&opts.engine, "engine", "dijkstra", "path engine: dijkstra or floyd")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.weights, "weights", "", "TOML file with cost-model weights")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the matrix cache")
	cmd.Flags().StringVar(&opts.dir, "cache-dir", "", "matrix cache directory")
	cmd.Flags().StringVar(&opts.redis, "redis", "", "redis address for a shared matrix cache")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
