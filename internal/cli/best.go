package cli

import (
	"github.com/spf13/cobra"

	taleaio "github.com/taleakit/talea/pkg/io"
	"github.com/taleakit/talea/pkg/pipeline"
)

// bestOpts holds the command-line flags for the best command.
type bestOpts struct {
	output  string // output file path (stdout if empty)
	weights string // TOML weights file; built-in defaults if empty
}

// newBestCmd creates the best command: find the globally cheapest
// source-to-sink chain.
func newBestCmd() *cobra.Command {
	var opts bestOpts

	cmd := &cobra.Command{
		Use:   "best <records.json>",
		Short: "Find the cheapest source-to-sink chain",
		Long: `Run Dijkstra from every source and return the single cheapest
end-to-end chain across all source/sink pairs. Ties are broken towards the
smallest (source, target) ID pair.

The cost model is a weighted sum of onset gap and combined fragment size;
--weights loads alternative weights from a TOML file:

  gap_weight = 0.75
  size_weight = 0.25

Examples:
  talea best matches.json
  talea best matches.json --weights weights.toml -o path.json`,
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

			spin := newSpinner(cmd.Context(), "Searching source/sink pairs...")
			spin.Start()
			res, err := newPipeline(logger, weights, nil).Best(cmd.Context(), records)
			if err != nil {
				spin.StopWithError("No chain found")
				return err
			}
			spin.StopWithSuccess(pipeline.Describe(res.Path))

			w, closeOut, err := openOutput(opts.output)
			if err != nil {
				return err
			}
			if err := taleaio.WritePath(res.Path, w); err != nil {
				_ = closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return err
			}

			prog.done("Selected best chain")
			printDetail("source %d %s target %d", res.Source, iconArrow, res.Target)
			printStats(res.Graph.Len(), len(res.Graph.Edges()), false)
			if opts.output != "" {
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.weights, "weights", "", "TOML file with cost-model weights")

	return cmd
}
