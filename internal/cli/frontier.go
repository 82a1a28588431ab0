package cli

import (
	"github.com/spf13/cobra"

	"github.com/taleakit/talea/pkg/cost"
	"github.com/taleakit/talea/pkg/frontier"
	taleaio "github.com/taleakit/talea/pkg/io"
)

// frontierOpts holds the command-line flags for the frontier command.
type frontierOpts struct {
	output    string // output file path (stdout if empty)
	partition int    // minimum segment size; 0 disables partitioning
}

// newFrontierCmd creates the frontier command: enumerate every maximal
// non-overlapping chain of a record set.
func newFrontierCmd() *cobra.Command {
	var opts frontierOpts

	cmd := &cobra.Command{
		Use:   "frontier <records.json>",
		Short: "Enumerate every maximal non-overlapping chain",
		Long: `Enumerate the Pareto-optimal frontier: every maximal chain of
end-overlapping records from a source to a sink, deduplicated.

The enumeration is exhaustive and can grow combinatorially on long
timelines; --partition splits the input at clean breaks into independent
segments first.

Examples:
  talea frontier matches.json
  talea frontier matches.json --partition 10 -o chains.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			records, err := taleaio.ImportRecords(args[0])
			if err != nil {
				return err
			}

			p := newPipeline(logger, cost.Default(), nil)

			var chains []frontier.Chain
			if opts.partition > 0 {
				for _, segment := range frontier.Partition(records, opts.partition) {
					res, err := p.Frontier(cmd.Context(), segment)
					if err != nil {
						return err
					}
					chains = append(chains, res.Chains...)
				}
			} else {
				res, err := p.Frontier(cmd.Context(), records)
				if err != nil {
					return err
				}
				chains = res.Chains
			}

			w, closeOut, err := openOutput(opts.output)
			if err != nil {
				return err
			}
			if err := taleaio.WriteChains(chains, w); err != nil {
				_ = closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return err
			}

			prog.done("Enumerated frontier")
			printSuccess("%d maximal chains from %d records", len(chains), len(records))
			if opts.output != "" {
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().IntVar(&opts.partition, "partition", 0, "split input at clean breaks into segments of at least this many records")

	return cmd
}
