package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taleakit/talea/pkg/graph"
	taleaio "github.com/taleakit/talea/pkg/io"
	"github.com/taleakit/talea/pkg/render/nodelink"
)

// graphOpts holds the command-line flags for the graph command.
type graphOpts struct {
	output   string
	format   string // "dot", "svg", or "png"; inferred from -o when empty
	detailed bool
}

// newGraphCmd creates the graph command: export the direct-successor graph.
func newGraphCmd() *cobra.Command {
	var opts graphOpts

	cmd := &cobra.Command{
		Use:   "graph <records.json>",
		Short: "Export the direct-successor graph",
		Long: `Export the direct-successor graph built from a record set.

The graph is rendered as Graphviz DOT by default. With --format svg or
--format png (or an output filename ending in .svg or .png) the DOT
source is rendered to an image. Sources are filled light blue, sinks
light grey, and records that are both at once light yellow.

Examples:
  talea graph matches.json
  talea graph matches.json -o matches.svg
  talea graph matches.json --format png -o matches.png --detailed`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)

			records, err := taleaio.ImportRecords(args[0])
			if err != nil {
				return err
			}
			g, err := graph.Build(records)
			if err != nil {
				return err
			}

			format := opts.format
			if format == "" {
				format = inferFormat(opts.output)
			}

			dot := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.detailed})

			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = nodelink.RenderSVG(dot)
			case "png":
				data, err = nodelink.RenderPNG(dot)
			default:
				return fmt.Errorf("unknown format %q (want dot, svg, or png)", format)
			}
			if err != nil {
				return err
			}

			if opts.output == "" {
				if format != "dot" {
					return fmt.Errorf("format %s requires --output", format)
				}
				fmt.Print(dot)
			} else if err := os.WriteFile(opts.output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write graph: %w", err)
			}

			prog.done("Exported graph")
			printStats(g.Len(), len(g.Edges()), false)
			if opts.output != "" {
				printFile(opts.output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty, DOT only)")
	cmd.Flags().StringVar(&opts.format, "format", "", "output format: dot, svg, or png (inferred from --output)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include start/stop/size in node labels")

	return cmd
}

// inferFormat maps an output filename extension to a render format,
// defaulting to DOT.
func inferFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".svg":
		return "svg"
	case ".png":
		return "png"
	default:
		return "dot"
	}
}
