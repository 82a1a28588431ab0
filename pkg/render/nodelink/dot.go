// Package nodelink renders the direct-successor graph as a node-link
// diagram, for inspecting what the builder produced before the solvers run.
// Sources and sinks get distinct fills so dead branches and disconnected
// spans are visible at a glance.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/taleakit/talea/pkg/graph"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed includes the onset range and size in node labels.
	// When false, only the record ID is shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT format. The resulting DOT string
// can be rendered with [RenderSVG] or [RenderPNG].
func ToDOT(g *graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=24, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, r := range g.Records() {
		label := fmtLabel(g, r.ID, opts.Detailed)
		attrs := fmtAttrs(g, r.ID, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", fmt.Sprint(r.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %q -> %q;\n", fmt.Sprint(e.From), fmt.Sprint(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, id int, detailed bool) string {
	if !detailed {
		return fmt.Sprint(id)
	}
	r, _ := g.Record(id)
	return fmt.Sprintf("%d\n[%v, %v)\nsize: %v", r.ID, r.Start, r.Stop, r.Size)
}

func fmtAttrs(g *graph.Graph, id int, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	isSource := contains(g.Sources(), id)
	switch {
	case isSource && g.IsSink(id):
		attrs = append(attrs, "fillcolor=lightyellow")
	case isSource:
		attrs = append(attrs, "fillcolor=lightblue")
	case g.IsSink(id):
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	return attrs
}

func contains(ids []int, id int) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	return render(dot, graphviz.SVG)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
