// Package shortest selects the single cheapest chain of non-overlapping
// records under a pluggable cost model.
//
// Two engines share the direct-successor graph from package graph:
//
//   - Dijkstra, for one-off queries or record sets that change between
//     calls. Runs per source with a min-heap priority queue.
//   - Floyd-Warshall, for many (start, end) queries against one fixed
//     record set. Pays O(n^3) once, then answers any pair from the
//     precomputed distance and next-hop matrices.
//
// Because both engines relax exactly the edges the builder produced, they
// agree on optimal cost for any source/sink pair, up to floating-point
// tolerance, even when several optimal paths exist.
//
// Edges whose cost model output is negative or non-finite are never
// traversed; each skip is reported as a [SkippedEdge] so a buggy cost model
// is observable instead of silently shaping results.
package shortest

import (
	"errors"
	"fmt"

	"github.com/taleakit/talea/pkg/extraction"
	"github.com/taleakit/talea/pkg/graph"
)

// ErrNoPath is returned when the requested start record cannot reach the
// requested end record. Callers iterating source/sink pairs should treat it
// as a normal outcome, not a failure.
var ErrNoPath = errors.New("no path between records")

// SkippedEdge describes a structurally valid edge that was excluded because
// the cost model returned a negative or non-finite value for it. This
// usually indicates a cost-model bug and is surfaced as a warning.
type SkippedEdge struct {
	From int
	To   int
	Cost float64
}

func (s SkippedEdge) String() string {
	return fmt.Sprintf("edge %d->%d skipped: cost %v", s.From, s.To, s.Cost)
}

// Path is a chain of records together with its total edge cost.
type Path struct {
	Records []extraction.Extraction
	Cost    float64
}

// IDs returns the path's record IDs in order.
func (p Path) IDs() []int {
	ids := make([]int, len(p.Records))
	for i, r := range p.Records {
		ids[i] = r.ID
	}
	return ids
}

// resolve maps an id sequence to records from g.
func resolve(g *graph.Graph, ids []int) []extraction.Extraction {
	records := make([]extraction.Extraction, len(ids))
	for i, id := range ids {
		r, _ := g.Record(id)
		records[i] = r
	}
	return records
}

// mergeSkipped appends the src skips that have not been seen yet, keyed by
// (From, To). Used when aggregating warnings across per-source runs.
func mergeSkipped(dst []SkippedEdge, seen map[graph.Edge]struct{}, src []SkippedEdge) []SkippedEdge {
	for _, s := range src {
		k := graph.Edge{From: s.From, To: s.To}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		dst = append(dst, s)
	}
	return dst
}
