// Package graph builds the direct-successor graph over a set of extraction
// records.
//
// The builder turns a flat, unordered record collection into an adjacency
// structure under the end-overlap relation. Edges are restricted to *direct*
// successors: for a record u, among all compatible v (stop(u) <= start(v)),
// only those starting before the earliest compatible stop are kept. This
// bounds the branching factor and is what keeps exhaustive enumeration in
// package frontier tractable.
//
// The same adjacency is consumed by both shortest-path engines in package
// shortest, so Dijkstra and Floyd-Warshall always agree on reachability and
// optimal cost.
package graph

import (
	"errors"
	"fmt"
	"sort"

	"github.com/taleakit/talea/pkg/extraction"
)

var (
	// ErrEmptyInput mirrors extraction.ErrEmptyInput for callers that only
	// import this package.
	ErrEmptyInput = extraction.ErrEmptyInput

	// ErrUnknownRecord is returned by lookups when a record ID is not part
	// of the graph.
	ErrUnknownRecord = errors.New("unknown record ID")
)

// Edge is a directed connection between two compatible records.
type Edge struct {
	From int
	To   int
}

// Graph is the immutable direct-successor graph over one record set.
// Records are held sorted by (start, stop, id) so that traversal order,
// successor lists and matrix indices are deterministic across runs.
//
// Build is the only constructor; the zero value is not usable.
type Graph struct {
	records []extraction.Extraction
	index   map[int]int   // record ID -> position in records
	succ    map[int][]int // record ID -> direct successor IDs, ordered
	sources []int
	sinks   []int
	sinkSet map[int]struct{}
}

// Build validates the record collection and constructs its direct-successor
// graph. Returns extraction.ErrEmptyInput for an empty collection and the
// underlying validation error for malformed records or duplicate IDs.
func Build(records []extraction.Extraction) (*Graph, error) {
	if err := extraction.ValidateAll(records); err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	sorted := make([]extraction.Extraction, len(records))
	copy(sorted, records)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		if a.Stop != b.Stop {
			return a.Stop < b.Stop
		}
		return a.ID < b.ID
	})

	g := &Graph{
		records: sorted,
		index:   make(map[int]int, len(sorted)),
		succ:    make(map[int][]int, len(sorted)),
		sinkSet: make(map[int]struct{}),
	}
	for i, r := range sorted {
		g.index[r.ID] = i
	}

	g.classify()
	g.connect()
	return g, nil
}

// classify computes the source and sink sets.
func (g *Graph) classify() {
	for _, u := range g.records {
		if extraction.IsSource(u, g.records) {
			g.sources = append(g.sources, u.ID)
		}
		if extraction.IsSink(u, g.records) {
			g.sinks = append(g.sinks, u.ID)
			g.sinkSet[u.ID] = struct{}{}
		}
	}
}

// connect fills the direct-successor lists. A sink has no outgoing edges by
// definition. For every other record the compatible set is non-empty, so the
// minimum stop over it is always defined.
func (g *Graph) connect() {
	for _, u := range g.records {
		if _, sink := g.sinkSet[u.ID]; sink {
			continue
		}
		minStop := 0.0
		first := true
		for _, v := range g.records {
			if !u.EndOverlaps(v) {
				continue
			}
			if first || v.Stop < minStop {
				minStop = v.Stop
				first = false
			}
		}
		var direct []int
		for _, v := range g.records { // already sorted by (start, stop, id)
			if u.EndOverlaps(v) && v.Start < minStop {
				direct = append(direct, v.ID)
			}
		}
		g.succ[u.ID] = direct
	}
}

// Len returns the number of records in the graph.
func (g *Graph) Len() int { return len(g.records) }

// Records returns the records sorted by (start, stop, id).
// The returned slice is a read-only view; callers must not modify it.
func (g *Graph) Records() []extraction.Extraction { return g.records }

// Record returns the record with the given ID and true, or false if not present.
func (g *Graph) Record(id int) (extraction.Extraction, bool) {
	i, ok := g.index[id]
	if !ok {
		return extraction.Extraction{}, false
	}
	return g.records[i], true
}

// Index returns the record's position in the sorted order, or
// ErrUnknownRecord. Positions are stable for the graph's lifetime and are
// used as matrix coordinates by the Floyd-Warshall engine.
func (g *Graph) Index(id int) (int, error) {
	i, ok := g.index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownRecord, id)
	}
	return i, nil
}

// Successors returns the direct-successor IDs of the record, ordered by
// (start, stop, id). Nil for sinks and unknown IDs. Read-only view.
func (g *Graph) Successors(id int) []int { return g.succ[id] }

// Sources returns the IDs of records with no compatible predecessor,
// ordered by (start, stop, id). Read-only view.
func (g *Graph) Sources() []int { return g.sources }

// Sinks returns the IDs of records with no compatible successor,
// ordered by (start, stop, id). Read-only view.
func (g *Graph) Sinks() []int { return g.sinks }

// IsSink reports whether the record has no compatible successor.
func (g *Graph) IsSink(id int) bool {
	_, ok := g.sinkSet[id]
	return ok
}

// Edges returns every direct-successor edge in deterministic order.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, u := range g.records {
		for _, v := range g.succ[u.ID] {
			edges = append(edges, Edge{From: u.ID, To: v})
		}
	}
	return edges
}

// Span returns the extreme onsets covered by the record set: the smallest
// start and the largest stop over all records.
func (g *Graph) Span() (float64, float64) {
	min := g.records[0].Start
	max := g.records[0].Stop
	for _, r := range g.records {
		if r.Start < min {
			min = r.Start
		}
		if r.Stop > max {
			max = r.Stop
		}
	}
	return min, max
}
