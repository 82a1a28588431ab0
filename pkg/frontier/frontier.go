// Package frontier enumerates the Pareto-optimal frontier of maximal
// non-overlapping chains over a record set.
//
// A chain is a sequence of records in which every consecutive pair
// end-overlaps; a maximal chain starts at a source, ends at a sink, and
// follows only direct-successor edges, so no further record can be inserted
// without breaking the end-overlap invariant. The enumerator returns *every*
// such chain, deduplicated, for callers that apply their own secondary
// scoring pass. Use package shortest when a single cheapest chain is wanted.
//
// The traversal is exhaustive and therefore combinatorial in the branching
// factor of the direct-successor graph. For long timelines, Partition splits
// the record set at clean breaks into independently solvable segments first.
package frontier

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/taleakit/talea/pkg/extraction"
	"github.com/taleakit/talea/pkg/graph"
)

// Chain is one maximal sequence of mutually non-overlapping records,
// ordered by onset.
type Chain []extraction.Extraction

// IDs returns the chain's record IDs in path order.
func (c Chain) IDs() []int {
	ids := make([]int, len(c))
	for i, r := range c {
		ids[i] = r.ID
	}
	return ids
}

// key is the chain's structural identity, used for deduplication.
func (c Chain) key() string {
	var b strings.Builder
	for i, r := range c {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(r.ID))
	}
	return b.String()
}

// Enumerate builds the direct-successor graph for records and returns all
// maximal source-to-sink chains. An empty result means no source reaches a
// sink (disconnected graph) and is not an error; an empty input is.
func Enumerate(records []extraction.Extraction) ([]Chain, error) {
	g, err := graph.Build(records)
	if err != nil {
		return nil, fmt.Errorf("enumerate frontier: %w", err)
	}
	return EnumerateGraph(g), nil
}

// EnumerateGraph returns all maximal source-to-sink chains of a graph that
// has already been built. The result is deduplicated by id sequence and
// sorted by onset order, so repeated runs on the same input yield the same
// set of chains in the same order.
func EnumerateGraph(g *graph.Graph) []Chain {
	e := &enumerator{g: g, memo: make(map[int][][]int)}

	var chains []Chain
	seen := make(map[string]struct{})
	for _, source := range g.Sources() {
		for _, ids := range e.descend(source, 0) {
			c := e.resolve(ids)
			k := c.key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			chains = append(chains, c)
		}
	}

	sort.Slice(chains, func(i, j int) bool { return less(chains[i], chains[j]) })
	return chains
}

type enumerator struct {
	g    *graph.Graph
	memo map[int][][]int // record ID -> all id sequences reaching a sink
}

// descend returns every chain suffix from id to a sink, following only
// direct-successor edges. Each call returns an owned list; nothing is
// accumulated in shared state. Sub-results are memoized per node, which is
// sound because the suffix set of a node does not depend on how the node
// was reached.
//
// The depth guard bounds recursion by the record count. The direct-successor
// restriction makes the graph acyclic for valid input, so the guard only
// fires on malformed record sets.
func (e *enumerator) descend(id, depth int) [][]int {
	if depth > e.g.Len() {
		return nil
	}
	if cached, ok := e.memo[id]; ok {
		return cached
	}
	if e.g.IsSink(id) {
		result := [][]int{{id}}
		e.memo[id] = result
		return result
	}

	var result [][]int
	for _, next := range e.g.Successors(id) {
		for _, tail := range e.descend(next, depth+1) {
			seq := make([]int, 0, len(tail)+1)
			seq = append(seq, id)
			seq = append(seq, tail...)
			result = append(result, seq)
		}
	}
	// A non-sink with no surviving suffix is a dead branch; its nil result
	// discards every chain that would have passed through it.
	e.memo[id] = result
	return result
}

// resolve maps an id sequence back to full records, payloads included.
func (e *enumerator) resolve(ids []int) Chain {
	c := make(Chain, len(ids))
	for i, id := range ids {
		r, _ := e.g.Record(id)
		c[i] = r
	}
	return c
}

// less orders chains by their records' (start, stop, id) triples,
// lexicographically over the sequence.
func less(a, b Chain) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		x, y := a[i], b[i]
		if x.Start != y.Start {
			return x.Start < y.Start
		}
		if x.Stop != y.Stop {
			return x.Stop < y.Stop
		}
		if x.ID != y.ID {
			return x.ID < y.ID
		}
	}
	return len(a) < len(b)
}

// DefaultPartitionSize is the minimum segment length Partition aims for
// before cutting at a clean break.
const DefaultPartitionSize = 10

// Partition splits records into independent segments at clean breaks:
// positions where every record seen so far ends at or before the next
// record's start. No chain can cross a clean break, so each segment can be
// enumerated separately and the results concatenated. Segments are at least
// minSize records long except possibly the last; minSize values below 1 are
// treated as DefaultPartitionSize.
//
// The input is re-sorted by (start, stop, id); records are not mutated.
func Partition(records []extraction.Extraction, minSize int) [][]extraction.Extraction {
	if minSize < 1 {
		minSize = DefaultPartitionSize
	}
	if len(records) == 0 {
		return nil
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

	var segments [][]extraction.Extraction
	segStart := 0
	maxStop := sorted[0].Stop
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].Stop > maxStop {
			maxStop = sorted[i].Stop
		}
		cleanBreak := maxStop <= sorted[i+1].Start
		if cleanBreak && i+1-segStart >= minSize {
			segments = append(segments, sorted[segStart:i+1])
			segStart = i + 1
			maxStop = sorted[segStart].Stop
		}
	}
	segments = append(segments, sorted[segStart:])
	return segments
}
