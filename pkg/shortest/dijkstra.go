package shortest

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/taleakit/talea/pkg/cost"
	"github.com/taleakit/talea/pkg/graph"
)

// Result holds the single-source shortest-path state computed by [Dijkstra]:
// the best known distance from Source to every record and the predecessor of
// each reached record for path reconstruction.
type Result struct {
	Source  int
	Dist    map[int]float64 // record ID -> total cost from Source (+Inf if unreachable)
	Pred    map[int]int     // record ID -> predecessor on the cheapest path
	Skipped []SkippedEdge
}

// Dijkstra computes cheapest paths from source to every reachable record
// over the direct-successor graph, using a min-heap with lazy decrease-key.
// Returns graph.ErrUnknownRecord if source is not part of g.
//
// Edge costs come from model; negative or non-finite costs exclude the edge
// and are recorded in Result.Skipped.
func Dijkstra(g *graph.Graph, model cost.Model, source int) (*Result, error) {
	if _, ok := g.Record(source); !ok {
		return nil, fmt.Errorf("dijkstra: %w: %d", graph.ErrUnknownRecord, source)
	}

	r := &Result{
		Source: source,
		Dist:   make(map[int]float64, g.Len()),
		Pred:   make(map[int]int, g.Len()),
	}
	for _, rec := range g.Records() {
		r.Dist[rec.ID] = math.Inf(1)
	}
	r.Dist[source] = 0

	visited := make(map[int]bool, g.Len())
	pq := &queue{}
	heap.Init(pq)
	heap.Push(pq, item{id: source, dist: 0})

	for pq.Len() > 0 {
		it := heap.Pop(pq).(item)
		u := it.id
		if visited[u] {
			continue // stale heap entry
		}
		visited[u] = true

		uRec, _ := g.Record(u)
		for _, v := range g.Successors(u) {
			vRec, _ := g.Record(v)
			c := model.Cost(uRec, vRec)
			if !cost.Valid(c) {
				r.Skipped = append(r.Skipped, SkippedEdge{From: u, To: v, Cost: c})
				continue
			}
			alt := r.Dist[u] + c
			if alt < r.Dist[v] {
				r.Dist[v] = alt
				r.Pred[v] = u
				heap.Push(pq, item{id: v, dist: alt})
			}
		}
	}

	return r, nil
}

// PathTo reconstructs the cheapest path from the result's source to target
// by walking the predecessor map backwards. Returns ErrNoPath if target was
// never reached; the source itself yields a single-record path of cost zero.
func (r *Result) PathTo(g *graph.Graph, target int) (Path, error) {
	if _, ok := g.Record(target); !ok {
		return Path{}, fmt.Errorf("dijkstra: %w: %d", graph.ErrUnknownRecord, target)
	}
	if target == r.Source {
		return Path{Records: resolve(g, []int{target})}, nil
	}
	if _, ok := r.Pred[target]; !ok {
		return Path{}, fmt.Errorf("%w: %d -> %d", ErrNoPath, r.Source, target)
	}

	ids := []int{target}
	for steps := 0; ids[0] != r.Source; steps++ {
		if steps > len(r.Pred) {
			return Path{}, fmt.Errorf("%w: predecessor walk from %d did not terminate", ErrNoPath, target)
		}
		prev := r.Pred[ids[0]]
		ids = append([]int{prev}, ids...)
	}
	return Path{Records: resolve(g, ids), Cost: r.Dist[target]}, nil
}

// ShortestPath runs Dijkstra from one source and reconstructs the cheapest
// path to target. The skipped-edge warnings are returned alongside the path
// so callers can surface them even on the ErrNoPath outcome.
func ShortestPath(g *graph.Graph, model cost.Model, source, target int) (Path, []SkippedEdge, error) {
	r, err := Dijkstra(g, model, source)
	if err != nil {
		return Path{}, nil, err
	}
	p, err := r.PathTo(g, target)
	return p, r.Skipped, err
}

// Best is the outcome of [BestEndpoints]: the cheapest end-to-end pair over
// all sources and sinks, with the winning source's predecessor map retained
// for reconstruction.
type Best struct {
	Source  int
	Target  int
	Cost    float64
	Result  *Result
	Skipped []SkippedEdge // aggregated over every per-source run
}

// Path reconstructs the winning chain.
func (b *Best) Path(g *graph.Graph) (Path, error) {
	return b.Result.PathTo(g, b.Target)
}

// BestEndpoints runs Dijkstra once per source and returns the globally
// cheapest source-to-sink path. Ties are broken deterministically: sources
// and sinks are iterated in ascending ID order and a candidate replaces the
// incumbent only when strictly cheaper, so the lexicographically smallest
// (source ID, target ID) pair among equal-cost candidates wins.
//
// A source spanning the entire timeline is its own best sink: the trivial
// single-record path of cost zero is returned immediately. When no
// compatible pair is connected, a record that is both source and sink (if
// any) yields the trivial path; otherwise ErrNoPath.
func BestEndpoints(g *graph.Graph, model cost.Model) (*Best, error) {
	minOnset, maxOnset := g.Span()
	for _, s := range g.Sources() {
		rec, _ := g.Record(s)
		if rec.Start == minOnset && rec.Stop == maxOnset {
			r, err := Dijkstra(g, model, s)
			if err != nil {
				return nil, err
			}
			return &Best{Source: s, Target: s, Result: r, Skipped: r.Skipped}, nil
		}
	}

	var best *Best
	var skipped []SkippedEdge
	seen := make(map[graph.Edge]struct{})

	for _, s := range sortedByID(g.Sources()) {
		r, err := Dijkstra(g, model, s)
		if err != nil {
			return nil, err
		}
		skipped = mergeSkipped(skipped, seen, r.Skipped)

		sRec, _ := g.Record(s)
		for _, t := range sortedByID(g.Sinks()) {
			tRec, _ := g.Record(t)
			if !sRec.EndOverlaps(tRec) {
				continue
			}
			d := r.Dist[t]
			if math.IsInf(d, 1) {
				continue
			}
			if best == nil || d < best.Cost {
				best = &Best{Source: s, Target: t, Cost: d, Result: r}
			}
		}
	}

	if best == nil {
		if b, ok := trivialBest(g, model); ok {
			b.Skipped = mergeSkipped(b.Skipped, seen, skipped)
			return b, nil
		}
		return nil, fmt.Errorf("%w: no source reaches any sink", ErrNoPath)
	}
	best.Skipped = skipped
	return best, nil
}

// trivialBest finds the first record that is simultaneously a source and a
// sink, in (start, stop, id) order. Such a record forms a complete chain on
// its own, which is the only answer left when the graph has no edges
// between any compatible source/sink pair.
func trivialBest(g *graph.Graph, model cost.Model) (*Best, bool) {
	for _, s := range g.Sources() {
		if !g.IsSink(s) {
			continue
		}
		r, err := Dijkstra(g, model, s)
		if err != nil {
			return nil, false
		}
		return &Best{Source: s, Target: s, Result: r, Skipped: r.Skipped}, true
	}
	return nil, false
}

// sortedByID returns a copy of ids in ascending order.
func sortedByID(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	sort.Ints(out)
	return out
}

// item is a heap entry: a record and its tentative distance from the source.
type item struct {
	id   int
	dist float64
}

// queue is a min-heap of items ordered by distance. Stale entries from the
// lazy decrease-key strategy are discarded on pop via the visited set.
type queue []item

func (q queue) Len() int            { return len(q) }
func (q queue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q queue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x interface{}) { *q = append(*q, x.(item)) }
func (q *queue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
