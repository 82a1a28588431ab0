package shortest

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/taleakit/talea/pkg/cost"
	"github.com/taleakit/talea/pkg/extraction"
	"github.com/taleakit/talea/pkg/graph"
)

func rec(id int, start, stop float64) extraction.Extraction {
	return extraction.Extraction{ID: id, Start: start, Stop: stop, Size: 1}
}

func sevenRecords() []extraction.Extraction {
	return []extraction.Extraction{
		rec(1, 0, 2),
		rec(2, 0, 4),
		rec(3, 2.5, 4.5),
		rec(4, 2, 5.75),
		rec(5, 2, 4),
		rec(6, 6, 7.25),
		rec(7, 4, 5.5),
	}
}

func buildSeven(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.Build(sevenRecords())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g
}

// All sizes are 1, so with default weights each edge costs
// 0.75*gap + 0.125.
func TestShortestPath(t *testing.T) {
	g := buildSeven(t)

	p, skipped, err := ShortestPath(g, cost.Default(), 1, 6)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}
	if got := p.IDs(); !reflect.DeepEqual(got, []int{1, 4, 6}) {
		t.Errorf("path = %v, want [1 4 6]", got)
	}
	if math.Abs(p.Cost-0.4375) > 1e-9 {
		t.Errorf("cost = %v, want 0.4375", p.Cost)
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	g := buildSeven(t)

	// Record 2 starts at the same onset as record 1; neither can follow the
	// other.
	if _, _, err := ShortestPath(g, cost.Default(), 1, 2); !errors.Is(err, ErrNoPath) {
		t.Errorf("ShortestPath(1, 2) = %v, want ErrNoPath", err)
	}
}

func TestShortestPathUnknownRecord(t *testing.T) {
	g := buildSeven(t)

	if _, _, err := ShortestPath(g, cost.Default(), 99, 6); !errors.Is(err, graph.ErrUnknownRecord) {
		t.Errorf("unknown source = %v, want ErrUnknownRecord", err)
	}
	if _, _, err := ShortestPath(g, cost.Default(), 1, 99); !errors.Is(err, graph.ErrUnknownRecord) {
		t.Errorf("unknown target = %v, want ErrUnknownRecord", err)
	}
}

func TestPathToSource(t *testing.T) {
	g := buildSeven(t)
	r, err := Dijkstra(g, cost.Default(), 1)
	if err != nil {
		t.Fatalf("Dijkstra: %v", err)
	}
	p, err := r.PathTo(g, 1)
	if err != nil {
		t.Fatalf("PathTo(source): %v", err)
	}
	if got := p.IDs(); !reflect.DeepEqual(got, []int{1}) || p.Cost != 0 {
		t.Errorf("trivial path = %v cost %v, want [1] cost 0", got, p.Cost)
	}
}

func TestPathEndOverlapInvariant(t *testing.T) {
	g := buildSeven(t)
	p, _, err := ShortestPath(g, cost.Default(), 1, 6)
	if err != nil {
		t.Fatalf("ShortestPath: %v", err)
	}
	for i := 0; i < len(p.Records)-1; i++ {
		if !p.Records[i].EndOverlaps(p.Records[i+1]) {
			t.Errorf("consecutive pair %d -> %d violates end-overlap",
				p.Records[i].ID, p.Records[i+1].ID)
		}
	}
}

func TestBestEndpoints(t *testing.T) {
	g := buildSeven(t)

	best, err := BestEndpoints(g, cost.Default())
	if err != nil {
		t.Fatalf("BestEndpoints: %v", err)
	}
	if best.Source != 1 || best.Target != 6 {
		t.Errorf("best pair = (%d, %d), want (1, 6)", best.Source, best.Target)
	}
	if math.Abs(best.Cost-0.4375) > 1e-9 {
		t.Errorf("best cost = %v, want 0.4375", best.Cost)
	}

	p, err := best.Path(g)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got := p.IDs(); !reflect.DeepEqual(got, []int{1, 4, 6}) {
		t.Errorf("best path = %v, want [1 4 6]", got)
	}
}

func TestBestEndpointsSingleRecord(t *testing.T) {
	g, err := graph.Build([]extraction.Extraction{rec(1, 0, 1)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	best, err := BestEndpoints(g, cost.Default())
	if err != nil {
		t.Fatalf("BestEndpoints: %v", err)
	}
	if best.Source != 1 || best.Target != 1 {
		t.Errorf("best pair = (%d, %d), want (1, 1)", best.Source, best.Target)
	}
	p, err := best.Path(g)
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got := p.IDs(); !reflect.DeepEqual(got, []int{1}) || p.Cost != 0 {
		t.Errorf("path = %v cost %v, want [1] cost 0", got, p.Cost)
	}
}

// When no source/sink pair is connected, a record that is both at once
// forms the answer on its own.
func TestBestEndpointsDisconnected(t *testing.T) {
	g, err := graph.Build([]extraction.Extraction{rec(1, 0, 1), rec(2, 0.5, 2)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	best, err := BestEndpoints(g, cost.Default())
	if err != nil {
		t.Fatalf("BestEndpoints: %v", err)
	}
	if best.Source != best.Target {
		t.Errorf("best pair = (%d, %d), want a trivial pair", best.Source, best.Target)
	}
}

func TestBestEndpointsTieBreak(t *testing.T) {
	// Two identical-range sources reach the sole sink at identical cost; the
	// smaller source ID must win.
	records := []extraction.Extraction{
		rec(2, 0, 1),
		rec(1, 0, 1),
		rec(3, 1, 2),
	}
	g, err := graph.Build(records)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	best, err := BestEndpoints(g, cost.Default())
	if err != nil {
		t.Fatalf("BestEndpoints: %v", err)
	}
	if best.Source != 1 || best.Target != 3 {
		t.Errorf("best pair = (%d, %d), want (1, 3)", best.Source, best.Target)
	}
}

// negativeEdge wraps a model and corrupts the cost of one specific edge,
// simulating a cost-model bug.
type negativeEdge struct {
	inner    cost.Model
	from, to int
}

func (n negativeEdge) Cost(u, v extraction.Extraction) float64 {
	if u.ID == n.from && v.ID == n.to {
		return -1
	}
	return n.inner.Cost(u, v)
}

func TestNegativeCostSkipsEdge(t *testing.T) {
	g := buildSeven(t)
	model := negativeEdge{inner: cost.Default(), from: 1, to: 4}

	r, err := Dijkstra(g, model, 1)
	if err != nil {
		t.Fatalf("Dijkstra: %v", err)
	}
	if len(r.Skipped) != 1 {
		t.Fatalf("Skipped = %v, want exactly one entry", r.Skipped)
	}
	if s := r.Skipped[0]; s.From != 1 || s.To != 4 || s.Cost != -1 {
		t.Errorf("SkippedEdge = %+v, want {1 4 -1}", s)
	}

	// The corrupted edge must not appear in any path; from record 1 the
	// cheapest remaining chain runs through record 5.
	p, err := r.PathTo(g, 6)
	if err != nil {
		t.Fatalf("PathTo: %v", err)
	}
	if got := p.IDs(); !reflect.DeepEqual(got, []int{1, 5, 7, 6}) {
		t.Errorf("path = %v, want [1 5 7 6]", got)
	}

	// With the direct 1->4 edge gone, source 2 now offers the globally
	// cheapest chain.
	best, err := BestEndpoints(g, model)
	if err != nil {
		t.Fatalf("BestEndpoints: %v", err)
	}
	if best.Source != 2 || best.Target != 6 {
		t.Errorf("best pair = (%d, %d), want (2, 6)", best.Source, best.Target)
	}
	if math.Abs(best.Cost-0.625) > 1e-9 {
		t.Errorf("best cost = %v, want 0.625", best.Cost)
	}
	if len(best.Skipped) == 0 {
		t.Error("skipped edge not surfaced by BestEndpoints")
	}
}

func TestSkippedEdgeString(t *testing.T) {
	s := SkippedEdge{From: 1, To: 4, Cost: -1}
	if s.String() == "" {
		t.Error("SkippedEdge.String should describe the edge")
	}
}
