package shortest

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/taleakit/talea/pkg/cost"
	"github.com/taleakit/talea/pkg/graph"
)

// Matrices holds the all-pairs state computed by [FloydWarshall]: an n x n
// distance matrix and an n x n next-hop matrix over the graph's sorted
// record order. Unconnected cells hold +Inf distance and a -1 hop.
//
// Prefer this engine when one fixed record set will answer many
// (start, end) queries; the O(n^3) precomputation amortizes across them.
// For one-off queries use [ShortestPath].
type Matrices struct {
	ids     []int // record IDs in the graph's sorted order
	dist    [][]float64
	next    [][]int
	Skipped []SkippedEdge
}

// FloydWarshall computes all-pairs cheapest distances over the
// direct-successor edge set of g, so its answers match [Dijkstra] for every
// pair. Negative or non-finite edge costs exclude the edge and are recorded
// in Matrices.Skipped.
func FloydWarshall(g *graph.Graph, model cost.Model) *Matrices {
	n := g.Len()
	records := g.Records()

	m := &Matrices{
		ids:  make([]int, n),
		dist: make([][]float64, n),
		next: make([][]int, n),
	}
	for i, r := range records {
		m.ids[i] = r.ID
		m.dist[i] = make([]float64, n)
		m.next[i] = make([]int, n)
		for j := range m.dist[i] {
			m.dist[i][j] = math.Inf(1)
			m.next[i][j] = -1
		}
		m.dist[i][i] = 0
		m.next[i][i] = i
	}

	for i, u := range records {
		for _, vID := range g.Successors(u.ID) {
			j, _ := g.Index(vID)
			c := model.Cost(u, records[j])
			if !cost.Valid(c) {
				m.Skipped = append(m.Skipped, SkippedEdge{From: u.ID, To: vID, Cost: c})
				continue
			}
			m.dist[i][j] = c
			m.next[i][j] = j
		}
	}

	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if m.dist[i][k]+m.dist[k][j] < m.dist[i][j] {
					m.dist[i][j] = m.dist[i][k] + m.dist[k][j]
					m.next[i][j] = m.next[i][k]
				}
			}
		}
	}

	return m
}

// Cost returns the total cost of the cheapest path from start to end.
// Returns ErrNoPath when end is unreachable and graph.ErrUnknownRecord for
// IDs outside the matrix.
func (m *Matrices) Cost(start, end int) (float64, error) {
	i, j, err := m.locate(start, end)
	if err != nil {
		return 0, err
	}
	if math.IsInf(m.dist[i][j], 1) {
		return 0, fmt.Errorf("%w: %d -> %d", ErrNoPath, start, end)
	}
	return m.dist[i][j], nil
}

// Path follows next-hops from start until reaching end. Returns ErrNoPath
// when the endpoints have no connecting hop; start == end yields the trivial
// single-record path of cost zero.
func (m *Matrices) Path(g *graph.Graph, start, end int) (Path, error) {
	i, j, err := m.locate(start, end)
	if err != nil {
		return Path{}, err
	}
	if m.next[i][j] == -1 {
		return Path{}, fmt.Errorf("%w: %d -> %d", ErrNoPath, start, end)
	}

	ids := []int{m.ids[i]}
	for cur := i; cur != j; {
		cur = m.next[cur][j]
		if cur == -1 || len(ids) > len(m.ids) {
			return Path{}, fmt.Errorf("%w: %d -> %d", ErrNoPath, start, end)
		}
		ids = append(ids, m.ids[cur])
	}
	return Path{Records: resolve(g, ids), Cost: m.dist[i][j]}, nil
}

func (m *Matrices) locate(start, end int) (int, int, error) {
	i, j := -1, -1
	for idx, id := range m.ids {
		if id == start {
			i = idx
		}
		if id == end {
			j = idx
		}
	}
	if i == -1 {
		return 0, 0, fmt.Errorf("floyd-warshall: %w: %d", graph.ErrUnknownRecord, start)
	}
	if j == -1 {
		return 0, 0, fmt.Errorf("floyd-warshall: %w: %d", graph.ErrUnknownRecord, end)
	}
	return i, j, nil
}

// matricesWire is the cache serialization form. JSON cannot carry +Inf, so
// unreachable distances travel as nulls.
type matricesWire struct {
	IDs  []int        `json:"ids"`
	Dist [][]*float64 `json:"dist"`
	Next [][]int      `json:"next"`
}

// MarshalBinary encodes the matrices for caching. Skipped-edge warnings are
// not persisted; they belong to the run that computed the matrices.
func (m *Matrices) MarshalBinary() ([]byte, error) {
	w := matricesWire{IDs: m.ids, Next: m.next, Dist: make([][]*float64, len(m.dist))}
	for i, row := range m.dist {
		w.Dist[i] = make([]*float64, len(row))
		for j, d := range row {
			if !math.IsInf(d, 1) {
				v := d
				w.Dist[i][j] = &v
			}
		}
	}
	return json.Marshal(w)
}

// DecodeMatrices restores cached matrices and verifies they belong to g:
// the cached ID order must match the graph's sorted record order exactly.
func DecodeMatrices(data []byte, g *graph.Graph) (*Matrices, error) {
	var w matricesWire
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode matrices: %w", err)
	}
	n := g.Len()
	if len(w.IDs) != n {
		return nil, fmt.Errorf("decode matrices: cached %d records, graph has %d", len(w.IDs), n)
	}
	for i, r := range g.Records() {
		if w.IDs[i] != r.ID {
			return nil, fmt.Errorf("decode matrices: cached order diverges from graph at position %d", i)
		}
	}
	if len(w.Dist) != n || len(w.Next) != n {
		return nil, fmt.Errorf("decode matrices: cached %dx%d matrices, graph has %d records", len(w.Dist), len(w.Next), n)
	}
	for i := 0; i < n; i++ {
		if len(w.Dist[i]) != n || len(w.Next[i]) != n {
			return nil, fmt.Errorf("decode matrices: row %d is truncated", i)
		}
	}

	m := &Matrices{ids: w.IDs, next: w.Next, dist: make([][]float64, len(w.Dist))}
	for i, row := range w.Dist {
		m.dist[i] = make([]float64, len(row))
		for j, d := range row {
			if d == nil {
				m.dist[i][j] = math.Inf(1)
			} else {
				m.dist[i][j] = *d
			}
		}
	}
	return m, nil
}
