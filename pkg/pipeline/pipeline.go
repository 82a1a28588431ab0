// Package pipeline orchestrates the full optimization flow: validate and
// build the direct-successor graph, run the requested engine, and report
// results with observability hooks around every stage.
//
// The pipeline is the integration point for the optional concerns the core
// engines deliberately avoid: logging, run identification, and caching of
// Floyd-Warshall matrices. The engines themselves stay pure functions of
// their inputs; everything stateful is injected through Options.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taleakit/talea/pkg/cache"
	"github.com/taleakit/talea/pkg/cost"
	"github.com/taleakit/talea/pkg/extraction"
	"github.com/taleakit/talea/pkg/frontier"
	"github.com/taleakit/talea/pkg/graph"
	"github.com/taleakit/talea/pkg/observability"
	"github.com/taleakit/talea/pkg/shortest"
)

// DefaultCacheTTL bounds how long cached matrices are kept. Record sets are
// content-addressed, so the TTL only limits storage growth, not staleness.
const DefaultCacheTTL = 7 * 24 * time.Hour

// Options configures a Pipeline. The zero value is usable: default cost
// weights, no caching, no logging.
type Options struct {
	// Weights parameterizes the built-in linear cost model and the cache
	// key for precomputed matrices.
	Weights cost.Linear

	// Model overrides the linear model entirely. When set, matrix caching
	// is disabled because the cache key cannot describe an arbitrary model.
	Model cost.Model

	// Cache stores Floyd-Warshall matrices between runs. Nil disables
	// caching.
	Cache cache.Cache

	// CacheTTL overrides DefaultCacheTTL when positive.
	CacheTTL time.Duration

	// Logger receives progress and warning messages. Nil discards them.
	Logger func(msg string, args ...any)
}

// Pipeline runs optimization flows over record sets.
type Pipeline struct {
	opts Options
}

// New creates a Pipeline. A zero Weights field falls back to cost.Default().
func New(opts Options) *Pipeline {
	if opts.Weights == (cost.Linear{}) {
		opts.Weights = cost.Default()
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	return &Pipeline{opts: opts}
}

func (p *Pipeline) model() cost.Model {
	if p.opts.Model != nil {
		return p.opts.Model
	}
	return p.opts.Weights
}

func (p *Pipeline) logf(msg string, args ...any) {
	if p.opts.Logger != nil {
		p.opts.Logger(msg, args...)
	}
}

// build validates records and constructs the graph, wrapped in hooks.
func (p *Pipeline) build(ctx context.Context, runID string, records []extraction.Extraction) (*graph.Graph, error) {
	observability.Solve().OnBuildStart(ctx, runID, len(records))
	start := time.Now()
	g, err := graph.Build(records)
	edges := 0
	if g != nil {
		edges = len(g.Edges())
	}
	observability.Solve().OnBuildComplete(ctx, runID, edges, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	p.logf("built graph: %d records, %d edges, %d sources, %d sinks",
		g.Len(), edges, len(g.Sources()), len(g.Sinks()))
	return g, nil
}

// warn reports every skipped edge through the logger and the hooks.
func (p *Pipeline) warn(ctx context.Context, runID string, skipped []shortest.SkippedEdge) {
	for _, s := range skipped {
		p.logf("cost model warning: %s", s)
		observability.Solve().OnCostSkipped(ctx, runID, s.From, s.To, s.Cost)
	}
}

// FrontierResult is the outcome of a frontier run.
type FrontierResult struct {
	RunID  string
	Graph  *graph.Graph
	Chains []frontier.Chain
}

// Frontier enumerates the Pareto-optimal frontier of maximal chains.
func (p *Pipeline) Frontier(ctx context.Context, records []extraction.Extraction) (*FrontierResult, error) {
	runID := uuid.NewString()
	g, err := p.build(ctx, runID, records)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	observability.Solve().OnSolveStart(ctx, runID, "frontier")
	start := time.Now()
	chains := frontier.EnumerateGraph(g)
	observability.Solve().OnSolveComplete(ctx, runID, "frontier", time.Since(start), nil)
	p.logf("enumerated %d maximal chains", len(chains))

	return &FrontierResult{RunID: runID, Graph: g, Chains: chains}, nil
}

// BestResult is the outcome of a best-endpoints run.
type BestResult struct {
	RunID  string
	Graph  *graph.Graph
	Source int
	Target int
	Path   shortest.Path
}

// Best finds the globally cheapest source-to-sink chain via Dijkstra.
func (p *Pipeline) Best(ctx context.Context, records []extraction.Extraction) (*BestResult, error) {
	runID := uuid.NewString()
	g, err := p.build(ctx, runID, records)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	observability.Solve().OnSolveStart(ctx, runID, "dijkstra")
	start := time.Now()
	best, err := shortest.BestEndpoints(g, p.model())
	observability.Solve().OnSolveComplete(ctx, runID, "dijkstra", time.Since(start), err)
	if err != nil {
		return nil, err
	}
	p.warn(ctx, runID, best.Skipped)

	path, err := best.Path(g)
	if err != nil {
		return nil, err
	}
	return &BestResult{RunID: runID, Graph: g, Source: best.Source, Target: best.Target, Path: path}, nil
}

// RouteResult is the outcome of a single (start, end) query.
type RouteResult struct {
	RunID string
	Graph *graph.Graph
	Path  shortest.Path
}

// Route answers one (start, end) query with Dijkstra. Returns
// shortest.ErrNoPath when end is unreachable from start.
func (p *Pipeline) Route(ctx context.Context, records []extraction.Extraction, start, end int) (*RouteResult, error) {
	runID := uuid.NewString()
	g, err := p.build(ctx, runID, records)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	observability.Solve().OnSolveStart(ctx, runID, "dijkstra")
	began := time.Now()
	path, skipped, err := shortest.ShortestPath(g, p.model(), start, end)
	observability.Solve().OnSolveComplete(ctx, runID, "dijkstra", time.Since(began), err)
	p.warn(ctx, runID, skipped)
	if err != nil {
		return nil, err
	}
	return &RouteResult{RunID: runID, Graph: g, Path: path}, nil
}

// AllPairs builds (or restores from cache) the Floyd-Warshall matrices for
// the record set. The returned graph and matrices together answer any
// (start, end) query via Matrices.Path.
func (p *Pipeline) AllPairs(ctx context.Context, records []extraction.Extraction) (*graph.Graph, *shortest.Matrices, error) {
	runID := uuid.NewString()
	g, err := p.build(ctx, runID, records)
	if err != nil {
		return nil, nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	key, cacheable := p.matrixKey(g)
	if cacheable {
		if m, ok := p.cachedMatrices(ctx, g, key); ok {
			p.logf("restored matrices from cache")
			return g, m, nil
		}
	}

	observability.Solve().OnSolveStart(ctx, runID, "floyd-warshall")
	start := time.Now()
	m := shortest.FloydWarshall(g, p.model())
	observability.Solve().OnSolveComplete(ctx, runID, "floyd-warshall", time.Since(start), nil)
	p.warn(ctx, runID, m.Skipped)

	if cacheable {
		p.storeMatrices(ctx, key, m)
	}
	return g, m, nil
}

// matrixKey derives the cache key for the graph's matrices. Runs with a
// custom Model are not cacheable.
func (p *Pipeline) matrixKey(g *graph.Graph) (string, bool) {
	if p.opts.Cache == nil {
		return "", false
	}
	if p.opts.Model != nil {
		p.logf("matrix caching disabled: custom cost model has no cache identity")
		return "", false
	}
	return cache.MatrixKey(g.Records(), p.opts.Weights), true
}

func (p *Pipeline) cachedMatrices(ctx context.Context, g *graph.Graph, key string) (*shortest.Matrices, bool) {
	data, ok, err := p.opts.Cache.Get(ctx, key)
	if err != nil {
		p.logf("cache read failed: %v", err)
		return nil, false
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, "matrices")
		return nil, false
	}
	m, err := shortest.DecodeMatrices(data, g)
	if err != nil {
		p.logf("cache entry unusable: %v", err)
		_ = p.opts.Cache.Delete(ctx, key)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "matrices")
	return m, true
}

func (p *Pipeline) storeMatrices(ctx context.Context, key string, m *shortest.Matrices) {
	data, err := m.MarshalBinary()
	if err != nil {
		p.logf("cache write skipped: %v", err)
		return
	}
	if err := p.opts.Cache.Set(ctx, key, data, p.opts.CacheTTL); err != nil {
		p.logf("cache write failed: %v", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "matrices", len(data))
}

// Describe summarizes a path for logs: "3 records, cost 1.2500, 0.0-7.25".
func Describe(path shortest.Path) string {
	if len(path.Records) == 0 {
		return "empty path"
	}
	first := path.Records[0]
	last := path.Records[len(path.Records)-1]
	return fmt.Sprintf("%d records, cost %.4f, %v-%v", len(path.Records), path.Cost, first.Start, last.Stop)
}
