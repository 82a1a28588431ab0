// Package cost defines the pluggable edge-cost model used by the
// shortest-path engines.
//
// A cost model maps an ordered pair of compatible records to a non-negative
// real number. The engines treat a negative or non-finite cost as a bug in
// the model: the edge is skipped and the skip is surfaced to the caller as a
// warning rather than silently dropped.
package cost

import (
	"fmt"
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/taleakit/talea/pkg/extraction"
)

// Model computes the cost of moving from record u to record v.
// Implementations must be pure: no state may persist between optimization
// runs, and the same pair must always yield the same cost.
type Model interface {
	Cost(u, v extraction.Extraction) float64
}

// Linear is the default cost model: a weighted sum of the onset gap between
// the two records and the reciprocal of their combined size.
//
//	cost(u, v) = GapWeight*(start(v) - stop(u)) + SizeWeight*(1/(size(u)+size(v)))
//
// Small gaps and large fragments are cheap, so minimal-cost paths prefer
// dense coverage by substantial matches. Weights should sum to 1.
type Linear struct {
	GapWeight  float64 `toml:"gap_weight"`
	SizeWeight float64 `toml:"size_weight"`
}

// Default returns the Linear weights found by hyperparameter search on
// annotated compositions.
func Default() Linear {
	return Linear{GapWeight: 0.75, SizeWeight: 0.25}
}

// Cost implements Model.
func (l Linear) Cost(u, v extraction.Extraction) float64 {
	return l.GapWeight*u.Gap(v) + l.SizeWeight*(1/(u.Size+v.Size))
}

// Valid reports whether c is usable as an edge cost: finite and
// non-negative. The engines skip edges whose cost fails this check.
func Valid(c float64) bool {
	return c >= 0 && !math.IsNaN(c) && !math.IsInf(c, 0)
}

// LoadWeights reads Linear weights from a TOML file:
//
//	gap_weight = 0.75
//	size_weight = 0.25
//
// Missing keys keep the Default values.
func LoadWeights(path string) (Linear, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Linear{}, fmt.Errorf("read weights %s: %w", path, err)
	}
	return ParseWeights(data)
}

// ParseWeights decodes Linear weights from TOML data, starting from the
// Default values.
func ParseWeights(data []byte) (Linear, error) {
	l := Default()
	if err := toml.Unmarshal(data, &l); err != nil {
		return Linear{}, fmt.Errorf("parse weights: %w", err)
	}
	if l.GapWeight < 0 || l.SizeWeight < 0 {
		return Linear{}, fmt.Errorf("parse weights: weights must be non-negative, got gap=%v size=%v", l.GapWeight, l.SizeWeight)
	}
	return l, nil
}
