package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/taleakit/talea/pkg/extraction"
	"github.com/taleakit/talea/pkg/frontier"
	"github.com/taleakit/talea/pkg/shortest"
)

// recordSet is the top-level input document.
type recordSet struct {
	Extractions []extraction.Extraction `json:"extractions"`
}

// chainSet is the frontier output document.
type chainSet struct {
	Chains []chainOut `json:"chains"`
}

type chainOut struct {
	IDs     []int                   `json:"ids"`
	Records []extraction.Extraction `json:"records"`
}

// pathOut is the shortest-path output document.
type pathOut struct {
	Path struct {
		IDs     []int                   `json:"ids"`
		Cost    float64                 `json:"cost"`
		Records []extraction.Extraction `json:"records"`
	} `json:"path"`
}

// ReadRecords decodes a record set from r. It returns an error for malformed
// JSON; content validation is left to graph.Build. ReadRecords does not
// close r.
func ReadRecords(r io.Reader) ([]extraction.Extraction, error) {
	var set recordSet
	if err := json.NewDecoder(r).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return set.Extractions, nil
}

// ImportRecords reads a record set from the JSON file at path.
func ImportRecords(path string) ([]extraction.Extraction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRecords(f)
}

// WriteRecords encodes a record set to w in the input format, payloads
// included, so results can be fed back in for another run.
func WriteRecords(records []extraction.Extraction, w io.Writer) error {
	return encode(w, recordSet{Extractions: records})
}

// WriteChains encodes frontier output to w: one entry per maximal chain,
// with both the id sequence and the full records.
func WriteChains(chains []frontier.Chain, w io.Writer) error {
	out := chainSet{Chains: make([]chainOut, len(chains))}
	for i, c := range chains {
		out.Chains[i] = chainOut{IDs: c.IDs(), Records: c}
	}
	return encode(w, out)
}

// WritePath encodes a shortest-path result to w.
func WritePath(p shortest.Path, w io.Writer) error {
	var out pathOut
	out.Path.IDs = p.IDs()
	out.Path.Cost = p.Cost
	out.Path.Records = p.Records
	return encode(w, out)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
