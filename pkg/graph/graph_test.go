package graph

import (
	"errors"
	"reflect"
	"testing"

	"github.com/taleakit/talea/pkg/extraction"
)

func rec(id int, start, stop float64) extraction.Extraction {
	return extraction.Extraction{ID: id, Start: start, Stop: stop, Size: 1}
}

// sevenRecords is a small corpus with two sources, one sink, and exactly
// four maximal chains.
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

func TestBuildAdjacency(t *testing.T) {
	g, err := Build(sevenRecords())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if g.Len() != 7 {
		t.Fatalf("Len = %d, want 7", g.Len())
	}

	// Record 1 ends at 2; its earliest-stopping compatible successor is
	// record 5 (stop 4), so only records starting before 4 are direct.
	wantSucc := map[int][]int{
		1: {5, 4, 3},
		2: {7},
		3: {6},
		4: {6},
		5: {7},
		6: nil,
		7: {6},
	}
	for id, want := range wantSucc {
		if got := g.Successors(id); !reflect.DeepEqual(got, want) {
			t.Errorf("Successors(%d) = %v, want %v", id, got, want)
		}
	}

	if got := g.Sources(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Sources = %v, want [1 2]", got)
	}
	if got := g.Sinks(); !reflect.DeepEqual(got, []int{6}) {
		t.Errorf("Sinks = %v, want [6]", got)
	}
	if !g.IsSink(6) || g.IsSink(7) {
		t.Error("IsSink misclassifies records")
	}

	if got := len(g.Edges()); got != 8 {
		t.Errorf("len(Edges) = %d, want 8", got)
	}
}

func TestBuildSortsRecords(t *testing.T) {
	g, err := Build(sevenRecords())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	wantOrder := []int{1, 2, 5, 4, 3, 7, 6}
	records := g.Records()
	for i, want := range wantOrder {
		if records[i].ID != want {
			t.Fatalf("Records()[%d].ID = %d, want %d", i, records[i].ID, want)
		}
		idx, err := g.Index(want)
		if err != nil {
			t.Fatalf("Index(%d): %v", want, err)
		}
		if idx != i {
			t.Errorf("Index(%d) = %d, want %d", want, idx, i)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name    string
		records []extraction.Extraction
		wantErr error
	}{
		{
			name:    "Empty",
			records: nil,
			wantErr: ErrEmptyInput,
		},
		{
			name:    "Malformed",
			records: []extraction.Extraction{rec(1, 3, 1)},
			wantErr: extraction.ErrMalformedRecord,
		},
		{
			name:    "DuplicateID",
			records: []extraction.Extraction{rec(1, 0, 1), rec(1, 1, 2)},
			wantErr: extraction.ErrDuplicateID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.records); !errors.Is(err, tt.wantErr) {
				t.Errorf("Build = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecordLookup(t *testing.T) {
	g, err := Build(sevenRecords())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	r, ok := g.Record(4)
	if !ok {
		t.Fatal("Record(4) not found")
	}
	if r.Start != 2 || r.Stop != 5.75 {
		t.Errorf("Record(4) = %v, want range (2, 5.75)", r)
	}

	if _, ok := g.Record(99); ok {
		t.Error("Record(99) should not be found")
	}
	if _, err := g.Index(99); !errors.Is(err, ErrUnknownRecord) {
		t.Errorf("Index(99) = %v, want ErrUnknownRecord", err)
	}
}

func TestSpan(t *testing.T) {
	g, err := Build(sevenRecords())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	min, max := g.Span()
	if min != 0 || max != 7.25 {
		t.Errorf("Span = (%v, %v), want (0, 7.25)", min, max)
	}
}

func TestLoneRecord(t *testing.T) {
	g, err := Build([]extraction.Extraction{rec(1, 0, 1)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !reflect.DeepEqual(g.Sources(), []int{1}) || !reflect.DeepEqual(g.Sinks(), []int{1}) {
		t.Error("a lone record must be both source and sink")
	}
	if g.Successors(1) != nil {
		t.Errorf("Successors(1) = %v, want nil", g.Successors(1))
	}
}

// Incompatible records (mutual interior overlap) produce a graph with no
// edges where every record is simultaneously source and sink.
func TestDisconnected(t *testing.T) {
	g, err := Build([]extraction.Extraction{rec(1, 0, 1), rec(2, 0, 2)})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Edges()) != 0 {
		t.Errorf("Edges = %v, want none", g.Edges())
	}
	if !reflect.DeepEqual(g.Sources(), []int{1, 2}) {
		t.Errorf("Sources = %v, want [1 2]", g.Sources())
	}
	if !reflect.DeepEqual(g.Sinks(), []int{1, 2}) {
		t.Errorf("Sinks = %v, want [1 2]", g.Sinks())
	}
}
