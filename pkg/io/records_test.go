package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/taleakit/talea/pkg/extraction"
	"github.com/taleakit/talea/pkg/frontier"
	"github.com/taleakit/talea/pkg/shortest"
)

func TestRecordsRoundTrip(t *testing.T) {
	records := []extraction.Extraction{
		{ID: 1, Start: 0, Stop: 2, Size: 3, Payload: json.RawMessage(`"peon_iv"`)},
		{ID: 2, Start: 2, Stop: 4, Size: 2},
	}

	var buf bytes.Buffer
	if err := WriteRecords(records, &buf); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	got, err := ReadRecords(&buf)
	if err != nil {
		t.Fatalf("ReadRecords: %v", err)
	}
	if !reflect.DeepEqual(got, records) {
		t.Errorf("round trip = %+v, want %+v", got, records)
	}
}

func TestReadRecordsMalformed(t *testing.T) {
	if _, err := ReadRecords(strings.NewReader("{broken")); err == nil {
		t.Error("ReadRecords should reject malformed JSON")
	}
}

func TestImportRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	doc := `{"extractions":[{"id":1,"start":0,"stop":2,"size":3}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := ImportRecords(path)
	if err != nil {
		t.Fatalf("ImportRecords: %v", err)
	}
	if len(got) != 1 || got[0].ID != 1 || got[0].Stop != 2 {
		t.Errorf("ImportRecords = %+v", got)
	}

	if _, err := ImportRecords(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportRecords on a missing file should fail")
	}
}

func TestWriteChains(t *testing.T) {
	chains := []frontier.Chain{
		{
			{ID: 1, Start: 0, Stop: 2, Size: 1},
			{ID: 2, Start: 2, Stop: 4, Size: 1},
		},
	}

	var buf bytes.Buffer
	if err := WriteChains(chains, &buf); err != nil {
		t.Fatalf("WriteChains: %v", err)
	}

	var doc struct {
		Chains []struct {
			IDs     []int                   `json:"ids"`
			Records []extraction.Extraction `json:"records"`
		} `json:"chains"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(doc.Chains) != 1 {
		t.Fatalf("chains = %d, want 1", len(doc.Chains))
	}
	if !reflect.DeepEqual(doc.Chains[0].IDs, []int{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", doc.Chains[0].IDs)
	}
	if len(doc.Chains[0].Records) != 2 {
		t.Errorf("records = %d, want 2", len(doc.Chains[0].Records))
	}
}

func TestWritePath(t *testing.T) {
	p := shortest.Path{
		Records: []extraction.Extraction{
			{ID: 1, Start: 0, Stop: 2, Size: 1},
			{ID: 6, Start: 6, Stop: 7.25, Size: 1},
		},
		Cost: 0.4375,
	}

	var buf bytes.Buffer
	if err := WritePath(p, &buf); err != nil {
		t.Fatalf("WritePath: %v", err)
	}

	var doc struct {
		Path struct {
			IDs  []int   `json:"ids"`
			Cost float64 `json:"cost"`
		} `json:"path"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !reflect.DeepEqual(doc.Path.IDs, []int{1, 6}) {
		t.Errorf("ids = %v, want [1 6]", doc.Path.IDs)
	}
	if doc.Path.Cost != 0.4375 {
		t.Errorf("cost = %v, want 0.4375", doc.Path.Cost)
	}
}
