// Package extraction defines the record type shared by every path-finding
// component: a fragment match located on a timeline.
//
// An Extraction is produced by an upstream rolling search against a fragment
// dictionary. This package never interprets what a match is musically; it
// only exposes the onset range, the size attribute used by cost models, and
// an opaque payload that is copied through to results untouched.
//
// # The end-overlap relation
//
// Two extractions are compatible as consecutive path members when the first
// ends at or before the second begins:
//
//	stop(u) <= start(v)
//
// A record with no compatible predecessor is a source; one with no compatible
// successor is a sink. These classifications drive graph construction in
// package graph and path enumeration in package frontier.
package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMalformedRecord is returned by [Extraction.Validate] and [ValidateAll]
	// when a record's onset range is empty or inverted (start >= stop).
	ErrMalformedRecord = errors.New("malformed record: start must precede stop")

	// ErrNonPositiveSize is returned by [Extraction.Validate] when the size
	// attribute is zero or negative. Cost models divide by sums of sizes.
	ErrNonPositiveSize = errors.New("malformed record: size must be positive")

	// ErrDuplicateID is returned by [ValidateAll] when two records share an ID.
	// IDs must be unique for the lifetime of one optimization run.
	ErrDuplicateID = errors.New("duplicate record ID")

	// ErrEmptyInput is returned when a record collection is empty.
	// There is nothing to compute; the call is aborted.
	ErrEmptyInput = errors.New("empty input: no records to process")
)

// Extraction is one candidate fragment match on the shared timeline.
// The half-open onset range [Start, Stop) marks where the match occupies the
// timeline. Size is a positive attribute consumed by cost models (typically
// the number of descriptors the fragment covers). Payload carries the
// matched fragment identity and any modification metadata; it is never
// inspected here, only copied through to output paths.
//
// Records are treated as immutable for the duration of one optimization run.
type Extraction struct {
	ID      int             `json:"id"`
	Start   float64         `json:"start"`
	Stop    float64         `json:"stop"`
	Size    float64         `json:"size"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Validate checks the record's structural invariants.
// Returns ErrMalformedRecord if Start >= Stop, or ErrNonPositiveSize if
// Size <= 0. A valid record satisfies both.
func (e Extraction) Validate() error {
	if e.Start >= e.Stop {
		return fmt.Errorf("%w: record %d has range (%v, %v)", ErrMalformedRecord, e.ID, e.Start, e.Stop)
	}
	if e.Size <= 0 {
		return fmt.Errorf("%w: record %d has size %v", ErrNonPositiveSize, e.ID, e.Size)
	}
	return nil
}

// EndOverlaps reports whether e can be followed by v on a path:
// stop(e) <= start(v). A record never end-overlaps itself, even when two
// distinct records share an identical onset range.
func (e Extraction) EndOverlaps(v Extraction) bool {
	if e.ID == v.ID {
		return false
	}
	return e.Stop <= v.Start
}

// Gap returns the distance between the end of e and the beginning of v.
// Non-negative whenever e end-overlaps v.
func (e Extraction) Gap(v Extraction) float64 {
	return v.Start - e.Stop
}

// String renders the record as "id[start, stop)" for logs and errors.
func (e Extraction) String() string {
	return fmt.Sprintf("%d[%v, %v)", e.ID, e.Start, e.Stop)
}

// ValidateAll validates every record in the collection and checks ID
// uniqueness. Returns ErrEmptyInput for an empty collection; otherwise the
// first validation failure, if any.
func ValidateAll(records []Extraction) error {
	if len(records) == 0 {
		return ErrEmptyInput
	}
	seen := make(map[int]struct{}, len(records))
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return err
		}
		if _, ok := seen[r.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateID, r.ID)
		}
		seen[r.ID] = struct{}{}
	}
	return nil
}

// IsSource reports whether u has no compatible predecessor in records:
// no w (w != u) with stop(w) <= start(u).
func IsSource(u Extraction, records []Extraction) bool {
	for _, w := range records {
		if w.EndOverlaps(u) {
			return false
		}
	}
	return true
}

// IsSink reports whether u has no compatible successor in records:
// no w (w != u) with stop(u) <= start(w).
func IsSink(u Extraction, records []Extraction) bool {
	for _, w := range records {
		if u.EndOverlaps(w) {
			return false
		}
	}
	return true
}
