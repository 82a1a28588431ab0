package frontier_test

import (
	"fmt"

	"github.com/taleakit/talea/pkg/extraction"
	"github.com/taleakit/talea/pkg/frontier"
)

func ExampleEnumerate() {
	// Three matches on a short timeline: two fit back to back, one overlaps
	// them both.
	records := []extraction.Extraction{
		{ID: 1, Start: 0, Stop: 2, Size: 2},
		{ID: 2, Start: 2, Stop: 4, Size: 2},
		{ID: 3, Start: 1, Stop: 3, Size: 4},
	}

	chains, _ := frontier.Enumerate(records)
	for _, c := range chains {
		fmt.Println(c.IDs())
	}
	// Output:
	// [1 2]
	// [3]
}

func ExamplePartition() {
	// A clean break after record 2 lets both halves be solved independently.
	records := []extraction.Extraction{
		{ID: 1, Start: 0, Stop: 1, Size: 1},
		{ID: 2, Start: 1, Stop: 2, Size: 1},
		{ID: 3, Start: 2, Stop: 3, Size: 1},
		{ID: 4, Start: 3, Stop: 4, Size: 1},
	}

	for _, seg := range frontier.Partition(records, 2) {
		fmt.Println(len(seg))
	}
	// Output:
	// 2
	// 2
}
