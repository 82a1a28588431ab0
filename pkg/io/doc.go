// Package io reads and writes the JSON interchange format for record sets
// and optimization results.
//
// # Input format
//
// A record set is a JSON object with an "extractions" array:
//
//	{
//	  "extractions": [
//	    {"id": 1, "start": 0.0, "stop": 2.0, "size": 3,
//	     "payload": {"fragment": "ragavardhana"}}
//	  ]
//	}
//
// Each record needs an integer "id", a half-open "start"/"stop" range and a
// positive "size". The optional "payload" is carried through untouched:
// this package never inspects it, and every record appearing in an output
// chain keeps its payload content unchanged.
//
// # Output formats
//
// Frontier results are written as {"chains": [...]} where each chain lists
// its records in path order. Shortest-path results are written as a single
// {"path": {...}} object with the total cost.
//
// Structural validation (empty input, duplicate IDs, inverted ranges)
// happens in graph.Build, not here; this package only guarantees
// well-formed JSON.
package io
