// Package types provides shared type definitions for tokensplit.
//
// This package defines the domain types used across the splitter components:
// chunks of free text, parts of tabular data, split results, and the error
// sentinels every component classifies against.
//
// # Core Types
//
// Chunk is a token-bounded group of text units emitted as one output body:
//
//	chunk := types.Chunk{
//	    Index:      1,
//	    Text:       "First paragraph.\n\nSecond paragraph.",
//	    TokenCount: 17,
//	}
//
// Part is a token-bounded group of tabular rows, always preceded by the
// replicated header line:
//
//	part := types.Part{
//	    Index:  1,
//	    Header: "id,name",
//	    Rows:   []string{"1,alice", "2,bob"},
//	}
//
// # Invariants
//
// A Chunk or Part never exceeds the configured token budget, with one
// documented exception: a body holding exactly one atomic unit or row whose
// own count exceeds the budget. Rows are never subdivided; text units are
// only subdivided by the hard-split fallback in the chunker.
//
// # Errors
//
// Error sentinels are classified with errors.Is:
//
//	if errors.Is(err, types.ErrInvalidBudget) {
//	    // budget must be positive
//	}
package types
