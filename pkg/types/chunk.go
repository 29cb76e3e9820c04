package types

import "errors"

// Chunk is a token-bounded group of contiguous text units emitted as one
// output body. Units inside a chunk are already joined with the separator
// implied by the segmentation strategy (newline for line mode, blank line
// otherwise).
type Chunk struct {
	// Index is the 1-based emission order of the chunk.
	Index int

	// Text is the complete body of the chunk.
	Text string

	// TokenCount is the chunk's recorded token total: the sum of its
	// constituent unit counts for normally packed chunks, or the direct
	// recount of the fragment text for hard-split fragments.
	TokenCount int

	// HardSplit marks a chunk produced by the oversized-unit fallback.
	HardSplit bool
}

// Validate checks the chunk for structural integrity.
func (c *Chunk) Validate() error {
	if c.Index <= 0 {
		return errors.New("chunk index must be positive")
	}
	if c.Text == "" {
		return errors.New("chunk text cannot be empty")
	}
	if c.TokenCount < 0 {
		return errors.New("chunk token count cannot be negative")
	}
	return nil
}
