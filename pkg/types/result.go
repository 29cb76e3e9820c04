package types

// Result describes the outcome of one split operation. Bodies and
// TokenCounts are parallel, ordered by emission; a caller can report totals
// without recounting anything.
type Result struct {
	// Source identifies the input (a path for file splits, a label such
	// as "stdin" otherwise).
	Source string

	// Kind is "text" or "tabular".
	Kind string

	// Strategy is the segmentation strategy for text splits, or the
	// counting mode for tabular splits.
	Strategy string

	// Budget is the token budget the operation ran under.
	Budget int

	// Bodies are the emitted chunk/part bodies, in order.
	Bodies []string

	// TokenCounts are the recorded token totals, parallel to Bodies.
	TokenCounts []int

	// Files are the paths written for each body, parallel to Bodies.
	// Empty when the caller did not request file emission.
	Files []string
}

// Count returns the number of chunks/parts produced.
func (r *Result) Count() int {
	return len(r.Bodies)
}

// TotalTokens returns the sum of all recorded token totals.
func (r *Result) TotalTokens() int {
	total := 0
	for _, n := range r.TokenCounts {
		total += n
	}
	return total
}
