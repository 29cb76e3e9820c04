package token

import (
	"github.com/pkoukk/tiktoken-go"
)

const (
	// DefaultEncoding is the universal encoding used when no model hint
	// is given or the hint does not resolve. cl100k_base is the GPT-4 /
	// GPT-3.5 tokenizer and a reasonable approximation for other modern
	// LLMs.
	DefaultEncoding = "cl100k_base"
)

// Config selects the counting capability for one split operation.
type Config struct {
	// ModelHint is advisory and used only to resolve an exact encoding
	// (e.g. "gpt-4"). Empty means use DefaultEncoding.
	ModelHint string

	// ForceApproximate skips exact counting entirely and uses the
	// deterministic heuristic formula.
	ForceApproximate bool
}

// Counter counts tokens in text. Implementations hold at most one reusable
// encoder resource for the duration of a split operation and release it on
// Close.
type Counter interface {
	// Count returns a non-negative token count for text.
	Count(text string) (int, error)

	// Name returns a human-readable name for the counting method.
	Name() string

	// Close releases the counter's encoder resource. Counting after
	// Close fails.
	Close() error
}

// NewCounter selects a Counter for the given configuration. Selection
// happens here, once; the returned Counter never changes capability at call
// time. NewCounter never fails: when no exact encoder can be obtained the
// approximate counter is returned silently.
func NewCounter(cfg Config) Counter {
	if cfg.ForceApproximate {
		return &approxCounter{}
	}

	if cfg.ModelHint != "" {
		if enc, err := tiktoken.EncodingForModel(cfg.ModelHint); err == nil {
			return &exactCounter{enc: enc, name: "tiktoken:" + cfg.ModelHint}
		}
	}

	if enc, err := tiktoken.GetEncoding(DefaultEncoding); err == nil {
		return &exactCounter{enc: enc, name: "tiktoken:" + DefaultEncoding}
	}

	// No exact encoder available (missing vocabulary, init failure).
	// The approximate formula is always available.
	return &approxCounter{}
}
