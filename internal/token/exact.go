package token

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/dshills/tokensplit/pkg/types"
)

// exactCounter counts with a tiktoken encoding resolved at configuration
// time. The encoder is the one reusable resource of a split operation;
// Close releases it.
type exactCounter struct {
	enc  *tiktoken.Tiktoken
	name string
}

func (c *exactCounter) Count(text string) (int, error) {
	if c.enc == nil {
		return 0, fmt.Errorf("%w: counter used after release", types.ErrTokenization)
	}
	if text == "" {
		return 0, nil
	}
	// Allow all special tokens so inputs containing sequences like
	// "<|endoftext|>" count as tokens instead of failing.
	return len(c.enc.Encode(text, []string{"all"}, nil)), nil
}

func (c *exactCounter) Name() string {
	return c.name
}

func (c *exactCounter) Close() error {
	c.enc = nil
	return nil
}
