package token

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tokensplit/pkg/types"
)

func TestApproximate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"whitespace only", "  \n\t  ", 0},
		{"single char", "a", 1},
		{"four chars", "abcd", 1},
		{"five chars", "abcde", 2},
		// "Hello, world!" -> 13 chars, ceil(13/4)=4; punct , ! -> ceil(2/6)=1
		{"hello world", "Hello, world!", 5},
		// whitespace runs collapse: "a   b" -> "a b" (3 chars) -> 1
		{"collapsed runs", "a   b", 1},
		{"crlf and tabs collapse", "a\r\n\tb", 1},
		// 8 punctuation chars alone: base ceil(8/4)=2, bump ceil(8/6)=2
		{"punctuation heavy", `.,;:!?()`, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Approximate(tt.text))
		})
	}
}

func TestApproximate_Deterministic(t *testing.T) {
	text := strings.Repeat("The quick brown fox, jumps! Over? ", 40)
	first := Approximate(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Approximate(text))
	}
}

func TestApproximate_FloorOfOne(t *testing.T) {
	// Any non-empty normalized text counts at least 1.
	assert.Equal(t, 1, Approximate("x"))
	assert.Equal(t, 1, Approximate(" x "))
}

func TestNewCounter_ForceApproximate(t *testing.T) {
	c := NewCounter(Config{ModelHint: "gpt-4", ForceApproximate: true})
	defer func() { _ = c.Close() }()

	assert.Equal(t, "approximate", c.Name())

	n, err := c.Count("Hello, world!")
	require.NoError(t, err)
	assert.Equal(t, Approximate("Hello, world!"), n)
}

func TestNewCounter_NeverNil(t *testing.T) {
	// Whatever the environment provides, selection always yields a
	// usable counter.
	for _, cfg := range []Config{
		{},
		{ModelHint: "gpt-4"},
		{ModelHint: "no-such-model-xyz"},
		{ForceApproximate: true},
	} {
		c := NewCounter(cfg)
		require.NotNil(t, c)

		n, err := c.Count("some text")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		require.NoError(t, c.Close())
	}
}

func TestCounter_EmptyTextCountsZero(t *testing.T) {
	c := NewCounter(Config{ForceApproximate: true})
	defer func() { _ = c.Close() }()

	n, err := c.Count("")
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestExactCounter_CountAfterClose(t *testing.T) {
	c := &exactCounter{name: "tiktoken:test"}
	// enc is nil, as it is after Close.
	_, err := c.Count("text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrTokenization))
}

func TestApproxCounter_CloseIsIdempotent(t *testing.T) {
	c := NewCounter(Config{ForceApproximate: true})
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	// The approximate path never fails, even after Close.
	n, err := c.Count("still fine")
	require.NoError(t, err)
	assert.Greater(t, n, 0)
}
