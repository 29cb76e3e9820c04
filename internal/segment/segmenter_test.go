package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForMode(t *testing.T) {
	for _, mode := range []Mode{ModeParagraph, ModeSentence, ModeLine} {
		s, err := ForMode(mode)
		require.NoError(t, err)
		assert.NotNil(t, s)
	}

	_, err := ForMode(Mode("word"))
	assert.Error(t, err)
}

func TestMode_Separator(t *testing.T) {
	assert.Equal(t, "\n", ModeLine.Separator())
	assert.Equal(t, "\n\n", ModeParagraph.Separator())
	assert.Equal(t, "\n\n", ModeSentence.Separator())
}

func TestParagraphSegmenter(t *testing.T) {
	s, err := ForMode(ModeParagraph)
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "two paragraphs",
			text: "First paragraph.\n\nSecond paragraph.",
			want: []string{"First paragraph.", "Second paragraph."},
		},
		{
			name: "longer blank runs collapse",
			text: "one\n\n\n\ntwo\n\n\nthree",
			want: []string{"one", "two", "three"},
		},
		{
			name: "crlf input",
			text: "alpha\r\n\r\nbeta",
			want: []string{"alpha", "beta"},
		},
		{
			name: "single newline is not a boundary",
			text: "line one\nline two",
			want: []string{"line one\nline two"},
		},
		{
			name: "whitespace-only paragraphs dropped",
			text: "a\n\n   \n\nb",
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Segment(tt.text))
		})
	}
}

func TestSentenceSegmenter(t *testing.T) {
	s, err := ForMode(ModeSentence)
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "three simple sentences",
			text: "A. B. C.",
			want: []string{"A.", "B.", "C."},
		},
		{
			name: "terminators mix",
			text: "Is it done? Yes! Ship it.",
			want: []string{"Is it done?", "Yes!", "Ship it."},
		},
		{
			name: "lowercase continuation is not a boundary",
			text: "e.g. this stays together.",
			want: []string{"e.g. this stays together."},
		},
		{
			name: "digit starts a sentence",
			text: "Count them. 42 remained.",
			want: []string{"Count them.", "42 remained."},
		},
		{
			name: "quote starts a sentence",
			text: `He left. "Why?" she asked.`,
			want: []string{"He left.", `"Why?" she asked.`},
		},
		{
			name: "no boundary falls back to whole input",
			text: "no terminator here",
			want: []string{"no terminator here"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Segment(tt.text))
		})
	}
}

func TestLineSegmenter(t *testing.T) {
	s, err := ForMode(ModeLine)
	require.NoError(t, err)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "plain lines",
			text: "one\ntwo\nthree",
			want: []string{"one", "two", "three"},
		},
		{
			name: "blank and whitespace lines dropped",
			text: "one\n\n   \ntwo",
			want: []string{"one", "two"},
		},
		{
			name: "right trim only",
			text: "  indented\t \nnext",
			want: []string{"  indented", "next"},
		},
		{
			name: "crlf input",
			text: "a\r\nb\r\n",
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Segment(tt.text))
		})
	}
}

func TestSegment_EmptyInputFallback(t *testing.T) {
	for _, mode := range []Mode{ModeParagraph, ModeSentence, ModeLine} {
		s, err := ForMode(mode)
		require.NoError(t, err)

		units := s.Segment("")
		require.Len(t, units, 1, "mode %s", mode)
		assert.Equal(t, "", units[0])

		units = s.Segment("   \n\t  ")
		require.Len(t, units, 1, "mode %s", mode)
		assert.Equal(t, "", units[0])
	}
}
