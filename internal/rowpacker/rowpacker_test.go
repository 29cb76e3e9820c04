package rowpacker

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/tokensplit/internal/token"
	"github.com/dshills/tokensplit/pkg/types"
)

func approxCounter(t *testing.T) token.Counter {
	t.Helper()
	c := token.NewCounter(token.Config{ForceApproximate: true})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNew_Validation(t *testing.T) {
	c := approxCounter(t)

	_, err := New(c, 0, CountLine, DefaultDialect())
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvalidBudget))

	_, err = New(c, -5, CountLine, DefaultDialect())
	assert.True(t, errors.Is(err, types.ErrInvalidBudget))

	_, err = New(c, 10, CountMode("words"), DefaultDialect())
	assert.Error(t, err)
}

func TestPack_BudgetBoundary(t *testing.T) {
	c := approxCounter(t)

	// Each row is 40 identical chars: exactly 10 approximate tokens.
	row := strings.Repeat("x", 40)
	require.Equal(t, 10, token.Approximate(row))

	input := "a,b\n" + strings.Repeat(row+"\n", 5)

	p, err := New(c, 25, CountLine, DefaultDialect())
	require.NoError(t, err)

	parts, err := p.Pack(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parts, 3)

	assert.Len(t, parts[0].Rows, 2)
	assert.Len(t, parts[1].Rows, 2)
	assert.Len(t, parts[2].Rows, 1)

	assert.Equal(t, 20, parts[0].TokenCount)
	assert.Equal(t, 20, parts[1].TokenCount)
	assert.Equal(t, 10, parts[2].TokenCount)

	for i, part := range parts {
		assert.Equal(t, i+1, part.Index)
		assert.Equal(t, "a,b", part.Header)
	}
}

func TestPack_RowsPreservedInOrder(t *testing.T) {
	c := approxCounter(t)

	rows := []string{"1,alpha", "2,bravo", "3,charlie", "4,delta", "5,echo"}
	input := "id,name\n" + strings.Join(rows, "\n") + "\n"

	p, err := New(c, 4, CountLine, DefaultDialect())
	require.NoError(t, err)

	parts, err := p.Pack(strings.NewReader(input))
	require.NoError(t, err)

	var got []string
	for _, part := range parts {
		got = append(got, part.Rows...)
	}
	assert.Equal(t, rows, got)
}

func TestPack_BlankLinesSkipped(t *testing.T) {
	c := approxCounter(t)

	input := "\n   \nid,name\n\n1,a\n  \n2,b\n\n"

	p, err := New(c, 100, CountLine, DefaultDialect())
	require.NoError(t, err)

	parts, err := p.Pack(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parts, 1)

	assert.Equal(t, "id,name", parts[0].Header)
	assert.Equal(t, []string{"1,a", "2,b"}, parts[0].Rows)
}

func TestPack_MissingHeader(t *testing.T) {
	c := approxCounter(t)

	p, err := New(c, 10, CountLine, DefaultDialect())
	require.NoError(t, err)

	for _, input := range []string{"", "\n\n\n", "   \n\t\n"} {
		parts, err := p.Pack(strings.NewReader(input))
		require.Error(t, err)
		assert.True(t, errors.Is(err, types.ErrMissingHeader))
		assert.Nil(t, parts)
	}
}

func TestPack_HeaderOnlyProducesNoParts(t *testing.T) {
	c := approxCounter(t)

	p, err := New(c, 10, CountLine, DefaultDialect())
	require.NoError(t, err)

	parts, err := p.Pack(strings.NewReader("id,name\n"))
	require.NoError(t, err)
	assert.Empty(t, parts)
}

func TestPack_OversizedRowIsOwnPart(t *testing.T) {
	c := approxCounter(t)

	big := strings.Repeat("z", 200) // 50 tokens
	input := "h\nsmall\n" + big + "\nsmall\n"

	budget := 10
	p, err := New(c, budget, CountLine, DefaultDialect())
	require.NoError(t, err)

	parts, err := p.Pack(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parts, 3)

	// The oversized row is never split, so its part exceeds the budget.
	assert.Equal(t, []string{big}, parts[1].Rows)
	assert.Greater(t, parts[1].TokenCount, budget)

	assert.Equal(t, []string{"small"}, parts[0].Rows)
	assert.Equal(t, []string{"small"}, parts[2].Rows)
}

func TestPack_CellsModeCountsJoinedCells(t *testing.T) {
	c := approxCounter(t)

	raw := `"a,b",c`
	input := "h1,h2\n" + raw + "\n"

	p, err := New(c, 100, CountCells, DefaultDialect())
	require.NoError(t, err)

	parts, err := p.Pack(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parts, 1)

	// Counted as cells joined by " | ", written as the raw line.
	assert.Equal(t, token.Approximate("a,b | c"), parts[0].TokenCount)
	assert.Equal(t, []string{raw}, parts[0].Rows)
}

func TestPack_MultilineQuotedFieldRejected(t *testing.T) {
	c := approxCounter(t)

	input := "h1,h2\n\"unterminated,row\n"

	p, err := New(c, 100, CountLine, DefaultDialect())
	require.NoError(t, err)

	parts, err := p.Pack(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnsupportedMultiline))
	assert.Nil(t, parts)
}

func TestPack_TabDialect(t *testing.T) {
	c := approxCounter(t)

	input := "id\tname\n1\talice\n"

	p, err := New(c, 100, CountCells, Dialect{Delimiter: '\t'})
	require.NoError(t, err)

	parts, err := p.Pack(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, token.Approximate("1 | alice"), parts[0].TokenCount)
}

func TestSplitCells(t *testing.T) {
	c := approxCounter(t)
	p, err := New(c, 10, CountCells, DefaultDialect())
	require.NoError(t, err)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain", "a,b,c", []string{"a", "b", "c"}},
		{"quoted delimiter", `"a,b",c`, []string{"a,b", "c"}},
		{"doubled quote escape", `"say ""hi""",x`, []string{`say "hi"`, "x"}},
		{"empty cells", "a,,c", []string{"a", "", "c"}},
		{"trailing delimiter", "a,", []string{"a", ""}},
		{"single cell", "solo", []string{"solo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.splitCells(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = p.splitCells(`"open`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrUnsupportedMultiline))
}

func TestPart_Body(t *testing.T) {
	part := types.Part{
		Index:  1,
		Header: "id,name",
		Rows:   []string{"1,a", "2,b"},
	}
	assert.Equal(t, "id,name\n1,a\n2,b\n", part.Body())
}
