package types

import (
	"errors"
	"strings"
)

// Part is a token-bounded group of tabular rows. Every part carries the
// stream's header line, replicated verbatim, ahead of its rows.
type Part struct {
	// Index is the 1-based emission order of the part.
	Index int

	// Header is the first non-blank line of the source stream.
	Header string

	// Rows are the data lines of this part, in original stream order,
	// each exactly as it appeared in the source.
	Rows []string

	// TokenCount is the sum of the row token counts. The header is not
	// counted.
	TokenCount int
}

// Body renders the part as it is written to disk: header, then each row on
// its own line, with a trailing line terminator.
func (p *Part) Body() string {
	var b strings.Builder
	b.WriteString(p.Header)
	b.WriteByte('\n')
	for _, row := range p.Rows {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.String()
}

// Validate checks the part for structural integrity.
func (p *Part) Validate() error {
	if p.Index <= 0 {
		return errors.New("part index must be positive")
	}
	if p.Header == "" {
		return errors.New("part header cannot be empty")
	}
	if len(p.Rows) == 0 {
		return errors.New("part must contain at least one row")
	}
	if p.TokenCount < 0 {
		return errors.New("part token count cannot be negative")
	}
	return nil
}
