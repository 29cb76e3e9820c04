package rowpacker

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/tokensplit/internal/token"
	"github.com/dshills/tokensplit/pkg/types"
)

// maxLineBytes bounds a single physical line. Lines, not whole inputs, are
// held in memory.
const maxLineBytes = 1 << 20

// CountMode selects how a row's tokens are counted. The written output is
// always the original raw line regardless of mode.
type CountMode string

const (
	// CountLine counts the raw line verbatim.
	CountLine CountMode = "line"
	// CountCells parses the line into cells and counts the cells joined
	// by " | ".
	CountCells CountMode = "cells"
)

// Valid reports whether the mode names a known counting mode.
func (m CountMode) Valid() bool {
	return m == CountLine || m == CountCells
}

// Dialect describes the tabular format. Zero-value fields take the CSV
// defaults: comma delimiter, double-quote quote character.
type Dialect struct {
	Delimiter rune
	Quote     rune
}

// DefaultDialect returns the standard CSV dialect.
func DefaultDialect() Dialect {
	return Dialect{Delimiter: ',', Quote: '"'}
}

func (d Dialect) withDefaults() Dialect {
	if d.Delimiter == 0 {
		d.Delimiter = ','
	}
	if d.Quote == 0 {
		d.Quote = '"'
	}
	return d
}

// Packer greedily packs streamed rows into header-carrying parts.
type Packer struct {
	counter token.Counter
	budget  int
	mode    CountMode
	dialect Dialect
}

// New creates a Packer. Returns ErrInvalidBudget when budget is not
// positive.
func New(counter token.Counter, budget int, mode CountMode, dialect Dialect) (*Packer, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidBudget, budget)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("unknown count mode %q", mode)
	}
	return &Packer{
		counter: counter,
		budget:  budget,
		mode:    mode,
		dialect: dialect.withDefaults(),
	}, nil
}

// Pack pulls lines from r until EOF and returns the emitted parts. The
// first non-blank line is captured as the header and never packed as a row;
// blank lines are dropped without being counted or written. Returns
// ErrMissingHeader when the stream holds no non-blank line at all.
func (p *Packer) Pack(r io.Reader) ([]types.Part, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		header     string
		haveHeader bool
		parts      []types.Part
		open       []string
		running    int
	)

	flush := func() {
		if len(open) == 0 {
			return
		}
		parts = append(parts, types.Part{
			Index:      len(parts) + 1,
			Header:     header,
			Rows:       open,
			TokenCount: running,
		})
		open = nil
		running = 0
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		// Reject fields spanning physical lines up front, in either
		// counting mode.
		cells, err := p.splitCells(line)
		if err != nil {
			return nil, err
		}

		if !haveHeader {
			header = line
			haveHeader = true
			continue
		}

		n, err := p.countRow(line, cells)
		if err != nil {
			return nil, err
		}

		switch {
		case n > p.budget:
			// Rows are atomic; a lone oversized row becomes its
			// own over-budget part.
			flush()
			parts = append(parts, types.Part{
				Index:      len(parts) + 1,
				Header:     header,
				Rows:       []string{line},
				TokenCount: n,
			})

		case running+n > p.budget:
			flush()
			open = append(open, line)
			running = n

		default:
			open = append(open, line)
			running += n
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading tabular input: %w", err)
	}

	if !haveHeader {
		return nil, types.ErrMissingHeader
	}

	flush()
	return parts, nil
}

// countRow computes the row's token count under the configured mode.
func (p *Packer) countRow(raw string, cells []string) (int, error) {
	if p.mode == CountCells {
		return p.counter.Count(strings.Join(cells, " | "))
	}
	return p.counter.Count(raw)
}

// splitCells parses one physical line into cells, honoring the dialect
// quote character with doubled-quote escaping. A quoted field still open at
// end of line would span multiple physical lines, which is unsupported.
func (p *Packer) splitCells(line string) ([]string, error) {
	var (
		cells   []string
		cur     strings.Builder
		inQuote bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote:
			if r == p.dialect.Quote {
				if i+1 < len(runes) && runes[i+1] == p.dialect.Quote {
					cur.WriteRune(r)
					i++
				} else {
					inQuote = false
				}
			} else {
				cur.WriteRune(r)
			}
		case r == p.dialect.Quote:
			inQuote = true
		case r == p.dialect.Delimiter:
			cells = append(cells, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}

	if inQuote {
		return nil, fmt.Errorf("%w: unterminated quoted field", types.ErrUnsupportedMultiline)
	}

	cells = append(cells, cur.String())
	return cells, nil
}
