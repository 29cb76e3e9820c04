package chunker

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dshills/tokensplit/internal/segment"
	"github.com/dshills/tokensplit/internal/token"
	"github.com/dshills/tokensplit/pkg/types"
)

// minWindow is the smallest character window the hard-split fallback will
// shrink to.
const minWindow = 50

// Packer greedily packs ordered units into token-bounded chunks.
type Packer struct {
	counter token.Counter
	budget  int
	sep     string
}

// New creates a Packer for the given counter, budget, and segmentation
// mode. The mode determines the separator used to join units into a chunk
// body. Returns ErrInvalidBudget when budget is not positive.
func New(counter token.Counter, budget int, mode segment.Mode) (*Packer, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidBudget, budget)
	}
	return &Packer{
		counter: counter,
		budget:  budget,
		sep:     mode.Separator(),
	}, nil
}

// Pack consumes the units strictly in order and returns the emitted chunks.
// Every chunk's token total is at most the budget, except hard-split
// fragments that could not shrink below budget at the window floor. A
// counting failure aborts the whole operation.
func (p *Packer) Pack(units []string) ([]types.Chunk, error) {
	var (
		chunks  []types.Chunk
		open    []string
		running int
	)

	flush := func() {
		if len(open) == 0 {
			return
		}
		chunks = append(chunks, types.Chunk{
			Index:      len(chunks) + 1,
			Text:       strings.Join(open, p.sep),
			TokenCount: running,
		})
		open = nil
		running = 0
	}

	for _, unit := range units {
		n, err := p.counter.Count(unit)
		if err != nil {
			return nil, err
		}

		switch {
		case n > p.budget:
			// The unit alone blows the budget. Flush whatever is
			// open, then hard-split the unit into immediately
			// finalized fragments.
			flush()
			frags, err := p.hardSplit(unit)
			if err != nil {
				return nil, err
			}
			for _, f := range frags {
				chunks = append(chunks, types.Chunk{
					Index:      len(chunks) + 1,
					Text:       f.text,
					TokenCount: f.count,
					HardSplit:  true,
				})
			}

		case running+n > p.budget:
			flush()
			open = append(open, unit)
			running = n

		default:
			open = append(open, unit)
			running += n
		}
	}

	flush()
	return chunks, nil
}

type fragment struct {
	text  string
	count int
}

// hardSplit carves an oversized unit into character windows. Each window
// starts at max(50, budget*4) characters and shrinks to 85% of its length
// while its recount exceeds the budget and it is longer than the floor. The
// loop shrinks geometrically, so it terminates; a floor-length window may
// still exceed the budget and is accepted as the unsplittable minimum.
func (p *Packer) hardSplit(unit string) ([]fragment, error) {
	remaining := []rune(unit)
	var frags []fragment

	for len(remaining) > 0 {
		window := p.budget * 4
		if window < minWindow {
			window = minWindow
		}
		if window > len(remaining) {
			window = len(remaining)
		}

		n, err := p.counter.Count(string(remaining[:window]))
		if err != nil {
			return nil, err
		}
		for n > p.budget && window > minWindow {
			window = window * 85 / 100
			n, err = p.counter.Count(string(remaining[:window]))
			if err != nil {
				return nil, err
			}
		}

		frags = append(frags, fragment{
			text:  string(remaining[:window]),
			count: n,
		})

		remaining = trimLeftSpace(remaining[window:])
	}

	return frags, nil
}

func trimLeftSpace(runes []rune) []rune {
	i := 0
	for i < len(runes) && unicode.IsSpace(runes[i]) {
		i++
	}
	return runes[i:]
}
