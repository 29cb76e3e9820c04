package segment

import (
	"fmt"
	"regexp"
	"strings"
)

// Mode selects a segmentation strategy.
type Mode string

const (
	ModeParagraph Mode = "paragraph"
	ModeSentence  Mode = "sentence"
	ModeLine      Mode = "line"
)

// Valid reports whether the mode names a known strategy.
func (m Mode) Valid() bool {
	switch m {
	case ModeParagraph, ModeSentence, ModeLine:
		return true
	default:
		return false
	}
}

// Separator returns the string that joins units of this mode back into a
// chunk body: a single newline for line mode, a blank line otherwise.
func (m Mode) Separator() string {
	if m == ModeLine {
		return "\n"
	}
	return "\n\n"
}

// Segmenter splits raw text into an ordered sequence of units.
type Segmenter interface {
	Segment(text string) []string
}

// ForMode returns the Segmenter implementing the given strategy.
func ForMode(mode Mode) (Segmenter, error) {
	switch mode {
	case ModeParagraph:
		return paragraphSegmenter{}, nil
	case ModeSentence:
		return sentenceSegmenter{}, nil
	case ModeLine:
		return lineSegmenter{}, nil
	default:
		return nil, fmt.Errorf("unknown segmentation mode %q", mode)
	}
}

var (
	paragraphBreak = regexp.MustCompile(`\n{2,}`)

	// A sentence boundary follows ., ! or ?, then whitespace, then
	// something that looks like a new sentence: an uppercase letter,
	// digit, quote, or opening bracket. The capture group marks where
	// the next unit starts.
	sentenceBoundary = regexp.MustCompile(`[.!?]\s+([\p{Lu}0-9"'(\[{])`)
)

// normalize converts CRLF line endings to LF.
func normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// appendUnit trims the candidate and appends it unless it trims to nothing.
func appendUnit(units []string, candidate string) []string {
	if trimmed := strings.TrimSpace(candidate); trimmed != "" {
		units = append(units, trimmed)
	}
	return units
}

// fallback returns the units, or the trimmed whole input as a single unit
// when segmentation produced nothing. That single unit may itself be empty
// if the input was empty or whitespace-only.
func fallback(units []string, text string) []string {
	if len(units) == 0 {
		return []string{strings.TrimSpace(text)}
	}
	return units
}

type paragraphSegmenter struct{}

func (paragraphSegmenter) Segment(text string) []string {
	text = normalize(text)
	var units []string
	for _, p := range paragraphBreak.Split(text, -1) {
		units = appendUnit(units, p)
	}
	return fallback(units, text)
}

// sentenceSegmenter is a heuristic splitter, not a grammatical one: it does
// not understand abbreviations, initials, or locale rules.
type sentenceSegmenter struct{}

func (sentenceSegmenter) Segment(text string) []string {
	text = normalize(text)
	var units []string
	start := 0
	for _, m := range sentenceBoundary.FindAllStringSubmatchIndex(text, -1) {
		// m[2] is where the next sentence's first character begins.
		units = appendUnit(units, text[start:m[2]])
		start = m[2]
	}
	units = appendUnit(units, text[start:])
	return fallback(units, text)
}

type lineSegmenter struct{}

func (lineSegmenter) Segment(text string) []string {
	text = normalize(text)
	var units []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			units = append(units, line)
		}
	}
	return fallback(units, text)
}
