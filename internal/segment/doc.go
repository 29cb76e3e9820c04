// Package segment splits raw text into ordered, trimmed, non-empty units.
//
// Three strategies are provided behind the Segmenter interface so that
// alternative implementations (e.g. locale-aware sentence detection) can be
// substituted without touching the chunk packer:
//
//   - ModeParagraph splits on runs of two or more newlines.
//   - ModeSentence splits after a sentence terminator followed by
//     whitespace and something that looks like a new sentence. This is a
//     heuristic, not grammatically exact.
//   - ModeLine splits on single newlines.
//
// All strategies normalize CRLF line endings first and share one fallback:
// when no boundary matches, the trimmed whole input is returned as a single
// unit.
package segment
