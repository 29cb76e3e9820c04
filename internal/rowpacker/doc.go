// Package rowpacker packs streamed tabular lines into token-bounded parts.
//
// The packer pulls physical lines from an io.Reader one at a time; only the
// header and the currently open part are ever resident in memory. The first
// non-blank line becomes the header and is replicated verbatim into every
// emitted part. Blank lines are skipped entirely. Every other line is an
// atomic row: it is counted (raw, or as delimiter-separated cells joined by
// " | " under the cells mode), never rewritten, and never split. A single
// row whose count exceeds the budget becomes a part of its own, over
// budget by necessity.
//
// Quoted fields honor a dialect quote character with doubled-quote
// escaping. Fields spanning multiple physical lines are rejected with
// ErrUnsupportedMultiline rather than silently approximated.
package rowpacker
