// Package splitter orchestrates one split operation end to end: it selects
// a token counter for the operation, segments or streams the input, runs
// the appropriate packer, and optionally writes the numbered part files.
//
// Output naming follows the {base}_part{NNN} contract: a 1-based index,
// zero-padded to three digits, with no gaps. Text chunks take the .txt
// extension; tabular parts keep the source's extension.
//
// The counter is a per-operation resource: each Split* call creates one and
// releases it on every exit path. Batch splitting runs one independent
// operation per file concurrently; inside an operation all counting remains
// strictly sequential and ordered.
package splitter
