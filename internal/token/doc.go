// Package token provides the token counting abstraction the packers depend
// on.
//
// A Counter is selected once at configuration time, not probed per call:
// NewCounter inspects the Config and returns either an exact counter backed
// by a tiktoken encoding resolved from the model hint, or the always
// available approximate counter. If no exact encoding can be obtained at
// all, NewCounter falls back to the approximate counter silently; counter
// construction never fails.
//
// A Counter is a per-operation resource: create one for each split
// operation, pass it into every counting call, and release it with Close on
// every exit path. Counting after Close is reported as a tokenization
// failure.
package token
