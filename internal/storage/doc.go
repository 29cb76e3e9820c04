// Package storage persists the split run manifest.
//
// Every completed split operation is recorded as a Run: what was split,
// under which strategy and budget, how many parts came out and how many
// tokens they totaled. The manifest backs the `tokensplit runs` command and
// the list_runs MCP tool.
//
// Two SQLite drivers are supported behind build tags: the CGO driver
// (github.com/mattn/go-sqlite3) when built with the cgo tag, and the pure
// Go driver (modernc.org/sqlite) otherwise. See build_cgo.go and
// build_purego.go.
package storage
