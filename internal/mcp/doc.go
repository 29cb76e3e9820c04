// Package mcp exposes tokensplit over the Model Context Protocol.
//
// The server speaks MCP on stdio and registers five tools: split_text,
// split_file, split_csv, count_tokens, and list_runs. Splitting tools run
// one split operation each and record the outcome in the run manifest;
// list_runs reads it back. Stdout is reserved for the protocol, so all
// logging goes to stderr.
package mcp
