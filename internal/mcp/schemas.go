package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// splitTextTool returns the tool definition for split_text
func splitTextTool() mcp.Tool {
	return mcp.Tool{
		Name:        "split_text",
		Description: "Split free text into token-bounded chunks",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "The text to split",
				},
				"budget": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum tokens per chunk (must be positive)",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"description": "Segmentation strategy",
					"enum":        []string{"paragraph", "sentence", "line"},
					"default":     "paragraph",
				},
				"model": map[string]interface{}{
					"type":        "string",
					"description": "Model hint for exact token counting (e.g. 'gpt-4')",
				},
				"approximate": map[string]interface{}{
					"type":        "boolean",
					"description": "Force the approximate counting formula",
					"default":     false,
				},
			},
			Required: []string{"text", "budget"},
		},
	}
}

// splitFileTool returns the tool definition for split_file
func splitFileTool() mcp.Tool {
	return mcp.Tool{
		Name:        "split_file",
		Description: "Split a file into token-bounded part files; .csv/.tsv sources are split row-atomically with a replicated header",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the source file",
				},
				"budget": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum tokens per part (must be positive)",
				},
				"strategy": map[string]interface{}{
					"type":        "string",
					"description": "Text segmentation strategy (ignored for tabular sources)",
					"enum":        []string{"paragraph", "sentence", "line"},
					"default":     "paragraph",
				},
				"out_dir": map[string]interface{}{
					"type":        "string",
					"description": "Directory to write numbered part files into; omit to return bodies only",
				},
				"model": map[string]interface{}{
					"type":        "string",
					"description": "Model hint for exact token counting",
				},
				"approximate": map[string]interface{}{
					"type":        "boolean",
					"description": "Force the approximate counting formula",
					"default":     false,
				},
			},
			Required: []string{"path", "budget"},
		},
	}
}

// splitCSVTool returns the tool definition for split_csv
func splitCSVTool() mcp.Tool {
	return mcp.Tool{
		Name:        "split_csv",
		Description: "Split a delimited tabular file into header-carrying, token-bounded parts with full dialect control",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the tabular source file",
				},
				"budget": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum tokens per part (must be positive)",
				},
				"count_mode": map[string]interface{}{
					"type":        "string",
					"description": "Count the raw line, or the parsed cells joined by ' | '",
					"enum":        []string{"line", "cells"},
					"default":     "line",
				},
				"delimiter": map[string]interface{}{
					"type":        "string",
					"description": "Field delimiter (single character)",
					"default":     ",",
				},
				"quote": map[string]interface{}{
					"type":        "string",
					"description": "Quote character (single character)",
					"default":     "\"",
				},
				"out_dir": map[string]interface{}{
					"type":        "string",
					"description": "Directory to write numbered part files into; omit to return bodies only",
				},
				"model": map[string]interface{}{
					"type":        "string",
					"description": "Model hint for exact token counting",
				},
				"approximate": map[string]interface{}{
					"type":        "boolean",
					"description": "Force the approximate counting formula",
					"default":     false,
				},
			},
			Required: []string{"path", "budget"},
		},
	}
}

// countTokensTool returns the tool definition for count_tokens
func countTokensTool() mcp.Tool {
	return mcp.Tool{
		Name:        "count_tokens",
		Description: "Count tokens in a piece of text",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "The text to count",
				},
				"model": map[string]interface{}{
					"type":        "string",
					"description": "Model hint for exact token counting",
				},
				"approximate": map[string]interface{}{
					"type":        "boolean",
					"description": "Force the approximate counting formula",
					"default":     false,
				},
			},
			Required: []string{"text"},
		},
	}
}

// listRunsTool returns the tool definition for list_runs
func listRunsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "list_runs",
		Description: "List recent split runs from the manifest, newest first",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of runs to return",
					"default":     20,
					"minimum":     1,
					"maximum":     100,
				},
			},
		},
	}
}
