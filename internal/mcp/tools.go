package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/tokensplit/internal/rowpacker"
	"github.com/dshills/tokensplit/internal/segment"
	"github.com/dshills/tokensplit/internal/splitter"
	"github.com/dshills/tokensplit/internal/storage"
	"github.com/dshills/tokensplit/internal/token"
	"github.com/dshills/tokensplit/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams   = -32602 // Invalid method parameters
	ErrorCodeInternalError   = -32603 // Internal JSON-RPC error
	ErrorCodeInputNotFound   = -32001 // Source path does not exist
	ErrorCodeMissingHeader   = -32002 // Tabular input has no header line
	ErrorCodeUnsupportedMode = -32003 // Multiline quoted fields requested
	ErrorCodeTokenization    = -32004 // Exact counting failed
)

// handleSplitText handles the split_text tool invocation
func (s *Server) handleSplitText(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing",
		})
	}

	opts, err := splitOptions(args)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	result, err := splitter.SplitText(ctx, text, opts)
	if err != nil {
		return nil, translateError(err)
	}

	s.recordRun(ctx, result, time.Since(started))
	return mcp.NewToolResultText(formatJSON(resultResponse(result))), nil
}

// handleSplitFile handles the split_file tool invocation
func (s *Server) handleSplitFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := pathArg(args)
	if err != nil {
		return nil, err
	}

	opts, err := splitOptions(args)
	if err != nil {
		return nil, err
	}
	opts.OutDir, _ = args["out_dir"].(string)

	started := time.Now()
	result, err := splitter.SplitFile(ctx, path, opts)
	if err != nil {
		return nil, translateError(err)
	}

	s.recordRun(ctx, result, time.Since(started))
	return mcp.NewToolResultText(formatJSON(resultResponse(result))), nil
}

// handleSplitCSV handles the split_csv tool invocation
func (s *Server) handleSplitCSV(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	path, err := pathArg(args)
	if err != nil {
		return nil, err
	}

	opts, err := splitOptions(args)
	if err != nil {
		return nil, err
	}
	opts.OutDir, _ = args["out_dir"].(string)
	opts.CountMode = rowpacker.CountMode(getStringDefault(args, "count_mode", "line"))

	dialect, err := dialectArgs(args)
	if err != nil {
		return nil, err
	}
	opts.Dialect = dialect

	started := time.Now()
	// split_csv treats the source as tabular whatever its extension.
	result, err := splitter.SplitCSVFile(ctx, path, opts)
	if err != nil {
		return nil, translateError(err)
	}

	s.recordRun(ctx, result, time.Since(started))
	return mcp.NewToolResultText(formatJSON(resultResponse(result))), nil
}

// handleCountTokens handles the count_tokens tool invocation
func (s *Server) handleCountTokens(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	text, ok := args["text"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "text parameter is required", map[string]interface{}{
			"param":  "text",
			"reason": "missing",
		})
	}

	counter := token.NewCounter(tokenConfig(args))
	defer func() { _ = counter.Close() }()

	n, err := counter.Count(text)
	if err != nil {
		return nil, translateError(err)
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"tokens":  n,
		"counter": counter.Name(),
	})), nil
}

// handleListRuns handles the list_runs tool invocation
func (s *Server) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	limit := getIntDefault(args, "limit", 20)
	if limit < 1 || limit > 100 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 100", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}

	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list runs", map[string]interface{}{
			"error": err.Error(),
		})
	}

	items := make([]map[string]interface{}, 0, len(runs))
	for _, run := range runs {
		items = append(items, map[string]interface{}{
			"id":           run.ID,
			"source":       run.Source,
			"kind":         run.Kind,
			"strategy":     run.Strategy,
			"budget":       run.Budget,
			"parts":        run.Parts,
			"total_tokens": run.TotalTokens,
			"duration_ms":  run.Duration.Milliseconds(),
			"created_at":   run.CreatedAt.Format(time.RFC3339),
		})
	}

	return mcp.NewToolResultText(formatJSON(map[string]interface{}{
		"runs":  items,
		"count": len(items),
	})), nil
}

// recordRun persists the run manifest entry for a completed split. Manifest
// bookkeeping never fails a split that already succeeded; a failed insert
// is dropped.
func (s *Server) recordRun(ctx context.Context, result *types.Result, elapsed time.Duration) {
	run := &storage.Run{
		Source:      result.Source,
		Kind:        result.Kind,
		Strategy:    result.Strategy,
		Budget:      result.Budget,
		Parts:       result.Count(),
		TotalTokens: result.TotalTokens(),
		Duration:    elapsed,
	}
	_ = s.store.RecordRun(ctx, run)
}

// Helper functions

// splitOptions builds splitter options from common tool arguments
func splitOptions(args map[string]interface{}) (splitter.Options, error) {
	budget := getIntDefault(args, "budget", 0)
	if budget <= 0 {
		return splitter.Options{}, newMCPError(ErrorCodeInvalidParams, "budget must be a positive integer", map[string]interface{}{
			"param": "budget",
			"value": budget,
		})
	}

	strategy := getStringDefault(args, "strategy", "paragraph")
	mode := segment.Mode(strategy)
	if !mode.Valid() {
		return splitter.Options{}, newMCPError(ErrorCodeInvalidParams, "invalid strategy", map[string]interface{}{
			"param":   "strategy",
			"value":   strategy,
			"allowed": []string{"paragraph", "sentence", "line"},
		})
	}

	return splitter.Options{
		Budget: budget,
		Mode:   mode,
		Token:  tokenConfig(args),
	}, nil
}

// tokenConfig builds the counter configuration from tool arguments
func tokenConfig(args map[string]interface{}) token.Config {
	return token.Config{
		ModelHint:        getStringDefault(args, "model", ""),
		ForceApproximate: getBoolDefault(args, "approximate", false),
	}
}

// pathArg extracts and validates the path parameter
func pathArg(args map[string]interface{}) (string, error) {
	path, ok := args["path"].(string)
	if !ok || path == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "path parameter is required", map[string]interface{}{
			"param":  "path",
			"reason": "missing or empty",
		})
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", newMCPError(ErrorCodeInputNotFound, "path does not exist", map[string]interface{}{
			"param": "path",
			"value": path,
		})
	}
	return path, nil
}

// dialectArgs extracts the tabular dialect parameters
func dialectArgs(args map[string]interface{}) (rowpacker.Dialect, error) {
	dialect := rowpacker.DefaultDialect()

	if delim := getStringDefault(args, "delimiter", ","); delim != "," {
		runes := []rune(delim)
		if len(runes) != 1 {
			return dialect, newMCPError(ErrorCodeInvalidParams, "delimiter must be a single character", map[string]interface{}{
				"param": "delimiter",
				"value": delim,
			})
		}
		dialect.Delimiter = runes[0]
	}

	if quote := getStringDefault(args, "quote", `"`); quote != `"` {
		runes := []rune(quote)
		if len(runes) != 1 {
			return dialect, newMCPError(ErrorCodeInvalidParams, "quote must be a single character", map[string]interface{}{
				"param": "quote",
				"value": quote,
			})
		}
		dialect.Quote = runes[0]
	}

	return dialect, nil
}

// resultResponse formats a split result for the tool response
func resultResponse(result *types.Result) map[string]interface{} {
	response := map[string]interface{}{
		"source":       result.Source,
		"kind":         result.Kind,
		"strategy":     result.Strategy,
		"budget":       result.Budget,
		"parts":        result.Count(),
		"token_counts": result.TokenCounts,
		"total_tokens": result.TotalTokens(),
	}
	if len(result.Files) > 0 {
		response["files"] = result.Files
	} else {
		response["bodies"] = result.Bodies
	}
	return response
}

// translateError maps domain errors to MCP error codes
func translateError(err error) error {
	switch {
	case errors.Is(err, types.ErrInvalidBudget):
		return newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	case errors.Is(err, types.ErrInputNotFound):
		return newMCPError(ErrorCodeInputNotFound, err.Error(), nil)
	case errors.Is(err, types.ErrMissingHeader):
		return newMCPError(ErrorCodeMissingHeader, err.Error(), nil)
	case errors.Is(err, types.ErrUnsupportedMultiline):
		return newMCPError(ErrorCodeUnsupportedMode, err.Error(), nil)
	case errors.Is(err, types.ErrTokenization):
		return newMCPError(ErrorCodeTokenization, err.Error(), nil)
	default:
		return newMCPError(ErrorCodeInternalError, "split failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok && val != "" {
		return val
	}
	return defaultValue
}
