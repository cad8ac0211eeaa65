package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
)

// SummaryHandler creates a handler for one-line message digests
func SummaryHandler(client MailboxReader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		uids, err := parseUIDList(args, "uids")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// No explicit list means the whole mailbox.
		if uids == nil {
			uids, err = client.Keys()
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to list messages: %v", err)), nil
			}
		}

		lines := client.Summary(uids)

		response := map[string]interface{}{
			"total": len(lines),
			"lines": lines,
		}

		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// parseUIDList extracts an optional array of UIDs. Returns nil when the key
// is absent.
func parseUIDList(args map[string]interface{}, key string) ([]uint32, error) {
	val, ok := args[key]
	if !ok || val == nil {
		return nil, nil
	}
	items, ok := val.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s must be an array of numbers", key)
	}
	uids := make([]uint32, 0, len(items))
	for _, item := range items {
		n, ok := item.(float64)
		if !ok || n < 1 || n > math.MaxUint32 || n != math.Trunc(n) {
			return nil, fmt.Errorf("%s must contain positive integers", key)
		}
		uids = append(uids, uint32(n))
	}
	return uids, nil
}
