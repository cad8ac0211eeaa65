package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// SearchMessagesHandler creates a handler for searching message UIDs
func SearchMessagesHandler(client MailboxReader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		// Get criteria (default to ALL)
		criteria, _ := args["criteria"].(string)
		if criteria == "" {
			criteria = "ALL"
		}

		uids, err := client.Search(criteria)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to search messages: %v", err)), nil
		}

		response := map[string]interface{}{
			"criteria": criteria,
			"total":    len(uids),
			"uids":     uids,
		}

		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
