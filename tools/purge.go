package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// PurgeHandler creates a handler for expunging deleted messages
func PurgeHandler(client MailboxWriter) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if err := client.Expunge(); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to expunge: %v", err)), nil
		}

		response := map[string]interface{}{
			"success": true,
			"message": "All messages marked deleted have been permanently removed",
		}

		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
