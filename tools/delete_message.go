package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DeleteMessageHandler creates a handler for deleting messages
func DeleteMessageHandler(client MailboxWriter) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		uid, err := parseUID(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		permanent, _ := args["permanent"].(bool)

		if err := client.Delete(uid); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to delete message: %v", err)), nil
		}

		// The deleted message lingers until an expunge; permanent=true
		// removes it right away.
		if permanent {
			if err := client.Expunge(); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to expunge: %v", err)), nil
			}
		}

		response := map[string]interface{}{
			"success":   true,
			"uid":       uid,
			"permanent": permanent,
		}

		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
