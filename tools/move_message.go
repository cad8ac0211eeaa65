package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// MoveMessageHandler creates a handler for moving a message to another folder
func MoveMessageHandler(client MailboxWriter) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		uid, err := parseUID(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		toFolder, ok := args["to_folder"].(string)
		if !ok || toFolder == "" {
			return mcp.NewToolResultError("to_folder is required"), nil
		}

		if err := client.Move(uid, toFolder); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to move message: %v", err)), nil
		}

		response := map[string]interface{}{
			"success":   true,
			"uid":       uid,
			"to_folder": toFolder,
			"message":   fmt.Sprintf("Message %d moved to '%s'; it stays visible in the source until the next expunge", uid, toFolder),
		}

		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
