package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// PopMessageHandler creates a handler for reading and deleting a message in
// one step
func PopMessageHandler(client MailboxWriter) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		uid, err := parseUID(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		msg, err := client.Pop(uid)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to pop message: %v", err)), nil
		}

		jsonData, err := json.MarshalIndent(messageJSON(msg), "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
