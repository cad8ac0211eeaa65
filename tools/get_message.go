package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mailkit/imapbox/mailbox"
	"github.com/mark3labs/mcp-go/mcp"
)

// GetMessageHandler creates a handler for fetching one message by UID
func GetMessageHandler(client MailboxReader) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		uid, err := parseUID(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		headerOnly, _ := args["header_only"].(bool)

		var msg *mailbox.Message
		if headerOnly {
			msg, err = client.GetHeader(uid)
		} else {
			msg, err = client.Get(uid)
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get message: %v", err)), nil
		}

		jsonData, err := json.MarshalIndent(messageJSON(msg), "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
