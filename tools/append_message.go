package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mailkit/imapbox/mailbox"
	"github.com/mark3labs/mcp-go/mcp"
)

// AppendMessageHandler creates a handler for appending a raw message to the
// mailbox
func AppendMessageHandler(client MailboxWriter) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		raw, ok := args["message"].(string)
		if !ok || raw == "" {
			return mcp.NewToolResultError("message is required"), nil
		}

		flags, err := parseStringList(args, "flags")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		msg, err := mailbox.NewMessage([]byte(raw))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid message: %v", err)), nil
		}
		msg.Flags = flags

		uid, err := client.Add(msg)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to append message: %v", err)), nil
		}

		response := map[string]interface{}{
			"success": true,
			"uid":     uid,
			"note":    "uid is the highest UID after the append; under concurrent appends it may not be this message",
		}

		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
