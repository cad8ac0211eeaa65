package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// FlagMessageHandler creates a handler for adding, removing or replacing
// message flags
func FlagMessageHandler(client MailboxWriter) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()

		uid, err := parseUID(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		action, _ := args["action"].(string)
		if action == "" {
			action = "add"
		}

		flags, err := parseStringList(args, "flags")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if len(flags) == 0 && action != "set" {
			return mcp.NewToolResultError("flags is required"), nil
		}

		switch action {
		case "add":
			err = client.AddFlags(uid, flags...)
		case "remove":
			err = client.RemoveFlags(uid, flags...)
		case "set":
			// An empty list is valid here: it clears every flag.
			err = client.SetFlags(uid, flags)
		default:
			return mcp.NewToolResultError(fmt.Sprintf("invalid action: %s (want add, remove or set)", action)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to %s flags: %v", action, err)), nil
		}

		response := map[string]interface{}{
			"success": true,
			"uid":     uid,
			"action":  action,
			"flags":   flags,
		}

		jsonData, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to format response: %v", err)), nil
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
