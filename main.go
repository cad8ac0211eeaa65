package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mailkit/imapbox/config"
	"github.com/mailkit/imapbox/mailbox"
	"github.com/mailkit/imapbox/session"
	"github.com/mailkit/imapbox/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// version is set at build time via ldflags
var version = "dev"

func main() {
	// Initialize structured logging
	logLevel := new(slog.LevelVar)
	logLevel.Set(slog.LevelInfo)
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		switch strings.ToUpper(lvl) {
		case "DEBUG":
			logLevel.Set(slog.LevelDebug)
		case "WARN":
			logLevel.Set(slog.LevelWarn)
		case "ERROR":
			logLevel.Set(slog.LevelError)
		}
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// Connect and select the working folder
	sess, err := session.Dial(cfg.Addr(), cfg.Username, cfg.Password)
	if err != nil {
		slog.Error("failed to connect to IMAP server (check credentials)", "error", err)
		os.Exit(1)
	}

	box, err := mailbox.Open(sess, cfg.Folder, false)
	if err != nil {
		slog.Error("failed to open folder", "folder", cfg.Folder, "error", err)
		sess.Logout()
		os.Exit(1)
	}
	defer box.Close()

	if cfg.Trash != "" {
		box.SetTrash(cfg.Trash)
	}

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	// Create MCP server with middleware (applied in reverse: logging wraps timeout wraps handler)
	s := server.NewMCPServer(
		"IMAP Mailbox Server",
		version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithToolHandlerMiddleware(timeoutMiddleware(60*time.Second)),
		server.WithToolHandlerMiddleware(loggingMiddleware()),
	)

	// Register search_messages tool
	searchMessagesTool := mcp.NewTool("search_messages",
		mcp.WithDescription("Search the folder with a raw IMAP SEARCH criteria string (e.g. 'UNSEEN', 'FROM \"alice\" SINCE 1-Jan-2026'). Returns matching message UIDs for use with the other tools. Omit criteria to list every message."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithString("criteria",
			mcp.Description("IMAP SEARCH criteria. Defaults to ALL."),
		),
	)
	s.AddTool(searchMessagesTool, tools.SearchMessagesHandler(box))

	// Register get_message tool
	getMessageTool := mcp.NewTool("get_message",
		mcp.WithDescription("Fetch a message by UID. Use search_messages first to find UIDs. Returns flags, size, dates, subject, sender, and the text body."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("uid",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Message UID from search_messages results."),
		),
		mcp.WithBoolean("header_only",
			mcp.Description("Fetch only the header section, leaving the message unread on the server."),
			mcp.DefaultBool(false),
		),
	)
	s.AddTool(getMessageTool, tools.GetMessageHandler(box))

	// Register summarize_messages tool
	summarizeMessagesTool := mcp.NewTool("summarize_messages",
		mcp.WithDescription("Render one-line digests (sender, date, subject) for a set of messages. Omit uids to summarize the whole folder. Headers are fetched without marking messages read."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithArray("uids",
			mcp.Description("Message UIDs to summarize (from search_messages). Defaults to every message in the folder."),
		),
	)
	s.AddTool(summarizeMessagesTool, tools.SummaryHandler(box))

	// Register flag_message tool
	flagMessageTool := mcp.NewTool("flag_message",
		mcp.WithDescription("Add, remove, or replace IMAP flags on a message (e.g. '\\Seen', '\\Flagged'). Use action=set with an empty flags list to clear all flags."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("uid",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Message UID to flag (from search_messages)."),
		),
		mcp.WithArray("flags",
			mcp.Description("Flags to apply. May be empty only when action is 'set'."),
		),
		mcp.WithString("action",
			mcp.Enum("add", "remove", "set"),
			mcp.DefaultString("add"),
			mcp.Description("add appends flags, remove clears the named flags, set replaces the full flag list."),
		),
	)
	s.AddTool(flagMessageTool, tools.FlagMessageHandler(box))

	// Register delete_message tool
	deleteMessageTool := mcp.NewTool("delete_message",
		mcp.WithDescription("Delete a message by UID. Moves it to the configured trash folder when one is set, otherwise marks it \\Deleted. Set permanent=true to expunge immediately."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("uid",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Message UID to delete (from search_messages)."),
		),
		mcp.WithBoolean("permanent",
			mcp.Description("Expunge after deleting. This cannot be undone."),
			mcp.DefaultBool(false),
		),
	)
	s.AddTool(deleteMessageTool, tools.DeleteMessageHandler(box))

	// Register move_message tool
	moveMessageTool := mcp.NewTool("move_message",
		mcp.WithDescription("Move a message to another folder on the same server. The original is marked \\Deleted and removed on the next expunge."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithNumber("uid",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Message UID to move (from search_messages)."),
		),
		mcp.WithString("to_folder",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Destination folder name."),
		),
	)
	s.AddTool(moveMessageTool, tools.MoveMessageHandler(box))

	// Register append_message tool
	appendMessageTool := mcp.NewTool("append_message",
		mcp.WithDescription("Append a raw RFC 822 message to the folder. Returns the UID the server most likely assigned (best effort). Calling twice stores duplicate messages."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithString("message",
			mcp.Required(),
			mcp.MinLength(1),
			mcp.Description("Full raw message source including headers."),
		),
		mcp.WithArray("flags",
			mcp.Description("Initial IMAP flags for the stored message."),
		),
	)
	s.AddTool(appendMessageTool, tools.AppendMessageHandler(box))

	// Register pop_message tool
	popMessageTool := mcp.NewTool("pop_message",
		mcp.WithDescription("Fetch a message and remove it from the folder in one step. The removed copy is returned; it goes to trash when a trash folder is configured."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(false),
		mcp.WithNumber("uid",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Message UID to pop (from search_messages)."),
		),
	)
	s.AddTool(popMessageTool, tools.PopMessageHandler(box))

	// Register purge tool
	purgeTool := mcp.NewTool("purge",
		mcp.WithDescription("Expunge the folder, permanently removing every message marked \\Deleted. This cannot be undone."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithIdempotentHintAnnotation(true),
	)
	s.AddTool(purgeTool, tools.PurgeHandler(box))

	// Log startup
	slog.Info("server starting",
		"version", version,
		"server", cfg.Addr(),
		"user", cfg.Username,
		"folder", cfg.Folder,
	)

	// Start the stdio server with cancellable context
	stdioServer := server.NewStdioServer(s)
	if err := stdioServer.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// timeoutMiddleware wraps each tool handler with a context deadline.
func timeoutMiddleware(timeout time.Duration) server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			return next(ctx, req)
		}
	}
}

// loggingMiddleware logs each tool call with a unique request ID, tool name, duration, and outcome.
func loggingMiddleware() server.ToolHandlerMiddleware {
	return func(next server.ToolHandlerFunc) server.ToolHandlerFunc {
		return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			requestID := uuid.New().String()
			tool := req.Params.Name
			logger := slog.With("request_id", requestID, "tool", tool)

			logger.Debug("tool call started")
			start := time.Now()

			result, err := next(ctx, req)
			duration := time.Since(start)

			if err != nil {
				logger.Error("tool call failed", "duration_ms", duration.Milliseconds(), "error", err)
			} else if result != nil && result.IsError {
				logger.Warn("tool call returned error", "duration_ms", duration.Milliseconds())
			} else {
				logger.Info("tool call completed", "duration_ms", duration.Milliseconds())
			}

			return result, err
		}
	}
}
