package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names as seen by MCP clients.
const (
	ToolGetHomeTimeline = "get_home_timeline"
	ToolCreateTweet     = "create_tweet"
	ToolReplyToTweet    = "reply_to_tweet"
)

// Definitions returns the MCP schema of every tool, in registration order.
func Definitions() []mcp.Tool {
	return []mcp.Tool{
		mcp.NewTool(ToolGetHomeTimeline,
			mcp.WithDescription("Get recent tweets from your home timeline"),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of tweets to return, an integer (capped at 100)"),
				mcp.DefaultNumber(DefaultTimelineLimit),
			),
		),
		mcp.NewTool(ToolCreateTweet,
			mcp.WithDescription("Create a new tweet (max 280 characters)"),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Tweet text"),
			),
		),
		mcp.NewTool(ToolReplyToTweet,
			mcp.WithDescription("Reply to a tweet"),
			mcp.WithString("tweet_id",
				mcp.Required(),
				mcp.Description("ID of the tweet to reply to"),
			),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Reply text (max 280 characters)"),
			),
		),
	}
}

// Register adds the tools to s.
func Register(s *server.MCPServer, h *Handlers) {
	handlers := map[string]server.ToolHandlerFunc{
		ToolGetHomeTimeline: h.handleGetHomeTimeline,
		ToolCreateTweet:     h.handleCreateTweet,
		ToolReplyToTweet:    h.handleReplyToTweet,
	}
	for _, def := range Definitions() {
		s.AddTool(def, handlers[def.Name])
	}
}

func (h *Handlers) handleGetHomeTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(ctx, ToolGetHomeTimeline, func(ctx context.Context) Result {
		limit, err := timelineLimitArg(req.GetArguments())
		if err != nil {
			return validationError(err.Error())
		}
		return h.GetHomeTimeline(ctx, limit)
	})
}

func (h *Handlers) handleCreateTweet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(ctx, ToolCreateTweet, func(ctx context.Context) Result {
		text, err := req.RequireString("text")
		if err != nil {
			return validationError(err.Error())
		}
		return h.CreateTweet(ctx, text)
	})
}

func (h *Handlers) handleReplyToTweet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.run(ctx, ToolReplyToTweet, func(ctx context.Context) Result {
		tweetID, err := req.RequireString("tweet_id")
		if err != nil {
			return validationError(err.Error())
		}
		text, err := req.RequireString("text")
		if err != nil {
			return validationError(err.Error())
		}
		return h.ReplyToTweet(ctx, tweetID, text)
	})
}

// run executes one tool call and renders its result. Failures are reported
// in-band as text; the returned error is always nil.
func (h *Handlers) run(ctx context.Context, tool string, fn func(context.Context) Result) (*mcp.CallToolResult, error) {
	callID := uuid.NewString()
	start := time.Now()
	slog.Debug("tool call", slog.String("tool", tool), slog.String("call_id", callID))

	res := fn(ctx)

	if res.Err != nil {
		slog.Warn("tool call failed",
			slog.String("tool", tool),
			slog.String("call_id", callID),
			slog.String("kind", res.Err.Kind.String()),
			slog.String("error", res.Err.Message),
			slog.Duration("elapsed", time.Since(start)))
	} else {
		slog.Info("tool call ok",
			slog.String("tool", tool),
			slog.String("call_id", callID),
			slog.Duration("elapsed", time.Since(start)))
	}
	return mcp.NewToolResultText(res.String()), nil
}
