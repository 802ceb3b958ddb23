package tools

import (
	"context"
	"fmt"
	"strings"

	twitter "github.com/anatolykoptev/twitter-mcp"
)

// Adapter is the subset of the API client the tools need.
// *twitter.Client implements it.
type Adapter interface {
	HomeTimeline(ctx context.Context, maxResults int) ([]*twitter.Tweet, error)
	CreateTweet(ctx context.Context, text string) (string, error)
	ReplyToTweet(ctx context.Context, inReplyToID, text string) (string, error)
}

// Handlers implements the three tools on top of an Adapter. Handlers hold no
// state of their own and may be called concurrently.
type Handlers struct {
	adapter Adapter
}

// NewHandlers creates tool handlers backed by a.
func NewHandlers(a Adapter) *Handlers {
	return &Handlers{adapter: a}
}

// GetHomeTimeline returns up to limit timeline tweets, one "@author: text" item
// per tweet separated by a blank line.
func (h *Handlers) GetHomeTimeline(ctx context.Context, limit int) Result {
	tweets, err := h.adapter.HomeTimeline(ctx, ClampTimelineLimit(limit))
	if err != nil {
		return adapterError(err)
	}
	if len(tweets) == 0 {
		return success("No tweets found")
	}
	items := make([]string, 0, len(tweets))
	for _, t := range tweets {
		items = append(items, fmt.Sprintf("@%s: %s", t.AuthorID, t.Text))
	}
	return success(strings.Join(items, "\n\n"))
}

// CreateTweet posts text as a new tweet.
func (h *Handlers) CreateTweet(ctx context.Context, text string) Result {
	if !ValidateText(text) {
		return validationError(fmt.Sprintf("Tweet exceeds %d characters", MaxTweetLength))
	}
	id, err := h.adapter.CreateTweet(ctx, text)
	if err != nil {
		return adapterError(err)
	}
	return success("Tweet posted successfully: " + twitter.StatusURL(id))
}

// ReplyToTweet posts text as a reply to tweetID.
func (h *Handlers) ReplyToTweet(ctx context.Context, tweetID, text string) Result {
	if !ValidateText(text) {
		return validationError(fmt.Sprintf("Reply exceeds %d characters", MaxTweetLength))
	}
	id, err := h.adapter.ReplyToTweet(ctx, tweetID, text)
	if err != nil {
		return adapterError(err)
	}
	return success("Reply posted successfully: " + twitter.StatusURL(id))
}
