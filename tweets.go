package twitter

import (
	"context"
	"encoding/json"
	"fmt"
)

// CreateTweet posts a new tweet and returns its id.
func (c *Client) CreateTweet(ctx context.Context, text string) (string, error) {
	return c.postTweet(ctx, createTweetRequest{Text: text})
}

// ReplyToTweet posts text as a reply to inReplyToID and returns the new tweet's id.
func (c *Client) ReplyToTweet(ctx context.Context, inReplyToID, text string) (string, error) {
	return c.postTweet(ctx, createTweetRequest{
		Text:  text,
		Reply: &replyParams{InReplyToTweetID: inReplyToID},
	})
}

func (c *Client) postTweet(ctx context.Context, req createTweetRequest) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode tweet: %w", err)
	}
	body, err := c.doPOST(ctx, endpointCreateTweet, c.createTweetURL(), payload)
	if err != nil {
		return "", fmt.Errorf("CreateTweet: %w", err)
	}
	return parseCreatedTweet(body)
}
