package twitter

import (
	"context"
	"fmt"
)

// Me returns the authenticated user's id. The first successful lookup is cached
// for the lifetime of the client.
func (c *Client) Me(ctx context.Context) (string, error) {
	if id, ok := c.cachedUserID(); ok {
		return id, nil
	}
	body, err := c.doGET(ctx, endpointMe, c.meURL())
	if err != nil {
		return "", fmt.Errorf("UsersMe: %w", err)
	}
	id, err := parseMe(body)
	if err != nil {
		return "", err
	}
	c.setUserID(id)
	return id, nil
}

// HomeTimeline fetches up to maxResults tweets from the authenticated user's
// reverse-chronological home timeline. Callers keep maxResults within 1..100.
func (c *Client) HomeTimeline(ctx context.Context, maxResults int) ([]*Tweet, error) {
	userID, err := c.Me(ctx)
	if err != nil {
		return nil, err
	}
	body, err := c.doGET(ctx, endpointHomeTimeline, c.homeTimelineURL(userID, maxResults))
	if err != nil {
		return nil, fmt.Errorf("HomeTimeline: %w", err)
	}
	return parseTimeline(body)
}
