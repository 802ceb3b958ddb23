package twitter

import (
	"fmt"
	"net/url"
	"strconv"
)

const apiBaseURL = "https://api.twitter.com"

// Endpoint names, used for rate-limit bookkeeping and metrics.
const (
	endpointMe           = "UsersMe"
	endpointHomeTimeline = "HomeTimeline"
	endpointCreateTweet  = "CreateTweet"
)

// timelineTweetFields are requested on every timeline read. author_id is not
// returned by default.
const timelineTweetFields = "author_id,created_at,conversation_id"

// StatusURL returns the public web URL of a tweet.
func StatusURL(id string) string {
	return "https://twitter.com/user/status/" + id
}

func (c *Client) meURL() string {
	return c.cfg.BaseURL + "/2/users/me"
}

func (c *Client) homeTimelineURL(userID string, maxResults int) string {
	q := url.Values{}
	q.Set("max_results", strconv.Itoa(maxResults))
	q.Set("tweet.fields", timelineTweetFields)
	return fmt.Sprintf("%s/2/users/%s/timelines/reverse_chronological?%s",
		c.cfg.BaseURL, url.PathEscape(userID), q.Encode())
}

func (c *Client) createTweetURL() string {
	return c.cfg.BaseURL + "/2/tweets"
}
