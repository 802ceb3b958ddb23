package twitter

import "time"

// Tweet represents a single tweet.
type Tweet struct {
	ID             string
	AuthorID       string
	Text           string
	ConversationID string
	CreatedAt      time.Time
}

// createTweetRequest is the POST /2/tweets body.
type createTweetRequest struct {
	Text  string       `json:"text"`
	Reply *replyParams `json:"reply,omitempty"`
}

type replyParams struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}
