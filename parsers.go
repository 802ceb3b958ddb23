package twitter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

type tweetObj struct {
	ID             string `json:"id"`
	Text           string `json:"text"`
	AuthorID       string `json:"author_id"`
	ConversationID string `json:"conversation_id"`
	CreatedAt      string `json:"created_at"`
}

func (t tweetObj) toTweet() *Tweet {
	tw := &Tweet{
		ID:             t.ID,
		AuthorID:       t.AuthorID,
		Text:           t.Text,
		ConversationID: t.ConversationID,
	}
	if t.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, t.CreatedAt); err == nil {
			tw.CreatedAt = ts
		} else {
			slog.Debug("unparseable created_at", slog.String("id", t.ID), slog.String("value", t.CreatedAt))
		}
	}
	return tw
}

// parseMe parses the GET /2/users/me response and returns the user id.
func parseMe(body []byte) (string, error) {
	var raw struct {
		Data struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", malformed(endpointMe, fmt.Sprintf("unmarshal users/me: %v", err))
	}
	if raw.Data.ID == "" {
		return "", malformed(endpointMe, "users/me: no user id in response")
	}
	return raw.Data.ID, nil
}

// parseTimeline parses a v2 tweet list. A missing data array means no tweets.
func parseTimeline(body []byte) ([]*Tweet, error) {
	var raw struct {
		Data []tweetObj `json:"data"`
		Meta struct {
			ResultCount int `json:"result_count"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, malformed(endpointHomeTimeline, fmt.Sprintf("unmarshal timeline: %v", err))
	}
	tweets := make([]*Tweet, 0, len(raw.Data))
	for _, t := range raw.Data {
		tweets = append(tweets, t.toTweet())
	}
	return tweets, nil
}

// parseCreatedTweet returns the id of a newly created tweet.
func parseCreatedTweet(body []byte) (string, error) {
	var raw struct {
		Data tweetObj `json:"data"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", malformed(endpointCreateTweet, fmt.Sprintf("unmarshal create tweet: %v", err))
	}
	if raw.Data.ID == "" {
		return "", malformed(endpointCreateTweet, "create tweet: no id in response: "+truncateBytes(body, 200))
	}
	return raw.Data.ID, nil
}

func malformed(endpoint, detail string) *APIError {
	return &APIError{
		Endpoint: endpoint,
		Title:    "Malformed Response",
		Detail:   detail,
		class:    errMalformed,
	}
}
