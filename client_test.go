package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{
	APIKey:            "consumer-key",
	APISecret:         "consumer-secret",
	AccessToken:       "access-token",
	AccessTokenSecret: "access-secret",
	BearerToken:       "bearer",
}

func newTestClient(t *testing.T, creds Credentials, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(ClientConfig{Credentials: creds, BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return c
}

func TestNewClient_NoCredentials(t *testing.T) {
	c, err := NewClient(ClientConfig{})
	require.NoError(t, err)
	assert.Equal(t, "oauth1", c.AuthMode())
	assert.Equal(t, apiBaseURL, c.cfg.BaseURL)
}

func TestNewClient_BadProxy(t *testing.T) {
	_, err := NewClient(ClientConfig{Proxy: "http://user:pass@[::1"})
	require.Error(t, err)
}

func TestSelectAuthMode(t *testing.T) {
	assert.Equal(t, authOAuth1, selectAuthMode(testCreds))
	assert.Equal(t, authBearer, selectAuthMode(Credentials{BearerToken: "b"}))
	assert.Equal(t, authOAuth1, selectAuthMode(Credentials{}))
	assert.Equal(t, authOAuth1, selectAuthMode(Credentials{APIKey: "k", BearerToken: "b"}))
}

func TestHomeTimeline(t *testing.T) {
	var meCalls atomic.Int32
	var gotMaxResults, gotFields string

	mux := http.NewServeMux()
	mux.HandleFunc("/2/users/me", func(w http.ResponseWriter, r *http.Request) {
		meCalls.Add(1)
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "OAuth "))
		io.WriteString(w, `{"data":{"id":"42","username":"me"}}`)
	})
	mux.HandleFunc("/2/users/42/timelines/reverse_chronological", func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasPrefix(r.Header.Get("Authorization"), "OAuth "))
		gotMaxResults = r.URL.Query().Get("max_results")
		gotFields = r.URL.Query().Get("tweet.fields")
		io.WriteString(w, `{"data":[{"id":"1","text":"hi","author_id":"7"},{"id":"2","text":"yo","author_id":"8"}],"meta":{"result_count":2}}`)
	})

	c := newTestClient(t, testCreds, mux)
	ctx := context.Background()

	tweets, err := c.HomeTimeline(ctx, 37)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, "7", tweets[0].AuthorID)
	assert.Equal(t, "yo", tweets[1].Text)
	assert.Equal(t, "37", gotMaxResults)
	assert.Contains(t, gotFields, "author_id")

	_, err = c.HomeTimeline(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, int32(1), meCalls.Load(), "user id should be cached")
}

func TestHomeTimeline_Unauthorized(t *testing.T) {
	c := newTestClient(t, Credentials{}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"title":"Unauthorized","type":"about:blank","status":401,"detail":"Unauthorized"}`)
	}))

	_, err := c.HomeTimeline(context.Background(), 20)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
	assert.Equal(t, "UsersMe: 401 Unauthorized", err.Error())
}

func TestCreateTweet(t *testing.T) {
	var got map[string]any
	c := newTestClient(t, testCreds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2/tweets", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"id":"123","text":"hello world"}}`)
	}))

	id, err := c.CreateTweet(context.Background(), "hello world")
	require.NoError(t, err)
	assert.Equal(t, "123", id)
	assert.Equal(t, map[string]any{"text": "hello world"}, got)
}

func TestReplyToTweet(t *testing.T) {
	var got createTweetRequest
	c := newTestClient(t, testCreds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"id":"456","text":"reply"}}`)
	}))

	id, err := c.ReplyToTweet(context.Background(), "1799", "reply")
	require.NoError(t, err)
	assert.Equal(t, "456", id)
	assert.Equal(t, "reply", got.Text)
	require.NotNil(t, got.Reply)
	assert.Equal(t, "1799", got.Reply.InReplyToTweetID)
}

func TestCreateTweet_BearerAuth(t *testing.T) {
	c := newTestClient(t, Credentials{BearerToken: "user-access-token"}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-access-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"id":"9"}}`)
	}))
	assert.Equal(t, "bearer", c.AuthMode())

	id, err := c.CreateTweet(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "9", id)
}

func TestCreateTweet_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{"duplicate", 403, `{"detail":"You are not allowed to create a Tweet with duplicate content.","title":"Forbidden","status":403}`, ErrForbidden},
		{"server", 503, `{"title":"Service Unavailable"}`, ErrServer},
		{"missing id", 201, `{"data":{}}`, ErrMalformedResponse},
		{"not json", 200, `<html>`, ErrMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, testCreds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			_, err := c.CreateTweet(context.Background(), "hello")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
		})
	}
}

func TestRateLimitFailsFast(t *testing.T) {
	var calls atomic.Int32
	reset := time.Now().Add(10 * time.Minute).Unix()
	c := newTestClient(t, testCreds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("x-rate-limit-reset", strconv.FormatInt(reset, 10))
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"title":"Too Many Requests","detail":"Too Many Requests","status":429}`)
	}))

	ctx := context.Background()
	_, err := c.CreateTweet(ctx, "one")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, reset, apiErr.ResetAt.Unix())

	_, err = c.CreateTweet(ctx, "two")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRateLimited))
	assert.Equal(t, int32(1), calls.Load(), "second call must not reach the server")
}

func TestMetricsHook(t *testing.T) {
	type call struct {
		endpoint             string
		success, rateLimited bool
	}
	var mu sync.Mutex
	var calls []call

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"data":{"id":"1"}}`)
	}))
	defer srv.Close()

	c, err := NewClient(ClientConfig{
		Credentials: testCreds,
		BaseURL:     srv.URL,
		MetricsHook: func(endpoint string, success, rateLimited bool) {
			mu.Lock()
			calls = append(calls, call{endpoint, success, rateLimited})
			mu.Unlock()
		},
	})
	require.NoError(t, err)

	_, err = c.CreateTweet(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []call{{endpointCreateTweet, true, false}}, calls)
}

func TestContextCanceled(t *testing.T) {
	c := newTestClient(t, testCreds, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.CreateTweet(ctx, "hello")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestStatusURL(t *testing.T) {
	assert.Equal(t, "https://twitter.com/user/status/123", StatusURL("123"))
}
