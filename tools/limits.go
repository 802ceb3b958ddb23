package tools

import (
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	// DefaultTimelineLimit is used when get_home_timeline is called without a limit.
	DefaultTimelineLimit = 20

	// MaxTimelineLimit is the largest page the timeline endpoint returns.
	// Larger requests are capped, not rejected.
	MaxTimelineLimit = 100

	// MaxTweetLength is the tweet length limit in characters (runes).
	MaxTweetLength = 280
)

// ClampTimelineLimit bounds limit to 1..MaxTimelineLimit.
func ClampTimelineLimit(limit int) int {
	if limit > MaxTimelineLimit {
		return MaxTimelineLimit
	}
	if limit < 1 {
		return 1
	}
	return limit
}

// timelineLimitArg reads the optional "limit" argument. JSON numbers arrive as
// float64 and are capped before conversion so huge values cannot overflow int.
// A present value that is not an integral number is rejected.
func timelineLimitArg(args map[string]any) (int, error) {
	v, ok := args["limit"]
	if !ok || v == nil {
		return DefaultTimelineLimit, nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		return ClampTimelineLimit(n), nil
	case int64:
		f = float64(n)
	default:
		return 0, fmt.Errorf("limit must be an integer, got %T", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("limit must be an integer, got %v", v)
	}
	if f > MaxTimelineLimit {
		return MaxTimelineLimit, nil
	}
	if f < 1 {
		return 1, nil
	}
	return int(f), nil
}

// ValidateText reports whether text fits in a single tweet.
// Every rune counts as one character.
func ValidateText(text string) bool {
	return utf8.RuneCountInString(text) <= MaxTweetLength
}
