package tools

import (
	"errors"

	twitter "github.com/anatolykoptev/twitter-mcp"
)

// ErrorKind classifies a failed tool call.
type ErrorKind int

const (
	KindValidation ErrorKind = iota + 1 // bad input, rejected before any API call
	KindAuth                            // missing or rejected credentials
	KindForbidden                       // authenticated but not allowed, e.g. duplicate content
	KindRateLimited
	KindNotFound
	KindUpstream // transport failure or any other API error
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindForbidden:
		return "forbidden"
	case KindRateLimited:
		return "rate_limited"
	case KindNotFound:
		return "not_found"
	case KindUpstream:
		return "upstream"
	}
	return "unknown"
}

// ToolError is the failure half of a Result.
type ToolError struct {
	Kind    ErrorKind
	Message string
}

// Result is the outcome of one tool call: either Text or Err is set.
type Result struct {
	Text string
	Err  *ToolError
}

// String renders the result as it is sent to the caller.
func (r Result) String() string {
	if r.Err != nil {
		return "Error: " + r.Err.Message
	}
	return r.Text
}

// OK reports whether the call succeeded.
func (r Result) OK() bool { return r.Err == nil }

func success(text string) Result {
	return Result{Text: text}
}

func validationError(msg string) Result {
	return Result{Err: &ToolError{Kind: KindValidation, Message: msg}}
}

// adapterError converts an adapter failure into a Result, keeping the message verbatim.
func adapterError(err error) Result {
	return Result{Err: &ToolError{Kind: classify(err), Message: err.Error()}}
}

func classify(err error) ErrorKind {
	switch {
	case errors.Is(err, twitter.ErrUnauthorized):
		return KindAuth
	case errors.Is(err, twitter.ErrForbidden):
		return KindForbidden
	case errors.Is(err, twitter.ErrRateLimited):
		return KindRateLimited
	case errors.Is(err, twitter.ErrNotFound):
		return KindNotFound
	}
	return KindUpstream
}
