package twitter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Sentinel errors. Every *APIError unwraps to exactly one of them.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrRateLimited       = errors.New("rate limited")
	ErrBadRequest        = errors.New("bad request")
	ErrServer            = errors.New("server error")
	ErrMalformedResponse = errors.New("malformed response")
)

// errorClass categorizes Twitter API error responses for targeted handling.
type errorClass int

const (
	errNone         errorClass = iota
	errAuth                    // 401, codes 32, 89
	errForbidden               // 403, code 187 duplicate and other policy rejections
	errNotFound                // 404, code 144
	errRateLimited             // 429, code 88
	errBadRequest              // other 4xx
	errServer                  // 5xx, code 131
	errMalformed               // 2xx without the expected payload
)

func (c errorClass) sentinel() error {
	switch c {
	case errAuth:
		return ErrUnauthorized
	case errForbidden:
		return ErrForbidden
	case errNotFound:
		return ErrNotFound
	case errRateLimited:
		return ErrRateLimited
	case errServer:
		return ErrServer
	case errMalformed:
		return ErrMalformedResponse
	case errBadRequest:
		return ErrBadRequest
	}
	return nil
}

// APIError is a failed API call.
type APIError struct {
	Endpoint   string
	StatusCode int
	Title      string
	Detail     string
	Code       int
	ResetAt    time.Time // set for rate-limit errors when known

	class errorClass
}

func (e *APIError) Error() string {
	title := e.Title
	if title == "" {
		title = http.StatusText(e.StatusCode)
	}
	msg := title
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%d %s", e.StatusCode, title)
	}
	if e.Detail != "" && e.Detail != title {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the sentinel for the error class. Errors built outside this
// package are classified by status code.
func (e *APIError) Unwrap() error {
	c := e.class
	if c == errNone {
		c = classifyError(e.StatusCode, nil)
	}
	return c.sentinel()
}

// errorBody covers both the v2 problem format and the legacy v1 errors array.
type errorBody struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Title   string `json:"title"`
		Detail  string `json:"detail"`
	} `json:"errors"`
}

// classifyError inspects the status and body of a response for known error codes.
// 2xx responses are never errors here; partial errors beside data are ignored.
func classifyError(status int, body []byte) errorClass {
	if status >= 200 && status < 300 {
		return errNone
	}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		for _, e := range eb.Errors {
			switch e.Code {
			case 88:
				return errRateLimited
			case 32, 89:
				return errAuth
			case 144:
				return errNotFound
			case 187:
				return errForbidden
			case 131:
				return errServer
			}
		}
	}

	switch {
	case status == http.StatusUnauthorized:
		return errAuth
	case status == http.StatusForbidden:
		return errForbidden
	case status == http.StatusNotFound:
		return errNotFound
	case status == http.StatusTooManyRequests:
		return errRateLimited
	case status >= 500:
		return errServer
	}
	return errBadRequest
}

// newAPIError builds an *APIError from a non-2xx response.
func newAPIError(endpoint string, status int, body []byte) *APIError {
	e := &APIError{
		Endpoint:   endpoint,
		StatusCode: status,
		class:      classifyError(status, body),
	}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		e.Title = eb.Title
		e.Detail = eb.Detail
		if len(eb.Errors) > 0 {
			first := eb.Errors[0]
			e.Code = first.Code
			if e.Detail == "" {
				e.Detail = first.Message
			}
			if e.Detail == "" {
				e.Detail = first.Detail
			}
		}
	} else if len(body) > 0 {
		e.Detail = truncateBytes(body, 200)
	}
	return e
}

// parseRateLimitReset parses the X-Rate-Limit-Reset unix timestamp header.
// Falls back to 15 minutes from now if missing or invalid.
func parseRateLimitReset(v string) time.Time {
	if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
		return time.Unix(ts, 0)
	}
	return time.Now().Add(15 * time.Minute)
}
