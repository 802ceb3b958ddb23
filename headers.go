package twitter

import "net/http"

// userAgent identifies this client to the API.
const userAgent = "twitter-mcp/1.0"

// setAPIHeaders applies the headers sent with every API request.
// Authorization is added by the signing transport.
func setAPIHeaders(h http.Header, hasBody bool) {
	h.Set("user-agent", userAgent)
	h.Set("accept", "application/json")
	if hasBody {
		h.Set("content-type", "application/json")
	}
}
