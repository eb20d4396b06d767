package driven

import "context"

// TransportResponse is the outcome of a remote call that reached the
// collection service.
type TransportResponse struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int

	// Body is the decoded JSON response body, or nil when the response
	// had no body.
	Body map[string]any
}

// Transport performs writes against the collection service. The
// implementation attaches the bearer-token authorization header; the
// core never manages token acquisition or refresh.
//
// Send returns an error only when the transport failed before a
// response was received (connection failure, timeout). Non-2xx
// responses are returned as a TransportResponse for the caller to
// classify; the transport does not retry.
type Transport interface {
	Send(ctx context.Context, method, path string, body any) (*TransportResponse, error)
}
