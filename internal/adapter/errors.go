package adapter

import "fmt"

// APIError is returned when a provider was reachable but rejected the call
// with a non-success status. The response body is kept verbatim for
// diagnostics; handlers surface it on the 502 path.
//
// Only the text-provider adapter produces APIError. The multimodal provider
// reports every failure, non-2xx included, as a plain error; the two paths
// are intentionally asymmetric.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("provider API error [%d]: %s", e.StatusCode, e.Body)
}
