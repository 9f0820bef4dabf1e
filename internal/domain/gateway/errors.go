package gateway

import "fmt"

// RejectedError is returned when the gateway responded but did not report
// success.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "gateway rejected request"
	}
	return "gateway rejected request: " + e.Message
}

// HTTPError is returned for a non-2xx gateway response. Message is the
// gateway's own message and may be empty.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("gateway responded %d: %s", e.StatusCode, e.Message)
}
