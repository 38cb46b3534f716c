package transport

import "fmt"

// ConnectError indicates the request never reached the server.
type ConnectError struct {
	Endpoint string
	Cause    error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("failed to reach %s: %v", e.Endpoint, e.Cause)
}

func (e *ConnectError) Unwrap() error { return e.Cause }

// StatusError indicates the server answered with a non-success status before
// any streaming began.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
}

// StreamError indicates a failure after streaming began. Chunks delivered
// before the failure have already been applied and are retained.
type StreamError struct {
	Endpoint string
	Message  string
	Cause    error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("stream from %s failed: %s", e.Endpoint, e.Message)
}

func (e *StreamError) Unwrap() error { return e.Cause }
