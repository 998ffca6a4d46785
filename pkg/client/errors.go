package client

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates the client configuration failed validation.
	ErrInvalidConfig = errors.New("invalid client configuration")

	// ErrSessionUnavailable indicates the HTTP session collaborator could
	// not be acquired at construction time.
	ErrSessionUnavailable = errors.New("http session unavailable")

	// ErrInvalidArgument indicates a bad call-site input, such as an empty
	// user ID.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRequestFailed indicates a non-success HTTP status or a
	// transport-level failure. Inspect *RequestError for the status code.
	ErrRequestFailed = errors.New("request failed")

	// ErrDecodeFailed indicates a success response whose body is not valid
	// JSON.
	ErrDecodeFailed = errors.New("response decode failed")
)

// RequestError carries the details of a failed request. StatusCode is zero
// for transport-level failures, in which case Err holds the underlying
// error.
type RequestError struct {
	StatusCode int
	URL        string
	Body       string
	Err        error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
	}
	if e.Body != "" {
		return fmt.Sprintf("request to %s returned status %d: %s", e.URL, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("request to %s returned status %d", e.URL, e.StatusCode)
}

// Unwrap makes errors.Is(err, ErrRequestFailed) hold for every RequestError,
// alongside any underlying transport error.
func (e *RequestError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrRequestFailed, e.Err}
	}
	return []error{ErrRequestFailed}
}
