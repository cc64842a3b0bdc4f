package goodshort

import (
	"errors"
	"fmt"
)

// ErrFetchFailed is the single generic failure for upstream fetches.
var ErrFetchFailed = errors.New("failed to fetch data")

// ValidationError reports a missing or malformed request parameter.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "validation error"
	}
	return e.Message
}

// Validation builds a ValidationError with the given client-facing message.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

// FetchError covers transport failures and non-2xx upstream responses alike.
// StatusCode is zero when no response was received.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e == nil {
		return ErrFetchFailed.Error()
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: url=%s status=%d: %v", ErrFetchFailed, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: url=%s: %v", ErrFetchFailed, e.URL, e.Err)
}

func (e *FetchError) Unwrap() []error {
	if e == nil {
		return nil
	}
	return []error{ErrFetchFailed, e.Err}
}

// UpstreamError wraps any failure of an endpoint operation, whether the fetch
// failed or the extractor blew up.
type UpstreamError struct {
	Endpoint string
	Err      error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "upstream error"
	}
	return fmt.Sprintf("endpoint=%s: %v", e.Endpoint, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
