package core

import (
	"fmt"
	"net/http"
)

// TransportError indicates the upstream endpoint could not be reached at all
// (connection failure, timeout, cancelled context). Always retryable.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("llm transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError indicates the endpoint answered but with a non-success status
// or an envelope missing the completion content.
type UpstreamError struct {
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("llm upstream error: status %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("llm upstream error: %s", e.Detail)
}

// Retryable reports whether the status suggests a transient condition.
func (e *UpstreamError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// ResponseFormatError indicates a successful completion whose content could
// not be parsed into the expected JSON shape even after the repair pass.
// Terminal for the analysis: the same prompt is likely to fail the same way.
type ResponseFormatError struct {
	Detail string
	Raw    string
}

func (e *ResponseFormatError) Error() string {
	return fmt.Sprintf("unparsable llm response: %s", e.Detail)
}
