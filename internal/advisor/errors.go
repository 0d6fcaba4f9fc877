package advisor

import "fmt"

// UpstreamError wraps any failure of the text-completion collaborator.
// Message is the marker-prefixed text shown to the user as-is.
type UpstreamError struct {
	Message string
	Cause   error
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s upstream failure: %v", FailureMarker, e.Cause)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
