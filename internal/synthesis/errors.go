package synthesis

import "errors"

var (
	// ErrMissingAPIKey is the configuration error: no credential, no
	// network call is attempted.
	ErrMissingAPIKey = errors.New("API Key is missing. Please check your environment configuration.")
	// ErrEmptyResponse means the model produced no text payload.
	ErrEmptyResponse = errors.New("no response generated from the model")
	// ErrBadResponse means the payload did not parse as the declared schema.
	ErrBadResponse = errors.New("model response did not match the expected format")
	// ErrTimeout means the bounded wait for the collaborator expired.
	ErrTimeout = errors.New("synthesis timed out waiting for the model")
)

// RequestError wraps a network or service failure from the collaborator.
type RequestError struct {
	Err error
}

func (e *RequestError) Error() string { return "synthesis request failed: " + e.Err.Error() }
func (e *RequestError) Unwrap() error { return e.Err }
