package provider

import (
	"errors"
	"fmt"
)

// ErrEmptyChoices is returned when the model response carries no choices.
var ErrEmptyChoices = errors.New("no response from LLM")

// APIError is a non-success response from the model provider.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API request failed with status %s", e.Status)
	}
	return fmt.Sprintf("API request failed with status %s: %s", e.Status, e.Message)
}

// DecodeError is returned when the response body is not a valid completion.
type DecodeError struct {
	Body  string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to parse response: %v\nBody: %s", e.Cause, e.Body)
}
func (e *DecodeError) Unwrap() error { return e.Cause }

// RequestError wraps a transport failure before any response was received.
type RequestError struct {
	URL   string
	Cause error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Cause)
}
func (e *RequestError) Unwrap() error { return e.Cause }
