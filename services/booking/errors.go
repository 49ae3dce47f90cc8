package booking

import "fmt"

// ValidationError reports a malformed booking request. No external call has
// been made when it is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validationError: %s", e.Message)
}

func NewValidationError(msg string) error {
	return &ValidationError{Message: msg}
}

// ConflictError reports a slot that is no longer available at commit time.
// Clients should refresh their slot list rather than retry blindly.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflictError: %s", e.Message)
}

func NewConflictError(msg string) error {
	return &ConflictError{Message: msg}
}

// ProviderError wraps a calendar backend failure. No partial state exists:
// the provider call is the single source of truth, so the whole flow is safe
// to retry.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("providerError: %s: %v", e.Message, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(msg string, err error) error {
	return &ProviderError{Message: msg, Err: err}
}
