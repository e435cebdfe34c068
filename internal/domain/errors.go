package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies user-visible failures.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNetwork    ErrorKind = "network"
	KindService    ErrorKind = "service"
	KindClipboard  ErrorKind = "clipboard"
	KindHistory    ErrorKind = "history"
)

// ErrorInfo is the human-readable description carried by a Failed state.
type ErrorInfo struct {
	Kind    ErrorKind
	Message string
}

func (e ErrorInfo) String() string {
	return e.Message
}

var (
	// ErrEmptyInput is returned when the trimmed input is empty.
	ErrEmptyInput = &ValidationError{Reason: "empty input"}
	// ErrRequestPending is returned when a submission arrives while another is outstanding.
	ErrRequestPending = errors.New("a request is already in flight")
)

// ValidationError is raised locally before any request is made.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Kind implements KindedError.
func (e *ValidationError) Kind() ErrorKind { return KindValidation }

// NetworkError is a transport-level failure reaching the generation service.
type NetworkError struct {
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("cannot reach generation service at %s: %v", e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Kind implements KindedError.
func (e *NetworkError) Kind() ErrorKind { return KindNetwork }

// ServiceError means the service answered with a non-success status or a malformed body.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("generation service: %s", e.Message)
	}
	if e.Message == "" {
		return fmt.Sprintf("generation service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("generation service returned status %d: %s", e.StatusCode, e.Message)
}

// Kind implements KindedError.
func (e *ServiceError) Kind() ErrorKind { return KindService }

// ClipboardError means the clipboard write failed.
type ClipboardError struct {
	Err error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("copy failed: %v", e.Err)
}

func (e *ClipboardError) Unwrap() error { return e.Err }

// Kind implements KindedError.
func (e *ClipboardError) Kind() ErrorKind { return KindClipboard }

// HistoryError means a successful transformation could not be recorded.
type HistoryError struct {
	Err error
}

func (e *HistoryError) Error() string {
	return fmt.Sprintf("result not saved to history: %v", e.Err)
}

func (e *HistoryError) Unwrap() error { return e.Err }

// Kind implements KindedError.
func (e *HistoryError) Kind() ErrorKind { return KindHistory }

// KindedError is implemented by every error in the taxonomy.
type KindedError interface {
	error
	Kind() ErrorKind
}

// Describe converts any error into an ErrorInfo. Errors outside the taxonomy
// are reported as service errors since they can only come from the collaborator.
func Describe(err error) ErrorInfo {
	var kinded KindedError
	if errors.As(err, &kinded) {
		return ErrorInfo{Kind: kinded.Kind(), Message: kinded.Error()}
	}
	return ErrorInfo{Kind: KindService, Message: err.Error()}
}
