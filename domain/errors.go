package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failure so callers can tell permanent from transient errors
type ErrorKind string

const (
	KindValidation       ErrorKind = "validation"
	KindUpstreamProvider ErrorKind = "upstream_provider"
	KindMalformedInput   ErrorKind = "malformed_input"
	KindStorage          ErrorKind = "storage"
)

// Validation failures
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyContent = errors.New("empty content")
)

// Error is a failure tagged with its kind.
// Source names the provider for upstream errors or the operation for storage errors.
type Error struct {
	Kind    ErrorKind
	Source  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err == nil:
		return e.Message
	case e.Message != "":
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Source != "":
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ValidationError tags a client-side failure. cause should be ErrInvalidInput or ErrEmptyContent.
func ValidationError(cause error, message string) error {
	return &Error{Kind: KindValidation, Message: message, Err: cause}
}

// UpstreamError tags a failure returned by an external provider
func UpstreamError(provider string, err error) error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if errors.As(err, &tagged) && tagged.Kind == KindUpstreamProvider {
		return err
	}
	return &Error{Kind: KindUpstreamProvider, Source: provider, Err: err}
}

// MalformedInputError tags an upload that passed the content-type check but could not be parsed.
// Parsing is local, so the same bytes fail the same way on every attempt.
func MalformedInputError(source string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindMalformedInput, Source: source, Err: err}
}

// StorageError tags a local filesystem failure
func StorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindStorage, Source: op, Err: err}
}

// KindOf returns the kind of err, or "" when err carries no tag
func KindOf(err error) ErrorKind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return ""
}

// IsValidation reports whether err is a client-side failure
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}

// IsRetryable reports whether retrying the request could succeed.
// Only provider failures qualify; validation, malformed input and storage errors are permanent for the request.
func IsRetryable(err error) bool {
	return KindOf(err) == KindUpstreamProvider
}

// ValidationMessage returns the fixed client-facing message of a validation error
func ValidationMessage(err error) string {
	var tagged *Error
	if errors.As(err, &tagged) && tagged.Kind == KindValidation {
		return tagged.Message
	}
	return ""
}
