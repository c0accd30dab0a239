// Package errs defines the domain failures that the HTTP layer knows how to
// translate. Anything that is not an *Error is an unexpected failure.
package errs

import "errors"

// Kind classifies a domain failure.
type Kind int

const (
	// Unknown is reported for errors that are not domain failures.
	Unknown Kind = iota
	// NotFound means the operation targeted an id that does not exist.
	NotFound
	// Validation means the input was rejected before touching the store.
	Validation
	// Conflict means the store refused a write because of a constraint.
	Conflict
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Error is a domain failure. Field is only set for Validation.
type Error struct {
	Kind    Kind
	Message string
	Field   string
	cause   error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NewNotFound reports a missing entity, e.g. "user not found".
func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

// NewValidation reports a single rejected field.
func NewValidation(field, reason string) *Error {
	return &Error{Kind: Validation, Field: field, Message: reason}
}

// NewConflict reports a constraint violation raised by the store.
func NewConflict(message string, cause error) *Error {
	return &Error{Kind: Conflict, Message: message, cause: cause}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
