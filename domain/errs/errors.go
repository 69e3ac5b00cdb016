package errs

import (
	"errors"
	"fmt"
)

// Kind is a stable, machine-checkable error classification.
type Kind string

const (
	KindNotFound                  Kind = "not_found"
	KindWinningNumbersNotDeclared Kind = "winning_numbers_not_declared"
	KindAlreadySettled            Kind = "already_settled"
	KindNotAllowed                Kind = "not_allowed"
	KindNumberNotAllowed          Kind = "number_not_allowed"
	KindValidation                Kind = "validation_failure"
	KindUnexpected                Kind = "unexpected_error"
)

// Error carries a client-facing translation key alongside an internal debug
// message. The client never sees DebugMessage or the wrapped error.
type Error struct {
	Kind         Kind
	ClientKey    string // key into the translator's message catalog
	ClientArgs   []any  // formatting arguments for the client message
	DebugMessage string
	Err          error // underlying cause, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.DebugMessage, e.Err)
	}
	return e.DebugMessage
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a not-found error for a missing required record.
func NotFound(clientKey, debug string, args ...any) *Error {
	return &Error{Kind: KindNotFound, ClientKey: clientKey, ClientArgs: args, DebugMessage: debug}
}

// WinningNumbersNotDeclared reports settlement attempted before an outcome
// was recorded for the draw.
func WinningNumbersNotDeclared(drawID int64) *Error {
	return &Error{
		Kind:         KindWinningNumbersNotDeclared,
		ClientKey:    "winning_numbers_not_declared",
		DebugMessage: fmt.Sprintf("no winning numbers declared for draw %d", drawID),
	}
}

// AlreadySettled reports a repeated settlement attempt on a computed draw.
func AlreadySettled(drawID int64) *Error {
	return &Error{
		Kind:         KindAlreadySettled,
		ClientKey:    "draw_already_settled",
		DebugMessage: fmt.Sprintf("draw %d has already been settled", drawID),
	}
}

// NotAllowed reports an authorization failure.
func NotAllowed(debug string) *Error {
	return &Error{Kind: KindNotAllowed, ClientKey: "not_allowed", DebugMessage: debug}
}

// NumberNotAllowed reports a restricted-number cap violation for number.
func NumberNotAllowed(number int, debug string) *Error {
	return &Error{
		Kind:         KindNumberNotAllowed,
		ClientKey:    "number_not_allowed",
		ClientArgs:   []any{number},
		DebugMessage: debug,
	}
}

// Validation reports malformed or missing input.
func Validation(clientKey, debug string, args ...any) *Error {
	return &Error{Kind: KindValidation, ClientKey: clientKey, ClientArgs: args, DebugMessage: debug}
}

// Unexpected wraps a lower-layer failure not otherwise classified.
func Unexpected(err error, debug string) *Error {
	return &Error{
		Kind:         KindUnexpected,
		ClientKey:    "unexpected_error",
		DebugMessage: debug,
		Err:          err,
	}
}

// KindOf extracts the Kind from err, or KindUnexpected for foreign errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// From extracts a structured *Error from err, wrapping foreign errors as
// unexpected so every failure surfaces with a kind and a client key.
func From(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unexpected(err, "internal error")
}
