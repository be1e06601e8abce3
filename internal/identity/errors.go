package identity

import (
	"errors"
	"fmt"
)

var (
	// ErrNoAccount is wrapped by Directory implementations when no account matches.
	ErrNoAccount = errors.New("no such account")
	// ErrInvokerUnknown is returned when the caller's own uid has no account.
	ErrInvokerUnknown = errors.New("you do not exist in the passwd database")
)

// FormatError reports a "#..." specifier whose remainder is not a valid uid.
type FormatError struct {
	Literal string
	Err     error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid user id: %s", e.Literal)
}

func (e *FormatError) Unwrap() error { return e.Err }

// UnknownIdentityError reports a well-formed specifier with no matching
// account. Literal is the argument exactly as given.
type UnknownIdentityError struct {
	Literal string
}

func (e *UnknownIdentityError) Error() string {
	return fmt.Sprintf("unknown user: %s", e.Literal)
}

func (e *UnknownIdentityError) Is(target error) bool {
	return target == ErrNoAccount
}
