package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidToken          = errors.New("invalid token")
	ErrUnknownUser           = errors.New("unknown user")
	ErrInsufficientPrivilege = errors.New("admin access required")
	ErrInvalidEntry          = errors.New("invalid journal entry")
	ErrFederation            = errors.New("federation failed")
)

// UnknownUserError is returned by the demo login lookup. It carries the
// usernames that would have been accepted.
type UnknownUserError struct {
	Username string
	Allowed  []string
}

func (e *UnknownUserError) Error() string {
	return "unknown user " + e.Username + " (allowed: " + strings.Join(e.Allowed, ", ") + ")"
}

func (e *UnknownUserError) Unwrap() error {
	return ErrUnknownUser
}
