// Package common defines shared constants and sentinel errors used across
// client and server layers of EventHub. Callers should use errors.Is to
// match these values.
package common

import (
	"errors"
	"fmt"
)

// Kind is the caller-facing classification of a failed operation.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindForbidden  Kind = "FORBIDDEN"
	KindNotFound   Kind = "NOT_FOUND"
	KindConflict   Kind = "CONFLICT"
	KindSystem     Kind = "SYSTEM_FAILURE"
)

// Error is a domain error carrying a Kind and a message that is safe to show
// to the caller.
//
// Two *Error values match under errors.Is when their kinds are equal and the
// target either has no message or the same message, so
//
//	errors.Is(err, common.ErrConflict)
//
// matches every conflict regardless of its text.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

var (
	// Domain kinds, see Kind.
	ErrValidation = &Error{Kind: KindValidation}
	ErrForbidden  = &Error{Kind: KindForbidden}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrConflict   = &Error{Kind: KindConflict}
	ErrInternal   = &Error{Kind: KindSystem, Message: "internal error"}

	// Auth errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)

// Validation returns a VALIDATION_ERROR with the given message.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// Forbidden returns a FORBIDDEN error with the given message.
func Forbidden(msg string) error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFound returns a NOT_FOUND error with the given message.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// Conflict returns a CONFLICT error with the given message.
func Conflict(msg string) error {
	return &Error{Kind: KindConflict, Message: msg}
}

// KindOf reports the Kind of err. Anything that is not a domain error is a
// system failure.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindSystem
}

// IsDomain reports whether err is a domain error that may be returned to a
// caller as is.
func IsDomain(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind != KindSystem
}
