package search

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidArgument
	KindRateLimited
	KindProviderError
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindRateLimited:
		return "rate_limited"
	case KindProviderError:
		return "provider_error"
	default:
		return "unknown"
	}
}

// Error is returned by every step of a search call.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels below, so errors.Is(err, ErrRateLimited) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Kind == e.Kind
}

var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrRateLimited     = &Error{Kind: KindRateLimited}
	ErrProviderError   = &Error{Kind: KindProviderError}
)

// KindOf returns the kind of a search error, or KindUnknown.
func KindOf(err error) ErrorKind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

func invalidArgument(format string, args ...any) error {
	return &Error{Kind: KindInvalidArgument, Message: "invalid arguments: " + fmt.Sprintf(format, args...)}
}

func rateLimited() error {
	return &Error{Kind: KindRateLimited, Message: "rate limit exceeded, try again later"}
}

func providerError(message string, err error) error {
	return &Error{Kind: KindProviderError, Message: message, Err: err}
}
