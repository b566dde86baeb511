// Package errors provides structured error types for guidedit.
// Errors carry the operation that failed and a coarse kind so callers can
// pick a handling policy (alert, log and discard, ignore).
package errors

import (
	"errors"
	"fmt"
)

// Op describes an operation, usually as "package.Function".
type Op string

// Kind categorizes an error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalid
	KindNotFound
	KindAuth
	KindNetwork
	KindConfig
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not found"
	case KindAuth:
		return "authentication error"
	case KindNetwork:
		return "network error"
	case KindConfig:
		return "configuration error"
	case KindPrecondition:
		return "precondition not met"
	default:
		return "unknown error"
	}
}

// Error is the structured error type.
type Error struct {
	Op      Op
	Kind    Kind
	Err     error
	Context string
}

func (e *Error) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s: %s: %s", e.Op, e.Context, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Err)
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an Error from any mix of Op, Kind, string (context) and error.
// With no error argument the context string becomes the error text.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err = errors.New(e.Context)
		e.Context = ""
	}
	return e
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// GetKind returns the Kind of err, or KindUnknown.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// RequestFailed wraps a failed GitHub API call.
func RequestFailed(op Op, what string, err error) error {
	return E(op, KindNetwork, what, err)
}

// NotReady reports that an action was invoked before its inputs exist.
func NotReady(op Op, missing string) error {
	return E(op, KindPrecondition, fmt.Sprintf("%s not available", missing))
}

// AuthFailed wraps a login or token failure.
func AuthFailed(op Op, err error) error {
	return E(op, KindAuth, err)
}

// ConfigLoadFailed wraps a config read or parse failure.
func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

// ConfigInvalid reports a config value that cannot be used.
func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
