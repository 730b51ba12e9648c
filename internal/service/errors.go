package service

import (
	"errors"
	"fmt"
)

// Kind classifies a backend failure.
type Kind int

const (
	// KindUnknown is any error not produced by a backend.
	KindUnknown Kind = iota

	// KindTransport is a network or transport failure (no HTTP response).
	KindTransport

	// KindStatus is a non-success HTTP status.
	KindStatus

	// KindMalformed is a response body that does not have the expected shape.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindMalformed:
		return "malformed response"
	default:
		return "unknown"
	}
}

// Error is a failed backend operation.
type Error struct {
	Op     string // "list", "create", "update", "delete"
	Kind   Kind
	Status int // HTTP status code, set for KindStatus
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("%s: http status %d", e.Op, e.Status)
	case KindMalformed:
		return fmt.Sprintf("%s: malformed response: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindUnknown if err is not a *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
