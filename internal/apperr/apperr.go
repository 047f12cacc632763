// Package apperr defines the engine's error taxonomy. Handlers map each
// Kind onto an HTTP status; the engine never returns raw errors for
// conditions a caller can act on.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// KindValidation marks malformed or out-of-range input. The triggering
	// operation was rejected before any state changed.
	KindValidation Kind = iota + 1
	// KindNotFound marks an unknown entity id.
	KindNotFound
	// KindConflict marks an illegal lifecycle transition or a violated
	// uniqueness rule. Current and Requested carry the conflicting states.
	KindConflict
	// KindPersistence marks a failed disk write. The operation did not
	// commit; in-memory state has been rolled back to the last saved copy.
	KindPersistence
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindPersistence:
		return "persistence"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Msg  string

	// Entity and ID identify the subject for NotFound errors.
	Entity string
	ID     string

	// Current and Requested describe the two sides of a Conflict.
	Current   string
	Requested string

	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(entity, id string) *Error {
	return &Error{
		Kind:   KindNotFound,
		Msg:    fmt.Sprintf("%s %q not found", entity, id),
		Entity: entity,
		ID:     id,
	}
}

func Conflict(current, requested, msg string) *Error {
	return &Error{
		Kind:      KindConflict,
		Msg:       msg,
		Current:   current,
		Requested: requested,
	}
}

func Persistence(err error, msg string) *Error {
	return &Error{Kind: KindPersistence, Msg: msg, Err: err}
}

// KindOf reports the Kind of err, or 0 if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
