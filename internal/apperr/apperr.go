package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error independently of the storage backend that
// produced it. The HTTP layer maps kinds to status codes in one place.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindConflict
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindConflict:
		return "conflict"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// Error is a classified application error.
type Error struct {
	kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error { return e.err }

// Kind returns the classification of err. Unclassified errors,
// including raw store failures, are KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.kind
	}
	return KindInternal
}

// Message returns the user-facing message for err. Internal errors get
// an opaque message so store internals never leak to callers.
func Message(err error) string {
	var ae *Error
	if errors.As(err, &ae) && ae.kind != KindInternal {
		return ae.msg
	}
	return "something went wrong"
}

func NotFound(msg string) error   { return &Error{kind: KindNotFound, msg: msg} }
func Forbidden(msg string) error  { return &Error{kind: KindForbidden, msg: msg} }
func Conflict(msg string) error   { return &Error{kind: KindConflict, msg: msg} }
func BadRequest(msg string) error { return &Error{kind: KindBadRequest, msg: msg} }

// Internal wraps a store or infrastructure failure. The wrapped error
// is preserved for logging but never exposed via Message.
func Internal(msg string, err error) error {
	return &Error{kind: KindInternal, msg: msg, err: err}
}
