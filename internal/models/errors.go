package models

import "errors"

// Sentinel error kinds checked with errors.Is at the request boundary.
var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid request")
	ErrConflict = errors.New("conflict")
)

// RequestError pairs an error kind with a caller-facing message.
type RequestError struct {
	kind error
	msg  string
}

func (e *RequestError) Error() string { return e.msg }

func (e *RequestError) Unwrap() error { return e.kind }

// NotFound reports a missing referenced entity.
func NotFound(msg string) error { return &RequestError{kind: ErrNotFound, msg: msg} }

// Invalid reports a missing or malformed required field.
func Invalid(msg string) error { return &RequestError{kind: ErrInvalid, msg: msg} }

// Conflict reports an operation that would violate an aggregate invariant.
func Conflict(msg string) error { return &RequestError{kind: ErrConflict, msg: msg} }
