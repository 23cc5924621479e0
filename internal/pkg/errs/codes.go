package errs

import (
	cr "github.com/cockroachdb/errors"
)

// Kind is the closed set of error categories callers branch on.
type Kind string

const (
	KindValidation        Kind = "VALIDATION"
	KindNotFound          Kind = "NOT_FOUND"
	KindConflict          Kind = "CONFLICT"
	KindInvalidTransition Kind = "INVALID_TRANSITION"
	KindDuplicateRequest  Kind = "DUPLICATE_REQUEST"
	KindForbidden         Kind = "FORBIDDEN"
	KindStorageContention Kind = "STORAGE_CONTENTION"
	KindStorageFault      Kind = "STORAGE_FAULT"
	KindInternal          Kind = "INTERNAL"
)

// Code is the stable machine-readable identifier carried by every Error.
type Code string

const CodeInternal Code = "INTERNAL_ERROR"

type Error struct {
	kind Kind
	code Code
	msg  string
}

func (e *Error) Error() string { return e.msg }
func (e *Error) Kind() Kind     { return e.kind }
func (e *Error) Code() Code     { return e.code }

var registry []*Error

// Define registers a coded sentinel. Must only be called from package-level
// var declarations; messages must be unique across the registry because marks
// compare by message.
func Define(kind Kind, code Code, msg string) *Error {
	e := &Error{kind: kind, code: code, msg: msg}
	registry = append(registry, e)
	return e
}

// Classify finds the coded sentinel carried by err, whether it was wrapped
// (errs.Wrap) or attached as a mark (errs.Mark).
func Classify(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if cr.As(err, &e) {
		return e, true
	}
	for _, d := range registry {
		if cr.Is(err, d) {
			return d, true
		}
	}
	return nil, false
}

func CodeOf(err error) Code {
	if e, ok := Classify(err); ok {
		return e.code
	}
	return CodeInternal
}

func KindOf(err error) Kind {
	if e, ok := Classify(err); ok {
		return e.kind
	}
	return KindInternal
}

// Cross-cutting sentinels. Domain packages define their own.
var (
	ErrMissingData       = Define(KindValidation, "MISSING_DATA", "required field missing")
	ErrForbidden         = Define(KindForbidden, "FORBIDDEN", "operation not permitted for actor")
	ErrDuplicateRequest  = Define(KindDuplicateRequest, "DUPLICATE_REQUEST", "request id already used with a different payload")
	ErrStorageContention = Define(KindStorageContention, "STORAGE_CONTENTION", "storage contention persisted after retries")
	ErrStorageFault      = Define(KindStorageFault, "STORAGE_FAULT", "storage operation failed")
)
