package core

// errors.go defines the failure taxonomy for the ingestion pipeline.
//
// Every failure that escapes the service carries a Kind so the transport
// layer can choose a status class without string matching. Sentinel errors
// discriminate the validation failures that map to distinct statuses
// (bad extension vs. oversize payload).

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindUnknown marks errors that did not originate in this package.
	KindUnknown Kind = iota

	// KindValidation covers bad extensions and oversize payloads.
	// Client-class; the pipeline fails before any staging occurs.
	KindValidation

	// KindDecode covers malformed or unsupported EDF payloads.
	KindDecode

	// KindPersistence covers connection, constraint and commit failures.
	// The transaction is rolled back before the error propagates.
	KindPersistence

	// KindStaging covers temporary-storage failures.
	KindStaging
)

// String returns the kind's wire name.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindDecode:
		return "decode"
	case KindPersistence:
		return "persistence"
	case KindStaging:
		return "staging"
	default:
		return "unknown"
	}
}

// Sentinels for validation failures that map to distinct HTTP statuses.
var (
	ErrBadExtension = errors.New("file extension not allowed")
	ErrFileTooLarge = errors.New("file too large")
)

// Error is a pipeline failure with its kind and underlying cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind carried by err, or KindUnknown if err did not
// originate in this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func validationError(msg string, cause error) *Error {
	return &Error{Kind: KindValidation, Msg: msg, Err: cause}
}

func decodeError(cause error) *Error {
	return &Error{Kind: KindDecode, Msg: "decode recording", Err: cause}
}

func persistenceError(op string, cause error) *Error {
	return &Error{Kind: KindPersistence, Msg: op, Err: cause}
}

func stagingError(op string, cause error) *Error {
	return &Error{Kind: KindStaging, Msg: op, Err: cause}
}
