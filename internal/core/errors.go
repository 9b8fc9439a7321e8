package core

import (
	"errors"
	"fmt"
)

// ErrorKind classifies domain failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidInput
	KindMalformedData
	KindNoData
	KindUnknownColumn
	KindBusy
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindMalformedData:
		return "malformed_data"
	case KindNoData:
		return "no_data"
	case KindUnknownColumn:
		return "unknown_column"
	case KindBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Error is a domain failure with a human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so the
// Err* sentinels below match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrInvalidInput  = &Error{Kind: KindInvalidInput, Message: "invalid input"}
	ErrMalformedData = &Error{Kind: KindMalformedData, Message: "malformed data"}
	ErrNoData        = &Error{Kind: KindNoData, Message: "csv file not uploaded"}
	ErrUnknownColumn = &Error{Kind: KindUnknownColumn, Message: "column not found"}
	ErrBusy          = &Error{Kind: KindBusy, Message: "too many uploads"}
)

// KindOf returns the ErrorKind carried by err, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func invalidInput(format string, args ...any) error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func malformed(err error, format string, args ...any) error {
	return &Error{Kind: KindMalformedData, Message: fmt.Sprintf(format, args...), Err: err}
}

func unknownColumn(name string) error {
	return &Error{Kind: KindUnknownColumn, Message: fmt.Sprintf("Column %q not found in CSV file", name)}
}
