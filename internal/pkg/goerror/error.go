// Package goerror carries the error taxonomy shared by use cases and the HTTP
// layer: a coarse Type, a Code that picks the status, and optional per-field
// messages for rejected submissions.
package goerror

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned by stores on a unique violation.
	ErrConflict = errors.New("resource conflict")
)

// Type groups errors by who is at fault.
type Type int

const (
	TypeServer Type = iota
	TypeBusiness
	TypeValidation
)

// Code selects the HTTP status of an Error.
type Code int

const (
	CodeInternal Code = iota
	CodeInvalidFormat
	CodeInvalidInput
	CodeNotFound
	CodeConflict
	CodeForbidden
)

var statusByCode = map[Code]int{
	CodeInternal:      http.StatusInternalServerError,
	CodeInvalidFormat: http.StatusBadRequest,
	CodeInvalidInput:  http.StatusUnprocessableEntity,
	CodeNotFound:      http.StatusNotFound,
	CodeConflict:      http.StatusConflict,
	CodeForbidden:     http.StatusForbidden,
}

// FieldMessenger is implemented by validation errors that list messages per
// field, such as a rejected subscription form.
type FieldMessenger interface {
	FieldMessages() map[string][]string
}

// Error wraps an optional cause with a public message and classification.
type Error struct {
	cause   error
	msg     string
	errType Type
	code    Code
	fields  map[string][]string
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.cause.Error()
	}

	return e.msg
}

// Msg is the message safe to show to callers.
func (e *Error) Msg() string { return e.msg }

func (e *Error) Type() Type { return e.errType }

func (e *Error) Code() Code { return e.code }

// Fields holds per-field messages, nil unless the error is a validation error.
func (e *Error) Fields() map[string][]string { return e.fields }

func (e *Error) Unwrap() error { return e.cause }

// StatusCode maps Code to an HTTP status, defaulting to 500.
func (e *Error) StatusCode() int {
	if sc, ok := statusByCode[e.code]; ok {
		return sc
	}

	return http.StatusInternalServerError
}

// NewServer hides cause behind a generic message.
func NewServer(cause error) error {
	return &Error{cause: cause, msg: "Internal server error", errType: TypeServer, code: CodeInternal}
}

// NewBusiness reports a rule the request broke, like a repeated submission.
func NewBusiness(msg string, code Code) error {
	return &Error{msg: msg, errType: TypeBusiness, code: code}
}

// NewInvalidInput builds a validation error.
//
// A cause implementing FieldMessenger supplies the field messages. Without a
// cause, kv is read as field/message pairs; an odd count yields a format error.
func NewInvalidInput(cause error, kv ...string) error {
	e := &Error{cause: cause, msg: "Validation error", errType: TypeValidation, code: CodeInvalidInput}

	if cause != nil {
		var fm FieldMessenger
		if errors.As(cause, &fm) {
			e.fields = fm.FieldMessages()
		}
		return e
	}

	if len(kv)%2 != 0 {
		return NewInvalidFormat()
	}

	e.fields = make(map[string][]string, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		e.fields[kv[i]] = append(e.fields[kv[i]], kv[i+1])
	}

	return e
}

// NewInvalidFormat reports a body that could not be decoded.
func NewInvalidFormat(msgs ...string) error {
	msg := "Invalid request body"
	if len(msgs) > 0 {
		msg = msgs[0]
	}

	return &Error{msg: msg, errType: TypeValidation, code: CodeInvalidFormat}
}
