package usecase

import "fmt"

type ErrorCode string

const (
	ErrorDecode     ErrorCode = "DECODE_ERROR"
	ErrorParse      ErrorCode = "PARSE_ERROR"
	ErrorValidation ErrorCode = "VALIDATION_ERROR"
	ErrorStore      ErrorCode = "STORE_ERROR"
)

// Error is the tagged failure type for the store pipeline. Field is set
// only on validation failures and names the offending payload field.
type Error struct {
	Code   ErrorCode
	Reason string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var msg string
	if e.Field != "" {
		msg = fmt.Sprintf("usecase: %s (field %s: %s)", e.Code, e.Field, e.Reason)
	} else {
		msg = fmt.Sprintf("usecase: %s (%s)", e.Code, e.Reason)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(code ErrorCode, reason string, err error) *Error {
	return &Error{Code: code, Reason: reason, Err: err}
}

func newMissingFieldError(field string) *Error {
	return &Error{Code: ErrorValidation, Reason: "missing required field", Field: field}
}

func newWrongTypeError(field, actual string) *Error {
	return &Error{
		Code:   ErrorValidation,
		Reason: fmt.Sprintf("expected string, got %s", actual),
		Field:  field,
	}
}
