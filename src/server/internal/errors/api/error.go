package api

import (
	"github.com/cockroachdb/errors"
)

type ErrorCode string

const DefaultErrorCode = ErrorCode("unknown_error")

// Error carries an error code and a message that is safe to show to callers
type Error struct {
	ErrorCode   ErrorCode
	UserMessage string
	cause       error
}

func CommitError(err error, code ErrorCode, userMessage string) *Error {
	return &Error{
		ErrorCode:   code,
		UserMessage: userMessage,
		cause:       errors.WithStack(err),
	}
}

func WrapError(apiErr *Error, msg string) *Error {
	return &Error{
		ErrorCode:   apiErr.ErrorCode,
		UserMessage: apiErr.UserMessage,
		cause:       errors.Wrap(apiErr.cause, msg),
	}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.UserMessage
	}

	return e.cause.Error()
}

func (e *Error) Unwrap() error {
	return e.cause
}
