package client

import (
	"errors"
	"fmt"
)

// CodeInvalidCredentials is the remote error code for a wrong email or
// password.
const CodeInvalidCredentials = 63

// ErrorKind classifies API failures so callers can branch without parsing
// messages.
type ErrorKind int

const (
	// KindRemoteFailure covers non-zero remote codes other than 63, non-2xx
	// responses without a code and transport errors.
	KindRemoteFailure ErrorKind = iota
	KindInvalidCredentials
	// KindMalformedResponse means the body was not JSON or lacked an
	// expected field.
	KindMalformedResponse
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRemoteFailure      = errors.New("remote failure")
	ErrMalformedResponse  = errors.New("malformed response")
)

// Error is returned by every Client operation. Match it with errors.Is
// against the Err* sentinels, or errors.As to read the code.
type Error struct {
	Kind ErrorKind
	// Code is the remote errorCode, 0 when the service did not send one.
	Code int
	// HTTPStatus is 0 for transport errors.
	HTTPStatus int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindMalformedResponse:
		return fmt.Sprintf("malformed response: %s", e.Message)
	case e.Code != 0 && e.Message != "":
		return fmt.Sprintf("remote error %d: %s", e.Code, e.Message)
	case e.Code != 0:
		return fmt.Sprintf("remote error %d", e.Code)
	case e.Err != nil:
		return fmt.Sprintf("request failed: %v", e.Err)
	default:
		return fmt.Sprintf("request failed with HTTP %d", e.HTTPStatus)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindInvalidCredentials:
		return target == ErrInvalidCredentials
	case KindMalformedResponse:
		return target == ErrMalformedResponse
	default:
		return target == ErrRemoteFailure
	}
}

// ErrorCode returns the remote error code carried by err, if any.
func ErrorCode(err error) (int, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Code != 0 {
		return apiErr.Code, true
	}
	return 0, false
}

func remoteError(code int, httpStatus int, message string) *Error {
	kind := KindRemoteFailure
	if code == CodeInvalidCredentials {
		kind = KindInvalidCredentials
		if message == "" {
			message = "invalid credentials"
		}
	}
	return &Error{Kind: kind, Code: code, HTTPStatus: httpStatus, Message: message}
}

func transportError(err error) *Error {
	return &Error{Kind: KindRemoteFailure, Err: err}
}

func malformed(httpStatus int, format string, args ...any) *Error {
	return &Error{Kind: KindMalformedResponse, HTTPStatus: httpStatus, Message: fmt.Sprintf(format, args...)}
}
