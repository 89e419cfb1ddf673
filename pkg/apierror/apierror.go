package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies one branch of the error taxonomy.
type Kind string

const (
	KindNetwork         Kind = "network"
	KindUnauthenticated Kind = "unauthenticated"
	KindForbidden       Kind = "forbidden"
	KindValidation      Kind = "validation"
	KindServerFault     Kind = "server_fault"
	KindUnknown         Kind = "unknown"
	KindConfig          Kind = "config"
	KindCorruptSession  Kind = "corrupt_session"
)

// Sentinels for errors.Is matching by kind. Each carries only its Kind; Is
// on a concrete *Error compares kinds, so a classified error matches the
// sentinel of the same branch.
var (
	ErrNetwork         = &Error{Kind: KindNetwork, Message: "network failure"}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "unauthenticated"}
	ErrForbidden       = &Error{Kind: KindForbidden, Message: "forbidden"}
	ErrValidation      = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrServerFault     = &Error{Kind: KindServerFault, Message: "server fault"}
	ErrUnknown         = &Error{Kind: KindUnknown, Message: "unknown error"}
	ErrConfig          = &Error{Kind: KindConfig, Message: "invalid configuration"}
	ErrCorruptSession  = &Error{Kind: KindCorruptSession, Message: "corrupt persisted session"}
)

// Error is the normalized form of any pipeline failure. FieldErrors is
// populated for Validation and Config kinds; StatusCode is zero for failures
// that never produced a response.
type Error struct {
	Kind        Kind
	StatusCode  int
	Message     string
	FieldErrors map[string][]string
	cause       error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

// Unwrap exposes the original cause for diagnostics.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error of the same Kind, enabling errors.Is against the
// package sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Cause returns the wrapped original error, if any.
func (e *Error) Cause() error {
	return e.cause
}

// Network wraps a transport-level failure where no response was received.
func Network(cause error) *Error {
	return &Error{Kind: KindNetwork, Message: "no response received", cause: cause}
}

// Config wraps aggregated startup validation failures. Fatal: the process
// must not proceed on partial configuration.
func Config(fieldErrors map[string][]string, cause error) *Error {
	return &Error{Kind: KindConfig, Message: "invalid configuration", FieldErrors: fieldErrors, cause: cause}
}

// CorruptSession wraps an unreadable or schema-invalid persisted session.
// Recovered locally at bootstrap; never fatal.
func CorruptSession(cause error) *Error {
	return &Error{Kind: KindCorruptSession, Message: "corrupt persisted session", cause: cause}
}

// FromStatus classifies a received HTTP status into the taxonomy. The field
// messages are attached only to the Validation branch; other branches carry
// the message alone.
func FromStatus(status int, message string, fieldErrors map[string][]string) *Error {
	e := &Error{StatusCode: status, Message: message}

	switch {
	case status == http.StatusUnauthorized:
		e.Kind = KindUnauthenticated
	case status == http.StatusForbidden:
		e.Kind = KindForbidden
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
		e.FieldErrors = fieldErrors
	case status >= 500 && status <= 599:
		e.Kind = KindServerFault
	default:
		e.Kind = KindUnknown
	}

	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	return e
}

// KindOf extracts the taxonomy kind from any error chain. Non-taxonomy
// errors report KindUnknown.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
