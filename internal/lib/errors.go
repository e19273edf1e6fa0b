package lib

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type ErrorKind string

const (
	KindProfileNotFound ErrorKind = "PROFILE_NOT_FOUND"
	KindServerNotFound  ErrorKind = "SERVER_NOT_FOUND"
	KindValidation      ErrorKind = "VALIDATION_ERROR"
	KindForbidden       ErrorKind = "FORBIDDEN"
	KindConflict        ErrorKind = "CONFLICT"
	KindInternal        ErrorKind = "INTERNAL"
)

// ErrNotMember is returned by role lookups when no membership row exists.
var ErrNotMember = errors.New("profile is not a member of the server")

// Error is a failure reported to API callers as kind plus message. Code is a
// finer grained identifier (e.g. IMAGE_REQUIRED) and defaults to the kind.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Extensions satisfies graphql-go's gqlerrors.ExtendedError.
func (e *Error) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"code": e.ErrorCode(),
		"kind": string(e.Kind),
	}
}

func (e *Error) ErrorCode() string {
	if e.Code != "" {
		return e.Code
	}
	return string(e.Kind)
}

func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind && (other.Code == "" || other.Code == e.Code)
}

// KindOf returns the kind of err, or KindInternal for anything that is not an *Error.
func KindOf(err error) ErrorKind {
	var libErr *Error
	if errors.As(err, &libErr) {
		return libErr.Kind
	}
	return KindInternal
}

// HandleError converts an arbitrary error into an *Error. Errors that are
// already an *Error pass through unchanged.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	var libErr *Error
	if errors.As(err, &libErr) {
		return libErr
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &Error{Kind: KindConflict, Message: "The resource already exists."}
	}

	return InternalError()
}

func ProfileNotFoundError() error {
	return &Error{Kind: KindProfileNotFound, Message: "Profile not found"}
}

func ServerNotFoundError() error {
	return &Error{Kind: KindServerNotFound, Message: "Server not found"}
}

func ValidationError(code string, message string) error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func ForbiddenError(message string) error {
	if message == "" {
		message = "You do not have permission to perform this action."
	}
	return &Error{Kind: KindForbidden, Message: message}
}

func InternalError() error {
	return &Error{Kind: KindInternal, Message: "An unexpected internal error occurred."}
}
