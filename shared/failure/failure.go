package failure

import (
	"errors"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// The hotel core distinguishes five kinds of failure: validation (400),
// not-found (404), conflict (409), unsupported operation (405) and store
// failure (500). Handlers translate the code with GetCode.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}

// Error returns the failure message.
func (e *Failure) Error() string {
	return e.Message
}

// Validation returns a new Failure for caller-supplied data that violates a
// field constraint. Always raised before any store access.
func Validation(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// BadRequest returns a new Failure with code for bad requests with message derived from an error.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// Forbidden returns a new Failure with code for forbidden requests.
func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// NotFound returns a new Failure for a referenced entity that does not
// resolve to an active record.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: entityName + " not found",
	}
}

// Conflict returns a new Failure for uniqueness or booking-overlap
// violations. Always raised before the durable write.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// Unsupported returns a new Failure for mutations on read-only collections
// such as room types.
func Unsupported(operation string) error {
	return &Failure{
		Code:    http.StatusMethodNotAllowed,
		Message: operation + " is not supported",
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// Is reports whether err is a Failure carrying the given code. Services use
// it to branch on the taxonomy without string matching.
func Is(err error, code int) bool {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code == code
	}

	return false
}
