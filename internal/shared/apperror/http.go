package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the flattened form handlers write into the response envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// FieldViolation is one field-scoped validation failure, surfaced in Details
// so clients can attach it to the offending input.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldScoped is implemented by validation error types that know which fields
// they belong to.
type FieldScoped interface {
	error
	FieldViolations() []FieldViolation
}

// ToHTTP maps any service error to an HTTPError. Unknown errors collapse into
// the generic internal fallback so nothing leaks to the client.
func ToHTTP(err error) HTTPError {
	var fieldErr FieldScoped
	if errors.As(err, &fieldErr) {
		return HTTPError{
			Status:  http.StatusBadRequest,
			Code:    CodeInvalidInput,
			Message: "validation failed",
			Details: fieldErr.FieldViolations(),
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: ErrInternal.Message,
	}
}
