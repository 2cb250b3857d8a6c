// Package response centralizes HTTP response shapes and helpers.
// Handlers rely on it to keep controllers thin and uniform.
package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/example-crud-service/internal/core"
)

// ErrorPayload is the canonical failure envelope returned by the API. It is
// shaped like a data-less Result so clients parse one envelope everywhere.
type ErrorPayload struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  []core.FieldError `json:"errors,omitempty"`
}

// MapError converts a failure into an HTTP status and payload per the error
// taxonomy. Unexpected failures keep a generic message; detail belongs in
// the log, never on the wire.
func MapError(err error) (int, ErrorPayload) {
	kind := core.KindOf(err)
	payload := ErrorPayload{Success: false}

	switch kind {
	case core.KindValidationFailed:
		payload.Message = "one or more fields are invalid"
		payload.Errors = core.FieldsOf(err)
	case core.KindCanceled:
		payload.Message = "Operation canceled"
	case core.KindUnexpected:
		payload.Message = "internal server error"
	default:
		var e *core.Error
		if errors.As(err, &e) {
			payload.Message = e.Message()
		}
	}
	return kind.HTTPStatus(), payload
}

// WriteError writes an error response and aborts the context.
func WriteError(c *gin.Context, err error) {
	status, payload := MapError(err)
	c.AbortWithStatusJSON(status, payload)
}

// WriteData writes a successful JSON response.
func WriteData(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
