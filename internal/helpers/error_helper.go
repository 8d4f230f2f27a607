package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func HTTPStatusText(code int) string {
	return http.StatusText(code)
}

// StatusForError maps validation failures to 400, missing records to 404 and
// anything else to 500.
func StatusForError(err error) int {
	switch {
	case IsValidationError(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func RespondWithError(c *gin.Context, statusCode int, customMessage string, errs ...error) {
	detail := HTTPStatusText(statusCode)
	if len(errs) > 0 && errs[0] != nil {
		detail = errs[0].Error()
	}

	c.AbortWithStatusJSON(statusCode, Envelope{
		Success: false,
		Message: customMessage,
		Error:   detail,
	})
}

func RespondWithSuccess(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}
