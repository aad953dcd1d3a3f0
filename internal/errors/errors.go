package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound    ErrorType = "NOT_FOUND"
	ErrorTypePersistence ErrorType = "PERSISTENCE_ERROR"
)

// CustomError represents a custom error with associated HTTP status code and type
type CustomError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Internal   error
}

// Error implements the error interface
func (e *CustomError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/As chains.
func (e *CustomError) Unwrap() error {
	return e.Internal
}

func newError(errType ErrorType, message string, statusCode int, internal error) *CustomError {
	return &CustomError{
		Type:       errType,
		Message:    message,
		StatusCode: statusCode,
		Internal:   internal,
	}
}

// NewValidationError creates an error for rejected input. Nothing has been
// written when this is returned.
func NewValidationError(message string) *CustomError {
	return newError(ErrorTypeValidation, message, http.StatusBadRequest, nil)
}

// NewNotFoundError creates an error for a missing user or conversation.
func NewNotFoundError(message string) *CustomError {
	return newError(ErrorTypeNotFound, message, http.StatusNotFound, nil)
}

// NewPersistenceError wraps a storage-layer fault. The raw cause is kept for
// logging but never shown to callers.
func NewPersistenceError(internal error) *CustomError {
	return newError(ErrorTypePersistence, "An unexpected error occurred", http.StatusInternalServerError, internal)
}

// IsNotFound reports whether err is a NOT_FOUND CustomError.
func IsNotFound(err error) bool {
	customErr, ok := err.(*CustomError)
	return ok && customErr.Type == ErrorTypeNotFound
}

// IsValidation reports whether err is a VALIDATION_ERROR CustomError.
func IsValidation(err error) bool {
	customErr, ok := err.(*CustomError)
	return ok && customErr.Type == ErrorTypeValidation
}

// HandleError handles the custom error and sends an appropriate JSON response
func HandleError(c *gin.Context, err error) {
	var customErr *CustomError
	var ok bool

	if customErr, ok = err.(*CustomError); !ok {
		customErr = NewPersistenceError(err)
	}

	if customErr.Type == ErrorTypePersistence {
		log.Error().
			Err(customErr.Internal).
			Str("url", c.Request.URL.String()).
			Msg("Persistence Error")
	}

	c.JSON(customErr.StatusCode, gin.H{
		"error": gin.H{
			"type":    customErr.Type,
			"message": customErr.Message,
		},
	})
}
