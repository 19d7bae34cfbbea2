package response

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Error codes shared by services and handlers
const (
	ErrCodeNotFound   = "NOT_FOUND"
	ErrCodeConflict   = "CONFLICT"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeInternal   = "INTERNAL_ERROR"
)

// AppError is the error type returned by the service layer
type AppError struct {
	Code    string
	Message string
	Details string
}

// NewAppError creates a new AppError
func NewAppError(code, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Detail string `json:"detail" example:"Activity not found"`
	Code   string `json:"code" example:"NOT_FOUND"`
}

// MessageResponse is the body of a successful mutation
type MessageResponse struct {
	Message string `json:"message" example:"Signed up michael@mergington.edu for Chess Club"`
}

// SendError writes an error response and aborts the handler chain
func SendError(c *gin.Context, status int, code, detail string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Detail: detail,
		Code:   code,
	})
}

// SendMessage writes a confirmation message
func SendMessage(c *gin.Context, status int, message string) {
	c.JSON(status, MessageResponse{Message: message})
}

// SendData writes data as the response body without an envelope
func SendData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}
