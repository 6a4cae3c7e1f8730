package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgInternalError = "An unexpected error occurred."
	msgInvalidJSON   = "Invalid JSON format."
	msgUnauthorized  = "Missing or invalid admin token."
	msgTooManyTries  = "Too many submissions. Please try again later."
)

type Response struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, Response{Success: false, Message: message})
}

func BadRequestError(c *gin.Context, message string, errors map[string][]string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: message, Errors: errors})
}

func InternalServerError(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, msgInternalError)
}

func SuccessResponse(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

// resultStatus maps a service result onto an HTTP status.
func resultStatus(success, notFound bool, okCode int) int {
	switch {
	case success:
		return okCode
	case notFound:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
