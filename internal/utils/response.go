package utils

import (
	"net/http"

	"klinik-sentosa-server/internal/notify"

	"github.com/gin-gonic/gin"
)

// ResponseData represents the structure of a standard API response.
type ResponseData struct {
	Status   int             `json:"status"`
	Message  string          `json:"message"`
	Data     interface{}     `json:"data,omitempty"`
	Error    string          `json:"error,omitempty"`
	Notices  []notify.Notice `json:"notices,omitempty"`
	Redirect string          `json:"redirect,omitempty"`
}

// Render sends a response with an arbitrary status and payload.
func Render(c *gin.Context, statusCode int, message string, data interface{}, notices ...notify.Notice) {
	c.JSON(statusCode, ResponseData{
		Status:  statusCode,
		Message: message,
		Data:    data,
		Notices: notices,
	})
}

// Success sends a standard success response.
func Success(c *gin.Context, message string, data interface{}, notices ...notify.Notice) {
	Render(c, http.StatusOK, message, data, notices...)
}

// Created sends a standard resource created response.
func Created(c *gin.Context, message string, data interface{}, notices ...notify.Notice) {
	Render(c, http.StatusCreated, message, data, notices...)
}

// Error sends a standard error response.
func Error(c *gin.Context, statusCode int, errorMessage string, notices ...notify.Notice) {
	c.JSON(statusCode, ResponseData{
		Status:  statusCode,
		Message: "An error occurred",
		Error:   errorMessage,
		Notices: notices,
	})
}

// ErrorWithData sends an error response that still carries a payload, such
// as a form echoed back to the client.
func ErrorWithData(c *gin.Context, statusCode int, errorMessage string, data interface{}, notices ...notify.Notice) {
	c.JSON(statusCode, ResponseData{
		Status:  statusCode,
		Message: "An error occurred",
		Data:    data,
		Error:   errorMessage,
		Notices: notices,
	})
}

// RedirectToAuth sends a 401 that only tells the client where to go.
func RedirectToAuth(c *gin.Context, route string) {
	c.JSON(http.StatusUnauthorized, ResponseData{
		Status:   http.StatusUnauthorized,
		Message:  "Authentication required",
		Redirect: route,
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, errorMessage string, notices ...notify.Notice) {
	Error(c, http.StatusBadRequest, errorMessage, notices...)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, errorMessage string) {
	Error(c, http.StatusUnauthorized, errorMessage)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, errorMessage string, notices ...notify.Notice) {
	Error(c, http.StatusForbidden, errorMessage, notices...)
}

// NotFound sends a 404 Not Found error response.
func NotFound(c *gin.Context, errorMessage string) {
	Error(c, http.StatusNotFound, errorMessage)
}

// Conflict sends a 409 Conflict error response.
func Conflict(c *gin.Context, errorMessage string) {
	Error(c, http.StatusConflict, errorMessage)
}

// InternalServerError sends a 500 Internal Server Error response.
func InternalServerError(c *gin.Context, errorMessage string, notices ...notify.Notice) {
	Error(c, http.StatusInternalServerError, errorMessage, notices...)
}
