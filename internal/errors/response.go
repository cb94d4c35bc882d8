package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`   // machine-readable code (codes.go)
	Message string `json:"message"` // user-facing message (Indonesian)
}

// RespondWithError writes the standard error payload.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Shortcuts for the common responses.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Silakan login terlebih dahulu"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Anda tidak memiliki akses"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Data yang dimasukkan tidak valid"
	}
	RespondWithError(c, http.StatusBadRequest, ValidationInvalidInput, message)
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Data tidak ditemukan"
	}
	RespondWithError(c, http.StatusNotFound, ResourceNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "Data sudah ada"
	}
	RespondWithError(c, http.StatusConflict, ResourceAlreadyExists, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Terjadi kesalahan pada server. Silakan coba lagi"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}

// RespondWithParsedError runs an unexpected error through ParseError and
// writes the resulting code and message with a matching HTTP status.
func RespondWithParsedError(c *gin.Context, err error, context string) {
	info := ParseError(err, context)
	RespondWithError(c, statusForCode(info.Code), info.Code, info.Message)
}

func statusForCode(code string) int {
	switch code {
	case ResourceNotFound, MenuItemNotFound, CategoryNotFound, BannerNotFound,
		CartItemNotFound, OrderNotFound, NotificationNotFound:
		return http.StatusNotFound
	case ResourceAlreadyExists, ResourceConflict, AuthEmailAlreadyExists:
		return http.StatusConflict
	case ValidationInvalidInput, ValidationInvalidID, ValidationInvalidFormat,
		ValidationRequired, OrderInvalidStatus:
		return http.StatusBadRequest
	case InternalExternalAPI:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError reports per-field validation failures.
type ValidationError struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func RespondWithValidationError(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ValidationError{
		Error:   ValidationInvalidInput,
		Message: "Data yang dimasukkan tidak valid",
		Fields:  fields,
	})
}
