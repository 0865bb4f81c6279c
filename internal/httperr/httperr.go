package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFoundResponse(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, HTTPError{
		Code:    code,
		Message: message,
	})
}

func Status(kind Kind) int {
	switch kind {
	case KindMissingField, KindReferenceNotFound, KindInvalidFormat, KindInvalidRequest:
		return http.StatusBadRequest
	case KindUnauthenticated, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindPermissionDenied:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error body. Unclassified errors are reported
// as storage failures without leaking their text; the cause is attached to
// the gin context for the access log.
func Respond(c *gin.Context, err error) {
	_ = c.Error(err)

	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "unexpected error")
		return
	}

	status := Status(be.Kind)
	msg := be.Error()
	if status == http.StatusInternalServerError {
		msg = "database error"
	}

	c.AbortWithStatusJSON(status, HTTPError{
		Code:    be.Code,
		Message: msg,
		Field:   be.Field,
	})
}
