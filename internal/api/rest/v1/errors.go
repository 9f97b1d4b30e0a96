package v1

import (
	"errors"
	"net/http"

	"github.com/rpsg-tech/clm-sub005/internal/domain/clmerr"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, clmerr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, clmerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, clmerr.ErrInvalidTransition), errors.Is(err, clmerr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, clmerr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, clmerr.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// respondError aborts the request with the status for err. Internal errors
// are attached to the context for the request logger and not echoed.
func respondError(ctx *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		_ = ctx.Error(err)
		message = "internal server error"
	}
	ctx.AbortWithStatusJSON(status, ErrorResponse{Message: message})
}

// badRequest aborts with 400 and message
func badRequest(ctx *gin.Context, message string) {
	ctx.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: message})
}
