package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/negspulse/internal/domain/dto"
	"github.com/guttosm/negspulse/internal/logger"
	"github.com/guttosm/negspulse/internal/negs"
)

// AbortWithError records err on the context and aborts with a dto.ErrorResponse body.
//
// Example:
//
//	if err != nil {
//	    middleware.AbortWithError(c, http.StatusBadRequest, "invalid ticker", err)
//	    return
//	}
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}

// StatusFor maps an error to the HTTP status the API answers with.
//
//   - *negs.FormatError, *negs.DecodeError: 422 Unprocessable Entity.
//   - anything else: 500 Internal Server Error.
func StatusFor(err error) int {
	var fe *negs.FormatError
	var de *negs.DecodeError
	switch {
	case errors.As(err, &fe), errors.As(err, &de):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler turns errors left on the context by handlers (via c.Error) into
// a JSON response when nothing has been written yet. Responses already sent,
// e.g. by AbortWithError, are left alone.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	status := StatusFor(err)
	message := "Internal server error"
	if status == http.StatusUnprocessableEntity {
		message = "invalid NEGS file"
	}

	log := logger.For("http")
	log.Warn().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg("request failed")
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
