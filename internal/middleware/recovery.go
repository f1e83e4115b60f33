package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/negspulse/internal/domain/dto"
	"github.com/guttosm/negspulse/internal/logger"
)

// RecoveryMiddleware returns a Gin middleware that recovers from panics raised
// while handling a request, logs them with the stack trace and answers 500.
//
// Behavior:
//   - The panic value, stack, request_id and route are logged on the "http" component.
//   - Returns a 500 Internal Server Error response using dto.NewErrorResponse.
//   - If the handler already wrote a response, only the log entry is produced.
//
// Example:
//
//	router := gin.New()
//	router.Use(middleware.RequestID(), middleware.RecoveryMiddleware())
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			rid, _ := c.Get(RequestIDKey)
			log := logger.For("http")
			log.Error().
				Str("panic", fmt.Sprint(r)).
				Str("request_id", toString(rid)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse("Internal server error", fmt.Errorf("%v", r)))
		}()

		c.Next()
	}
}
