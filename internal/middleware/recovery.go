package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/maxviazov/example-crud-service/internal/core"
	"github.com/maxviazov/example-crud-service/pkg/response"
	"github.com/rs/zerolog"
)

// Recovery converts a panic into the generic Unexpected envelope. Mounted
// outermost so it also guards the translator itself. The panic log line uses
// the correlation-scoped logger when the translator has already attached one.
func Recovery(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				l := loggerFrom(c, logger)
				l.Error().
					Str("component", "recovery").
					Str("panic", fmt.Sprintf("%v", r)).
					Str("stack", string(debug.Stack())).
					Str("path", c.Request.URL.Path).
					Msg("panic recovered")
				status, payload := response.MapError(core.NewUnexpected(fmt.Errorf("panic: %v", r)))
				c.AbortWithStatusJSON(status, payload)
			}
		}()
		c.Next()
	}
}
