// Package middleware carries the boundary components of the HTTP surface:
// the failure translator with its correlation ids, and panic recovery.
package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/maxviazov/example-crud-service/pkg/response"
	"github.com/rs/zerolog"
)

// CorrelationHeader carries the per-request identifier back to the client.
const CorrelationHeader = "X-Correlation-ID"

const loggerKey = "request_logger"

// Translator is the single place escaped failures become wire responses.
// Every request gets a fresh correlation id regardless of outcome; the
// middleware passes requests through untouched and only switches to error
// handling when a failure reaches it via c.Error.
func Translator(logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := uuid.NewString()
		c.Writer.Header().Set(CorrelationHeader, correlationID)

		reqLog := logger.With().
			Str("correlation_id", correlationID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Set(loggerKey, reqLog)

		start := time.Now()
		c.Next()

		if len(c.Errors) == 0 {
			reqLog.Info().
				Int("status", c.Writer.Status()).
				Dur("took", time.Since(start)).
				Msg("request handled")
			return
		}

		err := c.Errors.Last().Err
		status, payload := response.MapError(err)
		switch {
		case status >= 500:
			reqLog.Error().Err(err).Int("status", status).Msg("request failed")
		default:
			reqLog.Warn().Err(err).Int("status", status).Msg("request rejected")
		}
		if !c.Writer.Written() {
			c.JSON(status, payload)
		}
	}
}

// Logger returns the correlation-scoped logger attached by the Translator,
// falling back to a disabled logger outside a request.
func Logger(c *gin.Context) zerolog.Logger {
	return loggerFrom(c, zerolog.Nop())
}

func loggerFrom(c *gin.Context, fallback zerolog.Logger) zerolog.Logger {
	if v, ok := c.Get(loggerKey); ok {
		if l, ok := v.(zerolog.Logger); ok {
			return l
		}
	}
	return fallback
}
