package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Logger writes one line per request. 5xx responses log at error level.
func Logger(logger log.Logger) gin.HandlerFunc {
	logger = log.With(logger, "component", "http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		lvl := level.Info
		if status >= 500 {
			lvl = level.Error
		}
		keyvals := []interface{}{
			"msg", "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"client", c.ClientIP(),
			"latency", time.Since(start).String(),
		}
		if len(c.Errors) > 0 {
			keyvals = append(keyvals, "err", c.Errors.String())
		}
		lvl(logger).Log(keyvals...)
	}
}
