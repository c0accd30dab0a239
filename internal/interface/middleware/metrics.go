package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/postboard-api/internal/domain/errs"
	"github.com/oksasatya/postboard-api/internal/infrastructure/metrics"
)

// Metrics records request counts, latency and failure kinds.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.StartRequest()
		defer func() {
			done(c.Request.Method, c.FullPath(), c.Writer.Status())
		}()

		c.Next()

		if last := c.Errors.Last(); last != nil {
			metrics.RecordFailure(errs.KindOf(last.Err).String())
		}
	}
}
