package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/postboard-api/internal/domain/errs"
	"github.com/oksasatya/postboard-api/pkg/response"
)

// ErrorTranslator writes the response for the last error a handler recorded
// with c.Error. Domain failures become JSON; anything else is logged and
// answered with a bare 500.
func ErrorTranslator(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		e, ok := errs.As(err)
		if !ok {
			logger.WithError(err).WithFields(logrus.Fields{
				RequestIDKey: c.GetString(RequestIDKey),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
			}).Error("unhandled error")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		switch e.Kind {
		case errs.NotFound:
			response.Error(c, http.StatusNotFound, e.Message)
		case errs.Validation:
			response.Error(c, http.StatusConflict, response.FieldError{Field: e.Field, Reason: e.Message})
		case errs.Conflict:
			response.Error(c, http.StatusConflict, e.Message)
		default:
			c.AbortWithStatus(http.StatusInternalServerError)
		}
	}
}
