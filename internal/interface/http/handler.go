package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/postboard-api/internal/domain/errs"
	"github.com/oksasatya/postboard-api/pkg/response"
)

var deleted = response.Deleted{Status: "deleted"}

// pathID reads the :id parameter. Anything but a positive int4 cannot name
// a stored row, so it is reported as notFound.
func pathID(c *gin.Context, notFound string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil || id <= 0 {
		_ = c.Error(errs.NewNotFound(notFound))
		return 0, false
	}
	return id, true
}

func body(c *gin.Context) ([]byte, bool) {
	raw, err := c.GetRawData()
	if err != nil {
		_ = c.Error(err)
		return nil, false
	}
	return raw, true
}
