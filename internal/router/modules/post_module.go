package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/postboard-api/internal/interface/http"
)

// PostModule serves /post/ and /post/:id/.
type PostModule struct {
	Handler *handlers.PostHandler
}

func NewPostModule(h *handlers.PostHandler) *PostModule {
	return &PostModule{Handler: h}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/post")
	g.POST("/", m.Handler.Create)
	g.GET("/:id/", m.Handler.Get)
	g.PATCH("/:id/", m.Handler.Update)
	g.DELETE("/:id/", m.Handler.Delete)
}
