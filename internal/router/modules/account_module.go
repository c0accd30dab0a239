package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/postboard-api/internal/interface/http"
)

// AccountModule serves /user/ and /user/:id/.
type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/user")
	g.POST("/", m.Handler.Create)
	g.GET("/:id/", m.Handler.Get)
	g.PATCH("/:id/", m.Handler.Update)
	g.DELETE("/:id/", m.Handler.Delete)
}
