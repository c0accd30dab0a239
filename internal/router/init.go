package router

import (
	"time"

	"github.com/oksasatya/postboard-api/internal/application"
	"github.com/oksasatya/postboard-api/internal/container"
	pginfra "github.com/oksasatya/postboard-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/postboard-api/internal/interface/http"
	"github.com/oksasatya/postboard-api/internal/interface/middleware"
	"github.com/oksasatya/postboard-api/internal/router/modules"
)

// InitModules wires the entity modules behind the rate limiter and the
// request session, and the operational endpoints outside both.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	var allow middleware.AllowFunc
	if cfg.RateLimitAllowPrivate {
		allow = middleware.AllowPrivateIP()
	}
	r.Use(
		middleware.RateLimit(c.Limiter(), cfg.RateLimitPerMinute, time.Minute, middleware.KeyByIPAndRoute(), allow),
		middleware.Session(c.DB, c.Logger),
	)

	accounts := application.NewAccountService(pginfra.NewAccountRepository(c.Hasher), c.Publisher(), c.Logger)
	posts := application.NewPostService(pginfra.NewPostRepository(), c.Publisher(), c.Logger)

	r.Add(modules.NewAccountModule(handlers.NewAccountHandler(accounts)))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(posts)))
	r.AddRoot(modules.NewDebugModule(c.DB, cfg.DebugMetricsEnabled))
}
