package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/postboard-api/internal/infrastructure/metrics"
	"github.com/oksasatya/postboard-api/pkg/response"
)

// Pinger is satisfied by *sqlx.DB and *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// DebugModule exposes /healthz and, when enabled, /metrics. Neither opens a
// request session.
type DebugModule struct {
	DB             Pinger
	MetricsEnabled bool
}

func NewDebugModule(db Pinger, metricsEnabled bool) *DebugModule {
	return &DebugModule{DB: db, MetricsEnabled: metricsEnabled}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.health)
	if m.MetricsEnabled {
		rg.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}

func (m *DebugModule) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := m.DB.PingContext(ctx); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"status": "ok"})
}
