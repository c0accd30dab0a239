package container

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/postboard-api/config"
	"github.com/oksasatya/postboard-api/internal/domain/event"
	"github.com/oksasatya/postboard-api/pkg/helpers"
)

// Container carries the components built once at startup. The router wires
// modules from it; nothing here is a package-level global.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	DB     *sqlx.DB
	Hasher helpers.Hasher
	// Redis is nil when rate limiting is off.
	Redis *redis.Client
	// Events is event.Nop when no broker is configured.
	Events event.Publisher
}

// Limiter returns the Redis client for the rate limiter, or a nil interface
// when Redis is not configured.
func (c *Container) Limiter() redis.Scripter {
	if c.Redis == nil {
		return nil
	}
	return c.Redis
}

// Publisher never returns nil.
func (c *Container) Publisher() event.Publisher {
	if c.Events == nil {
		return event.Nop{}
	}
	return c.Events
}
