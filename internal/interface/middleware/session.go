package middleware

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/postboard-api/internal/infrastructure/postgres"
)

// Beginner opens transactions. *sqlx.DB implements it.
type Beginner interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// Session gives each request its own transaction, bound to the request
// context for the gateways. The transaction is rolled back when the chain
// returns, whatever the outcome; after a commit that rollback is a no-op.
func Session(db Beginner, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tx, err := db.BeginTxx(c.Request.Context(), nil)
		if err != nil {
			_ = c.Error(fmt.Errorf("begin session: %w", err))
			c.Abort()
			return
		}
		defer func() {
			if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
				logger.WithError(err).WithField(RequestIDKey, c.GetString(RequestIDKey)).Warn("session release failed")
			}
		}()

		c.Request = c.Request.WithContext(postgres.WithSession(c.Request.Context(), tx))
		c.Next()
	}
}
