package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/oksasatya/postboard-api/internal/domain/errs"
)

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
	integrityClass      = "23"
)

// conflicts maps SQLSTATE codes to client messages. fallback is used for
// any other integrity violation.
type conflicts struct {
	byCode   map[string]string
	fallback string
}

// writeFailed rolls s back and returns a Conflict when err is an integrity
// violation. Other errors are wrapped with op and left for the caller's
// session scope to release.
func writeFailed(s Session, op string, err error, c conflicts) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, integrityClass) {
		_ = s.Rollback()
		msg, ok := c.byCode[pgErr.Code]
		if !ok {
			msg = c.fallback
		}
		return errs.NewConflict(msg, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
