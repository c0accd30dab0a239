package postgres

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNoSession is returned by gateways called outside a request session.
var ErrNoSession = errors.New("postgres: no session in context")

// Session is the unit of work a request runs in. *sqlx.Tx implements it.
type Session interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	Commit() error
	Rollback() error
}

type sessionKey struct{}

// WithSession binds s to ctx for the rest of the request.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// From returns the session bound to ctx.
func From(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}
