package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/postboard-api/internal/domain/entity"
	"github.com/oksasatya/postboard-api/internal/domain/errs"
)

type prefixHasher struct{}

func (prefixHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (prefixHasher) Verify(plain, hash string) bool { return hash == "hashed:"+plain }

func ptr[T any](v T) *T { return &v }

// newSession returns a context carrying an open sqlmock transaction.
func newSession(t *testing.T) (context.Context, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	mock.ExpectBegin()
	tx, err := sqlx.NewDb(db, "sqlmock").Beginx()
	require.NoError(t, err)
	return WithSession(context.Background(), tx), mock
}

var accountCols = []string{"id", "name", "password", "registration_time"}
var postCols = []string{"id", "heading", "description", "registration_time_post", "user_id"}

func TestAccountRepositoryCreate(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	repo := NewAccountRepository(prefixHasher{})

	t.Run("hashes and commits", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("INSERT INTO app_user").
			WithArgs("user_1", "hashed:12345").
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(int64(1), "user_1", "hashed:12345", now))
		mock.ExpectCommit()

		a, err := repo.Create(ctx, entity.AccountPatch{Name: ptr("user_1"), Password: ptr("12345")})
		require.NoError(t, err)
		assert.Equal(t, int64(1), a.ID)
		assert.Equal(t, "user_1", a.Name)
		assert.Equal(t, now, a.RegistrationTime)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate name rolls back", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("INSERT INTO app_user").
			WithArgs("user_1", sqlmock.AnyArg()).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "app_user_name_key"})
		mock.ExpectRollback()

		_, err := repo.Create(ctx, entity.AccountPatch{Name: ptr("user_1"), Password: ptr("12345")})
		e, ok := errs.As(err)
		require.True(t, ok)
		assert.Equal(t, errs.Conflict, e.Kind)
		assert.Equal(t, "user already exists", e.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other store errors are not domain failures", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("INSERT INTO app_user").WillReturnError(errors.New("connection reset"))

		_, err := repo.Create(ctx, entity.AccountPatch{Name: ptr("user_1"), Password: ptr("12345")})
		require.Error(t, err)
		assert.Equal(t, errs.Unknown, errs.KindOf(err))
		assert.Contains(t, err.Error(), "create account")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no session", func(t *testing.T) {
		_, err := repo.Create(context.Background(), entity.AccountPatch{Name: ptr("x"), Password: ptr("12345")})
		assert.ErrorIs(t, err, ErrNoSession)
	})
}

func TestAccountRepositoryFetch(t *testing.T) {
	repo := NewAccountRepository(prefixHasher{})

	ctx, mock := newSession(t)
	mock.ExpectQuery("SELECT (.+) FROM app_user WHERE id").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Fetch(ctx, 7)
	e, ok := errs.As(err)
	require.True(t, ok)
	assert.Equal(t, errs.NotFound, e.Kind)
	assert.Equal(t, "user not found", e.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepositoryUpdate(t *testing.T) {
	now := time.Now().UTC()
	repo := NewAccountRepository(prefixHasher{})

	t.Run("password only keeps the name", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("SELECT (.+) FROM app_user WHERE id").
			WithArgs(int64(1)).
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(int64(1), "user_1", "hashed:12345", now))
		mock.ExpectQuery("UPDATE app_user SET").
			WithArgs(int64(1), "user_1", "hashed:abcde").
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(int64(1), "user_1", "hashed:abcde", now))
		mock.ExpectCommit()

		a, err := repo.Update(ctx, 1, entity.AccountPatch{Password: ptr("abcde")})
		require.NoError(t, err)
		assert.Equal(t, "user_1", a.Name)
		assert.Equal(t, "hashed:abcde", a.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rename onto an existing name", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("SELECT (.+) FROM app_user WHERE id").
			WillReturnRows(sqlmock.NewRows(accountCols).AddRow(int64(2), "user_2", "hashed:12345", now))
		mock.ExpectQuery("UPDATE app_user SET").
			WithArgs(int64(2), "user_1", "hashed:12345").
			WillReturnError(&pgconn.PgError{Code: "23505"})
		mock.ExpectRollback()

		_, err := repo.Update(ctx, 2, entity.AccountPatch{Name: ptr("user_1")})
		assert.Equal(t, errs.Conflict, errs.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing account is not mutated", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("SELECT (.+) FROM app_user WHERE id").WillReturnError(sql.ErrNoRows)

		_, err := repo.Update(ctx, 3, entity.AccountPatch{Name: ptr("x")})
		assert.Equal(t, errs.NotFound, errs.KindOf(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepositoryDelete(t *testing.T) {
	repo := NewAccountRepository(prefixHasher{})

	t.Run("deletes and commits", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectExec("DELETE FROM app_user").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Delete(ctx, 1))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectExec("DELETE FROM app_user").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Equal(t, errs.NotFound, errs.KindOf(repo.Delete(ctx, 9)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostRepository(t *testing.T) {
	now := time.Now().UTC()
	repo := NewPostRepository()

	t.Run("create", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("INSERT INTO app_post").
			WithArgs("h", "d", int64(1)).
			WillReturnRows(sqlmock.NewRows(postCols).AddRow(int64(4), "h", "d", now, int64(1)))
		mock.ExpectCommit()

		p, err := repo.Create(ctx, entity.PostPatch{Heading: ptr("h"), Description: ptr("d"), UserID: ptr(int64(1))})
		require.NoError(t, err)
		assert.Equal(t, int64(4), p.ID)
		assert.Equal(t, int64(1), p.UserID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown owner", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("INSERT INTO app_post").
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "app_post_user_id_fkey"})
		mock.ExpectRollback()

		_, err := repo.Create(ctx, entity.PostPatch{Heading: ptr("h"), Description: ptr("d"), UserID: ptr(int64(42))})
		e, ok := errs.As(err)
		require.True(t, ok)
		assert.Equal(t, errs.Conflict, e.Kind)
		assert.Equal(t, "post error: user does not exist", e.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("other integrity violation", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("INSERT INTO app_post").WillReturnError(&pgconn.PgError{Code: "23514"})
		mock.ExpectRollback()

		_, err := repo.Create(ctx, entity.PostPatch{Heading: ptr("h"), Description: ptr("d"), UserID: ptr(int64(1))})
		e, ok := errs.As(err)
		require.True(t, ok)
		assert.Equal(t, "post error", e.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("update merges supplied fields", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("SELECT (.+) FROM app_post WHERE id").
			WithArgs(int64(4)).
			WillReturnRows(sqlmock.NewRows(postCols).AddRow(int64(4), "h", "d", now, int64(1)))
		mock.ExpectQuery("UPDATE app_post SET").
			WithArgs(int64(4), "h", "new body", int64(1)).
			WillReturnRows(sqlmock.NewRows(postCols).AddRow(int64(4), "h", "new body", now, int64(1)))
		mock.ExpectCommit()

		p, err := repo.Update(ctx, 4, entity.PostPatch{Description: ptr("new body")})
		require.NoError(t, err)
		assert.Equal(t, "h", p.Heading)
		assert.Equal(t, "new body", p.Description)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("fetch missing", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectQuery("SELECT (.+) FROM app_post WHERE id").WillReturnError(sql.ErrNoRows)

		_, err := repo.Fetch(ctx, 5)
		e, ok := errs.As(err)
		require.True(t, ok)
		assert.Equal(t, "post not found", e.Message)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete missing", func(t *testing.T) {
		ctx, mock := newSession(t)
		mock.ExpectExec("DELETE FROM app_post").WillReturnResult(sqlmock.NewResult(0, 0))

		assert.Equal(t, errs.NotFound, errs.KindOf(repo.Delete(ctx, 5)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
