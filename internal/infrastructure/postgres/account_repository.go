package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oksasatya/postboard-api/internal/domain/entity"
	"github.com/oksasatya/postboard-api/internal/domain/errs"
	"github.com/oksasatya/postboard-api/internal/domain/repository"
	"github.com/oksasatya/postboard-api/pkg/helpers"
)

const accountColumns = `id, name, password, registration_time`

var accountConflicts = conflicts{
	byCode:   map[string]string{uniqueViolation: repository.MsgAccountExists},
	fallback: repository.MsgAccountExists,
}

type AccountRepository struct {
	hasher helpers.Hasher
}

func NewAccountRepository(hasher helpers.Hasher) *AccountRepository {
	return &AccountRepository{hasher: hasher}
}

func (r *AccountRepository) Fetch(ctx context.Context, id int64) (*entity.Account, error) {
	s, err := From(ctx)
	if err != nil {
		return nil, err
	}
	return fetchAccount(ctx, s, id)
}

func fetchAccount(ctx context.Context, s Session, id int64) (*entity.Account, error) {
	var a entity.Account
	err := s.GetContext(ctx, &a, `SELECT `+accountColumns+` FROM app_user WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewNotFound(repository.MsgAccountNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch account: %w", err)
	}
	return &a, nil
}

func (r *AccountRepository) Create(ctx context.Context, in entity.AccountPatch) (*entity.Account, error) {
	s, err := From(ctx)
	if err != nil {
		return nil, err
	}
	hash, err := r.hasher.Hash(*in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var a entity.Account
	err = s.GetContext(ctx, &a, `
		INSERT INTO app_user (name, password)
		VALUES ($1, $2)
		RETURNING `+accountColumns, *in.Name, hash)
	if err != nil {
		return nil, writeFailed(s, "create account", err, accountConflicts)
	}
	if err := s.Commit(); err != nil {
		return nil, writeFailed(s, "commit account", err, accountConflicts)
	}
	return &a, nil
}

func (r *AccountRepository) Update(ctx context.Context, id int64, in entity.AccountPatch) (*entity.Account, error) {
	s, err := From(ctx)
	if err != nil {
		return nil, err
	}
	a, err := fetchAccount(ctx, s, id)
	if err != nil {
		return nil, err
	}

	var hash string
	if in.Password != nil {
		if hash, err = r.hasher.Hash(*in.Password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}
	in.Apply(a, hash)

	var out entity.Account
	err = s.GetContext(ctx, &out, `
		UPDATE app_user SET name = $2, password = $3
		WHERE id = $1
		RETURNING `+accountColumns, a.ID, a.Name, a.PasswordHash)
	if err != nil {
		return nil, writeFailed(s, "update account", err, accountConflicts)
	}
	if err := s.Commit(); err != nil {
		return nil, writeFailed(s, "commit account", err, accountConflicts)
	}
	return &out, nil
}

// Delete removes the account; app_post rows go with it through ON DELETE CASCADE.
func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	s, err := From(ctx)
	if err != nil {
		return err
	}
	res, err := s.ExecContext(ctx, `DELETE FROM app_user WHERE id = $1`, id)
	if err != nil {
		return writeFailed(s, "delete account", err, accountConflicts)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete account: %w", err)
	} else if n == 0 {
		return errs.NewNotFound(repository.MsgAccountNotFound)
	}
	if err := s.Commit(); err != nil {
		return fmt.Errorf("commit account: %w", err)
	}
	return nil
}

var _ repository.AccountRepository = (*AccountRepository)(nil)
