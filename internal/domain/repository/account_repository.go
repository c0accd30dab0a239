package repository

import (
	"context"

	"github.com/oksasatya/postboard-api/internal/domain/entity"
)

// AccountRepository persists accounts inside the session bound to ctx.
// Write operations commit that session.
type AccountRepository interface {
	Fetch(ctx context.Context, id int64) (*entity.Account, error)
	Create(ctx context.Context, in entity.AccountPatch) (*entity.Account, error)
	Update(ctx context.Context, id int64, in entity.AccountPatch) (*entity.Account, error)
	// Delete removes the account and, through the store cascade, its posts.
	Delete(ctx context.Context, id int64) error
}
