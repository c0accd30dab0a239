package repository

import (
	"context"

	"github.com/oksasatya/postboard-api/internal/domain/entity"
)

// PostRepository persists posts inside the session bound to ctx.
type PostRepository interface {
	Fetch(ctx context.Context, id int64) (*entity.Post, error)
	Create(ctx context.Context, in entity.PostPatch) (*entity.Post, error)
	Update(ctx context.Context, id int64, in entity.PostPatch) (*entity.Post, error)
	Delete(ctx context.Context, id int64) error
}
