package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oksasatya/postboard-api/internal/domain/entity"
	"github.com/oksasatya/postboard-api/internal/domain/errs"
	"github.com/oksasatya/postboard-api/internal/domain/repository"
)

const postColumns = `id, heading, description, registration_time_post, user_id`

var postConflicts = conflicts{
	byCode:   map[string]string{foreignKeyViolation: repository.MsgPostOwnerGone},
	fallback: repository.MsgPostConflict,
}

type PostRepository struct{}

func NewPostRepository() *PostRepository {
	return &PostRepository{}
}

func (r *PostRepository) Fetch(ctx context.Context, id int64) (*entity.Post, error) {
	s, err := From(ctx)
	if err != nil {
		return nil, err
	}
	return fetchPost(ctx, s, id)
}

func fetchPost(ctx context.Context, s Session, id int64) (*entity.Post, error) {
	var p entity.Post
	err := s.GetContext(ctx, &p, `SELECT `+postColumns+` FROM app_post WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewNotFound(repository.MsgPostNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch post: %w", err)
	}
	return &p, nil
}

// Create relies on the user_id foreign key to reject unknown owners.
func (r *PostRepository) Create(ctx context.Context, in entity.PostPatch) (*entity.Post, error) {
	s, err := From(ctx)
	if err != nil {
		return nil, err
	}

	var p entity.Post
	err = s.GetContext(ctx, &p, `
		INSERT INTO app_post (heading, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING `+postColumns, *in.Heading, *in.Description, *in.UserID)
	if err != nil {
		return nil, writeFailed(s, "create post", err, postConflicts)
	}
	if err := s.Commit(); err != nil {
		return nil, writeFailed(s, "commit post", err, postConflicts)
	}
	return &p, nil
}

func (r *PostRepository) Update(ctx context.Context, id int64, in entity.PostPatch) (*entity.Post, error) {
	s, err := From(ctx)
	if err != nil {
		return nil, err
	}
	p, err := fetchPost(ctx, s, id)
	if err != nil {
		return nil, err
	}
	in.Apply(p)

	var out entity.Post
	err = s.GetContext(ctx, &out, `
		UPDATE app_post SET heading = $2, description = $3, user_id = $4
		WHERE id = $1
		RETURNING `+postColumns, p.ID, p.Heading, p.Description, p.UserID)
	if err != nil {
		return nil, writeFailed(s, "update post", err, postConflicts)
	}
	if err := s.Commit(); err != nil {
		return nil, writeFailed(s, "commit post", err, postConflicts)
	}
	return &out, nil
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	s, err := From(ctx)
	if err != nil {
		return err
	}
	res, err := s.ExecContext(ctx, `DELETE FROM app_post WHERE id = $1`, id)
	if err != nil {
		return writeFailed(s, "delete post", err, postConflicts)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("delete post: %w", err)
	} else if n == 0 {
		return errs.NewNotFound(repository.MsgPostNotFound)
	}
	if err := s.Commit(); err != nil {
		return fmt.Errorf("commit post: %w", err)
	}
	return nil
}

var _ repository.PostRepository = (*PostRepository)(nil)
