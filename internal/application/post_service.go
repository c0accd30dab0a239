package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/postboard-api/internal/domain/entity"
	"github.com/oksasatya/postboard-api/internal/domain/event"
	repo "github.com/oksasatya/postboard-api/internal/domain/repository"
)

type PostService struct {
	Repo repo.PostRepository
	notifier
}

func NewPostService(r repo.PostRepository, events event.Publisher, logger *logrus.Logger) *PostService {
	return &PostService{Repo: r, notifier: newNotifier(events, logger)}
}

func (s *PostService) Get(ctx context.Context, id int64) (*entity.Post, error) {
	return s.Repo.Fetch(ctx, id)
}

func (s *PostService) Create(ctx context.Context, in entity.PostPatch) (*entity.Post, error) {
	p, err := s.Repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, event.PostCreated, "post", p.ID, p)
	return p, nil
}

func (s *PostService) Update(ctx context.Context, id int64, in entity.PostPatch) (*entity.Post, error) {
	p, err := s.Repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, event.PostUpdated, "post", p.ID, p)
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, event.PostDeleted, "post", id, nil)
	return nil
}
