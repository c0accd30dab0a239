package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/postboard-api/internal/domain/entity"
	"github.com/oksasatya/postboard-api/internal/domain/event"
	repo "github.com/oksasatya/postboard-api/internal/domain/repository"
)

type AccountService struct {
	Repo repo.AccountRepository
	notifier
}

func NewAccountService(r repo.AccountRepository, events event.Publisher, logger *logrus.Logger) *AccountService {
	return &AccountService{Repo: r, notifier: newNotifier(events, logger)}
}

func (s *AccountService) Get(ctx context.Context, id int64) (*entity.Account, error) {
	return s.Repo.Fetch(ctx, id)
}

// Create persists a new account. The password in in is plaintext.
func (s *AccountService) Create(ctx context.Context, in entity.AccountPatch) (*entity.Account, error) {
	a, err := s.Repo.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, event.AccountCreated, "account", a.ID, a)
	return a, nil
}

// Update applies the supplied fields only.
func (s *AccountService) Update(ctx context.Context, id int64, in entity.AccountPatch) (*entity.Account, error) {
	a, err := s.Repo.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.emit(ctx, event.AccountUpdated, "account", a.ID, a)
	return a, nil
}

// Delete removes the account and its posts.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.emit(ctx, event.AccountDeleted, "account", id, nil)
	return nil
}
