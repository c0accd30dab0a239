// Package mock provides in-memory repositories that mirror the store's
// constraints: unique account names, post owner must exist, cascade on delete.
package mock

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/postboard-api/internal/domain/entity"
	"github.com/oksasatya/postboard-api/internal/domain/errs"
	"github.com/oksasatya/postboard-api/internal/domain/repository"
	"github.com/oksasatya/postboard-api/pkg/helpers"
)

// Store is the shared backing state for the account and post fakes.
type Store struct {
	mutex      sync.RWMutex
	hasher     helpers.Hasher
	accounts   map[int64]*entity.Account
	posts      map[int64]*entity.Post
	nextAcctID int64
	nextPostID int64
}

func NewStore(hasher helpers.Hasher) *Store {
	return &Store{
		hasher:     hasher,
		accounts:   make(map[int64]*entity.Account),
		posts:      make(map[int64]*entity.Post),
		nextAcctID: 1,
		nextPostID: 1,
	}
}

// Accounts returns an AccountRepository over s.
func (s *Store) Accounts() *AccountRepository { return &AccountRepository{s: s} }

// Posts returns a PostRepository over s.
func (s *Store) Posts() *PostRepository { return &PostRepository{s: s} }

// StoredHash exposes the persisted hash for assertions.
func (s *Store) StoredHash(id int64) string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if a, ok := s.accounts[id]; ok {
		return a.PasswordHash
	}
	return ""
}

func (s *Store) nameTaken(name string, except int64) bool {
	for id, a := range s.accounts {
		if id != except && a.Name == name {
			return true
		}
	}
	return false
}

type AccountRepository struct {
	s *Store
}

func (r *AccountRepository) Fetch(_ context.Context, id int64) (*entity.Account, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, errs.NewNotFound(repository.MsgAccountNotFound)
	}
	cp := *a
	return &cp, nil
}

func (r *AccountRepository) Create(_ context.Context, in entity.AccountPatch) (*entity.Account, error) {
	hash, err := r.s.hasher.Hash(*in.Password)
	if err != nil {
		return nil, err
	}

	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if r.s.nameTaken(*in.Name, 0) {
		return nil, errs.NewConflict(repository.MsgAccountExists, nil)
	}
	a := &entity.Account{
		ID:               r.s.nextAcctID,
		Name:             *in.Name,
		PasswordHash:     hash,
		RegistrationTime: time.Now().UTC(),
	}
	r.s.nextAcctID++
	r.s.accounts[a.ID] = a
	cp := *a
	return &cp, nil
}

func (r *AccountRepository) Update(_ context.Context, id int64, in entity.AccountPatch) (*entity.Account, error) {
	var hash string
	if in.Password != nil {
		h, err := r.s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return nil, errs.NewNotFound(repository.MsgAccountNotFound)
	}
	if in.Name != nil && r.s.nameTaken(*in.Name, id) {
		return nil, errs.NewConflict(repository.MsgAccountExists, nil)
	}
	in.Apply(a, hash)
	cp := *a
	return &cp, nil
}

func (r *AccountRepository) Delete(_ context.Context, id int64) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, ok := r.s.accounts[id]; !ok {
		return errs.NewNotFound(repository.MsgAccountNotFound)
	}
	delete(r.s.accounts, id)
	for pid, p := range r.s.posts {
		if p.UserID == id {
			delete(r.s.posts, pid)
		}
	}
	return nil
}

type PostRepository struct {
	s *Store
}

func (r *PostRepository) Fetch(_ context.Context, id int64) (*entity.Post, error) {
	r.s.mutex.RLock()
	defer r.s.mutex.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, errs.NewNotFound(repository.MsgPostNotFound)
	}
	cp := *p
	return &cp, nil
}

func (r *PostRepository) Create(_ context.Context, in entity.PostPatch) (*entity.Post, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, ok := r.s.accounts[*in.UserID]; !ok {
		return nil, errs.NewConflict(repository.MsgPostOwnerGone, nil)
	}
	p := &entity.Post{
		ID:                   r.s.nextPostID,
		Heading:              *in.Heading,
		Description:          *in.Description,
		RegistrationTimePost: time.Now().UTC(),
		UserID:               *in.UserID,
	}
	r.s.nextPostID++
	r.s.posts[p.ID] = p
	cp := *p
	return &cp, nil
}

func (r *PostRepository) Update(_ context.Context, id int64, in entity.PostPatch) (*entity.Post, error) {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, errs.NewNotFound(repository.MsgPostNotFound)
	}
	if in.UserID != nil {
		if _, ok := r.s.accounts[*in.UserID]; !ok {
			return nil, errs.NewConflict(repository.MsgPostOwnerGone, nil)
		}
	}
	in.Apply(p)
	cp := *p
	return &cp, nil
}

func (r *PostRepository) Delete(_ context.Context, id int64) error {
	r.s.mutex.Lock()
	defer r.s.mutex.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return errs.NewNotFound(repository.MsgPostNotFound)
	}
	delete(r.s.posts, id)
	return nil
}

var (
	_ repository.AccountRepository = (*AccountRepository)(nil)
	_ repository.PostRepository    = (*PostRepository)(nil)
)
