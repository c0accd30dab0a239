package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/postboard-api/config"
	"github.com/oksasatya/postboard-api/internal/domain/entity"
	"github.com/oksasatya/postboard-api/internal/domain/errs"
	pginfra "github.com/oksasatya/postboard-api/internal/infrastructure/postgres"
	"github.com/oksasatya/postboard-api/pkg/helpers"
)

// seed creates the demo account and one post through the same gateways the
// API uses, each in its own session.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env, cfg.LogLevel)
	ctx := context.Background()

	if err := pginfra.Migrate(cfg.PostgresDSN(), false, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 0, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	accounts := pginfra.NewAccountRepository(helpers.NewBcryptHasher(cfg.BcryptCost))
	posts := pginfra.NewPostRepository()

	inSession := func(fn func(ctx context.Context) error) error {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		return fn(pginfra.WithSession(ctx, tx))
	}

	name, password := "user_1", "12345"
	var owner *entity.Account
	err = inSession(func(ctx context.Context) error {
		var err error
		owner, err = accounts.Create(ctx, entity.AccountPatch{Name: &name, Password: &password})
		return err
	})
	if errs.KindOf(err) == errs.Conflict {
		fmt.Printf("account %q already present, nothing to seed\n", name)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed account: %v", err)
	}
	fmt.Printf("seeded account: id=%d name=%s password=%s\n", owner.ID, owner.Name, password)

	heading, description := "Hello", "First post on the board."
	var post *entity.Post
	err = inSession(func(ctx context.Context) error {
		var err error
		post, err = posts.Create(ctx, entity.PostPatch{Heading: &heading, Description: &description, UserID: &owner.ID})
		return err
	})
	if err != nil {
		if e, ok := errs.As(err); ok {
			log.Fatalf("failed to seed post: %s", e.Message)
		}
		log.Fatalf("failed to seed post: %v", err)
	}
	fmt.Printf("seeded post: id=%d user_id=%d heading=%q\n", post.ID, post.UserID, post.Heading)
}
