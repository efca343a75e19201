package repository

import (
	"context"
	"database/sql"
	"errors"

	"bloglist/internal/models"
)

// ErrDuplicateUsername is returned when the username is already registered.
var ErrDuplicateUsername = errors.New("duplicate username")

// Users persists user accounts and their ordered blog lists.
type Users interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	AppendBlog(ctx context.Context, userID, blogID string) error
	RemoveBlog(ctx context.Context, userID, blogID string) error
}

// Blogs persists blog entries. Reads populate Blog.Owner.
type Blogs interface {
	Create(ctx context.Context, b *models.Blog) error
	Get(ctx context.Context, id string) (*models.Blog, error)
	List(ctx context.Context) ([]models.Blog, error)
	Update(ctx context.Context, id string, c models.BlogChanges) (bool, error)
	IncrementLikes(ctx context.Context, id string, from int) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// EventRepo is the append-only blog activity log.
type EventRepo interface {
	Append(ctx context.Context, e models.BlogEvent) error
	List(ctx context.Context, q models.EventQuery) ([]models.BlogEvent, error)
}

type Repository struct {
	Users     Users
	Blogs     Blogs
	EventRepo EventRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:     NewUserRepository(db),
		Blogs:     NewBlogRepository(db),
		EventRepo: NewEventSQLite(db),
	}
}
