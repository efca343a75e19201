package service

import (
	"context"
	"time"

	"bloglist/internal/logger"
	"bloglist/internal/models"
	"bloglist/internal/mq"
	"bloglist/internal/repository"
)

// Authorization issues tokens and resolves them to identities.
type Authorization interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
	Identify(ctx context.Context, token string) (Identity, error)
}

// Blogs exposes blog reads and the ownership-checked mutations.
type Blogs interface {
	ListBlogs(ctx context.Context) ([]models.Blog, error)
	GetBlog(ctx context.Context, id string) (models.Blog, error)
	CreateBlog(ctx context.Context, who Identity, in NewBlog) (models.Blog, error)
	UpdateBlog(ctx context.Context, who Identity, id string, p BlogPatch) (models.Blog, error)
	DeleteBlog(ctx context.Context, who Identity, id string) error
}

// Users exposes signup and the populated user listing.
type Users interface {
	CreateUser(ctx context.Context, in NewUser) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (models.User, error)
}

// Stats exposes aggregates over all blogs.
type Stats interface {
	GetStats(ctx context.Context) (models.Stats, error)
}

// EventLog exposes the append-only activity log with filtering access.
type EventLog interface {
	ListEvents(ctx context.Context, f LogFilter) ([]models.BlogEvent, error)
}

// Service aggregates all sub-services.
type Service struct {
	Authorization
	Blogs
	Users
	Stats
	EventLog
}

// Options carries the runtime settings services need.
type Options struct {
	Secret     string
	TokenTTL   time.Duration
	LikeBypass bool
	Publisher  mq.Publisher
	Log        *logger.Logger
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, opts Options) *Service {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	activity := NewActivityRecorder(repos.EventRepo, opts.Publisher, opts.Log)
	return &Service{
		Authorization: NewAuthService(repos.Users, opts.Secret, opts.TokenTTL),
		Blogs:         NewBlogService(repos.Blogs, repos.Users, activity, opts.Log, opts.LikeBypass),
		Users:         NewUserService(repos.Users),
		Stats:         NewStatsService(repos.Blogs),
		EventLog:      NewEventLogService(repos.EventRepo),
	}
}
