package service

import (
	"context"

	"bloglist/internal/logger"
	"bloglist/internal/models"
	"bloglist/internal/repository"
)

type BlogService struct {
	blogs      repository.Blogs
	users      repository.Users
	activity   *ActivityRecorder
	log        *logger.Logger
	likeBypass bool
}

func NewBlogService(blogs repository.Blogs, users repository.Users, activity *ActivityRecorder, log *logger.Logger, likeBypass bool) *BlogService {
	return &BlogService{blogs: blogs, users: users, activity: activity, log: log, likeBypass: likeBypass}
}

func (s *BlogService) ListBlogs(ctx context.Context) ([]models.Blog, error) {
	return s.blogs.List(ctx)
}

func (s *BlogService) GetBlog(ctx context.Context, id string) (models.Blog, error) {
	id, err := parseID(id)
	if err != nil {
		return models.Blog{}, err
	}
	return s.load(ctx, id)
}

// CreateBlog stores a blog owned by who and appends it to who's list.
// The two writes are not atomic; a stale list entry is skipped on read.
func (s *BlogService) CreateBlog(ctx context.Context, who Identity, in NewBlog) (models.Blog, error) {
	if err := ValidateNewBlog(in); err != nil {
		return models.Blog{}, err
	}
	owner, ok := who.User()
	if !ok {
		return models.Blog{}, ErrUnauthorized
	}

	b := models.Blog{
		Title:  in.Title,
		Author: in.Author,
		URL:    in.URL,
		UserID: owner.ID,
	}
	if in.Likes != nil {
		b.Likes = *in.Likes
	}

	if err := s.blogs.Create(ctx, &b); err != nil {
		return models.Blog{}, err
	}
	if err := s.users.AppendBlog(ctx, owner.ID, b.ID); err != nil {
		return models.Blog{}, err
	}
	b.Owner = &models.Owner{ID: owner.ID, Username: owner.Username, Name: owner.Name}

	s.activity.Record(ctx, models.EventCreate, b, who, map[string]any{"likes": b.Likes})
	return b, nil
}

// UpdateBlog applies p under the ownership policy.
// Check order: identity, id shape, existence, body, ownership.
func (s *BlogService) UpdateBlog(ctx context.Context, who Identity, id string, p BlogPatch) (models.Blog, error) {
	if !who.IsAuthenticated() {
		return models.Blog{}, ErrUnauthorized
	}
	id, err := parseID(id)
	if err != nil {
		return models.Blog{}, err
	}
	current, err := s.load(ctx, id)
	if err != nil {
		return models.Blog{}, err
	}
	if err := ValidatePatch(p); err != nil {
		return models.Blog{}, err
	}
	rule, err := AuthorizeUpdate(who, current, p, s.likeBypass)
	if err != nil {
		return models.Blog{}, err
	}

	updated := ApplyPatch(current, p, rule)
	if err := s.write(ctx, id, current, p, rule); err != nil {
		return models.Blog{}, err
	}

	typ := models.EventUpdate
	if rule == RuleLike {
		typ = models.EventLike
	}
	s.activity.Record(ctx, typ, updated, who, map[string]any{
		"likes_before": current.Likes,
		"likes_after":  updated.Likes,
	})
	return updated, nil
}

// DeleteBlog removes a blog owned by who and drops it from the owner's list.
func (s *BlogService) DeleteBlog(ctx context.Context, who Identity, id string) error {
	if !who.IsAuthenticated() {
		return ErrUnauthorized
	}
	id, err := parseID(id)
	if err != nil {
		return err
	}
	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := AuthorizeDelete(who, current); err != nil {
		return err
	}

	ok, err := s.blogs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("blog")
	}
	if err := s.users.RemoveBlog(ctx, current.UserID, id); err != nil {
		s.log.Warnw("user_blog_unlink_failed", "user_id", current.UserID, "blog_id", id, "err", err)
	}

	s.activity.Record(ctx, models.EventDelete, current, who, nil)
	return nil
}

// write persists an allowed update. A like only lands if the stored count
// is still the one it was authorized against.
func (s *BlogService) write(ctx context.Context, id string, current models.Blog, p BlogPatch, rule UpdateRule) error {
	if rule == RuleLike {
		ok, err := s.blogs.IncrementLikes(ctx, id, current.Likes)
		if err != nil {
			return err
		}
		if !ok {
			if _, err := s.load(ctx, id); err != nil {
				return err
			}
			return ErrNotOwner
		}
		return nil
	}

	changes := PatchChanges(p)
	if changes.Empty() {
		return nil
	}
	ok, err := s.blogs.Update(ctx, id, changes)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("blog")
	}
	return nil
}

func (s *BlogService) load(ctx context.Context, id string) (models.Blog, error) {
	b, err := s.blogs.Get(ctx, id)
	if err != nil {
		return models.Blog{}, err
	}
	if b == nil {
		return models.Blog{}, notFound("blog")
	}
	return *b, nil
}
