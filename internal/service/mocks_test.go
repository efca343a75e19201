package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"bloglist/internal/logger"
	"bloglist/internal/models"
	"bloglist/internal/repository"

	"github.com/google/uuid"
)

// memUsers is an in-memory repository.Users.
type memUsers struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	refs    map[string][]string
	blogs   *memBlogs
	failGet error
	failAdd error
}

func newMemUsers(blogs *memBlogs) *memUsers {
	return &memUsers{byID: map[string]*models.User{}, refs: map[string][]string{}, blogs: blogs}
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Username == u.Username {
			return repository.ErrDuplicateUsername
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now().UTC()
	u.Blogs = []models.BlogRef{}
	cp := *u
	m.byID[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	cp.Blogs = m.populate(id)
	return &cp, nil
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) List(_ context.Context) ([]models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.User, 0, len(m.byID))
	for id, u := range m.byID {
		cp := *u
		cp.Blogs = m.populate(id)
		out = append(out, cp)
	}
	return out, nil
}

func (m *memUsers) AppendBlog(_ context.Context, userID, blogID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failAdd != nil {
		return m.failAdd
	}
	m.refs[userID] = append(m.refs[userID], blogID)
	return nil
}

func (m *memUsers) RemoveBlog(_ context.Context, userID, blogID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.refs[userID][:0]
	for _, id := range m.refs[userID] {
		if id != blogID {
			kept = append(kept, id)
		}
	}
	m.refs[userID] = kept
	return nil
}

func (m *memUsers) populate(userID string) []models.BlogRef {
	out := []models.BlogRef{}
	for _, id := range m.refs[userID] {
		if b, ok := m.blogs.byID[id]; ok {
			out = append(out, models.BlogRef{ID: b.ID, Title: b.Title, Author: b.Author, URL: b.URL, Likes: b.Likes})
		}
	}
	return out
}

// memBlogs is an in-memory repository.Blogs keeping insertion order.
type memBlogs struct {
	byID    map[string]*models.Blog
	order   []string
	failGet error
	updates int

	// beforeLike runs ahead of IncrementLikes to simulate a concurrent writer.
	beforeLike func()
}

func newMemBlogs() *memBlogs { return &memBlogs{byID: map[string]*models.Blog{}} }

func (m *memBlogs) Create(_ context.Context, b *models.Blog) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	cp := *b
	cp.Owner = nil
	m.byID[b.ID] = &cp
	m.order = append(m.order, b.ID)
	return nil
}

func (m *memBlogs) Get(_ context.Context, id string) (*models.Blog, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	b, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *memBlogs) List(_ context.Context) ([]models.Blog, error) {
	out := make([]models.Blog, 0, len(m.order))
	for _, id := range m.order {
		if b, ok := m.byID[id]; ok {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBlogs) Update(_ context.Context, id string, c models.BlogChanges) (bool, error) {
	b, ok := m.byID[id]
	if !ok {
		return false, nil
	}
	m.updates++
	if c.Title != nil {
		b.Title = *c.Title
	}
	if c.Author != nil {
		b.Author = *c.Author
	}
	if c.URL != nil {
		b.URL = *c.URL
	}
	if c.Likes != nil {
		b.Likes = *c.Likes
	}
	return true, nil
}

func (m *memBlogs) IncrementLikes(_ context.Context, id string, from int) (bool, error) {
	if m.beforeLike != nil {
		m.beforeLike()
	}
	b, ok := m.byID[id]
	if !ok || b.Likes != from {
		return false, nil
	}
	b.Likes++
	return true, nil
}

func (m *memBlogs) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	gotCtx   context.Context
	gotQuery models.EventQuery

	appended  []models.BlogEvent
	appendErr error

	// configured outputs
	events []models.BlogEvent
	err    error

	calls int
}

func (f *fakeEventRepo) List(ctx context.Context, q models.EventQuery) ([]models.BlogEvent, error) {
	f.calls++
	f.gotCtx = ctx
	f.gotQuery = q
	return f.events, f.err
}

func (f *fakeEventRepo) Append(_ context.Context, e models.BlogEvent) error {
	f.appended = append(f.appended, e)
	return f.appendErr
}

// fakePublisher records published messages.
type fakePublisher struct {
	keys   []string
	bodies [][]byte
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, data []byte) error {
	p.keys = append(p.keys, key)
	p.bodies = append(p.bodies, data)
	return p.err
}

func (p *fakePublisher) Close() error { return nil }

var errDB = errors.New("db down")

// blogFixture wires a BlogService over in-memory stores.
type blogFixture struct {
	blogs  *memBlogs
	users  *memUsers
	events *fakeEventRepo
	pub    *fakePublisher
	svc    *BlogService
}

func newBlogFixture(likeBypass bool) *blogFixture {
	blogs := newMemBlogs()
	users := newMemUsers(blogs)
	events := &fakeEventRepo{}
	pub := &fakePublisher{}
	activity := NewActivityRecorder(events, pub, logger.Nop())
	return &blogFixture{
		blogs:  blogs,
		users:  users,
		events: events,
		pub:    pub,
		svc:    NewBlogService(blogs, users, activity, logger.Nop(), likeBypass),
	}
}

func (f *blogFixture) addUser(username string) Identity {
	u := models.User{Username: username, Name: username + " name", PasswordHash: "x"}
	if err := f.users.Create(context.Background(), &u); err != nil {
		panic(err)
	}
	return Authenticated(u)
}
