package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"bloglist/internal/models"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	tokens   map[string]models.User
	identErr error

	loginRes      service.LoginResult
	loginErr      error
	lastLoginUser string
	lastLoginPass string
}

func (m *mockAuth) Login(_ context.Context, username, password string) (service.LoginResult, error) {
	m.lastLoginUser = username
	m.lastLoginPass = password
	return m.loginRes, m.loginErr
}

func (m *mockAuth) Identify(_ context.Context, token string) (service.Identity, error) {
	if m.identErr != nil {
		return service.Anonymous(), m.identErr
	}
	if u, ok := m.tokens[token]; ok {
		return service.Authenticated(u), nil
	}
	return service.Anonymous(), service.ErrInvalidToken
}

type mockBlogs struct {
	list    []models.Blog
	blog    models.Blog
	err     error
	lastWho service.Identity
	lastID  string
	lastNew service.NewBlog
	lastP   service.BlogPatch
}

func (m *mockBlogs) ListBlogs(context.Context) ([]models.Blog, error) { return m.list, m.err }

func (m *mockBlogs) GetBlog(_ context.Context, id string) (models.Blog, error) {
	m.lastID = id
	return m.blog, m.err
}

func (m *mockBlogs) CreateBlog(_ context.Context, who service.Identity, in service.NewBlog) (models.Blog, error) {
	m.lastWho, m.lastNew = who, in
	return m.blog, m.err
}

func (m *mockBlogs) UpdateBlog(_ context.Context, who service.Identity, id string, p service.BlogPatch) (models.Blog, error) {
	m.lastWho, m.lastID, m.lastP = who, id, p
	return m.blog, m.err
}

func (m *mockBlogs) DeleteBlog(_ context.Context, who service.Identity, id string) error {
	m.lastWho, m.lastID = who, id
	return m.err
}

type mockUsers struct {
	users   []models.User
	user    models.User
	err     error
	lastNew service.NewUser
}

func (m *mockUsers) CreateUser(_ context.Context, in service.NewUser) (models.User, error) {
	m.lastNew = in
	return m.user, m.err
}
func (m *mockUsers) ListUsers(context.Context) ([]models.User, error) { return m.users, m.err }
func (m *mockUsers) GetUser(context.Context, string) (models.User, error) {
	return m.user, m.err
}

type mockStats struct {
	stats models.Stats
	err   error
}

func (m *mockStats) GetStats(context.Context) (models.Stats, error) { return m.stats, m.err }

type mockEventLog struct {
	resp  []models.BlogEvent
	err   error
	calls int
	last  service.LogFilter
}

func (m *mockEventLog) ListEvents(_ context.Context, f service.LogFilter) ([]models.BlogEvent, error) {
	m.calls++
	m.last = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if s.Authorization == nil {
		s.Authorization = &mockAuth{}
	}
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// do performs a request against r; body is sent as JSON when non-empty.
func do(r http.Handler, method, path, body string, header http.Header) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
