package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"bloglist"
	"bloglist/internal/models"
	"bloglist/internal/service"
)

var alice = models.User{ID: "u-alice", Username: "alice", Name: "Alice"}

func newBlogRouter(blogs *mockBlogs) http.Handler {
	auth := &mockAuth{tokens: map[string]models.User{"tok": alice}}
	return newTestRouter(&service.Service{Authorization: auth, Blogs: blogs})
}

func TestBlogHandlers_ListAndGet(t *testing.T) {
	blogs := &mockBlogs{
		list: []models.Blog{
			{ID: "b1", Title: "One", URL: "http://1", Likes: 1, Owner: &models.Owner{ID: "u-alice", Username: "alice", Name: "Alice"}},
			{ID: "b2", Title: "Two", URL: "http://2"},
		},
		blog: models.Blog{ID: "b1", Title: "One", URL: "http://1"},
	}
	r := newBlogRouter(blogs)

	w := do(r, http.MethodGet, "/api/blogs", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d body=%s", w.Code, w.Body.String())
	}
	var out []bloglist.Blog
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(out) != 2 || out[0].User == nil || out[0].User.Username != "alice" || out[1].User != nil {
		t.Fatalf("unexpected list: %+v", out)
	}

	w = do(r, http.MethodGet, "/api/blogs/b1", "", nil)
	if w.Code != http.StatusOK || blogs.lastID != "b1" {
		t.Fatalf("get status=%d lastID=%q", w.Code, blogs.lastID)
	}
}

func TestBlogHandlers_Create(t *testing.T) {
	blogs := &mockBlogs{blog: models.Blog{ID: "b9", Title: "T", URL: "U", Owner: &models.Owner{ID: "u-alice"}}}
	r := newBlogRouter(blogs)

	w := do(r, http.MethodPost, "/api/blogs", `{"title":"T","author":"A","url":"U"}`, authHeader("tok"))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	if blogs.lastNew.Title != "T" || blogs.lastNew.Likes != nil {
		t.Fatalf("unexpected input: %+v", blogs.lastNew)
	}
	if u, ok := blogs.lastWho.User(); !ok || u.ID != "u-alice" {
		t.Fatalf("identity not forwarded: %+v", u)
	}

	// malformed body never reaches the service
	blogs.lastNew = service.NewBlog{}
	w = do(r, http.MethodPost, "/api/blogs", `{"title":`, authHeader("tok"))
	if w.Code != http.StatusBadRequest || blogs.lastNew.Title != "" {
		t.Fatalf("bad body status=%d", w.Code)
	}

	w = do(r, http.MethodPost, "/api/blogs", `{"title":"T","url":"U","likes":"lots"}`, authHeader("tok"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad likes status=%d", w.Code)
	}
}

func TestBlogHandlers_UpdateForwardsPresence(t *testing.T) {
	blogs := &mockBlogs{blog: models.Blog{ID: "b1", Likes: 8}}
	r := newBlogRouter(blogs)

	w := do(r, http.MethodPut, "/api/blogs/b1", `{"likes":8,"author":null}`, authHeader("tok"))
	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d body=%s", w.Code, w.Body.String())
	}
	p := blogs.lastP
	if !p.Likes.Set || *p.Likes.Value != 8 {
		t.Fatalf("likes not forwarded: %+v", p.Likes)
	}
	if !p.Author.Set || p.Author.Value != nil {
		t.Fatalf("explicit null lost: %+v", p.Author)
	}
	if p.Title.Set || p.URL.Set {
		t.Fatalf("absent fields reported present: %+v", p)
	}
}

func TestBlogHandlers_ErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		method   string
		path     string
		body     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"create validation", http.MethodPost, "/api/blogs", `{}`, &service.ValidationError{Msg: "title is required"}, http.StatusBadRequest, "title is required"},
		{"create anonymous", http.MethodPost, "/api/blogs", `{"title":"t","url":"u"}`, service.ErrUnauthorized, http.StatusUnauthorized, "token missing or invalid"},
		{"update not owner", http.MethodPut, "/api/blogs/b1", `{"likes":3}`, service.ErrNotOwner, http.StatusUnauthorized, "only the creator can modify this blog"},
		{"get malformed id", http.MethodGet, "/api/blogs/xyz", "", service.ErrMalformedID, http.StatusBadRequest, "malformatted id"},
		{"delete missing", http.MethodDelete, "/api/blogs/b1", "", fmt.Errorf("blog %w", service.ErrNotFound), http.StatusNotFound, "blog not found"},
		{"list failure", http.MethodGet, "/api/blogs", "", errors.New("disk"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newBlogRouter(&mockBlogs{err: tc.err})
			w := do(r, tc.method, tc.path, tc.body, nil)
			if w.Code != tc.wantCode {
				t.Fatalf("status=%d want %d body=%s", w.Code, tc.wantCode, w.Body.String())
			}
			var out bloglist.ErrorResponse
			_ = json.Unmarshal(w.Body.Bytes(), &out)
			if tc.wantMsg != "" && out.Error != tc.wantMsg {
				t.Fatalf("error=%q want %q", out.Error, tc.wantMsg)
			}
		})
	}
}

func TestBlogHandlers_Delete(t *testing.T) {
	blogs := &mockBlogs{}
	r := newBlogRouter(blogs)

	w := do(r, http.MethodDelete, "/api/blogs/b1", "", authHeader("tok"))
	if w.Code != http.StatusNoContent || w.Body.Len() != 0 {
		t.Fatalf("delete status=%d body=%q", w.Code, w.Body.String())
	}
	if blogs.lastID != "b1" || !blogs.lastWho.IsAuthenticated() {
		t.Fatalf("unexpected call: id=%q", blogs.lastID)
	}
}
