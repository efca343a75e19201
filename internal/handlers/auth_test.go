package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"bloglist"
	"bloglist/internal/models"
	"bloglist/internal/service"
)

func TestAuthHandlers_Login(t *testing.T) {
	auth := &mockAuth{loginRes: service.LoginResult{Token: "tok123", Username: "mluukkai", Name: "Matti Luukkainen"}}
	r := newTestRouter(&service.Service{Authorization: auth})

	w := do(r, http.MethodPost, "/api/login", `{"username":"mluukkai","password":"salainen"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	var out bloglist.LoginResponse
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Token != "tok123" || out.Username != "mluukkai" || out.Name != "Matti Luukkainen" {
		t.Fatalf("unexpected response: %+v", out)
	}
	if auth.lastLoginUser != "mluukkai" || auth.lastLoginPass != "salainen" {
		t.Fatalf("credentials not forwarded: %q %q", auth.lastLoginUser, auth.lastLoginPass)
	}

	auth.loginErr = service.ErrInvalidCredentials
	w = do(r, http.MethodPost, "/api/login", `{"username":"mluukkai","password":"wrong"}`, nil)
	if w.Code != http.StatusUnauthorized || !strings.Contains(w.Body.String(), "invalid username or password") {
		t.Fatalf("bad login status=%d body=%s", w.Code, w.Body.String())
	}

	// invalid body → 400
	w = do(r, http.MethodPost, "/api/login", `{"username":1}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestUserHandlers(t *testing.T) {
	users := &mockUsers{
		user: models.User{ID: "u1", Username: "root", Name: "Superuser", PasswordHash: "$2a$10$secret",
			Blogs: []models.BlogRef{{ID: "b1", Title: "T", URL: "U", Likes: 2}}},
	}
	users.users = []models.User{users.user}
	r := newTestRouter(&service.Service{Users: users})

	w := do(r, http.MethodPost, "/api/users", `{"username":"root","name":"Superuser","password":"salainen"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	if users.lastNew.Password != "salainen" {
		t.Fatalf("password not forwarded")
	}

	for _, path := range []string{"/api/users", "/api/users/u1"} {
		w = do(r, http.MethodGet, path, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, w.Code)
		}
		body := w.Body.String()
		if strings.Contains(body, "secret") || strings.Contains(strings.ToLower(body), "password") {
			t.Fatalf("%s leaks the password hash: %s", path, body)
		}
		if !strings.Contains(body, `"blogs":[{"id":"b1"`) {
			t.Fatalf("%s should populate blogs: %s", path, body)
		}
	}

	users.err = &service.ValidationError{Msg: "username must be 3 characters or longer"}
	w = do(r, http.MethodPost, "/api/users", `{"username":"ab","name":"n","password":"pw1"}`, nil)
	if w.Code != http.StatusBadRequest || !strings.Contains(w.Body.String(), "username must be 3 characters") {
		t.Fatalf("validation status=%d body=%s", w.Code, w.Body.String())
	}
}
