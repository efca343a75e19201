package service

import "bloglist/internal/models"

// Identity is the caller resolved from the request token.
// The zero value is anonymous.
type Identity struct {
	user *models.User
}

func Anonymous() Identity { return Identity{} }

func Authenticated(u models.User) Identity { return Identity{user: &u} }

// User returns the authenticated user, if any.
func (i Identity) User() (models.User, bool) {
	if i.user == nil {
		return models.User{}, false
	}
	return *i.user, true
}

func (i Identity) IsAuthenticated() bool { return i.user != nil }

// UserID is empty for anonymous callers.
func (i Identity) UserID() string {
	if i.user == nil {
		return ""
	}
	return i.user.ID
}
