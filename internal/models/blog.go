package models

import "time"

// Blog is a stored blog entry. UserID is fixed at creation and names the
// only user allowed to modify it.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	Likes     int       `json:"likes"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Owner is filled by reads that join the users table.
	Owner *Owner `json:"user,omitempty"`
}

// Owner is the populated form of Blog.UserID.
type Owner struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// OwnedBy reports whether userID created the blog.
func (b Blog) OwnedBy(userID string) bool {
	return userID != "" && b.UserID == userID
}

// BlogChanges names the columns an owner edit writes. Nil fields are left
// untouched.
type BlogChanges struct {
	Title  *string
	Author *string
	URL    *string
	Likes  *int
}

// Empty reports whether no column would be written.
func (c BlogChanges) Empty() bool {
	return c.Title == nil && c.Author == nil && c.URL == nil && c.Likes == nil
}
