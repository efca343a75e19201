package service

import (
	"bytes"
	"encoding/json"
	"time"
)

// NewBlog is the input of CreateBlog. Likes is nil when omitted.
type NewBlog struct {
	Title  string
	Author string
	URL    string
	Likes  *int
}

// Optional tracks whether a JSON key was present and whether it was null.
type Optional[T any] struct {
	Set   bool
	Value *T
}

// Some builds a present, non-null value.
func Some[T any](v T) Optional[T] { return Optional[T]{Set: true, Value: &v} }

// UnmarshalJSON only runs for keys present in the document.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// BlogPatch lists the fields a PUT may change. Absent fields keep their value.
type BlogPatch struct {
	Title  Optional[string] `json:"title"`
	Author Optional[string] `json:"author"`
	URL    Optional[string] `json:"url"`
	Likes  Optional[int]    `json:"likes"`
}

// NewUser is the input of CreateUser.
type NewUser struct {
	Username string
	Name     string
	Password string
}

// LoginResult carries the issued token and who it was issued for.
type LoginResult struct {
	Token    string
	Username string
	Name     string
}

// LogFilter narrows the activity log. Zero values do not filter.
type LogFilter struct {
	From   time.Time // inclusive
	To     time.Time // inclusive
	Type   string    // CREATE, UPDATE, LIKE or DELETE in any case
	BlogID string
	Limit  int // newest N, 0 for all
}
