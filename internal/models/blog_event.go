package models

import "time"

// Blog lifecycle event types.
const (
	EventCreate = "CREATE"
	EventUpdate = "UPDATE"
	EventLike   = "LIKE"
	EventDelete = "DELETE"
)

// BlogEvent is a single activity log entry.
type BlogEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // CREATE | UPDATE | LIKE | DELETE
	BlogID      string    `json:"blog_id"`
	UserID      string    `json:"user_id,omitempty"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}

// EventQuery selects events from the activity log. Zero values do not filter.
type EventQuery struct {
	From   time.Time // inclusive
	To     time.Time // inclusive
	Type   string
	BlogID string
	// Limit keeps only the most recent matches; results stay oldest first.
	Limit int
}
