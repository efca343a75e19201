package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"bloglist/internal/models"

	"github.com/google/uuid"
)

// EventSQLite stores the activity log in the blog_events table.
type EventSQLite struct {
	db *sql.DB
}

func NewEventSQLite(db *sql.DB) *EventSQLite { return &EventSQLite{db: db} }

const (
	eventColumnsSQL = `id, occurred_at, type, blog_id, user_id, message, meta`

	insertEventSQL = `
		INSERT INTO blog_events (` + eventColumnsSQL + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	selectEventsSQL = `SELECT ` + eventColumnsSQL + ` FROM blog_events`

	// SQLite TIMESTAMP text form; sorts lexically in time order.
	sqliteTimeLayout = "2006-01-02 15:04:05"
)

// Append inserts e, filling a missing id or timestamp.
func (r *EventSQLite) Append(ctx context.Context, e models.BlogEvent) error {
	if e.EventID == "" {
		e.EventID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	meta, err := encodeMeta(e.Metadata)
	if err != nil {
		return fmt.Errorf("encode event metadata: %w", err)
	}

	_, err = r.db.ExecContext(ctx, insertEventSQL,
		e.EventID,
		e.OccurredAt.UTC().Format(sqliteTimeLayout),
		normalizeType(e.Type),
		e.BlogID,
		nullable(e.UserID),
		e.Description,
		meta,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List returns the events matching q, oldest first.
func (r *EventSQLite) List(ctx context.Context, q models.EventQuery) ([]models.BlogEvent, error) {
	query, args := buildEventQuery(q)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer rows.Close()

	out := make([]models.BlogEvent, 0, 64)
	for rows.Next() {
		var (
			ev     models.BlogEvent
			userID sql.NullString
			meta   sql.NullString
		)
		if err := rows.Scan(&ev.EventID, &ev.OccurredAt, &ev.Type, &ev.BlogID, &userID, &ev.Description, &meta); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.OccurredAt = ev.OccurredAt.UTC()
		ev.UserID = userID.String
		ev.Metadata = decodeMeta(meta)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}

// buildEventQuery renders q as SQL. With a limit the newest rows are picked
// in an inner query and re-sorted ascending.
func buildEventQuery(q models.EventQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if !q.From.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, q.From.UTC().Format(sqliteTimeLayout))
	}
	if !q.To.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, q.To.UTC().Format(sqliteTimeLayout))
	}
	if typ := normalizeType(q.Type); typ != "" {
		conds = append(conds, "type = ?")
		args = append(args, typ)
	}
	if q.BlogID != "" {
		conds = append(conds, "blog_id = ?")
		args = append(args, q.BlogID)
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	if q.Limit <= 0 {
		return selectEventsSQL + where + " ORDER BY occurred_at ASC, rowid ASC", args
	}
	inner := `SELECT ` + eventColumnsSQL + `, rowid AS seq FROM blog_events` + where +
		` ORDER BY occurred_at DESC, seq DESC LIMIT ?`
	return `SELECT ` + eventColumnsSQL + ` FROM (` + inner + `) ORDER BY occurred_at ASC, seq ASC`,
		append(args, q.Limit)
}

func normalizeType(s string) string { return strings.ToUpper(strings.TrimSpace(s)) }

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func encodeMeta(v any) (*string, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// decodeMeta keeps the raw text when the stored value is not valid JSON.
func decodeMeta(ns sql.NullString) any {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(ns.String), &v); err != nil {
		return ns.String
	}
	return v
}
