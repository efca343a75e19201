package service

import (
	"context"
	"strings"

	"bloglist/internal/models"
	"bloglist/internal/repository"
)

// maxEventLimit caps a single activity log page.
const maxEventLimit = 1000

type EventLogService struct {
	events repository.EventRepo
}

func NewEventLogService(events repository.EventRepo) *EventLogService {
	return &EventLogService{events: events}
}

var knownEventTypes = map[string]bool{
	models.EventCreate: true,
	models.EventUpdate: true,
	models.EventLike:   true,
	models.EventDelete: true,
}

// ListEvents returns the activity log filtered by f, oldest first.
func (s *EventLogService) ListEvents(ctx context.Context, f LogFilter) ([]models.BlogEvent, error) {
	q, err := f.query()
	if err != nil {
		return nil, err
	}
	return s.events.List(ctx, q)
}

// query validates f and converts it to a repository query in UTC.
func (f LogFilter) query() (models.EventQuery, error) {
	q := models.EventQuery{
		From:  f.From,
		To:    f.To,
		Type:  strings.ToUpper(strings.TrimSpace(f.Type)),
		Limit: f.Limit,
	}
	if !q.From.IsZero() {
		q.From = q.From.UTC()
	}
	if !q.To.IsZero() {
		q.To = q.To.UTC()
	}

	if !q.From.IsZero() && !q.To.IsZero() && q.From.After(q.To) {
		return q, validationf("invalid time range: from must be <= to")
	}
	if q.Type != "" && !knownEventTypes[q.Type] {
		return q, validationf("unknown event type %q", f.Type)
	}
	if q.Limit < 0 || q.Limit > maxEventLimit {
		return q, validationf("limit must be between 0 and %d", maxEventLimit)
	}
	if f.BlogID != "" {
		id, err := parseID(f.BlogID)
		if err != nil {
			return q, err
		}
		q.BlogID = id
	}
	return q, nil
}
