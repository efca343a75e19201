package service

import (
	"context"
	"encoding/json"
	"time"

	"bloglist/internal/logger"
	"bloglist/internal/models"
	"bloglist/internal/mq"
	"bloglist/internal/repository"

	"github.com/google/uuid"
)

// ActivityRecorder appends blog lifecycle events and publishes them.
// Failures are logged and never reach the caller.
type ActivityRecorder struct {
	events repository.EventRepo
	pub    mq.Publisher
	log    *logger.Logger
	now    func() time.Time
}

func NewActivityRecorder(events repository.EventRepo, pub mq.Publisher, log *logger.Logger) *ActivityRecorder {
	if pub == nil {
		pub = mq.Nop{}
	}
	return &ActivityRecorder{events: events, pub: pub, log: log, now: time.Now}
}

// Record stores and publishes one event about b.
func (a *ActivityRecorder) Record(ctx context.Context, typ string, b models.Blog, who Identity, meta map[string]any) {
	ev := models.BlogEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  a.now().UTC(),
		Type:        typ,
		BlogID:      b.ID,
		UserID:      who.UserID(),
		Description: describe(typ, b),
	}
	if len(meta) > 0 {
		ev.Metadata = meta
	}

	if err := a.events.Append(ctx, ev); err != nil {
		a.log.Warnw("blog_event_append_failed", "type", typ, "blog_id", b.ID, "err", err)
	}

	data, err := json.Marshal(ev)
	if err != nil {
		a.log.Warnw("blog_event_encode_failed", "type", typ, "blog_id", b.ID, "err", err)
		return
	}
	if err := a.pub.Publish(ctx, mq.RoutingKey(typ), data); err != nil {
		a.log.Warnw("blog_event_publish_failed", "type", typ, "blog_id", b.ID, "err", err)
	}
}

func describe(typ string, b models.Blog) string {
	switch typ {
	case models.EventCreate:
		return "Blog created: " + b.Title
	case models.EventUpdate:
		return "Blog updated: " + b.Title
	case models.EventLike:
		return "Blog liked: " + b.Title
	case models.EventDelete:
		return "Blog deleted: " + b.Title
	default:
		return b.Title
	}
}
