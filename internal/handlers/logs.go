package handlers

import (
	"net/http"
	"strings"
	"time"

	"bloglist/internal/models"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"
)

// accepted forms for the from/to query parameters
var queryTimeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

type eventsQuery struct {
	From  string `form:"from"`
	To    string `form:"to"`
	Type  string `form:"type"`
	Blog  string `form:"blog"`
	Limit int    `form:"limit"`
}

type eventsResponse struct {
	Count  int                `json:"count"`
	Events []models.BlogEvent `json:"events"`
}

// filter turns the raw query into a service filter. A date-only "to"
// covers the whole day.
func (q eventsQuery) filter() (service.LogFilter, error) {
	f := service.LogFilter{Type: q.Type, BlogID: q.Blog, Limit: q.Limit}
	var ok bool
	if q.From != "" {
		if f.From, ok = parseQueryTime(q.From); !ok {
			return f, &service.ValidationError{Msg: "invalid 'from' time; use RFC3339 or YYYY-MM-DD"}
		}
	}
	if q.To != "" {
		if f.To, ok = parseQueryTime(q.To); !ok {
			return f, &service.ValidationError{Msg: "invalid 'to' time; use RFC3339 or YYYY-MM-DD"}
		}
		if isDateOnly(q.To) {
			f.To = f.To.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return f, nil
}

// @Summary      List blog activity
// @Description  Filter events by date (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). A date-only 'to' includes that whole day.
// @Tags         events
// @Produce      json
// @Param        from  query   string  false  "Start of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD')"  example(2025-08-01)
// @Param        to    query   string  false  "End of range (RFC3339, 'YYYY-MM-DD HH:MM:SS', or 'YYYY-MM-DD'). Date-only treated as end of day."  example(2025-08-31)
// @Param        type  query   string  false  "Event type"  Enums(CREATE,UPDATE,LIKE,DELETE)
// @Param        blog  query   string  false  "Only events of this blog (UUID)"
// @Param        limit query   int     false  "Keep only the newest N events (max 1000)"
// @Success      200   {object}  eventsResponse
// @Failure      400   {object}  bloglist.ErrorResponse
// @Failure      500   {object}  bloglist.ErrorResponse
// @Router       /api/events [get]
func (h *Handler) getEvents(c *gin.Context) {
	var q eventsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		_ = c.Error(&service.ValidationError{Msg: "invalid query: " + err.Error()})
		return
	}
	f, err := q.filter()
	if err != nil {
		_ = c.Error(err)
		return
	}

	// range, type, blog id and limit are validated by the service
	events, err := h.services.ListEvents(c.Request.Context(), f)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, eventsResponse{Count: len(events), Events: events})
}

func parseQueryTime(s string) (time.Time, bool) {
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// isDateOnly reports whether s has no time component.
func isDateOnly(s string) bool {
	return !strings.ContainsAny(s, "T ")
}
