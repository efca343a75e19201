package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"bloglist/internal/models"
	"bloglist/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		query string
		want  time.Duration
	}{
		{"", time.Second},
		{"interval=200ms", 200 * time.Millisecond},
		{"interval_ms=150", 150 * time.Millisecond},
		{"interval=20s", time.Second},
		{"interval=-1s", time.Second},
		{"interval_ms=20000", time.Second},
		{"interval_ms=0", time.Second},
		{"interval=bogus", time.Second},
		{"interval_ms=NaN", time.Second},
		{"interval=10s", 10 * time.Second},
		{"interval=2s&interval_ms=150", 2 * time.Second},
		{"interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/ws?"+tc.query, nil)
		if got := h.parseInterval(c); got != tc.want {
			t.Errorf("parseInterval(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func dialStats(t *testing.T, s *service.Service, query url.Values) *websocket.Conn {
	t.Helper()

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", NewHandler(s, nil).wsConnect)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func readEnvelope(t *testing.T, conn *websocket.Conn) envelope {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read envelope: %v", err)
	}
	return env
}

func TestStatsStream_PushesImmediatelyAndOnEveryTick(t *testing.T) {
	stats := &mockStats{stats: models.Stats{
		Blogs:        2,
		TotalLikes:   12,
		FavoriteBlog: &models.FavoriteBlog{Title: "Canonical string reduction", Author: "Edsger W. Dijkstra", Likes: 12},
	}}
	conn := dialStats(t, &service.Service{Stats: stats}, url.Values{"interval_ms": {"20"}})

	first := readEnvelope(t, conn)
	if first.Type != envelopeStats {
		t.Fatalf("first envelope: %+v", first)
	}
	var st models.Stats
	if err := json.Unmarshal(first.Data, &st); err != nil {
		t.Fatalf("unmarshal stats: %v", err)
	}
	if st.TotalLikes != 12 || st.FavoriteBlog == nil || st.FavoriteBlog.Likes != 12 || st.MostBlogs != nil {
		t.Fatalf("unexpected stats: %+v", st)
	}

	if next := readEnvelope(t, conn); next.Type != envelopeStats {
		t.Fatalf("tick envelope: %+v", next)
	}
}

func TestStatsStream_LoadFailureReportsAndCloses(t *testing.T) {
	conn := dialStats(t, &service.Service{Stats: &mockStats{err: errors.New("boom")}}, url.Values{})

	env := readEnvelope(t, conn)
	if env.Type != envelopeError || env.Error != "failed to load stats" {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseInternalServerErr) {
		t.Fatalf("expected close 1011, got %v", err)
	}
}
