package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"taxcredit/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func newTestServer(t *testing.T, hub *Hub, secret []byte) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ws", func(c *gin.Context) { ServeWs(hub, c, secret) })
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestServeWsRejectsBadTokens(t *testing.T) {
	secret := []byte("ws-secret")
	hub := NewHub(nil)
	srv := newTestServer(t, hub, secret)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "?token=abc", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/ws" + tt.query)
			if err != nil {
				t.Fatalf("GET err=%v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != tt.want {
				t.Fatalf("status=%d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestPublishReachesClient(t *testing.T) {
	secret := []byte("ws-secret")
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := newTestServer(t, hub, secret)
	token, err := middleware.IssueToken(secret, "u1", middleware.RoleViewer, time.Minute)
	if err != nil {
		t.Fatalf("IssueToken err=%v", err)
	}

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial err=%v", err)
	}
	defer conn.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	hub.Publish("assessment.completed", map[string]int{"total": 3})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage err=%v", err)
	}
	var ev struct {
		Type string         `json:"type"`
		Data map[string]int `json:"data"`
	}
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("Unmarshal(%s) err=%v", msg, err)
	}
	if ev.Type != "assessment.completed" || ev.Data["total"] != 3 {
		t.Fatalf("event=%+v, want assessment.completed with total=3", ev)
	}
}
