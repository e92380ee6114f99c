package feeds

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"velour/globals"
	"velour/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()

	hub := NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)

	RegisterLoader(TopicBookings, func(ctx context.Context) ([]byte, error) {
		return []byte(`{"topic":"bookings","bookings":[{"id":"b1","email":"ava@example.com"}]}`), nil
	})
	RegisterLoader(TopicContent, func(ctx context.Context) ([]byte, error) {
		return []byte(`{"topic":"content","content":{}}`), nil
	})
	t.Cleanup(func() {
		RegisterLoader(TopicBookings, nil)
		RegisterLoader(TopicContent, nil)
	})

	router := httprouter.New()
	router.GET("/ws/feeds/:topic", HandleWS(hub))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func wsURL(srv *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + path
}

func mintSessionToken(t *testing.T) string {
	t.Helper()
	claims := middleware.Claims{
		SessionID: "test-session",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestBookingsFeedRejectsMissingSession(t *testing.T) {
	srv := newFeedServer(t)

	for _, topic := range []string{TopicBookings, TopicVersions} {
		conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/feeds/"+topic), nil)
		if err == nil {
			conn.Close()
			t.Fatalf("%s feed accepted a connection with no session", topic)
		}
		if resp == nil || resp.StatusCode != 401 {
			t.Fatalf("%s feed rejection status = %v, want 401", topic, resp)
		}
	}

	// A garbage token must not unlock the feed either.
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/feeds/bookings?token=garbage"), nil)
	if err == nil {
		conn.Close()
		t.Fatal("bookings feed accepted an invalid token")
	}
	if resp == nil || resp.StatusCode != 401 {
		t.Fatalf("invalid-token rejection status = %v, want 401", resp)
	}
}

func TestBookingsFeedDeliversSnapshotToValidSession(t *testing.T) {
	srv := newFeedServer(t)
	token := mintSessionToken(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/feeds/bookings?token="+token), nil)
	if err != nil {
		t.Fatalf("valid session rejected: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("no initial snapshot: %v", err)
	}
	if !strings.Contains(string(data), `"id":"b1"`) {
		t.Fatalf("snapshot payload = %s", data)
	}
}

func TestContentFeedStaysPublic(t *testing.T) {
	srv := newFeedServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, "/ws/feeds/content"), nil)
	if err != nil {
		t.Fatalf("public content feed rejected: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("no initial snapshot: %v", err)
	}
	if !strings.Contains(string(data), `"topic":"content"`) {
		t.Fatalf("snapshot payload = %s", data)
	}
}
