package feeds

import (
	"context"
	"log"
	"net/http"
	"sync"
	"time"

	"velour/middleware"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins; tighten for production
		return true
	},
}

// SnapshotLoader produces the current full snapshot of a topic's collection.
type SnapshotLoader func(ctx context.Context) ([]byte, error)

var (
	loaderMu sync.RWMutex
	loaders  = make(map[string]SnapshotLoader)
)

// RegisterLoader wires a topic to the function that reads its collection.
// Registered from main to keep this package free of storage imports.
func RegisterLoader(topic string, fn SnapshotLoader) {
	loaderMu.Lock()
	defer loaderMu.Unlock()
	loaders[topic] = fn
}

// LoadSnapshot reads the current snapshot for topic, nil loader -> nil.
func LoadSnapshot(ctx context.Context, topic string) ([]byte, error) {
	loaderMu.RLock()
	fn := loaders[topic]
	loaderMu.RUnlock()
	if fn == nil {
		return nil, nil
	}
	return fn(ctx)
}

func validTopic(topic string) bool {
	return topic == TopicBookings || topic == TopicContent || topic == TopicVersions
}

// adminTopic reports whether a topic carries dashboard-only data. Booking
// records hold customer contact details, so those feeds sit behind the same
// PIN session as the REST endpoints; the public site copy does not.
func adminTopic(topic string) bool {
	return topic == TopicBookings || topic == TopicVersions
}

// HandleWS upgrades /ws/feeds/:topic, sends the current snapshot immediately,
// then streams every subsequent broadcast until the client goes away. Admin
// topics require the session token as a ?token= query parameter, since
// browser websocket clients cannot set an Authorization header.
func HandleWS(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		topic := ps.ByName("topic")
		if !validTopic(topic) {
			http.Error(w, "unknown feed topic", http.StatusNotFound)
			return
		}

		if adminTopic(topic) {
			token := r.URL.Query().Get("token")
			if _, err := middleware.ValidateSession("Bearer " + token); err != nil {
				http.Error(w, "Dashboard is locked", http.StatusUnauthorized)
				return
			}
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
			return
		}

		client := &Client{Send: make(chan []byte, 8), Topic: topic}
		hub.Register(client)

		// Initial snapshot so the dashboard renders without waiting for a
		// change.
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		if snap, err := LoadSnapshot(ctx, topic); err == nil && snap != nil {
			conn.WriteMessage(websocket.TextMessage, snap)
		} else if err != nil {
			log.Printf("feeds: initial %s snapshot failed: %v", topic, err)
		}
		cancel()

		go func() {
			for data := range client.Send {
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					break
				}
			}
			conn.Close()
		}()

		// Keeps the connection registered until the client disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		hub.Unregister(client)
		conn.Close()
	}
}
