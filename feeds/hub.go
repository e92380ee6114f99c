package feeds

import (
	"sync"
)

// Topics pushed to dashboard subscribers.
const (
	TopicBookings = "bookings"
	TopicContent  = "content"
	TopicVersions = "versions"
)

// Client is one websocket subscriber of a single topic.
type Client struct {
	Send  chan []byte
	Topic string
}

type broadcastMsg struct {
	Topic string
	Data  []byte
}

// Hub fans snapshots out to topic subscribers. Snapshots carry the full
// collection state, so delivery is idempotent and a dropped message is
// repaired by the next one.
type Hub struct {
	topics     map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	stopOnce   sync.Once
}

func NewHub() *Hub {
	return &Hub{
		topics:     make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg, 16),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			if h.topics[c.Topic] == nil {
				h.topics[c.Topic] = make(map[*Client]bool)
			}
			h.topics[c.Topic][c] = true

		case c := <-h.unregister:
			if subs := h.topics[c.Topic]; subs != nil {
				if subs[c] {
					delete(subs, c)
					close(c.Send)
				}
			}

		case m := <-h.broadcast:
			for c := range h.topics[m.Topic] {
				select {
				case c.Send <- m.Data:
				default:
					// Slow consumer; drop it rather than block the hub.
					close(c.Send)
					delete(h.topics[m.Topic], c)
				}
			}

		case <-h.done:
			for _, subs := range h.topics {
				for c := range subs {
					close(c.Send)
				}
			}
			return
		}
	}
}

func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Broadcast queues a snapshot for every subscriber of topic.
func (h *Hub) Broadcast(topic string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{Topic: topic, Data: data}:
	case <-h.done:
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
