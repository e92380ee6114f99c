package feeds

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:  make(chan []byte, 10),
		Topic: TopicBookings,
	}
	hub.Register(client)

	data, _ := json.Marshal(map[string]any{"topic": TopicBookings, "bookings": []string{}})
	hub.Broadcast(TopicBookings, data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.Unregister(client)
}

func TestHubTopicIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	bookings := &Client{Send: make(chan []byte, 10), Topic: TopicBookings}
	content := &Client{Send: make(chan []byte, 10), Topic: TopicContent}
	hub.Register(bookings)
	hub.Register(content)

	hub.Broadcast(TopicContent, []byte(`{"topic":"content"}`))

	select {
	case got := <-content.Send:
		if string(got) != `{"topic":"content"}` {
			t.Fatalf("unexpected payload %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for content snapshot")
	}

	select {
	case got := <-bookings.Send:
		t.Fatalf("bookings subscriber received %s", got)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestHubIdempotentRedelivery(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10), Topic: TopicVersions}
	hub.Register(client)

	snap := []byte(`{"topic":"versions","versions":[{"id":"v1"}]}`)
	hub.Broadcast(TopicVersions, snap)
	hub.Broadcast(TopicVersions, snap)

	var got [][]byte
	for i := 0; i < 2; i++ {
		select {
		case d := <-client.Send:
			got = append(got, d)
		case <-time.After(1 * time.Second):
			t.Fatal("timeout waiting for redelivery")
		}
	}
	if string(got[0]) != string(got[1]) {
		t.Fatalf("re-applied snapshot differs: %s vs %s", got[0], got[1])
	}
}
