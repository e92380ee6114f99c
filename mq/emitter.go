package mq

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"velour/feeds"
	"velour/rdx"
)

const feedChannel = "feed-events"

// ChangeEvent announces that a collection backing a feed topic changed.
// Consumers re-read the whole snapshot; the event itself carries no diff.
type ChangeEvent struct {
	Topic     string `json:"topic"`
	Action    string `json:"action"`
	EntityID  string `json:"entityId,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

var localHub *feeds.Hub

// Emit publishes a change event to Redis so every instance refreshes its
// subscribers. Without Redis the local hub is fed directly.
func Emit(topic, action, entityID string) {
	ev := ChangeEvent{
		Topic:     topic,
		Action:    action,
		EntityID:  entityID,
		Timestamp: time.Now().Unix(),
	}

	if rdx.Available() {
		data, err := json.Marshal(ev)
		if err != nil {
			log.Printf("mq: marshal change event: %v", err)
			return
		}
		if err := rdx.Conn.Publish(context.Background(), feedChannel, data).Err(); err != nil {
			log.Printf("mq: publish to %s failed: %v", feedChannel, err)
		}
		return
	}

	dispatch(ev)
}

func dispatch(ev ChangeEvent) {
	if localHub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	snap, err := feeds.LoadSnapshot(ctx, ev.Topic)
	if err != nil {
		log.Printf("mq: snapshot for %s failed: %v", ev.Topic, err)
		return
	}
	if snap != nil {
		localHub.Broadcast(ev.Topic, snap)
	}
}

// StartFeedWorker subscribes to the change-event channel and pushes fresh
// snapshots into the hub. Runs for the life of the process.
func StartFeedWorker(hub *feeds.Hub) {
	localHub = hub

	if !rdx.Available() {
		log.Println("mq: redis unavailable, feeds run on direct dispatch")
		return
	}

	go func() {
		sub := rdx.Conn.Subscribe(context.Background(), feedChannel)
		for msg := range sub.Channel() {
			var ev ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("mq: bad change event: %v", err)
				continue
			}
			dispatch(ev)
		}
	}()
}
