//go:build !js
// +build !js

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/simukka/starship-formation/highscore"
)

// feedBuffer is the number of unsent messages a subscriber may queue before
// further messages to it are dropped.
const feedBuffer = 16

// FeedMessage is one server-sent event on the score feed.
type FeedMessage struct {
	Type      string           `json:"type"` // "hello" or "score"
	Entry     *highscore.Entry `json:"entry,omitempty"`
	Listeners int              `json:"listeners,omitempty"`
	Timestamp int64            `json:"timestamp"`
}

// Subscriber is one connected feed client.
type Subscriber struct {
	ID       int
	Messages chan []byte
}

// Feed fans new high scores out to every connected client.
type Feed struct {
	subs   map[int]*Subscriber
	nextID int
	mu     sync.RWMutex
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[int]*Subscriber)}
}

// Subscribe registers a new client.
func (f *Feed) Subscribe() *Subscriber {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	sub := &Subscriber{
		ID:       f.nextID,
		Messages: make(chan []byte, feedBuffer),
	}
	f.subs[sub.ID] = sub
	log.Printf("[server] feed client %d connected", sub.ID)
	return sub
}

// Unsubscribe removes a client and closes its channel.
func (f *Feed) Unsubscribe(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if sub, ok := f.subs[id]; ok {
		close(sub.Messages)
		delete(f.subs, id)
		log.Printf("[server] feed client %d disconnected", id)
	}
}

// Count returns the number of connected clients.
func (f *Feed) Count() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}

// Publish announces a new table row. Slow clients miss messages rather than
// block the publisher.
func (f *Feed) Publish(e highscore.Entry) {
	msg, err := json.Marshal(FeedMessage{
		Type:      "score",
		Entry:     &e,
		Timestamp: time.Now().Unix(),
	})
	if err != nil {
		log.Printf("[server] failed to encode feed message: %v", err)
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()
	for id, sub := range f.subs {
		select {
		case sub.Messages <- msg:
		default:
			log.Printf("[server] feed buffer full for client %d", id)
		}
	}
}

// handleFeed streams score announcements as Server-Sent Events.
func (f *Feed) handleFeed(w http.ResponseWriter, r *http.Request) {
	setCORS(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sub := f.Subscribe()
	defer f.Unsubscribe(sub.ID)

	hello, _ := json.Marshal(FeedMessage{
		Type:      "hello",
		Listeners: f.Count(),
		Timestamp: time.Now().Unix(),
	})
	fmt.Fprintf(w, "data: %s\n\n", hello)
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Messages:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
