//go:build !js
// +build !js

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"

	"github.com/simukka/starship-formation/highscore"
)

// ScoreServer owns the shared high-score table behind /api/scores.
type ScoreServer struct {
	table *highscore.Table
	store highscore.Store
	feed  *Feed
	mu    sync.Mutex
}

// NewScoreServer loads the table from store. A store with nothing saved, or
// one that cannot be read, starts the server with an empty table.
func NewScoreServer(ctx context.Context, capacity int, store highscore.Store, feed *Feed) *ScoreServer {
	s := &ScoreServer{
		table: highscore.NewTable(capacity, nil),
		store: store,
		feed:  feed,
	}

	entries, err := store.Load(ctx)
	switch {
	case errors.Is(err, highscore.ErrNoScores):
		log.Printf("[server] no saved scores, starting empty")
	case err != nil:
		log.Printf("[server] failed to load scores, starting empty: %v", err)
	default:
		s.table.Replace(entries)
		log.Printf("[server] loaded %d scores", s.table.Len())
	}
	return s
}

// Entries returns the current table, best first.
func (s *ScoreServer) Entries() []highscore.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Entries()
}

// Merge inserts every entry not already in the table that qualifies, saves
// the table if it changed and announces the new rows on the feed. It returns
// the rows that were added. Saves happen under the lock so the store never
// sees an older table after a newer one.
func (s *ScoreServer) Merge(ctx context.Context, entries []highscore.Entry) ([]highscore.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var added []highscore.Entry
	for _, e := range entries {
		if s.contains(e) {
			continue
		}
		if s.table.Insert(e) >= 0 {
			added = append(added, e)
		}
	}
	if len(added) == 0 {
		return nil, nil
	}

	if err := s.store.Save(ctx, s.table.Entries()); err != nil {
		return added, fmt.Errorf("failed to save scores: %w", err)
	}
	for _, e := range added {
		s.feed.Publish(e)
	}
	return added, nil
}

// contains reports whether the table already holds e. Clients post their
// whole table, so most rows of a submission are repeats.
func (s *ScoreServer) contains(e highscore.Entry) bool {
	for _, have := range s.table.Entries() {
		if have.SameAs(e) {
			return true
		}
	}
	return false
}

func setCORS(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// handleScores serves the table on GET and merges a posted list on POST.
// An empty table answers 404 so clients fall back to their defaults.
func (s *ScoreServer) handleScores(w http.ResponseWriter, r *http.Request) {
	setCORS(w)

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusOK)

	case http.MethodGet:
		entries := s.Entries()
		if len(entries) == 0 {
			http.Error(w, "no scores", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, entries)

	case http.MethodPost:
		var entries []highscore.Entry
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&entries); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		added, err := s.Merge(r.Context(), entries)
		if err != nil {
			log.Printf("[server] %v", err)
			http.Error(w, "failed to save scores", http.StatusInternalServerError)
			return
		}
		if len(added) > 0 {
			log.Printf("[server] accepted %d new scores", len(added))
		}
		writeJSON(w, http.StatusOK, s.Entries())

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[server] failed to write response: %v", err)
	}
}
