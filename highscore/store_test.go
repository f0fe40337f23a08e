package highscore

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/quasilyte/gdata/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleEntries = []Entry{
	{Name: "ACE", Score: 1200, Wave: 4, Date: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
	{Name: "BOB", Score: 800, Wave: 3, Date: time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)},
}

func TestMemoryStore_EmptyThenSaved(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(nil)

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoScores)

	require.NoError(t, s.Save(ctx, sampleEntries))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assertSameEntries(t, sampleEntries, got)
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "scores.yaml")
	s := NewFileStore(path)

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoScores)

	require.NoError(t, s.Save(ctx, sampleEntries))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assertSameEntries(t, sampleEntries, got)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	require.NoError(t, os.WriteFile(path, []byte("entries: [unterminated"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoScores)
}

func TestFileStore_FutureVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 99\nentries: []\n"), 0o644))

	_, err := NewFileStore(path).Load(context.Background())
	assert.Error(t, err)
}

func TestGdataStore_NilManagerIsDegraded(t *testing.T) {
	ctx := context.Background()
	s := NewGdataStore(nil)

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoScores)
	assert.NoError(t, s.Save(ctx, sampleEntries))
}

func TestGdataStore_RoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	manager, err := gdata.Open(gdata.Config{
		AppName: fmt.Sprintf("formation_scores_test_%d", time.Now().UnixNano()),
	})
	if err != nil {
		t.Skipf("Cannot create gdata manager for testing: %v", err)
	}

	ctx := context.Background()
	s := NewGdataStore(manager)

	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoScores)

	require.NoError(t, s.Save(ctx, sampleEntries))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assertSameEntries(t, sampleEntries, got)
}

func TestHTTPStore_RoundTrip(t *testing.T) {
	var stored []Entry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			if stored == nil {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(stored)
		case http.MethodPost:
			if err := json.NewDecoder(r.Body).Decode(&stored); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	s := NewHTTPStore(srv.URL)

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNoScores)

	require.NoError(t, s.Save(ctx, sampleEntries))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assertSameEntries(t, sampleEntries, got)
}

func TestHTTPStore_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewHTTPStore(srv.URL)
	_, err := s.Load(context.Background())
	assert.Error(t, err)
	assert.Error(t, s.Save(context.Background(), sampleEntries))
}

func assertSameEntries(t *testing.T, want, got []Entry) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.Equal(t, want[i].Score, got[i].Score)
		assert.Equal(t, want[i].Wave, got[i].Wave)
		assert.True(t, want[i].Date.Equal(got[i].Date), "date %d: want %v, got %v", i, want[i].Date, got[i].Date)
	}
}
