package highscore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ErrNoScores is returned by a store that has nothing saved yet.
var ErrNoScores = errors.New("no saved scores")

// Store loads and saves the score list.
type Store interface {
	Load(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entries []Entry) error
}

// scoreFile is the YAML document written by the file and gdata stores.
type scoreFile struct {
	Version int     `yaml:"version"`
	Entries []Entry `yaml:"entries"`
}

const scoreFileVersion = 1

func marshalEntries(entries []Entry) ([]byte, error) {
	return yaml.Marshal(scoreFile{Version: scoreFileVersion, Entries: entries})
}

func unmarshalEntries(data []byte) ([]Entry, error) {
	var f scoreFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse scores: %w", err)
	}
	if f.Version > scoreFileVersion {
		return nil, fmt.Errorf("unsupported score file version %d", f.Version)
	}
	return f.Entries, nil
}

// --- Memory ---

// MemoryStore keeps the list in memory. Useful for tests and as the last
// link of a chain.
type MemoryStore struct {
	mu      sync.Mutex
	entries []Entry
	saved   bool
}

// NewMemoryStore creates a store preloaded with entries. A nil slice means
// nothing is saved yet.
func NewMemoryStore(entries []Entry) *MemoryStore {
	return &MemoryStore{entries: entries, saved: entries != nil}
}

// Load implements Store.
func (s *MemoryStore) Load(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return nil, ErrNoScores
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Save implements Store.
func (s *MemoryStore) Save(ctx context.Context, entries []Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make([]Entry, len(entries))
	copy(s.entries, entries)
	s.saved = true
	return nil
}

// --- File ---

// FileStore keeps the list in a YAML file.
type FileStore struct {
	Path string
	mu   sync.Mutex
}

// NewFileStore creates a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoScores
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scores: %w", err)
	}
	return unmarshalEntries(data)
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, entries []Entry) error {
	data, err := marshalEntries(entries)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create score dir: %w", err)
		}
	}
	tmp := s.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scores: %w", err)
	}
	if err := os.Rename(tmp, s.Path); err != nil {
		return fmt.Errorf("failed to replace scores: %w", err)
	}
	return nil
}

// --- gdata ---

const (
	scoresObject   = "scores"
	scoresProperty = "table"
)

// GdataStore keeps the list in the platform's app-data directory through
// gdata. A nil manager runs degraded: loads report ErrNoScores and saves are
// dropped.
type GdataStore struct {
	manager *gdata.Manager
}

// NewGdataStore wraps manager.
func NewGdataStore(manager *gdata.Manager) *GdataStore {
	return &GdataStore{manager: manager}
}

// OpenGdataStore opens the app-data storage for appName.
func OpenGdataStore(appName string) (*GdataStore, error) {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open app data: %w", err)
	}
	return NewGdataStore(manager), nil
}

// Load implements Store.
func (s *GdataStore) Load(ctx context.Context) ([]Entry, error) {
	if s.manager == nil {
		return nil, ErrNoScores
	}
	if !s.manager.ObjectPropExists(scoresObject, scoresProperty) {
		return nil, ErrNoScores
	}
	data, err := s.manager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load scores: %w", err)
	}
	return unmarshalEntries(data)
}

// Save implements Store.
func (s *GdataStore) Save(ctx context.Context, entries []Entry) error {
	if s.manager == nil {
		return nil
	}
	data, err := marshalEntries(entries)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}
	if err := s.manager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}
	return nil
}

// --- HTTP ---

// HTTPStore talks to the score server's JSON endpoint.
type HTTPStore struct {
	URL    string
	Client *http.Client
}

// NewHTTPStore creates a store for the endpoint at url.
func NewHTTPStore(url string) *HTTPStore {
	return &HTTPStore{
		URL:    url,
		Client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Load implements Store.
func (s *HTTPStore) Load(ctx context.Context) ([]Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scores: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoScores
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch scores: %s", resp.Status)
	}

	var entries []Entry
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode scores: %w", err)
	}
	return entries, nil
}

// Save implements Store.
func (s *HTTPStore) Save(ctx context.Context, entries []Entry) error {
	body, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode scores: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to post scores: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("failed to post scores: %s", resp.Status)
	}
	return nil
}
