package highscore

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// SaveTimeout bounds each background save.
const SaveTimeout = 10 * time.Second

// Manager owns the in-memory table and persists it through a chain of
// stores. Loads try the stores in order (typically remote, then local) and
// fall back to DefaultEntries. Saves run on a goroutine and go to every
// store; a failing store is logged and skipped.
type Manager struct {
	mu     sync.Mutex
	table  *Table
	stores []Store
	source string // which link of the chain the table came from
	seq    uint64 // bumped on every accepted submit

	saveMu   sync.Mutex
	savedSeq uint64
	wg       sync.WaitGroup
}

// NewManager creates a manager holding the default table. Call Load to read
// the stores.
func NewManager(capacity int, stores ...Store) *Manager {
	return &Manager{
		table:  NewTable(capacity, DefaultEntries()),
		stores: stores,
		source: "defaults",
	}
}

// Load walks the chain and keeps the first list a store returns. It never
// fails: with every store down the defaults stay in place.
func (m *Manager) Load(ctx context.Context) {
	for i, s := range m.stores {
		entries, err := s.Load(ctx)
		if err != nil {
			if !errors.Is(err, ErrNoScores) {
				log.Printf("[HighScores] Warning: store %d failed to load: %v", i, err)
			}
			continue
		}

		m.mu.Lock()
		m.table.Replace(entries)
		m.source = storeName(s)
		m.mu.Unlock()
		log.Printf("[HighScores] Loaded %d scores from %s", len(entries), storeName(s))
		return
	}
	log.Printf("[HighScores] No saved scores found (using defaults)")
}

// Source names the store the table was loaded from, or "defaults".
func (m *Manager) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

// Entries returns a snapshot of the table.
func (m *Manager) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Entries()
}

// Qualifies reports whether score would earn a row.
func (m *Manager) Qualifies(score int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.table.Qualifies(score)
}

// Submit inserts e into the table and saves in the background. It returns
// immediately.
func (m *Manager) Submit(e Entry) {
	m.mu.Lock()
	rank := m.table.Insert(e)
	if rank < 0 {
		m.mu.Unlock()
		return
	}
	m.seq++
	seq := m.seq
	snapshot := m.table.Entries()
	m.mu.Unlock()

	log.Printf("[HighScores] %s scored %d (rank %d)", e.Name, e.Score, rank+1)

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), SaveTimeout)
		defer cancel()
		m.save(ctx, seq, snapshot)
	}()
}

// save writes entries unless a newer snapshot has already been written.
func (m *Manager) save(ctx context.Context, seq uint64, entries []Entry) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	if seq <= m.savedSeq {
		return
	}
	m.savedSeq = seq
	for i, s := range m.stores {
		if err := s.Save(ctx, entries); err != nil {
			log.Printf("[HighScores] Warning: store %d failed to save: %v", i, err)
		}
	}
}

// Wait blocks until every pending save has finished.
func (m *Manager) Wait() {
	m.wg.Wait()
}

func storeName(s Store) string {
	switch s.(type) {
	case *HTTPStore:
		return "remote"
	case *FileStore:
		return "file"
	case *GdataStore:
		return "app data"
	case *MemoryStore:
		return "memory"
	}
	return "store"
}
