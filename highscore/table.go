// Package highscore keeps the top-N score table and persists it through a
// chain of stores.
package highscore

import (
	"sort"
	"strings"
	"time"
)

// DefaultCapacity is the number of entries kept in a table.
const DefaultCapacity = 10

// Entry is one row of the score table.
type Entry struct {
	Name  string    `yaml:"name" json:"name"`
	Score int       `yaml:"score" json:"score"`
	Wave  int       `yaml:"wave" json:"wave"`
	Date  time.Time `yaml:"date" json:"date"`
}

// SameAs reports whether e and o record the same result once names are
// normalized.
func (e Entry) SameAs(o Entry) bool {
	return e.Score == o.Score && e.Wave == o.Wave && e.Date.Equal(o.Date) &&
		normalizeName(e.Name) == normalizeName(o.Name)
}

// Table is a score list sorted best first and capped at Capacity.
type Table struct {
	Capacity int
	entries  []Entry
}

// NewTable builds a table from entries in any order.
func NewTable(capacity int, entries []Entry) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	t := &Table{Capacity: capacity}
	t.Replace(entries)
	return t
}

// Replace swaps the contents for entries, sorting and truncating them.
// Entries with a non-positive score are dropped.
func (t *Table) Replace(entries []Entry) {
	list := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Score > 0 {
			e.Name = normalizeName(e.Name)
			list = append(list, e)
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Score > list[j].Score
	})
	if len(list) > t.Capacity {
		list = list[:t.Capacity]
	}
	t.entries = list
}

// Entries returns a copy of the rows, best first.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.entries)
}

// Qualifies reports whether score would earn a row.
func (t *Table) Qualifies(score int) bool {
	if score <= 0 {
		return false
	}
	if len(t.entries) < t.Capacity {
		return true
	}
	return score > t.entries[len(t.entries)-1].Score
}

// Insert adds e and returns its zero-based rank, or -1 when it did not
// qualify. Ties rank below existing entries.
func (t *Table) Insert(e Entry) int {
	if !t.Qualifies(e.Score) {
		return -1
	}
	e.Name = normalizeName(e.Name)
	rank := sort.Search(len(t.entries), func(i int) bool {
		return t.entries[i].Score < e.Score
	})
	t.entries = append(t.entries, Entry{})
	copy(t.entries[rank+1:], t.entries[rank:])
	t.entries[rank] = e
	if len(t.entries) > t.Capacity {
		t.entries = t.entries[:t.Capacity]
	}
	return rank
}

// normalizeName upper-cases and trims initials to three characters.
func normalizeName(name string) string {
	name = strings.ToUpper(strings.TrimSpace(name))
	if r := []rune(name); len(r) > 3 {
		name = string(r[:3])
	}
	if name == "" {
		name = "???"
	}
	return name
}

// DefaultEntries is the table shipped with a fresh install.
func DefaultEntries() []Entry {
	names := []string{"ACE", "BOS", "CMD", "DIV", "ESC", "FLT", "GRD", "HIT", "ION", "JET"}
	out := make([]Entry, len(names))
	for i, n := range names {
		out[i] = Entry{
			Name:  n,
			Score: 30000 - i*3000,
			Wave:  10 - i,
		}
	}
	return out
}
