package audio

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownCue is returned for a cue name missing from the bank.
var ErrUnknownCue = errors.New("unknown cue")

// Bank renders cues on first use and keeps the samples. It is safe for
// concurrent use.
type Bank struct {
	mu      sync.Mutex
	cues    map[string]Cue
	samples map[string][]float64
}

// NewBank creates a bank over cues, usually Library.
func NewBank(cues map[string]Cue) *Bank {
	return &Bank{
		cues:    cues,
		samples: make(map[string][]float64),
	}
}

// Cue looks up a cue by name.
func (b *Bank) Cue(name string) (Cue, bool) {
	c, ok := b.cues[name]
	return c, ok
}

// Names returns the cue names in sorted order.
func (b *Bank) Names() []string {
	names := make([]string, 0, len(b.cues))
	for name := range b.cues {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Samples returns the rendered samples of a cue. Callers must not modify the
// returned slice.
func (b *Bank) Samples(name string) ([]float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.samples[name]; ok {
		return s, nil
	}
	c, ok := b.cues[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCue, name)
	}
	p, err := ParseParams(c.Settings)
	if err != nil {
		return nil, fmt.Errorf("cue %q: %w", name, err)
	}
	s := Render(p)
	b.samples[name] = s
	return s, nil
}

// Preload renders every cue up front so the first play does not stall.
func (b *Bank) Preload() error {
	var errs []error
	for _, name := range b.Names() {
		if _, err := b.Samples(name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
