//go:build !js
// +build !js

package audio

import (
	"log"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/simukka/starship-formation/game"
)

const sampleRate = beep.SampleRate(SampleRate)

// Player plays event cues through the system speaker. It implements
// game.Listener; events arriving before Init are dropped.
type Player struct {
	mu          sync.Mutex
	bank        *Bank
	mixer       *beep.Mixer
	volume      float64
	width       float64
	muted       bool
	initialized bool
}

var _ game.Listener = (*Player)(nil)

// NewPlayer creates a player over bank. width is the playfield width used to
// pan positional events.
func NewPlayer(bank *Bank, width float64) *Player {
	return &Player{
		bank:   bank,
		mixer:  &beep.Mixer{},
		volume: 0.7,
		width:  width,
	}
}

// Init opens the speaker and renders every cue.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := p.bank.Preload(); err != nil {
		return err
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close silences everything and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// SetVolume sets the master gain, 0 to 1.
func (p *Player) SetVolume(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = math.Max(0, math.Min(1, v))
}

// ToggleMute flips the mute flag and returns the new state.
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

// HandleEvent implements game.Listener.
func (p *Player) HandleEvent(e game.Event) {
	name, ok := CueFor(e)
	if !ok {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized || p.muted {
		return
	}

	s, err := p.streamer(name, p.pan(e))
	if err != nil {
		log.Printf("[audio] %v", err)
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Streamer builds a one-shot stream for the named cue at the given pan,
// -1 (left) to 1 (right).
func (p *Player) Streamer(name string, pan float64) (beep.Streamer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streamer(name, pan)
}

func (p *Player) streamer(name string, pan float64) (beep.Streamer, error) {
	samples, err := p.bank.Samples(name)
	if err != nil {
		return nil, err
	}
	c, _ := p.bank.Cue(name)

	var s beep.Streamer = &clip{samples: samples}
	s = &effects.Pan{Streamer: s, Pan: pan}
	return newVolume(s, c.Volume*p.volume), nil
}

// pan maps an event's x to the stereo field. Events without a position play
// centered.
func (p *Player) pan(e game.Event) float64 {
	if p.width <= 0 || (e.X == 0 && e.Y == 0) {
		return 0
	}
	return math.Max(-1, math.Min(1, 2*e.X/p.width-1))
}

// newVolume wraps s with a linear gain. A zero gain is silent since
// log2(0) is -Inf.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// clip streams a rendered cue on both channels.
type clip struct {
	samples []float64
	pos     int
}

func (c *clip) Stream(buf [][2]float64) (n int, ok bool) {
	if c.pos >= len(c.samples) {
		return 0, false
	}
	n = copy2(buf, c.samples[c.pos:])
	c.pos += n
	return n, true
}

func (c *clip) Err() error { return nil }

func copy2(dst [][2]float64, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	for i := 0; i < n; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}
