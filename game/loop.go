package game

import (
	"context"
	"time"
)

// Loop converts variable wall-clock frames into fixed simulation steps.
//
// Each frame's elapsed time is clamped to MaxFrame and added to an
// accumulator; whole steps are then drained from it and the remainder is
// carried into the next frame.
type Loop struct {
	Step     float64
	MaxFrame float64
	Ticks    uint64 // steps run since creation

	tick        func(dt float64)
	accumulator float64
	stopped     bool
}

// NewLoop creates a loop calling tick once per step seconds.
func NewLoop(step, maxFrame float64, tick func(dt float64)) *Loop {
	return &Loop{
		Step:     step,
		MaxFrame: maxFrame,
		tick:     tick,
	}
}

// Advance feeds one frame of frame seconds and returns the number of steps
// run. Negative frames count as zero.
func (l *Loop) Advance(frame float64) int {
	if l.stopped {
		return 0
	}
	if frame < 0 {
		frame = 0
	}
	if frame > l.MaxFrame {
		frame = l.MaxFrame
	}
	l.accumulator += frame

	steps := 0
	for l.accumulator+timeEpsilon >= l.Step && !l.stopped {
		l.tick(l.Step)
		l.accumulator -= l.Step
		l.Ticks++
		steps++
	}
	if l.accumulator < 0 {
		l.accumulator = 0
	}
	return steps
}

// Alpha returns how far the accumulator is into the next step, in [0, 1).
// Renderers may use it to interpolate.
func (l *Loop) Alpha() float64 {
	return l.accumulator / l.Step
}

// Stop halts the loop. Calling it more than once is harmless.
func (l *Loop) Stop() {
	l.stopped = true
}

// Stopped reports whether Stop has been called.
func (l *Loop) Stopped() bool {
	return l.stopped
}

// Run drives the loop from a ticker until ctx is done or Stop is called.
// frame is invoked after every batch of steps, typically to draw. Run
// returns ctx.Err() when cancelled and nil after Stop.
func (l *Loop) Run(ctx context.Context, interval time.Duration, frame func()) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for !l.stopped {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			l.Advance(now.Sub(last).Seconds())
			last = now
			if frame != nil && !l.stopped {
				frame()
			}
		}
	}
	return nil
}
