package game

// KeyState is the per-tick state of one control.
type KeyState int

const (
	KeyIdle KeyState = iota
	KeyPressed
	KeyHeld
	KeyReleased
)

// IsDown reports whether the control is held this tick.
func (k KeyState) IsDown() bool {
	return k == KeyPressed || k == KeyHeld
}

// JustPressed reports whether the control went down this tick.
func (k KeyState) JustPressed() bool {
	return k == KeyPressed
}

// Control is an abstract game control.
type Control int

const (
	ControlLeft Control = iota
	ControlRight
	ControlUp
	ControlDown
	ControlFire
	ControlStart
	ControlPause
	controlCount
)

// Input is the snapshot of every control for one tick.
type Input struct {
	Left, Right, Up, Down KeyState
	Fire, Start, Pause    KeyState
}

// State returns the state of c.
func (in Input) State(c Control) KeyState {
	switch c {
	case ControlLeft:
		return in.Left
	case ControlRight:
		return in.Right
	case ControlUp:
		return in.Up
	case ControlDown:
		return in.Down
	case ControlFire:
		return in.Fire
	case ControlStart:
		return in.Start
	case ControlPause:
		return in.Pause
	}
	return KeyIdle
}

func (in *Input) set(c Control, k KeyState) {
	switch c {
	case ControlLeft:
		in.Left = k
	case ControlRight:
		in.Right = k
	case ControlUp:
		in.Up = k
	case ControlDown:
		in.Down = k
	case ControlFire:
		in.Fire = k
	case ControlStart:
		in.Start = k
	case ControlPause:
		in.Pause = k
	}
}

// InputTracker turns raw down/up flags from a shell into per-tick KeyStates.
// A press and release that both land between two ticks still register as
// one Pressed tick followed by one Released tick.
type InputTracker struct {
	down    [controlCount]bool
	latched [controlCount]bool
	prev    [controlCount]bool
}

// Set records the raw state of c.
func (t *InputTracker) Set(c Control, down bool) {
	if c < 0 || c >= controlCount {
		return
	}
	t.down[c] = down
	if down {
		t.latched[c] = true
	}
}

// SetKeyCode records the raw state of a browser key code. Unmapped codes are
// ignored.
func (t *InputTracker) SetKeyCode(keyCode int, down bool) bool {
	c, ok := TranslateKeyCode(keyCode)
	if ok {
		t.Set(c, down)
	}
	return ok
}

// Next returns the snapshot for the coming tick.
func (t *InputTracker) Next() Input {
	var in Input
	for c := Control(0); c < controlCount; c++ {
		now := t.down[c] || t.latched[c]
		switch {
		case now && !t.prev[c]:
			in.set(c, KeyPressed)
		case now:
			in.set(c, KeyHeld)
		case t.prev[c]:
			in.set(c, KeyReleased)
		}
		t.prev[c] = now
		t.latched[c] = false
	}
	return in
}

// KeyMap maps browser key codes to controls.
var KeyMap = map[int]Control{
	13: ControlStart, // Enter
	27: ControlPause, // Esc
	32: ControlFire,  // Space
	37: ControlLeft,  // Left
	38: ControlUp,    // Up
	39: ControlRight, // Right
	40: ControlDown,  // Down
	65: ControlLeft,  // A
	68: ControlRight, // D
	73: ControlUp,    // I
	74: ControlLeft,  // J
	75: ControlDown,  // K
	76: ControlRight, // L
	80: ControlPause, // P
	83: ControlDown,  // S
	87: ControlUp,    // W
	88: ControlFire,  // X
	90: ControlFire,  // Z
}

// TranslateKeyCode converts a browser key code to a control.
func TranslateKeyCode(keyCode int) (Control, bool) {
	c, ok := KeyMap[keyCode]
	return c, ok
}
