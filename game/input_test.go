package game

import "testing"

func TestKeyMap_FireKeys(t *testing.T) {
	for _, code := range []int{32, 88, 90} {
		if c, ok := KeyMap[code]; !ok || c != ControlFire {
			t.Errorf("Expected KeyMap[%d] to be fire, got %d", code, c)
		}
	}
}

func TestKeyMap_WASDMapsToArrows(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected Control
	}{
		{"W maps to Up", 87, ControlUp},
		{"A maps to Left", 65, ControlLeft},
		{"S maps to Down", 83, ControlDown},
		{"D maps to Right", 68, ControlRight},
		{"I maps to Up", 73, ControlUp},
		{"L maps to Right", 76, ControlRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if mapped, ok := KeyMap[tt.input]; !ok || mapped != tt.expected {
				t.Errorf("Expected KeyMap[%d] to be %d, got %d", tt.input, tt.expected, mapped)
			}
		})
	}
}

func TestTranslateKeyCode(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected Control
		ok       bool
	}{
		{"Enter starts", 13, ControlStart, true},
		{"Esc pauses", 27, ControlPause, true},
		{"P pauses", 80, ControlPause, true},
		{"Arrow Left", 37, ControlLeft, true},
		{"Unmapped key", 81, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TranslateKeyCode(tt.input)
			if ok != tt.ok || (ok && got != tt.expected) {
				t.Errorf("TranslateKeyCode(%d) = %d, %v; want %d, %v", tt.input, got, ok, tt.expected, tt.ok)
			}
		})
	}
}

func TestInputTracker_HoldAndRelease(t *testing.T) {
	var tr InputTracker

	tr.Set(ControlFire, true)
	if got := tr.Next().Fire; got != KeyPressed {
		t.Errorf("tick 1: expected Pressed, got %d", got)
	}
	if got := tr.Next().Fire; got != KeyHeld {
		t.Errorf("tick 2: expected Held, got %d", got)
	}
	tr.Set(ControlFire, false)
	if got := tr.Next().Fire; got != KeyReleased {
		t.Errorf("tick 3: expected Released, got %d", got)
	}
	if got := tr.Next().Fire; got != KeyIdle {
		t.Errorf("tick 4: expected Idle, got %d", got)
	}
}

func TestInputTracker_TapBetweenTicks(t *testing.T) {
	var tr InputTracker

	tr.Set(ControlStart, true)
	tr.Set(ControlStart, false)
	in := tr.Next()
	if !in.Start.JustPressed() {
		t.Errorf("A tap between ticks should register as Pressed, got %d", in.Start)
	}
	if got := tr.Next().Start; got != KeyReleased {
		t.Errorf("Expected Released after the tap, got %d", got)
	}
	if got := tr.Next().Start; got != KeyIdle {
		t.Errorf("Expected Idle once released, got %d", got)
	}
}

func TestInputTracker_SetKeyCode(t *testing.T) {
	var tr InputTracker

	if tr.SetKeyCode(81, true) {
		t.Error("Unmapped key should be reported")
	}
	if !tr.SetKeyCode(37, true) {
		t.Fatal("Arrow Left should be mapped")
	}
	in := tr.Next()
	if !in.Left.IsDown() || in.State(ControlLeft) != KeyPressed {
		t.Errorf("Expected left pressed, got %d", in.Left)
	}
	if in.Right.IsDown() {
		t.Error("Right should be idle")
	}

	tr.Set(controlCount, true) // ignored
}
