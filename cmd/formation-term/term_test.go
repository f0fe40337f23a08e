package main

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/simukka/starship-formation/game"
)

func TestControl_TerminalKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want game.Control
		ok   bool
	}{
		{"arrow left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), game.ControlLeft, true},
		{"arrow down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), game.ControlDown, true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), game.ControlStart, true},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), game.ControlPause, true},
		{"space", tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), game.ControlFire, true},
		{"lower d", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), game.ControlRight, true},
		{"upper W", tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModNone), game.ControlUp, true},
		{"unmapped", tcell.NewEventKey(tcell.KeyRune, 'y', tcell.ModNone), 0, false},
		{"non-ascii", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := control(tt.ev)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Expected (%v, %v), got (%v, %v)", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestKeyHolds_ReleaseAfterWindow(t *testing.T) {
	tracker := &game.InputTracker{}
	holds := newKeyHolds(150 * time.Millisecond)
	t0 := time.Unix(0, 0)

	holds.press(tracker, game.ControlLeft, t0)
	holds.release(tracker, t0.Add(100*time.Millisecond))
	if in := tracker.Next(); in.Left != game.KeyPressed {
		t.Fatalf("Expected left pressed, got %v", in.Left)
	}

	// A repeat keeps it held past the first window
	holds.press(tracker, game.ControlLeft, t0.Add(140*time.Millisecond))
	holds.release(tracker, t0.Add(200*time.Millisecond))
	if in := tracker.Next(); in.Left != game.KeyHeld {
		t.Fatalf("Expected left held, got %v", in.Left)
	}

	holds.release(tracker, t0.Add(300*time.Millisecond))
	if in := tracker.Next(); in.Left != game.KeyReleased {
		t.Fatalf("Expected left released, got %v", in.Left)
	}
}

func TestKeyHolds_TapStillRegisters(t *testing.T) {
	tracker := &game.InputTracker{}
	holds := newKeyHolds(10 * time.Millisecond)
	t0 := time.Unix(0, 0)

	holds.press(tracker, game.ControlFire, t0)
	holds.release(tracker, t0.Add(time.Second))
	if in := tracker.Next(); !in.Fire.JustPressed() {
		t.Errorf("Expected a tap released before the tick to register, got %v", in.Fire)
	}
}

func TestCells_Span(t *testing.T) {
	grid := newCells(48, 32, 480, 640) // 10x20 px cells

	tests := []struct {
		name           string
		r              game.Rect
		x0, y0, x1, y1 int
	}{
		{"aligned", game.Rect{X: 0, Y: 0, W: 20, H: 40}, 0, 0, 2, 2},
		{"straddling", game.Rect{X: 15, Y: 30, W: 10, H: 20}, 1, 1, 3, 3},
		{"tiny", game.Rect{X: 12, Y: 22, W: 0, H: 0}, 1, 1, 2, 2},
		{"clipped", game.Rect{X: -50, Y: 600, W: 100, H: 100}, 0, 30, 5, 32},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x0, y0, x1, y1 := grid.span(tt.r)
			if x0 != tt.x0 || y0 != tt.y0 || x1 != tt.x1 || y1 != tt.y1 {
				t.Errorf("Expected (%d,%d)-(%d,%d), got (%d,%d)-(%d,%d)",
					tt.x0, tt.y0, tt.x1, tt.y1, x0, y0, x1, y1)
			}
		})
	}
}

func TestPainter_DrawsShapesAndLabels(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(48, 32)

	scene := game.Scene{
		Width:      480,
		Height:     640,
		Background: "#000",
		Shapes: []game.Shape{
			{Rect: game.Rect{X: 0, Y: 0, W: 20, H: 20}, Color: "#F00"},
			{Rect: game.Rect{X: 100, Y: 100, W: 20, H: 20}, Color: "#0CF", Glyph: "S"},
		},
		Labels: []game.Label{
			{X: 240, Y: 300, Text: "HI", Color: "#FFF", Align: game.AlignCenter},
		},
	}
	newPainter(screen).draw(scene)

	cells, width, _ := screen.GetContents()
	at := func(x, y int) tcell.SimCell { return cells[y*width+x] }

	if r := at(0, 0).Runes; len(r) == 0 || r[0] != '█' {
		t.Errorf("Expected a filled cell at the origin, got %q", r)
	}
	fg, _, _ := at(0, 0).Style.Decompose()
	if fg != tcell.NewRGBColor(0xFF, 0, 0) {
		t.Errorf("Expected red fill, got %v", fg)
	}
	if r := at(11, 5).Runes; len(r) == 0 || r[0] != 'S' {
		t.Errorf("Expected the glyph at the box center, got %q", r)
	}
	if r := at(23, 15).Runes; len(r) == 0 || r[0] != 'H' {
		t.Errorf("Expected a centered label, got %q", r)
	}
}
