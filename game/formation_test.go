package game

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/simukka/starship-formation/common"
)

func createTestFormation(t *testing.T, rng common.Source) *FormationManager {
	t.Helper()
	f, err := NewFormationManager(DefaultConfig(), rng, NewEventBus())
	if err != nil {
		t.Fatalf("NewFormationManager: %v", err)
	}
	return f
}

// activate runs one tick so freshly spawned enemies become ACTIVE.
func activate(f *FormationManager) {
	f.Update(FrameDuration, Vec2{X: WIDTH / 2, Y: HEIGHT - 40})
}

func TestNewFormationManager_Invalid(t *testing.T) {
	if _, err := NewFormationManager(DefaultConfig(), nil, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for nil source, got %v", err)
	}

	cfg := DefaultConfig()
	cfg.Grid.Rows = 0
	if _, err := NewFormationManager(cfg, common.NewSeededRNG(1), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig for empty grid, got %v", err)
	}
}

func TestFormationManager_CreateWave(t *testing.T) {
	f := createTestFormation(t, newScriptedSource(0.99))

	n := f.CreateWave()
	if f.Wave() != 1 || f.Layout() != LayoutBasic {
		t.Fatalf("Expected wave 1 basic, got %d %s", f.Wave(), f.Layout())
	}
	if n != GridRows*GridCols || len(f.Enemies()) != n {
		t.Errorf("Expected a full grid, got %d", n)
	}
	if countPending(f.events, EventWaveStart) != 1 {
		t.Error("Expected one wave-start event")
	}

	for row, cells := range f.Grid() {
		for col, e := range cells {
			if e == nil {
				t.Fatalf("Empty cell (%d, %d) in the basic layout", row, col)
			}
			pos := f.GridPosition(row, col)
			if e.X != pos.X || e.Y != pos.Y {
				t.Errorf("Enemy (%d, %d) at %v,%v, expected %+v", row, col, e.X, e.Y, pos)
			}
		}
	}

	f.CreateWave()
	if f.Wave() != 2 || f.Layout() != LayoutAdvanced {
		t.Errorf("Expected wave 2 advanced, got %d %s", f.Wave(), f.Layout())
	}
}

func TestFormationManager_MiniBossWave(t *testing.T) {
	f := createTestFormation(t, newScriptedSource(0.99))
	f.SetWave(4)
	f.CreateWave()
	if f.Wave() != 5 || f.Layout() != LayoutMiniBoss {
		t.Fatalf("Expected wave 5 mini-boss, got %d %s", f.Wave(), f.Layout())
	}

	c := GridCols / 2
	for col, e := range f.Grid()[0] {
		switch col {
		case c:
			if e == nil || e.Tier != TierMiniBoss {
				t.Errorf("Expected the mini-boss at (0, %d), got %v", col, e)
			}
		case c - 1, c + 1:
			if e == nil || e.Tier != TierEscort {
				t.Errorf("Expected an escort flanking at (0, %d), got %v", col, e)
			}
		default:
			if e != nil {
				t.Errorf("Expected (0, %d) empty, got %s", col, e.Tier)
			}
		}
	}
	for col, e := range f.Grid()[1] {
		if e == nil || e.Tier != TierEscort {
			t.Errorf("Expected an escort at (1, %d)", col)
		}
	}
	for row := 2; row < GridRows; row++ {
		for col, e := range f.Grid()[row] {
			if e == nil || e.Tier != TierBasic {
				t.Errorf("Expected a basic at (%d, %d)", row, col)
			}
		}
	}
}

func TestFormationManager_EmptyLayoutSpawnsOne(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	EnableDebug = true
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		EnableDebug = false
	})

	// Wave 17 generates nothing on a single cell
	cfg := DefaultConfig()
	cfg.Grid.Rows, cfg.Grid.Cols = 1, 1
	f, err := NewFormationManager(cfg, newScriptedSource(0.99), NewEventBus())
	if err != nil {
		t.Fatalf("NewFormationManager: %v", err)
	}
	f.SetWave(16)

	if n := f.CreateWave(); n != 1 || f.Layout() != LayoutGenerated {
		t.Fatalf("Expected one enemy in a generated wave, got %d %s", n, f.Layout())
	}
	if e := f.Grid()[0][0]; e == nil || e.Tier != TierBasic {
		t.Error("Expected a basic on the only cell")
	}
	if !strings.Contains(buf.String(), "WARN") {
		t.Errorf("Expected a warning about the empty layout, got %q", buf.String())
	}
}

func TestFormationManager_SpawnEnemyAt(t *testing.T) {
	f := createTestFormation(t, newScriptedSource(0.99))

	if f.SpawnEnemyAt(TierBasic, 0, 0) == nil {
		t.Fatal("Expected spawn on an empty cell")
	}
	if f.SpawnEnemyAt(TierBasic, 0, 0) != nil {
		t.Error("Expected nil for a taken cell")
	}
	if f.SpawnEnemyAt(TierBasic, GridRows, 0) != nil || f.SpawnEnemyAt(TierBasic, 0, -1) != nil {
		t.Error("Expected nil outside the grid")
	}
}

func TestFormationManager_SwayStaysInMargins(t *testing.T) {
	f := createTestFormation(t, newScriptedSource(0.99))
	f.CreateWave()
	cfg := DefaultConfig()

	half := cfg.Grid.SpacingX / 2
	reversed := false
	for i := 0; i < ticks(10); i++ {
		dir := f.direction
		f.sway(FrameDuration)
		if f.direction != dir {
			reversed = true
		}
		left := f.GridPosition(0, 0).X - half
		right := f.GridPosition(0, GridCols-1).X + half
		if left < cfg.Formation.SwayMargin-1e-9 || right > cfg.Screen.Width-cfg.Formation.SwayMargin+1e-9 {
			t.Fatalf("Grid left the margins: [%f, %f]", left, right)
		}
	}
	if !reversed {
		t.Error("Expected the sway to reverse within 10 seconds")
	}
}

func TestFormationManager_GridEnemiesFollowSway(t *testing.T) {
	f := createTestFormation(t, newScriptedSource(0.99))
	f.CreateWave()

	for i := 0; i < 20; i++ {
		activate(f)
	}
	if f.OffsetX() == 0 {
		t.Fatal("Expected the formation to have swayed")
	}
	for row, cells := range f.Grid() {
		for col, e := range cells {
			if e == nil {
				continue
			}
			if e.GridX != f.GridPosition(row, col).X || e.X != e.GridX {
				t.Fatalf("Enemy (%d, %d) not on its swayed cell", row, col)
			}
		}
	}
}

func TestFormationManager_DiveSchedule(t *testing.T) {
	f := createTestFormation(t, newScriptedSource(0.99))

	f.SetWave(1)
	if !almostEqual(f.DiveInterval(), 3.85, 1e-9) || f.DiveCount() != 1 {
		t.Errorf("wave 1: interval %f count %d", f.DiveInterval(), f.DiveCount())
	}
	f.SetWave(7)
	if f.DiveCount() != 3 {
		t.Errorf("wave 7: expected 3 divers, got %d", f.DiveCount())
	}
	f.SetWave(100)
	if f.DiveInterval() != DiveIntervalMin || f.DiveCount() != MaxDivers {
		t.Errorf("wave 100: interval %f count %d", f.DiveInterval(), f.DiveCount())
	}
}

func TestFormationManager_TriggerDive(t *testing.T) {
	f := createTestFormation(t, common.NewSeededRNG(7))
	f.SetWave(6)
	f.CreateWave()
	activate(f)

	divers := f.TriggerDive(Vec2{X: 240, Y: 600})
	if len(divers) == 0 || len(divers) > f.DiveCount() {
		t.Fatalf("Expected 1..%d divers, got %d", f.DiveCount(), len(divers))
	}
	for _, e := range divers {
		if !e.IsDiving() {
			t.Error("Diver is not on a dive path")
		}
		if f.Grid()[e.Row][e.Col] != nil {
			t.Errorf("Cell (%d, %d) was not cleared", e.Row, e.Col)
		}
		if e.Row != GridRows-1 {
			t.Errorf("Expected divers from the bottom row, got row %d", e.Row)
		}
	}
	if countPending(f.events, EventEnemyDive) != len(divers) {
		t.Error("Expected one dive event per diver")
	}

	// Divers are not candidates for the next dive.
	for _, c := range f.DiveCandidates(10) {
		if c.IsDiving() {
			t.Fatal("Diving enemy offered as a dive candidate")
		}
	}
}

func TestFormationManager_ReturnedDiverFollowsSway(t *testing.T) {
	f := createTestFormation(t, common.NewSeededRNG(7))
	f.CreateWave()
	activate(f)

	divers := f.TriggerDive(Vec2{X: 240, Y: 600})
	if len(divers) == 0 {
		t.Fatal("Expected a diver")
	}
	e := divers[0]
	e.Path = nil // head straight home

	for i := 0; i < ticks(10) && e.Pattern != PatternGrid; i++ {
		activate(f)
	}
	if e.Pattern != PatternGrid {
		t.Fatalf("Expected the diver back on the grid, got pattern %d", e.Pattern)
	}

	for i := 0; i < ticks(3); i++ {
		activate(f)
		pos := f.GridPosition(e.Row, e.Col)
		if e.GridX != pos.X || e.X != pos.X {
			t.Fatalf("Returned diver at %f, expected its swayed cell %f", e.X, pos.X)
		}
	}
	if f.Grid()[e.Row][e.Col] != nil {
		t.Error("A returned diver should not reclaim its cell")
	}
	for _, c := range f.DiveCandidates(GridRows * GridCols) {
		if c == e {
			t.Error("A returned diver should not dive again this wave")
		}
	}
}

func TestFormationManager_OrphanedProjectiles(t *testing.T) {
	f := createTestFormation(t, newScriptedSource(0.99))
	f.CreateWave()
	activate(f)

	e := f.Enemies()[0]
	shot := e.Fire(Vec2{X: e.X, Y: 600})
	for !e.Hit() {
	}
	for i := 0; i < ticks(EnemyExplosionDuration)+2; i++ {
		activate(f)
	}

	for _, live := range f.Enemies() {
		if live == e {
			t.Fatal("Dead enemy still listed")
		}
	}
	found := false
	for _, p := range f.EnemyProjectiles() {
		if p == shot {
			found = true
		}
	}
	if !found {
		t.Error("Projectile of a dead enemy should stay in flight")
	}

	f.ClearProjectiles()
	if len(f.EnemyProjectiles()) != 0 {
		t.Error("Expected no enemy projectiles after ClearProjectiles")
	}
}

func TestFormationManager_IsWaveCleared(t *testing.T) {
	f := createTestFormation(t, newScriptedSource(0.99))
	f.CreateWave()
	activate(f)

	if f.IsWaveCleared() {
		t.Fatal("Fresh wave reported cleared")
	}
	for _, e := range f.Enemies() {
		for !e.Hit() {
		}
	}
	if f.IsWaveCleared() {
		t.Error("Exploding enemies still count as present")
	}
	for i := 0; i < ticks(EnemyExplosionDuration)+2; i++ {
		activate(f)
	}
	if !f.IsWaveCleared() || f.ActiveCount() != 0 {
		t.Errorf("Expected the wave cleared, %d active", f.ActiveCount())
	}
}

func TestFormationManager_SyncGroups(t *testing.T) {
	t.Run("circle on wave 20", func(t *testing.T) {
		f := createTestFormation(t, common.NewSeededRNG(3))
		f.SetWave(19)
		f.CreateWave()

		n := 0
		for _, e := range f.Enemies() {
			if e.Pattern == PatternCircle {
				n++
				if e.Row < 1 || e.Row > 2 {
					t.Errorf("Sync group on row %d", e.Row)
				}
			}
		}
		if n != 4 {
			t.Errorf("Expected 4 circling enemies, got %d", n)
		}
	})

	t.Run("patrol on wave 5", func(t *testing.T) {
		f := createTestFormation(t, newScriptedSource(0.1))
		f.SetWave(4)
		f.CreateWave()

		var phases []float64
		for _, e := range f.Enemies() {
			if e.Pattern == PatternPatrol {
				phases = append(phases, e.Phase)
			}
		}
		if len(phases) != 2 {
			t.Fatalf("Expected 2 patrolling enemies, got %d", len(phases))
		}
		if phases[0] != phases[1] {
			t.Error("Sync group members must share a phase")
		}
	})

	t.Run("skipped on failed roll", func(t *testing.T) {
		f := createTestFormation(t, newScriptedSource(0.9))
		f.SetWave(4)
		f.CreateWave()
		for _, e := range f.Enemies() {
			if e.Pattern != PatternGrid {
				t.Fatalf("Unexpected pattern %d", e.Pattern)
			}
		}
	})
}

func TestFormationManager_Transforms(t *testing.T) {
	f := createTestFormation(t, newScriptedSource(0.99))
	f.SetWave(2)
	f.CreateWave()

	for i := 0; i < ticks(TransformInterval)+2; i++ {
		activate(f)
	}
	if countPending(f.events, EventEnemyTransform) == 0 {
		t.Error("Expected a transformation by wave 3")
	}

	early := createTestFormation(t, newScriptedSource(0.99))
	early.CreateWave()
	for i := 0; i < ticks(TransformInterval)+2; i++ {
		activate(early)
	}
	if countPending(early.events, EventEnemyTransform) != 0 {
		t.Error("No transformations expected before wave 3")
	}
}
