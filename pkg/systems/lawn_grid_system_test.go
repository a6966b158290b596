package systems

import (
	"testing"

	"github.com/gonewx/lawncore/pkg/ecs"
)

// TestOccupyCell 测试格子占用与释放
func TestOccupyCell(t *testing.T) {
	m, _ := newRunningMatch(t)
	grid := NewLawnGridSystem()

	if grid.IsOccupied(m, 2, 3) {
		t.Fatal("new grid should be empty")
	}
	if err := grid.OccupyCell(m, 2, 3, ecs.EntityID(42)); err != nil {
		t.Fatalf("OccupyCell failed: %v", err)
	}
	if id, ok := grid.Occupant(m, 2, 3); !ok || id != 42 {
		t.Errorf("Occupant = %d, %v; want 42, true", id, ok)
	}
	if err := grid.OccupyCell(m, 2, 3, ecs.EntityID(43)); err == nil {
		t.Error("occupying an occupied cell should fail")
	}

	grid.ReleaseEntity(m, 2, 3, ecs.EntityID(99))
	if !grid.IsOccupied(m, 2, 3) {
		t.Error("releasing with a different entity must not clear the cell")
	}
	if err := grid.ReleaseCell(m, 2, 3); err != nil {
		t.Fatalf("ReleaseCell failed: %v", err)
	}
	if grid.IsOccupied(m, 2, 3) {
		t.Error("cell should be empty after release")
	}
}

// TestOutOfBoundsCells 测试越界格子
func TestOutOfBoundsCells(t *testing.T) {
	m, _ := newRunningMatch(t)
	grid := NewLawnGridSystem()

	tests := []struct {
		name     string
		row, col int
	}{
		{"负行", -1, 0},
		{"负列", 0, -1},
		{"行越界", m.Field.Rows, 0},
		{"列越界", 0, m.Field.Cols},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !grid.IsOccupied(m, tt.row, tt.col) {
				t.Error("out-of-range cell should count as occupied")
			}
			if _, ok := grid.Occupant(m, tt.row, tt.col); ok {
				t.Error("out-of-range cell has no occupant")
			}
			if err := grid.OccupyCell(m, tt.row, tt.col, 1); err == nil {
				t.Error("OccupyCell out of range should fail")
			}
		})
	}
}
