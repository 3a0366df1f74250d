package gridmap

import (
	"errors"
	"slices"
	"testing"

	"gridpath/core"
)

func TestFromRows(t *testing.T) {
	m := MustFromRows(
		".#..",
		"....",
		"X..#",
	)

	if m.Width() != 4 || m.Height() != 3 {
		t.Fatalf("Dimensions = %dx%d, want 4x3", m.Width(), m.Height())
	}
	if m.Count() != 3 {
		t.Errorf("Count = %d, want 3", m.Count())
	}

	occupied, err := m.IsOccupied(core.Point{1, 0})
	if err != nil {
		t.Fatalf("IsOccupied failed: %v", err)
	}
	if !occupied {
		t.Error("Expected (1,0) to be occupied")
	}

	occupied, err = m.IsOccupied(core.Point{2, 1})
	if err != nil {
		t.Fatalf("IsOccupied failed: %v", err)
	}
	if occupied {
		t.Error("Expected (2,1) to be free")
	}
}

func TestFromRowsRagged(t *testing.T) {
	_, err := FromRows([]string{"...", ".."})
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
	_, err = FromRows(nil)
	if !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions for no rows, got %v", err)
	}
}

func TestIsOccupiedOutOfBounds(t *testing.T) {
	m, err := New(5, 4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	for _, p := range []core.Point{{-1, 0}, {0, -1}, {5, 0}, {0, 4}, {10, 10}} {
		if _, err := m.IsOccupied(p); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("IsOccupied(%v): expected ErrOutOfBounds, got %v", p, err)
		}
		if m.InBounds(p) {
			t.Errorf("InBounds(%v) = true", p)
		}
		if !m.Blocked(p) {
			t.Errorf("Blocked(%v) = false for an out-of-range point", p)
		}
	}
}

func TestObstaclesRowMajor(t *testing.T) {
	m := MustFromRows(
		"..#.",
		"#...",
		".#.#",
	)

	got := slices.Collect(m.Obstacles())
	want := []core.Point{{2, 0}, {0, 1}, {1, 2}, {3, 2}}
	if !slices.Equal(got, want) {
		t.Errorf("Obstacles = %v, want %v", got, want)
	}
	if len(got) != m.Count() {
		t.Errorf("Obstacles yielded %d cells, Count = %d", len(got), m.Count())
	}

	// Stopping early must not panic or keep yielding.
	var first []core.Point
	for p := range m.Obstacles() {
		first = append(first, p)
		break
	}
	if len(first) != 1 || first[0] != (core.Point{2, 0}) {
		t.Errorf("Early break yielded %v", first)
	}
}

func TestObstaclesIn(t *testing.T) {
	m := MustFromRows(
		"#..#....",
		"..#..#..",
		"....#...",
		"#......#",
	)

	tests := []struct {
		name   string
		bounds core.Bounds
	}{
		{"whole map", m.Bounds()},
		{"top left", core.Bounds{Max: core.Point{3, 2}}},
		{"middle", core.Bounds{Min: core.Point{2, 1}, Max: core.Point{6, 3}}},
		{"single cell", core.Bounds{Min: core.Point{4, 2}, Max: core.Point{5, 3}}},
		{"overhanging", core.Bounds{Min: core.Point{5, -3}, Max: core.Point{20, 20}}},
		{"outside", core.Bounds{Min: core.Point{10, 10}, Max: core.Point{12, 12}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var want []core.Point
			for p := range m.Obstacles() {
				if tt.bounds.Contains(p) {
					want = append(want, p)
				}
			}
			got := m.ObstaclesIn(tt.bounds)
			if !slices.Equal(got, want) {
				t.Errorf("ObstaclesIn(%v) = %v, want %v", tt.bounds, got, want)
			}
		})
	}
}

func TestWithCellCopies(t *testing.T) {
	m := MustFromRows(
		"...",
		".#.",
	)

	c, err := m.WithCell(core.Point{0, 0}, true)
	if err != nil {
		t.Fatalf("WithCell failed: %v", err)
	}
	if c.Count() != 2 {
		t.Errorf("Copy Count = %d, want 2", c.Count())
	}
	if m.Count() != 1 {
		t.Errorf("Original was modified: Count = %d", m.Count())
	}
	if occ, _ := m.IsOccupied(core.Point{0, 0}); occ {
		t.Error("Original cell (0,0) became occupied")
	}

	cleared, err := c.WithCell(core.Point{1, 1}, false)
	if err != nil {
		t.Fatalf("WithCell failed: %v", err)
	}
	if cleared.String() != "#..\n...\n" {
		t.Errorf("Unexpected map:\n%s", cleared)
	}

	if _, err := m.WithCell(core.Point{3, 0}, true); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("Expected ErrOutOfBounds, got %v", err)
	}
}
