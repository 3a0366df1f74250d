package core

import "testing"

func TestDirectionDeltas(t *testing.T) {
	seen := make(map[[2]int]bool)
	for _, d := range All {
		dx, dy := d.Delta()
		if dx == 0 && dy == 0 {
			t.Errorf("%s has zero delta", d)
		}
		if seen[[2]int{dx, dy}] {
			t.Errorf("%s duplicates delta (%d,%d)", d, dx, dy)
		}
		seen[[2]int{dx, dy}] = true
	}

	for _, d := range Cardinal {
		if d.IsDiagonal() {
			t.Errorf("%s should not be diagonal", d)
		}
	}
	diagonals := 0
	for _, d := range All {
		if d.IsDiagonal() {
			diagonals++
		}
	}
	if diagonals != 4 {
		t.Errorf("Expected 4 diagonal directions, got %d", diagonals)
	}
}

func TestPointAdd(t *testing.T) {
	p := Point{X: 3, Y: 3}
	if got := p.Add(NorthWest); got != (Point{X: 2, Y: 2}) {
		t.Errorf("Add(NorthWest) = %v, want (2,2)", got)
	}
	if got := p.Add(South); got != (Point{X: 3, Y: 4}) {
		t.Errorf("Add(South) = %v, want (3,4)", got)
	}
}

func TestBounds(t *testing.T) {
	b := Bounds{Min: Point{0, 0}, Max: Point{30, 10}}

	tests := []struct {
		name   string
		in     Point
		inside bool
		clamp  Point
	}{
		{"origin", Point{0, 0}, true, Point{0, 0}},
		{"last cell", Point{29, 9}, true, Point{29, 9}},
		{"past right edge", Point{30, 5}, false, Point{29, 5}},
		{"negative", Point{-4, -1}, false, Point{0, 0}},
		{"below", Point{12, 40}, false, Point{12, 9}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.in); got != tt.inside {
				t.Errorf("Contains(%v) = %v, want %v", tt.in, got, tt.inside)
			}
			if got := b.Clamp(tt.in); got != tt.clamp {
				t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.clamp)
			}
		})
	}
}

func TestBoundsIntersect(t *testing.T) {
	a := Bounds{Min: Point{0, 0}, Max: Point{10, 10}}
	b := Bounds{Min: Point{5, 8}, Max: Point{20, 20}}

	got := a.Intersect(b)
	want := Bounds{Min: Point{5, 8}, Max: Point{10, 10}}
	if got != want {
		t.Errorf("Intersect = %v, want %v", got, want)
	}

	disjoint := a.Intersect(Bounds{Min: Point{11, 11}, Max: Point{12, 12}})
	if !disjoint.Empty() {
		t.Errorf("Expected empty intersection, got %v", disjoint)
	}
}
