// Package core contains the fundamental types used throughout the gridpath diagram.
package core

import "fmt"

// Point represents a cell in the grid. Coordinates are grid cells, not pixels.
type Point struct {
	X, Y int
}

// String returns the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns the point offset by the given direction.
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// Direction represents one of the eight grid moves.
type Direction int

const (
	East Direction = iota
	West
	South
	North
	SouthEast
	NorthEast
	SouthWest
	NorthWest
)

// Cardinal holds the four axis-aligned moves in search order.
var Cardinal = []Direction{East, West, South, North}

// All holds the eight moves in search order: axis-aligned first, then diagonals.
var All = []Direction{East, West, South, North, SouthEast, NorthEast, SouthWest, NorthWest}

// Delta returns the x and y offsets of a direction. Y grows downwards.
func (d Direction) Delta() (int, int) {
	switch d {
	case East:
		return 1, 0
	case West:
		return -1, 0
	case South:
		return 0, 1
	case North:
		return 0, -1
	case SouthEast:
		return 1, 1
	case NorthEast:
		return 1, -1
	case SouthWest:
		return -1, 1
	case NorthWest:
		return -1, -1
	default:
		return 0, 0
	}
}

// IsDiagonal reports whether the move changes both coordinates.
func (d Direction) IsDiagonal() bool {
	dx, dy := d.Delta()
	return dx != 0 && dy != 0
}

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case East:
		return "East"
	case West:
		return "West"
	case South:
		return "South"
	case North:
		return "North"
	case SouthEast:
		return "SouthEast"
	case NorthEast:
		return "NorthEast"
	case SouthWest:
		return "SouthWest"
	case NorthWest:
		return "NorthWest"
	default:
		return "Unknown"
	}
}

// Bounds represents a rectangular area. Max is exclusive.
type Bounds struct {
	Min, Max Point
}

// Width returns the width of the bounds.
func (b Bounds) Width() int {
	return b.Max.X - b.Min.X
}

// Height returns the height of the bounds.
func (b Bounds) Height() int {
	return b.Max.Y - b.Min.Y
}

// Empty reports whether the bounds contain no cells.
func (b Bounds) Empty() bool {
	return b.Width() <= 0 || b.Height() <= 0
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// Clamp moves p to the nearest point inside the bounds.
// Only input collaborators should clamp; the search never does.
func (b Bounds) Clamp(p Point) Point {
	if b.Empty() {
		return b.Min
	}
	if p.X < b.Min.X {
		p.X = b.Min.X
	}
	if p.X > b.Max.X-1 {
		p.X = b.Max.X - 1
	}
	if p.Y < b.Min.Y {
		p.Y = b.Min.Y
	}
	if p.Y > b.Max.Y-1 {
		p.Y = b.Max.Y - 1
	}
	return p
}

// Intersect returns the overlap of two bounds, which may be empty.
func (b Bounds) Intersect(o Bounds) Bounds {
	r := Bounds{
		Min: Point{X: max(b.Min.X, o.Min.X), Y: max(b.Min.Y, o.Min.Y)},
		Max: Point{X: min(b.Max.X, o.Max.X), Y: min(b.Max.Y, o.Max.Y)},
	}
	if r.Empty() {
		return Bounds{Min: r.Min, Max: r.Min}
	}
	return r
}
