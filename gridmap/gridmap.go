// Package gridmap holds the occupancy grid the path search runs over.
//
// A Map is immutable once built. Changing a cell or regenerating obstacles
// produces a new Map, so a search or a renderer can hold on to the value it
// was given without seeing it change underneath.
package gridmap

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"sync"

	"github.com/dhconnelly/rtreego"

	"gridpath/core"
)

var (
	// ErrOutOfBounds is returned when a point lies outside [0,width)x[0,height).
	ErrOutOfBounds = errors.New("point out of bounds")
	// ErrInvalidDimensions is returned for non-positive or ragged grids.
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	// ErrInvalidDensity is returned for obstacle densities outside [0,1].
	ErrInvalidDensity = errors.New("invalid obstacle density")
)

// Map is a rectangular grid of occupied/free cells.
type Map struct {
	width, height int
	cells         []bool // row-major, index y*width+x
	count         int

	indexOnce sync.Once
	index     *rtreego.Rtree
}

// New creates an obstacle-free map.
func New(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Map{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}, nil
}

// FromRows builds a map from ASCII rows. '#' and 'X' mark occupied cells,
// anything else is free. All rows must have the same length.
func FromRows(rows []string) (*Map, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimensions)
	}
	width := len(rows[0])
	m, err := New(width, len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidDimensions, y, len(row), width)
		}
		for x, c := range row {
			if c == '#' || c == 'X' {
				m.cells[y*width+x] = true
				m.count++
			}
		}
	}
	return m, nil
}

// MustFromRows is FromRows for fixtures known to be well formed.
func MustFromRows(rows ...string) *Map {
	m, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return m
}

// Width returns the number of columns.
func (m *Map) Width() int { return m.width }

// Height returns the number of rows.
func (m *Map) Height() int { return m.height }

// Bounds returns the valid cell range of the map.
func (m *Map) Bounds() core.Bounds {
	return core.Bounds{Max: core.Point{X: m.width, Y: m.height}}
}

// Count returns the number of occupied cells.
func (m *Map) Count() int { return m.count }

// InBounds reports whether p is a valid cell of the map.
func (m *Map) InBounds(p core.Point) bool {
	return p.X >= 0 && p.X < m.width && p.Y >= 0 && p.Y < m.height
}

// IsOccupied reports whether the cell at p is blocked.
// Points outside the map return ErrOutOfBounds; they are never clamped.
func (m *Map) IsOccupied(p core.Point) (bool, error) {
	if !m.InBounds(p) {
		return false, fmt.Errorf("%w: %v not in %dx%d", ErrOutOfBounds, p, m.width, m.height)
	}
	return m.cells[p.Y*m.width+p.X], nil
}

// occupied is IsOccupied for callers that already checked bounds.
func (m *Map) occupied(p core.Point) bool {
	return m.cells[p.Y*m.width+p.X]
}

// Blocked reports whether p is outside the map or occupied. The search uses
// it to skip neighbours without allocating errors.
func (m *Map) Blocked(p core.Point) bool {
	return !m.InBounds(p) || m.occupied(p)
}

// Obstacles lazily yields every occupied cell in row-major order.
func (m *Map) Obstacles() iter.Seq[core.Point] {
	return func(yield func(core.Point) bool) {
		for y := 0; y < m.height; y++ {
			for x := 0; x < m.width; x++ {
				if m.cells[y*m.width+x] && !yield(core.Point{X: x, Y: y}) {
					return
				}
			}
		}
	}
}

// WithCell returns a copy of the map with one cell set. The receiver is not modified.
func (m *Map) WithCell(p core.Point, occupied bool) (*Map, error) {
	if !m.InBounds(p) {
		return nil, fmt.Errorf("%w: %v not in %dx%d", ErrOutOfBounds, p, m.width, m.height)
	}
	c := &Map{
		width:  m.width,
		height: m.height,
		cells:  make([]bool, len(m.cells)),
		count:  m.count,
	}
	copy(c.cells, m.cells)
	i := p.Y*m.width + p.X
	if c.cells[i] != occupied {
		c.cells[i] = occupied
		if occupied {
			c.count++
		} else {
			c.count--
		}
	}
	return c, nil
}

// String renders the map with '#' for occupied and '.' for free cells.
func (m *Map) String() string {
	var b strings.Builder
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			if m.cells[y*m.width+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
