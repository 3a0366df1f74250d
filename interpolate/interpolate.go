// Package interpolate samples straight lines between grid cells.
//
// The same routines drive two things in the diagram: animating a point moving
// from A to B, and approximating the straight line A-B on the grid by rounding
// evenly spaced samples to the nearest cell.
package interpolate

import (
	"math"

	"github.com/paulmach/orb"

	"gridpath/core"
	"gridpath/geometry"
)

// Lerp returns a + t*(b-a). t is not clamped.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpPoint interpolates each coordinate of p and q.
func LerpPoint(p, q core.Point, t float64) orb.Point {
	return orb.Point{
		Lerp(float64(p.X), float64(q.X), t),
		Lerp(float64(p.Y), float64(q.Y), t),
	}
}

// Sample returns n+1 evenly spaced points from p to q inclusive.
// n == 0 (or negative) yields just p.
func Sample(p, q core.Point, n int) []orb.Point {
	if n < 0 {
		n = 0
	}
	points := make([]orb.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		t := 0.0
		if n != 0 {
			t = float64(i) / float64(n)
		}
		points = append(points, LerpPoint(p, q, t))
	}
	return points
}

// Round snaps a real point to the nearest cell. Halves round up.
func Round(p orb.Point) core.Point {
	return core.Point{
		X: int(math.Floor(p.X() + 0.5)),
		Y: int(math.Floor(p.Y() + 0.5)),
	}
}

// DefaultSamples is the sample count that puts at least one sample in every
// row and column the line crosses.
func DefaultSamples(p, q core.Point) int {
	return geometry.Chebyshev(p, q)
}

// Line rasterizes the segment p-q using DefaultSamples.
func Line(p, q core.Point) []core.Point {
	return LineN(p, q, DefaultSamples(p, q))
}

// LineN rasterizes the segment p-q from n+1 rounded samples. Consecutive
// samples may round to the same cell when n exceeds the Chebyshev distance.
func LineN(p, q core.Point, n int) []core.Point {
	samples := Sample(p, q, n)
	cells := make([]core.Point, len(samples))
	for i, s := range samples {
		cells[i] = Round(s)
	}
	return cells
}
