package geometry

import "gridpath/core"

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Max returns the maximum of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Manhattan returns |dx| + |dy|, the step count under 4-directional movement.
func Manhattan(a, b core.Point) int {
	return Abs(a.X-b.X) + Abs(a.Y-b.Y)
}

// Chebyshev returns max(|dx|, |dy|), the step count under 8-directional movement.
func Chebyshev(a, b core.Point) int {
	return Max(Abs(a.X-b.X), Abs(a.Y-b.Y))
}

// IsHorizontal returns true if the segment a-b is more horizontal than vertical.
func IsHorizontal(a, b core.Point) bool {
	return Abs(b.X-a.X) > Abs(b.Y-a.Y)
}
