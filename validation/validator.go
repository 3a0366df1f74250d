package validation

import (
	"fmt"

	"gridpath/core"
	"gridpath/geometry"
	"gridpath/gridmap"
	"gridpath/pathfinding"
)

// PathValidator checks that a search result is consistent with its map.
// It checks that consecutive path cells are single moves, that no path or
// visited cell is blocked and that the reported cost matches the steps.
type PathValidator struct {
	errors []ValidationError
	// Options
	connectivity pathfinding.Connectivity
	costs        pathfinding.Costs
}

// ValidationError represents a validation error with location information.
// Index is the position in the path, or -1 for errors about the whole result.
type ValidationError struct {
	Index   int
	Point   core.Point
	Context string
	Message string
}

// NewPathValidator creates a validator for results of an 8-connected search
// with the default costs.
func NewPathValidator() *PathValidator {
	return &PathValidator{
		connectivity: pathfinding.Eight,
		costs:        pathfinding.DefaultCosts,
	}
}

// Configured is a path finder that reports its search configuration, such as
// *pathfinding.Finder and *pathfinding.CachedFinder.
type Configured interface {
	Costs() pathfinding.Costs
	Connectivity() pathfinding.Connectivity
}

// ForFinder creates a validator matching the configuration of f.
func ForFinder(f Configured) *PathValidator {
	return &PathValidator{
		connectivity: f.Connectivity(),
		costs:        f.Costs(),
	}
}

// Validate checks res, produced by a search from start to goal on m.
func (v *PathValidator) Validate(m *gridmap.Map, start, goal core.Point, res pathfinding.Result) []ValidationError {
	v.errors = nil

	v.checkVisited(m, res.Visited)

	if !res.Found {
		if len(res.Path) > 0 {
			v.addError(-1, goal, "result", "path of %d cells reported without success", len(res.Path))
		}
		return v.errors
	}
	if res.Blocked {
		v.addError(-1, goal, "result", "blocked search reported success")
	}
	if start == goal {
		if len(res.Path) > 0 {
			v.addError(-1, goal, "result", "trivial search returned %d cells", len(res.Path))
		}
		return v.errors
	}
	if len(res.Path) == 0 {
		v.addError(-1, goal, "result", "success reported without a path")
		return v.errors
	}
	if res.Path[0] != goal {
		v.addError(0, res.Path[0], "path", "path starts at %v, want goal %v", res.Path[0], goal)
	}

	seen := make(map[core.Point]bool, len(res.Path))
	cost := 0
	prev := start
	// Walk forward from the cell next to start.
	for i := len(res.Path) - 1; i >= 0; i-- {
		p := res.Path[i]
		if m.Blocked(p) {
			v.addError(i, p, "path", "cell is blocked")
		}
		if seen[p] {
			v.addError(i, p, "path", "cell repeats")
		}
		seen[p] = true
		if p == start {
			v.addError(i, p, "path", "path contains the start")
		}

		step, ok := v.stepCost(prev, p)
		if !ok {
			v.addError(i, p, "step", "%v -> %v is not a %d-connected move", prev, p, v.connectivity)
		}
		cost += step
		prev = p
	}

	if cost != res.Cost {
		v.addError(-1, goal, "cost", "reported cost %d, steps add up to %d", res.Cost, cost)
	}
	return v.errors
}

func (v *PathValidator) checkVisited(m *gridmap.Map, visited []core.Point) {
	seen := make(map[core.Point]bool, len(visited))
	for i, p := range visited {
		if m.Blocked(p) {
			v.addError(i, p, "visited", "visited cell is blocked")
		}
		if seen[p] {
			v.addError(i, p, "visited", "visited twice")
		}
		seen[p] = true
	}
}

// stepCost returns the cost of moving from a to b and whether that is a
// single legal move.
func (v *PathValidator) stepCost(a, b core.Point) (int, bool) {
	dx, dy := geometry.Abs(b.X-a.X), geometry.Abs(b.Y-a.Y)
	switch {
	case dx+dy == 1:
		return v.costs.Straight, true
	case dx == 1 && dy == 1 && v.connectivity == pathfinding.Eight:
		return v.costs.Diagonal, true
	default:
		return 0, false
	}
}

// addError adds a validation error.
func (v *PathValidator) addError(index int, p core.Point, context, format string, args ...any) {
	v.errors = append(v.errors, ValidationError{
		Index:   index,
		Point:   p,
		Context: context,
		Message: fmt.Sprintf(format, args...),
	})
}

// String formats a validation error as a string.
func (e ValidationError) String() string {
	return fmt.Sprintf("%v #%d [%s]: %s", e.Point, e.Index, e.Context, e.Message)
}

// Error implements error so a ValidationError can be returned directly.
func (e ValidationError) Error() string { return e.String() }
