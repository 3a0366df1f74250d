package pathfinding

import (
	"fmt"
	"slices"

	"gridpath/core"
	"gridpath/gridmap"
)

// Result is the outcome of one search.
type Result struct {
	// Path runs from the goal back towards the start. It includes the goal
	// and excludes the start. Empty when no path exists or start == goal.
	Path []core.Point
	// Visited holds every cell discovered by the search, once, in discovery order.
	Visited []core.Point
	// Cost is the accumulated step cost of Path.
	Cost int
	// Found is true when the goal was reached, including start == goal.
	Found bool
	// Blocked is true when the start or goal cell is occupied.
	Blocked bool
	// Expanded counts dequeued cells whose neighbours were examined.
	Expanded int
}

// Forward returns the path in start-to-goal order, start excluded.
func (r Result) Forward() []core.Point {
	p := slices.Clone(r.Path)
	slices.Reverse(p)
	return p
}

// Steps returns the number of straight and diagonal moves in the path.
func (r Result) Steps(start core.Point) (straight, diagonal int) {
	prev := start
	for _, p := range r.Forward() {
		if p.X != prev.X && p.Y != prev.Y {
			diagonal++
		} else {
			straight++
		}
		prev = p
	}
	return straight, diagonal
}

// FindPath searches m for a path from start to goal.
//
// Occupied endpoints and unreachable goals are not errors; they come back as
// a Result with an empty Path. Endpoints outside the map return
// gridmap.ErrOutOfBounds.
func (f *Finder) FindPath(m *gridmap.Map, start, goal core.Point) (Result, error) {
	startBlocked, err := m.IsOccupied(start)
	if err != nil {
		return Result{}, fmt.Errorf("start: %w", err)
	}
	goalBlocked, err := m.IsOccupied(goal)
	if err != nil {
		return Result{}, fmt.Errorf("goal: %w", err)
	}

	res := Result{Blocked: startBlocked || goalBlocked}

	frontier := NewQueue()
	frontier.Enqueue(start, 0)
	cameFrom := make(map[core.Point]core.Point)
	costSoFar := map[core.Point]int{start: 0}
	seen := make(map[core.Point]bool)
	directions := f.connectivity.Directions()

search:
	for !frontier.IsEmpty() {
		entry, _ := frontier.Dequeue()
		current := entry.Point

		if current == goal {
			res.Found = !res.Blocked
			break
		}
		if res.Blocked {
			break
		}
		res.Expanded++

		for _, d := range directions {
			next := current.Add(d)
			if m.Blocked(next) {
				continue
			}

			newCost := costSoFar[current] + f.stepCost(d)
			if old, ok := costSoFar[next]; ok && old <= newCost {
				continue
			}
			costSoFar[next] = newCost
			cameFrom[next] = current
			frontier.Enqueue(next, newCost+f.heuristic(next, goal))
			if !seen[next] {
				seen[next] = true
				res.Visited = append(res.Visited, next)
			}

			if next == goal {
				res.Path = walkBack(cameFrom, start, goal)
				res.Cost = f.pathCost(start, res.Path)
				res.Found = true
				break search
			}
		}
	}

	f.logger.Debug("search finished",
		"start", start, "goal", goal,
		"found", res.Found, "blocked", res.Blocked,
		"path", len(res.Path), "visited", len(res.Visited),
		"expanded", res.Expanded, "cost", res.Cost)

	return res, nil
}

// pathCost adds up the steps of a goal-to-start path. Back-pointers can be
// rewritten after a cell's cost was recorded, so the goal's recorded cost
// may overstate the walked path.
func (f *Finder) pathCost(start core.Point, path []core.Point) int {
	straight, diagonal := Result{Path: path}.Steps(start)
	return straight*f.costs.Straight + diagonal*f.costs.Diagonal
}

// walkBack follows back-pointers from goal until it reaches start.
func walkBack(cameFrom map[core.Point]core.Point, start, goal core.Point) []core.Point {
	var path []core.Point
	for p := goal; p != start; p = cameFrom[p] {
		path = append(path, p)
	}
	return path
}
