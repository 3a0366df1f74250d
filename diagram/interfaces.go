package diagram

import (
	"gridpath/core"
	"gridpath/gridmap"
	"gridpath/pathfinding"
)

// PathFinder computes the path and visited set shown by the diagram.
// *pathfinding.Finder satisfies it.
type PathFinder interface {
	FindPath(m *gridmap.Map, start, goal core.Point) (pathfinding.Result, error)
}

// Listener is called synchronously after every change to a Session.
// Listeners must be idempotent: every mutation replays all of them.
type Listener func(Event)
