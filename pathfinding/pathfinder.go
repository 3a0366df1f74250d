// Package pathfinding finds shortest paths across a gridmap.Map.
package pathfinding

import (
	"io"

	"github.com/charmbracelet/log"

	"gridpath/core"
	"gridpath/geometry"
)

// Costs is the fixed-point cost model of the search.
type Costs struct {
	Straight       int // cost of an axis-aligned step
	Diagonal       int // cost of a diagonal step, about Straight*sqrt(2)
	HeuristicScale int // multiplier applied to the Manhattan distance
}

// DefaultCosts approximate Euclidean step lengths with integers.
var DefaultCosts = Costs{
	Straight:       10,
	Diagonal:       14,
	HeuristicScale: 10,
}

// Connectivity selects which neighbours a cell has.
type Connectivity int

const (
	Eight Connectivity = 8
	Four  Connectivity = 4
)

// Directions returns the moves allowed under c in search order.
func (c Connectivity) Directions() []core.Direction {
	if c == Four {
		return core.Cardinal
	}
	return core.All
}

// Valid reports whether c is a supported connectivity.
func (c Connectivity) Valid() bool {
	return c == Four || c == Eight
}

// Finder runs A* searches with a fixed configuration.
type Finder struct {
	costs        Costs
	connectivity Connectivity
	logger       *log.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithCosts sets the step and heuristic costs.
func WithCosts(c Costs) Option {
	return func(f *Finder) { f.costs = c }
}

// WithConnectivity selects 4- or 8-connected movement.
func WithConnectivity(c Connectivity) Option {
	return func(f *Finder) { f.connectivity = c }
}

// WithLogger sets the logger used for search diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(f *Finder) { f.logger = l }
}

// NewFinder creates a finder using DefaultCosts and 8-connectivity unless overridden.
func NewFinder(opts ...Option) *Finder {
	f := &Finder{
		costs:        DefaultCosts,
		connectivity: Eight,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = log.New(io.Discard)
	}
	if !f.connectivity.Valid() {
		f.connectivity = Eight
	}
	return f
}

// Costs returns the finder's cost model.
func (f *Finder) Costs() Costs { return f.costs }

// Connectivity returns the finder's movement model.
func (f *Finder) Connectivity() Connectivity { return f.connectivity }

// stepCost returns the cost of moving one cell in direction d.
func (f *Finder) stepCost(d core.Direction) int {
	if d.IsDiagonal() {
		return f.costs.Diagonal
	}
	return f.costs.Straight
}

// heuristic is the scaled Manhattan distance. With diagonal moves it can
// overestimate, so 8-connected results are not always optimal.
func (f *Finder) heuristic(p, goal core.Point) int {
	return geometry.Manhattan(p, goal) * f.costs.HeuristicScale
}
