package gridmap

import (
	"fmt"
	"math/rand/v2"
	"time"

	"gridpath/core"
)

// DefaultDensity matches one occupied cell in ten on average.
const DefaultDensity = 0.1

type options struct {
	density float64
	rng     *rand.Rand
	clear   []core.Point
}

// Option configures Generate.
type Option func(*options)

// WithDensity sets the probability that any single cell is occupied.
func WithDensity(density float64) Option {
	return func(o *options) { o.density = density }
}

// NewRand returns the generator WithSeed uses for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// WithSeed makes generation deterministic.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.rng = NewRand(seed) }
}

// WithRand supplies the random source used for generation. Sharing one source
// across calls gives a reproducible sequence of different maps.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithClear forces the given cells to be free, e.g. the current endpoints.
// Points outside the grid are ignored.
func WithClear(points ...core.Point) Option {
	return func(o *options) { o.clear = append(o.clear, points...) }
}

// Generate builds a width x height map where every cell is independently
// occupied with the configured density.
func Generate(width, height int, opts ...Option) (*Map, error) {
	o := options{density: DefaultDensity}
	for _, opt := range opts {
		opt(&o)
	}
	if o.density < 0 || o.density > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDensity, o.density)
	}
	if o.rng == nil {
		o.rng = NewRand(uint64(time.Now().UnixNano()))
	}

	m, err := New(width, height)
	if err != nil {
		return nil, err
	}
	for i := range m.cells {
		// Float64 is in [0,1): density 0 never fires, density 1 always does.
		if o.rng.Float64() < o.density {
			m.cells[i] = true
			m.count++
		}
	}
	for _, p := range o.clear {
		if m.InBounds(p) && m.occupied(p) {
			m.cells[p.Y*width+p.X] = false
			m.count--
		}
	}
	return m, nil
}
