// Package config loads diagram settings from TOML files.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"

	"gridpath/core"
	"gridpath/gridmap"
	"gridpath/pathfinding"
)

// ErrInvalidConfig is returned for configurations that fail validation.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full set of diagram settings.
type Config struct {
	Grid          Grid          `toml:"grid"`
	Search        Search        `toml:"search"`
	Interpolation Interpolation `toml:"interpolation"`
	Endpoints     Endpoints     `toml:"endpoints"`
}

// Grid controls obstacle generation.
type Grid struct {
	Width              int     `toml:"width"`
	Height             int     `toml:"height"`
	Density            float64 `toml:"density"`
	Seed               uint64  `toml:"seed"` // 0 picks a time-based seed
	KeepEndpointsClear bool    `toml:"keep_endpoints_clear"`
}

// Search controls the path finder.
type Search struct {
	Straight       int `toml:"straight"`
	Diagonal       int `toml:"diagonal"`
	HeuristicScale int `toml:"heuristic_scale"`
	Connectivity   int `toml:"connectivity"`
}

// Interpolation controls sampling of the A-B segment.
type Interpolation struct {
	Samples int `toml:"samples"` // negative follows the Chebyshev distance
}

// Endpoints are the initial cells of A and B as [x, y] pairs.
type Endpoints struct {
	A [2]int `toml:"a"`
	B [2]int `toml:"b"`
}

// Default returns the settings of the stock diagram: a 30x10 grid with one
// obstacle in ten cells and endpoints at (2,2) and (20,8).
func Default() Config {
	return Config{
		Grid: Grid{
			Width:   30,
			Height:  10,
			Density: gridmap.DefaultDensity,
		},
		Search: Search{
			Straight:       pathfinding.DefaultCosts.Straight,
			Diagonal:       pathfinding.DefaultCosts.Diagonal,
			HeuristicScale: pathfinding.DefaultCosts.HeuristicScale,
			Connectivity:   int(pathfinding.Eight),
		},
		Interpolation: Interpolation{Samples: -1},
		Endpoints: Endpoints{
			A: [2]int{2, 2},
			B: [2]int{20, 8},
		},
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values; unknown keys are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults.
func Parse(data string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, err
	}
	if err := checkUndecoded(md); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("%w: unknown keys %s", ErrInvalidConfig, strings.Join(keys, ", "))
}

// Validate checks every field and reports all problems at once.
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if c.Grid.Width <= 0 || c.Grid.Height <= 0 {
		bad("grid size %dx%d must be positive", c.Grid.Width, c.Grid.Height)
	}
	if c.Grid.Density < 0 || c.Grid.Density > 1 {
		bad("grid density %v outside [0,1]", c.Grid.Density)
	}
	if c.Search.Straight <= 0 || c.Search.Diagonal <= 0 {
		bad("step costs must be positive (straight %d, diagonal %d)", c.Search.Straight, c.Search.Diagonal)
	}
	if c.Search.HeuristicScale < 0 {
		bad("heuristic scale %d must not be negative", c.Search.HeuristicScale)
	}
	if !pathfinding.Connectivity(c.Search.Connectivity).Valid() {
		bad("connectivity %d must be 4 or 8", c.Search.Connectivity)
	}

	bounds := core.Bounds{Max: core.Point{X: c.Grid.Width, Y: c.Grid.Height}}
	if a := c.A(); !bounds.Contains(a) {
		bad("endpoint a %v outside %dx%d grid", a, c.Grid.Width, c.Grid.Height)
	}
	if b := c.B(); !bounds.Contains(b) {
		bad("endpoint b %v outside %dx%d grid", b, c.Grid.Width, c.Grid.Height)
	}
	return errors.Join(errs...)
}

// A returns endpoint A as a point.
func (c Config) A() core.Point {
	return core.Point{X: c.Endpoints.A[0], Y: c.Endpoints.A[1]}
}

// B returns endpoint B as a point.
func (c Config) B() core.Point {
	return core.Point{X: c.Endpoints.B[0], Y: c.Endpoints.B[1]}
}

// Costs returns the search cost model.
func (c Config) Costs() pathfinding.Costs {
	return pathfinding.Costs{
		Straight:       c.Search.Straight,
		Diagonal:       c.Search.Diagonal,
		HeuristicScale: c.Search.HeuristicScale,
	}
}

// FinderOptions returns the options for pathfinding.NewFinder.
func (c Config) FinderOptions() []pathfinding.Option {
	return []pathfinding.Option{
		pathfinding.WithCosts(c.Costs()),
		pathfinding.WithConnectivity(pathfinding.Connectivity(c.Search.Connectivity)),
	}
}

// GenerateOptions returns the options for gridmap.Generate.
func (c Config) GenerateOptions() []gridmap.Option {
	return c.GenerateOptionsFor(c.A(), c.B())
}

// GenerateOptionsFor is GenerateOptions with a and b kept clear in place of
// the configured endpoints.
func (c Config) GenerateOptionsFor(a, b core.Point) []gridmap.Option {
	opts := []gridmap.Option{gridmap.WithDensity(c.Grid.Density)}
	if c.Grid.Seed != 0 {
		opts = append(opts, gridmap.WithSeed(c.Grid.Seed))
	}
	if c.Grid.KeepEndpointsClear {
		opts = append(opts, gridmap.WithClear(a, b))
	}
	return opts
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
