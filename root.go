package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"gridpath/config"
	"gridpath/core"
	"gridpath/diagram"
	"gridpath/gridmap"
	"gridpath/pathfinding"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	verbose    bool
	configPath string
	mapPath    string

	width, height int
	density       float64
	seed          uint64
	connectivity  int
	samples       int
	a, b          string

	cfg config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "gridpath",
		Short:         "Grid A* pathfinding diagram",
		Long:          `gridpath finds A* paths between two endpoints on an obstacle grid and shows the search, the path and a sampled straight line between the endpoints.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
			return opts.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	flags.StringVarP(&opts.configPath, "config", "c", "", "TOML configuration file")
	flags.StringVar(&opts.mapPath, "map", "", "read obstacles from a text file ('#' or 'X' marks an obstacle)")
	flags.IntVar(&opts.width, "width", 0, "grid width")
	flags.IntVar(&opts.height, "height", 0, "grid height")
	flags.Float64Var(&opts.density, "density", 0, "obstacle density in [0,1]")
	flags.Uint64Var(&opts.seed, "seed", 0, "obstacle seed (0 = time based)")
	flags.IntVar(&opts.connectivity, "connectivity", 0, "neighbours per cell: 4 or 8")
	flags.IntVar(&opts.samples, "samples", 0, "interpolation samples (-1 = automatic)")
	flags.StringVar(&opts.a, "a", "", "endpoint A as x,y")
	flags.StringVar(&opts.b, "b", "", "endpoint B as x,y")

	root.AddCommand(newFindCmd(opts))
	root.AddCommand(newLineCmd(opts))
	root.AddCommand(newSampleCmd(opts))
	root.AddCommand(newInteractiveCmd(opts))
	root.AddCommand(newConfigCmd(opts))

	return root
}

// load reads the configuration file, if any, and applies flag overrides.
// Only flags set on the command line override file values.
func (o *rootOptions) load(cmd *cobra.Command) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Grid.Width = o.width
	}
	if flags.Changed("height") {
		cfg.Grid.Height = o.height
	}
	if flags.Changed("density") {
		cfg.Grid.Density = o.density
	}
	if flags.Changed("seed") {
		cfg.Grid.Seed = o.seed
	}
	if flags.Changed("connectivity") {
		cfg.Search.Connectivity = o.connectivity
	}
	if flags.Changed("samples") {
		cfg.Interpolation.Samples = o.samples
	}
	for _, ep := range []struct {
		flag  string
		value string
		dst   *[2]int
	}{
		{"a", o.a, &cfg.Endpoints.A},
		{"b", o.b, &cfg.Endpoints.B},
	} {
		if !flags.Changed(ep.flag) {
			continue
		}
		p, err := parsePoint(ep.value)
		if err != nil {
			return fmt.Errorf("--%s: %w", ep.flag, err)
		}
		*ep.dst = [2]int{p.X, p.Y}
	}

	if o.mapPath != "" {
		m, err := readMap(o.mapPath)
		if err != nil {
			return err
		}
		cfg.Grid.Width, cfg.Grid.Height = m.Width(), m.Height()
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg
	return nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (core.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return core.Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return core.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return core.Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	return core.Point{X: x, Y: y}, nil
}

func readMap(path string) (*gridmap.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map: %w", err)
	}
	rows := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	for i, row := range rows {
		rows[i] = strings.TrimRight(row, "\r")
	}
	m, err := gridmap.FromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("reading map %s: %w", path, err)
	}
	return m, nil
}

// buildMap loads the --map file or generates a map from the configuration.
func (o *rootOptions) buildMap() (*gridmap.Map, error) {
	if o.mapPath != "" {
		return readMap(o.mapPath)
	}
	return gridmap.Generate(o.cfg.Grid.Width, o.cfg.Grid.Height, o.cfg.GenerateOptions()...)
}

// newSession builds the session described by the configuration. A positive
// cacheSize wraps the finder in a result cache of that size.
func (o *rootOptions) newSession(logger *log.Logger, cacheSize int) (*diagram.Session, error) {
	m, err := o.buildMap()
	if err != nil {
		return nil, err
	}
	finderOpts := append(o.cfg.FinderOptions(), pathfinding.WithLogger(logger))
	var finder diagram.PathFinder = pathfinding.NewFinder(finderOpts...)
	if cacheSize > 0 {
		finder = pathfinding.NewCachedFinder(pathfinding.NewFinder(finderOpts...), cacheSize)
	}
	s, err := diagram.NewSession(m, o.cfg.A(), o.cfg.B(),
		diagram.WithFinder(finder),
		diagram.WithSamples(o.cfg.Interpolation.Samples),
		diagram.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("session ready", "id", s.ID(), "obstacles", m.Count(),
		"width", m.Width(), "height", m.Height())
	return s, nil
}
