package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"gridpath/core"
	"gridpath/gridmap"
	"gridpath/render"
	"gridpath/terminal"
)

func newInteractiveCmd(opts *rootOptions) *cobra.Command {
	var (
		logFile   string
		cacheSize int
		charset   string
		labels    bool
	)

	cmd := &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Drag the endpoints around in the terminal",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns stdout and stderr while the UI runs.
			var w io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("opening log file: %w", err)
				}
				defer f.Close()
				w = f
			}
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(w, level)

			cs, err := render.ParseCharset(charset)
			if err != nil {
				return err
			}
			vis := render.DefaultVisualizer()
			vis.Charset = cs
			vis.ShowLabels = labels

			s, err := opts.newSession(logger, cacheSize)
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("opening terminal: %w", err)
			}
			defer screen.Fini()

			ui := terminal.New(screen, s,
				terminal.WithLogger(logger),
				terminal.WithVisualizer(vis),
				terminal.WithCosts(opts.cfg.Costs()),
				terminal.WithRegenerator(opts.regenerator()),
				terminal.WithCacheSize(cacheSize),
			)
			return ui.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	cmd.Flags().IntVar(&cacheSize, "cache", 512, "search results to keep while dragging (0 disables)")
	cmd.Flags().StringVar(&charset, "charset", "auto", "cell characters: unicode, ascii or auto")
	cmd.Flags().BoolVar(&labels, "labels", false, "number the interpolation samples (toggle with l)")
	return cmd
}

// regenerator builds maps for the r key, keeping the session's current
// endpoints clear when configured. With a fixed seed every press draws from
// one shared source, so the sequence of maps is reproducible.
func (o *rootOptions) regenerator() terminal.Regenerator {
	var rng *rand.Rand
	if seed := o.cfg.Grid.Seed; seed != 0 {
		rng = gridmap.NewRand(seed + 1)
	}
	return func(w, h int, a, b core.Point) (*gridmap.Map, error) {
		genOpts := o.cfg.GenerateOptionsFor(a, b)
		if rng != nil {
			genOpts = append(genOpts, gridmap.WithRand(rng))
		}
		return gridmap.Generate(w, h, genOpts...)
	}
}
