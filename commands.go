package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"gridpath/diagram"
	"gridpath/interpolate"
	"gridpath/render"
	"gridpath/validation"
)

func newFindCmd(opts *rootOptions) *cobra.Command {
	var (
		color     bool
		showLine  bool
		noVisited bool
		legend    bool
		validate  bool
		labels    bool
		charset   string
	)

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find a path from A to B and print the diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			s, err := opts.newSession(logger, 0)
			if err != nil {
				return err
			}

			cs, err := render.ParseCharset(charset)
			if err != nil {
				return err
			}

			v := render.DefaultVisualizer()
			v.Charset = cs
			v.ShowVisited = !noVisited
			v.ShowLine = showLine
			v.ShowLabels = labels
			v.Styled = color

			out := cmd.OutOrStdout()
			fmt.Fprint(out, v.Render(s))
			fmt.Fprintln(out, render.Summary(s, color))
			if legend {
				fmt.Fprintln(out, v.Legend())
			}
			if validate {
				return validateSession(s, logger)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&color, "color", false, "colour the output")
	cmd.Flags().BoolVar(&showLine, "line", false, "draw the rasterized line A-B")
	cmd.Flags().BoolVar(&noVisited, "no-visited", false, "hide cells visited by the search")
	cmd.Flags().BoolVar(&legend, "legend", false, "print a legend")
	cmd.Flags().BoolVar(&labels, "labels", false, "number the interpolation samples")
	cmd.Flags().StringVar(&charset, "charset", "auto", "cell characters: unicode, ascii or auto")
	cmd.Flags().BoolVar(&validate, "validate", false, "check the search result against the map")
	return cmd
}

// validateSession checks the session's latest result and logs every problem.
func validateSession(s *diagram.Session, logger *log.Logger) error {
	v := validation.NewPathValidator()
	if f, ok := s.Finder().(validation.Configured); ok {
		v = validation.ForFinder(f)
	}
	errs := v.Validate(s.Map(), s.A(), s.B(), s.Result())
	for _, e := range errs {
		logger.Error("invalid result", "at", e.Point, "index", e.Index, "check", e.Context, "msg", e.Message)
	}
	if len(errs) > 0 {
		return fmt.Errorf("validation failed with %d errors", len(errs))
	}
	logger.Info("result valid", "path", len(s.Path()), "visited", len(s.Visited()))
	return nil
}

func newLineCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "line",
		Short: "Print the grid cells approximating the segment A-B",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := opts.cfg.A(), opts.cfg.B()
			cells := interpolate.Line(a, b)
			if n := opts.cfg.Interpolation.Samples; n >= 0 {
				cells = interpolate.LineN(a, b, n)
			}

			parts := make([]string, len(cells))
			for i, p := range cells {
				parts[i] = p.String()
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(parts, " "))
			return nil
		},
	}
}

func newSampleCmd(opts *rootOptions) *cobra.Command {
	var t float64

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print evenly spaced points between A and B",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b := opts.cfg.A(), opts.cfg.B()
			out := cmd.OutOrStdout()

			if cmd.Flags().Changed("t") {
				p := interpolate.LerpPoint(a, b, t)
				fmt.Fprintf(out, "%.3f %.3f\n", p.X(), p.Y())
				return nil
			}

			n := opts.cfg.Interpolation.Samples
			if n < 0 {
				n = interpolate.DefaultSamples(a, b)
			}
			for _, p := range interpolate.Sample(a, b, n) {
				fmt.Fprintf(out, "%.3f %.3f\n", p.X(), p.Y())
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&t, "t", 0, "print only the point at t")
	return cmd
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.cfg.Encode(cmd.OutOrStdout())
		},
	}
}
