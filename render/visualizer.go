// Package render draws a diagram session as text.
//
// Classify turns a session into one Cell per grid square; Visualizer maps
// those cells to runes, optionally styled with lipgloss. The terminal front-end
// reuses Classify so every output agrees on what a cell shows.
package render

import (
	"fmt"
	"strings"

	"gridpath/core"
	"gridpath/diagram"
	"gridpath/geometry"
	"gridpath/interpolate"
)

// Cell is what a single grid square shows. Higher values draw over lower ones.
type Cell int

const (
	Empty Cell = iota
	Visited
	Obstacle
	Line
	Path
	Sample
	EndpointA
	EndpointB
)

// Rune returns the character used for the cell.
func (c Cell) Rune() rune {
	switch c {
	case Visited:
		return '░'
	case Obstacle:
		return '█'
	case Line:
		return '▒'
	case Path:
		return '●'
	case Sample:
		return '○'
	case EndpointA:
		return 'A'
	case EndpointB:
		return 'B'
	default:
		return '·'
	}
}

// Visualizer selects which layers are drawn.
type Visualizer struct {
	ShowVisited bool
	ShowPath    bool
	ShowLine    bool
	ShowSamples bool
	ShowLabels  bool // number the interpolation samples
	Styled      bool // colour output with lipgloss
	Charset     Charset
}

// DefaultVisualizer draws what the stock diagram shows: visited cells, the
// path and the interpolation samples.
func DefaultVisualizer() Visualizer {
	return Visualizer{ShowVisited: true, ShowPath: true, ShowSamples: true}
}

// Classify returns the cells of view, indexed [y][x] relative to view.Min.
func (v Visualizer) Classify(s *diagram.Session, view core.Bounds) [][]Cell {
	view = view.Intersect(s.Map().Bounds())
	grid := make([][]Cell, view.Height())
	for y := range grid {
		grid[y] = make([]Cell, view.Width())
	}

	mark := func(p core.Point, c Cell) {
		if !view.Contains(p) {
			return
		}
		cell := &grid[p.Y-view.Min.Y][p.X-view.Min.X]
		if c > *cell {
			*cell = c
		}
	}

	for _, p := range s.Map().ObstaclesIn(view) {
		mark(p, Obstacle)
	}
	if v.ShowVisited {
		for _, p := range s.Visited() {
			mark(p, Visited)
		}
	}
	if v.ShowLine {
		for _, p := range s.Line() {
			mark(p, Line)
		}
	}
	if v.ShowPath {
		for _, p := range s.Path() {
			mark(p, Path)
		}
	}
	if v.ShowSamples {
		for _, p := range s.Interpolated() {
			mark(interpolate.Round(p), Sample)
		}
	}
	mark(s.A(), EndpointA)
	mark(s.B(), EndpointB)
	return grid
}

// Labels returns the index of each interpolation sample keyed by the cell it
// is written in: one cell right of the sample when A-B is steeper than a
// diagonal, one cell above it otherwise. Labels outside view are dropped and
// the lower index wins when two land on the same cell.
func (v Visualizer) Labels(s *diagram.Session, view core.Bounds) map[core.Point]int {
	view = view.Intersect(s.Map().Bounds())
	off := labelOffset(s.A(), s.B())

	labels := make(map[core.Point]int)
	for i, p := range s.Interpolated() {
		q := interpolate.Round(p).Add(off)
		if !view.Contains(q) {
			continue
		}
		if _, taken := labels[q]; !taken {
			labels[q] = i
		}
	}
	return labels
}

func labelOffset(a, b core.Point) core.Direction {
	if !geometry.IsHorizontal(a, b) && geometry.Abs(b.X-a.X) != geometry.Abs(b.Y-a.Y) {
		return core.East
	}
	return core.North
}

// LabelRune returns the digit drawn for sample index i.
func LabelRune(i int) rune { return rune('0' + i%10) }

// Render draws the whole map.
func (v Visualizer) Render(s *diagram.Session) string {
	return v.RenderView(s, s.Map().Bounds())
}

// RenderView draws the part of the map inside view, one line per row.
func (v Visualizer) RenderView(s *diagram.Session, view core.Bounds) string {
	view = view.Intersect(s.Map().Bounds())
	var labels map[core.Point]int
	if v.ShowLabels {
		labels = v.Labels(s, view)
	}

	var result strings.Builder
	for y, row := range v.Classify(s, view) {
		for x, c := range row {
			r, style := c.RuneIn(v.Charset), styleFor(c)
			if i, ok := labels[core.Point{X: view.Min.X + x, Y: view.Min.Y + y}]; ok && c < EndpointA {
				r, style = LabelRune(i), styleIndex
			}
			if v.Styled {
				result.WriteString(style.Render(string(r)))
			} else {
				result.WriteRune(r)
			}
		}
		result.WriteString("\n")
	}
	return result.String()
}

// Legend returns a legend explaining the visualization symbols.
func (v Visualizer) Legend() string {
	entry := func(c Cell, what string) string {
		return fmt.Sprintf("  %c - %s", c.RuneIn(v.Charset), what)
	}
	legend := []string{
		"Legend:",
		"  A, B - endpoints",
		entry(Obstacle, "obstacle"),
	}
	if v.ShowPath {
		legend = append(legend, entry(Path, "path"))
	}
	if v.ShowVisited {
		legend = append(legend, entry(Visited, "visited by the search"))
	}
	if v.ShowLine {
		legend = append(legend, entry(Line, "rasterized line A-B"))
	}
	if v.ShowSamples {
		legend = append(legend, entry(Sample, "interpolation sample"))
	}
	if v.ShowLabels {
		legend = append(legend, "  0-9 - sample index, last digit")
	}
	return strings.Join(legend, "\n")
}
