package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"gridpath/diagram"
)

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
	colorPurple = lipgloss.Color("141")
)

var cellStyles = map[Cell]lipgloss.Style{
	Empty:     lipgloss.NewStyle().Foreground(colorDim),
	Visited:   lipgloss.NewStyle().Foreground(colorBlue),
	Obstacle:  lipgloss.NewStyle().Foreground(colorGray),
	Line:      lipgloss.NewStyle().Foreground(colorPurple),
	Path:      lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	Sample:    lipgloss.NewStyle().Foreground(colorYellow),
	EndpointA: lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	EndpointB: lipgloss.NewStyle().Foreground(colorRed).Bold(true),
}

func styleFor(c Cell) lipgloss.Style {
	if s, ok := cellStyles[c]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

var (
	styleLabel = lipgloss.NewStyle().Foreground(colorGray)
	styleValue = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarn  = lipgloss.NewStyle().Foreground(colorYellow)
	styleIndex = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
)

// Summary describes the latest search in one line.
func Summary(s *diagram.Session, styled bool) string {
	res := s.Result()
	label, value, warn := fmt.Sprint, fmt.Sprint, fmt.Sprint
	if styled {
		label = func(a ...any) string { return styleLabel.Render(fmt.Sprint(a...)) }
		value = func(a ...any) string { return styleValue.Render(fmt.Sprint(a...)) }
		warn = func(a ...any) string { return styleWarn.Render(fmt.Sprint(a...)) }
	}

	status := value(fmt.Sprintf("path %d cells, cost %d", len(res.Path), res.Cost))
	switch {
	case res.Blocked:
		status = warn("no path: endpoint blocked")
	case !res.Found:
		status = warn("no path")
	}
	return fmt.Sprintf("%s %v  %s %v  %s  %s %d  %s %d",
		label("A"), s.A(), label("B"), s.B(), status,
		label("visited"), len(res.Visited), label("samples"), s.SampleCount())
}
