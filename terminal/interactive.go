// Package terminal runs the interactive diagram on a tcell screen.
//
// The UI owns no diagram state. Input events are turned into Session
// mutations and the screen is redrawn from a Session listener.
package terminal

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"gridpath/core"
	"gridpath/diagram"
	"gridpath/gridmap"
	"gridpath/pathfinding"
	"gridpath/render"
)

// CellWidth is the number of screen columns used per grid cell.
const CellWidth = 2

// tStep is how far [ and ] move the interpolation parameter.
const tStep = 0.05

type handle int

const (
	handleNone handle = iota
	handleA
	handleB
)

// Regenerator builds a replacement map of the given size. a and b are the
// session's endpoints at the time of the call.
type Regenerator func(width, height int, a, b core.Point) (*gridmap.Map, error)

// UI drives a Session from a tcell screen.
type UI struct {
	screen  tcell.Screen
	session *diagram.Session
	logger  *log.Logger
	vis     render.Visualizer
	costs   pathfinding.Costs
	regen   Regenerator
	cache   int

	cursor  core.Point
	drag    handle
	pressed bool // button 1 held since the last press
	lastErr error
}

// Option configures a UI.
type Option func(*UI)

// WithLogger sets the UI logger. Logging to the terminal the UI draws on
// corrupts the screen; pass a file-backed logger or none.
func WithLogger(l *log.Logger) Option {
	return func(u *UI) { u.logger = l }
}

// WithVisualizer selects the layers to draw.
func WithVisualizer(v render.Visualizer) Option {
	return func(u *UI) { u.vis = v }
}

// WithCosts sets the cost model used when switching connectivity.
func WithCosts(c pathfinding.Costs) Option {
	return func(u *UI) { u.costs = c }
}

// WithCacheSize makes connectivity switches install a finder that caches up
// to n results. Zero disables caching.
func WithCacheSize(n int) Option {
	return func(u *UI) { u.cache = n }
}

// WithRegenerator sets how the r key builds a new map.
func WithRegenerator(r Regenerator) Option {
	return func(u *UI) { u.regen = r }
}

// New creates a UI for s on screen. The caller initialises and finalises the
// screen.
func New(screen tcell.Screen, s *diagram.Session, opts ...Option) *UI {
	u := &UI{
		screen:  screen,
		session: s,
		vis:     render.DefaultVisualizer(),
		costs:   pathfinding.DefaultCosts,
		regen: func(w, h int, a, b core.Point) (*gridmap.Map, error) {
			return gridmap.Generate(w, h, gridmap.WithClear(a, b))
		},
		cursor: s.A(),
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.logger == nil {
		u.logger = log.New(io.Discard)
	}
	return u
}

// Cursor returns the grid cell under the keyboard cursor.
func (u *UI) Cursor() core.Point { return u.cursor }

// Err returns the error shown in the status line, if any.
func (u *UI) Err() error { return u.lastErr }

// Run processes events until the user quits or ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	u.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents | tcell.MouseMotionEvents)
	defer u.screen.DisableMouse()

	unsubscribe := u.session.Subscribe(func(diagram.Event) { u.draw() })
	defer unsubscribe()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			u.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if quit := u.HandleEvent(ev); quit {
			u.logger.Debug("quit requested")
			return nil
		}
	}
}

// HandleEvent applies one input event and reports whether the UI should exit.
func (u *UI) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return u.handleKey(ev)
	case *tcell.EventMouse:
		u.handleMouse(ev)
	case *tcell.EventResize:
		u.screen.Sync()
		u.draw()
	}
	return false
}

func (u *UI) handleKey(ev *tcell.EventKey) bool {
	s := u.session
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		u.moveCursor(-1, 0)
		return false
	case tcell.KeyRight:
		u.moveCursor(1, 0)
		return false
	case tcell.KeyUp:
		u.moveCursor(0, -1)
		return false
	case tcell.KeyDown:
		u.moveCursor(0, 1)
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 'r':
		m, err := u.regen(s.Map().Width(), s.Map().Height(), s.A(), s.B())
		if err == nil {
			// Results for the old map can never be hit again.
			if c, ok := s.Finder().(cacheClearer); ok {
				c.ClearCache()
			}
			err = s.SetMap(m)
		}
		u.report("regenerate", err)
	case '4':
		u.report("connectivity", s.SetFinder(u.finder(pathfinding.Four)))
	case '8':
		u.report("connectivity", s.SetFinder(u.finder(pathfinding.Eight)))
	case '+', '=':
		u.report("samples", s.SetSamples(s.SampleCount()+1))
	case '-':
		u.report("samples", s.SetSamples(max(s.SampleCount()-1, 0)))
	case 'a':
		u.report("samples", s.UseAutoSamples())
	case 'l':
		u.vis.ShowLabels = !u.vis.ShowLabels
		u.draw()
	case 't':
		if _, ok := s.T(); ok {
			u.report("t", s.ClearT())
		} else {
			u.report("t", s.SetT(0.5))
		}
	case '[':
		u.stepT(-tStep)
	case ']':
		u.stepT(tStep)
	case ' ':
		occupied, err := s.Map().IsOccupied(u.cursor)
		if err == nil {
			var m *gridmap.Map
			if m, err = s.Map().WithCell(u.cursor, !occupied); err == nil {
				err = s.SetMap(m)
			}
		}
		u.report("toggle obstacle", err)
	}
	return false
}

func (u *UI) finder(c pathfinding.Connectivity) diagram.PathFinder {
	f := pathfinding.NewFinder(
		pathfinding.WithCosts(u.costs),
		pathfinding.WithConnectivity(c),
		pathfinding.WithLogger(u.logger),
	)
	if u.cache > 0 {
		return pathfinding.NewCachedFinder(f, u.cache)
	}
	return f
}

type configured interface {
	Connectivity() pathfinding.Connectivity
}

type cacheClearer interface {
	ClearCache()
}

func (u *UI) stepT(delta float64) {
	t, ok := u.session.T()
	if !ok {
		t = 0.5
	}
	// Round to hundredths so repeated steps land on 0 and 1 exactly.
	t = math.Round((t+delta)*100) / 100
	t = math.Max(0, math.Min(1, t))
	u.report("t", u.session.SetT(t))
}

func (u *UI) moveCursor(dx, dy int) {
	p := core.Point{X: u.cursor.X + dx, Y: u.cursor.Y + dy}
	u.cursor = u.session.Map().Bounds().Clamp(p)
	u.draw()
}

func (u *UI) handleMouse(ev *tcell.EventMouse) {
	s := u.session
	p, inside := u.cellAt(ev.Position())

	if ev.Buttons()&tcell.Button1 == 0 {
		u.drag = handleNone
		u.pressed = false
		if inside && p != u.cursor {
			u.cursor = p
			u.draw()
		}
		return
	}

	// Only a fresh press picks a handle; motion with the button held never does.
	fresh := !u.pressed
	u.pressed = true

	switch u.drag {
	case handleNone:
		if !fresh || !inside {
			return
		}
		switch p {
		case s.A():
			u.drag = handleA
		case s.B():
			u.drag = handleB
		default:
			u.cursor = p
			u.draw()
		}
	case handleA:
		if p != s.A() {
			u.report("move a", s.SetA(p))
		}
	case handleB:
		if p != s.B() {
			u.report("move b", s.SetB(p))
		}
	}
}

// cellAt maps a screen position to the grid, clamped to the map. inside
// reports whether the position was over the map before clamping.
func (u *UI) cellAt(x, y int) (p core.Point, inside bool) {
	bounds := u.session.Map().Bounds()
	p = core.Point{X: x / CellWidth, Y: y}
	if x < 0 {
		p.X = -1
	}
	return bounds.Clamp(p), bounds.Contains(p)
}

func (u *UI) report(action string, err error) {
	u.lastErr = err
	if err != nil {
		u.logger.Warn("action failed", "action", action, "err", err)
		u.draw()
	}
}

var cellStyles = map[render.Cell]tcell.Style{
	render.Empty:     tcell.StyleDefault.Foreground(tcell.ColorDarkGray),
	render.Visited:   tcell.StyleDefault.Foreground(tcell.ColorBlue),
	render.Obstacle:  tcell.StyleDefault.Foreground(tcell.ColorGray),
	render.Line:      tcell.StyleDefault.Foreground(tcell.ColorPurple),
	render.Path:      tcell.StyleDefault.Foreground(tcell.ColorTeal).Bold(true),
	render.Sample:    tcell.StyleDefault.Foreground(tcell.ColorYellow),
	render.EndpointA: tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
	render.EndpointB: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
}

var (
	styleStatus = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleError  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleHelp   = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleLabel  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

const helpText = "drag A/B  r regen  4/8 conn  +/- samples  a auto  l labels  t [ ] interp  space wall  q quit"

func (u *UI) draw() {
	s := u.session
	u.screen.Clear()

	cells := u.vis.Classify(s, s.Map().Bounds())
	for y, row := range cells {
		for x, c := range row {
			r, style := c.RuneIn(u.vis.Charset), cellStyles[c]
			u.screen.SetContent(x*CellWidth, y, r, nil, style)
			if c == render.Obstacle {
				u.screen.SetContent(x*CellWidth+1, y, r, nil, style)
			}
		}
	}
	if u.vis.ShowLabels {
		for p, i := range u.vis.Labels(s, s.Map().Bounds()) {
			if cells[p.Y][p.X] < render.EndpointA {
				u.screen.SetContent(p.X*CellWidth, p.Y, render.LabelRune(i), nil, styleLabel)
			}
		}
	}
	u.screen.ShowCursor(u.cursor.X*CellWidth, u.cursor.Y)

	row := len(cells) + 1
	status := render.Summary(s, false)
	if t, ok := s.T(); ok {
		status += fmt.Sprintf("  t %.2f", t)
	}
	if f, ok := s.Finder().(configured); ok {
		status += fmt.Sprintf("  %d-connected", f.Connectivity())
	}
	u.drawText(0, row, styleStatus, status)
	if u.lastErr != nil {
		u.drawText(0, row+1, styleError, "error: "+u.lastErr.Error())
	}
	u.drawText(0, row+2, styleHelp, helpText)
	u.screen.Show()
}

func (u *UI) drawText(x, y int, style tcell.Style, text string) {
	for _, r := range text {
		u.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
