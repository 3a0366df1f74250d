package diagram

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"gridpath/core"
	"gridpath/gridmap"
	"gridpath/interpolate"
	"gridpath/pathfinding"
)

type subscription struct {
	id int
	fn Listener
}

// Session is the state behind one diagram: the map, the two endpoints and
// everything derived from them. Derived results are replaced wholesale on
// every change, never patched.
//
// A Session is not safe for concurrent use.
type Session struct {
	id     string
	logger *log.Logger
	finder PathFinder

	m    *gridmap.Map
	a, b core.Point

	samples int
	t       float64
	hasT    bool

	result       pathfinding.Result
	interpolated []orb.Point
	line         []core.Point

	listeners   []subscription
	nextID      int
	dispatching bool
}

// Option configures a Session.
type Option func(*Session)

// WithFinder sets the path finder. Defaults to pathfinding.NewFinder().
func WithFinder(f PathFinder) Option {
	return func(s *Session) { s.finder = f }
}

// WithSamples sets the interpolation sample count, or AutoSamples.
func WithSamples(n int) Option {
	return func(s *Session) { s.samples = n }
}

// WithLogger sets the session logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// NewSession creates a session and computes its initial results.
// Both endpoints must lie inside m.
func NewSession(m *gridmap.Map, a, b core.Point, opts ...Option) (*Session, error) {
	s := &Session{
		id:      uuid.NewString(),
		m:       m,
		a:       a,
		b:       b,
		samples: AutoSamples,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	s.logger = s.logger.With("session", s.id)
	if s.finder == nil {
		s.finder = pathfinding.NewFinder()
	}

	if err := checkEndpoint(m, "a", a); err != nil {
		return nil, err
	}
	if err := checkEndpoint(m, "b", b); err != nil {
		return nil, err
	}
	s.recompute(ChangeRefresh)
	return s, nil
}

func checkEndpoint(m *gridmap.Map, name string, p core.Point) error {
	if !m.InBounds(p) {
		return fmt.Errorf("endpoint %s: %w: %v not in %dx%d", name, gridmap.ErrOutOfBounds, p, m.Width(), m.Height())
	}
	return nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// A returns the first endpoint.
func (s *Session) A() core.Point { return s.a }

// B returns the second endpoint.
func (s *Session) B() core.Point { return s.b }

// Finder returns the path finder in use.
func (s *Session) Finder() PathFinder { return s.finder }

// Map returns the current occupancy grid.
func (s *Session) Map() *gridmap.Map { return s.m }

// Result returns the latest search result.
func (s *Session) Result() pathfinding.Result { return s.result }

// Path returns the latest path in goal-to-start order.
func (s *Session) Path() []core.Point { return s.result.Path }

// Visited returns the cells discovered by the latest search.
func (s *Session) Visited() []core.Point { return s.result.Visited }

// Interpolated returns the points to animate: the single point at t when one
// is set, otherwise the evenly spaced samples from A to B.
func (s *Session) Interpolated() []orb.Point { return s.interpolated }

// Line returns the cells approximating the straight segment A-B.
func (s *Session) Line() []core.Point { return s.line }

// SampleCount returns the effective sample count.
func (s *Session) SampleCount() int {
	if s.samples < 0 {
		return interpolate.DefaultSamples(s.a, s.b)
	}
	return s.samples
}

// AutoSampling reports whether the sample count follows the endpoints.
func (s *Session) AutoSampling() bool { return s.samples < 0 }

// T returns the interpolation parameter and whether one is set.
func (s *Session) T() (float64, bool) { return s.t, s.hasT }

// Subscribe registers l and runs a full update so the new listener sees the
// current state, as does every listener registered before it. Listeners run
// in registration order. A listener registered from inside another listener
// is only called on the next change. The returned function unregisters l.
func (s *Session) Subscribe(l Listener) (unsubscribe func()) {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, subscription{id: id, fn: l})
	if !s.dispatching {
		s.dispatch(ChangeRefresh)
	}
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(sub subscription) bool {
			return sub.id == id
		})
	}
}

// Refresh recomputes everything and notifies every listener.
func (s *Session) Refresh() error {
	return s.mutate(ChangeRefresh, func() error { return nil })
}

// SetA moves the first endpoint.
func (s *Session) SetA(p core.Point) error {
	return s.mutate(ChangeA, func() error {
		if err := checkEndpoint(s.m, "a", p); err != nil {
			return err
		}
		s.a = p
		return nil
	})
}

// SetB moves the second endpoint.
func (s *Session) SetB(p core.Point) error {
	return s.mutate(ChangeB, func() error {
		if err := checkEndpoint(s.m, "b", p); err != nil {
			return err
		}
		s.b = p
		return nil
	})
}

// SetEndpoints moves both endpoints with a single notification.
func (s *Session) SetEndpoints(a, b core.Point) error {
	return s.mutate(ChangeEndpoints, func() error {
		if err := checkEndpoint(s.m, "a", a); err != nil {
			return err
		}
		if err := checkEndpoint(s.m, "b", b); err != nil {
			return err
		}
		s.a, s.b = a, b
		return nil
	})
}

// SetMap replaces the occupancy grid. Both endpoints must fit the new map.
func (s *Session) SetMap(m *gridmap.Map) error {
	return s.mutate(ChangeMap, func() error {
		if m == nil {
			return fmt.Errorf("%w: nil map", gridmap.ErrInvalidDimensions)
		}
		if err := checkEndpoint(m, "a", s.a); err != nil {
			return err
		}
		if err := checkEndpoint(m, "b", s.b); err != nil {
			return err
		}
		s.m = m
		return nil
	})
}

// SetSamples overrides the sample count. Negative values restore AutoSamples.
func (s *Session) SetSamples(n int) error {
	return s.mutate(ChangeSamples, func() error {
		if n < 0 {
			n = AutoSamples
		}
		s.samples = n
		return nil
	})
}

// UseAutoSamples makes the sample count follow the endpoints again.
func (s *Session) UseAutoSamples() error {
	return s.SetSamples(AutoSamples)
}

// SetT shows a single interpolated point at t instead of the samples.
func (s *Session) SetT(t float64) error {
	return s.mutate(ChangeT, func() error {
		s.t, s.hasT = t, true
		return nil
	})
}

// ClearT goes back to showing every sample.
func (s *Session) ClearT() error {
	return s.mutate(ChangeT, func() error {
		s.t, s.hasT = 0, false
		return nil
	})
}

// SetFinder replaces the path finder, e.g. to switch connectivity.
func (s *Session) SetFinder(f PathFinder) error {
	return s.mutate(ChangeFinder, func() error {
		if f == nil {
			return fmt.Errorf("nil path finder")
		}
		s.finder = f
		return nil
	})
}

// mutate applies a change and then recomputes and notifies. It refuses to
// run while listeners are being notified so a listener cannot start an
// unbounded notification loop.
func (s *Session) mutate(kind ChangeKind, apply func() error) error {
	if s.dispatching {
		return fmt.Errorf("%w: %s", ErrReentrantUpdate, kind)
	}
	if err := apply(); err != nil {
		return err
	}
	s.dispatch(kind)
	return nil
}

func (s *Session) dispatch(kind ChangeKind) {
	s.recompute(kind)

	s.dispatching = true
	defer func() { s.dispatching = false }()

	ev := Event{Kind: kind, Session: s}
	for _, sub := range slices.Clone(s.listeners) {
		sub.fn(ev)
	}
}

// recompute reruns the search and the interpolation from scratch.
func (s *Session) recompute(kind ChangeKind) {
	res, err := s.finder.FindPath(s.m, s.a, s.b)
	if err != nil {
		// Endpoints are validated on every mutation, so this only happens
		// with a custom PathFinder.
		s.logger.Error("path search failed", "err", err)
		res = pathfinding.Result{}
	}
	s.result = res

	n := s.SampleCount()
	if s.hasT {
		s.interpolated = []orb.Point{interpolate.LerpPoint(s.a, s.b, s.t)}
	} else {
		s.interpolated = interpolate.Sample(s.a, s.b, n)
	}
	s.line = interpolate.LineN(s.a, s.b, n)

	s.logger.Debug("recomputed",
		"change", kind, "a", s.a, "b", s.b,
		"found", res.Found, "path", len(res.Path),
		"visited", len(res.Visited), "cost", res.Cost, "samples", n)
}
