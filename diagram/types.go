// Package diagram holds the mutable state of one interactive diagram session.
package diagram

import "errors"

// ErrReentrantUpdate is returned when a listener tries to mutate the session
// it is being notified about.
var ErrReentrantUpdate = errors.New("session mutated from inside a listener")

// AutoSamples makes the sample count follow the Chebyshev distance between
// the endpoints.
const AutoSamples = -1

// ChangeKind says what triggered an Event.
type ChangeKind int

const (
	ChangeRefresh ChangeKind = iota
	ChangeA
	ChangeB
	ChangeEndpoints
	ChangeMap
	ChangeSamples
	ChangeT
	ChangeFinder
)

// String returns the string representation of a ChangeKind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeRefresh:
		return "refresh"
	case ChangeA:
		return "a"
	case ChangeB:
		return "b"
	case ChangeEndpoints:
		return "endpoints"
	case ChangeMap:
		return "map"
	case ChangeSamples:
		return "samples"
	case ChangeT:
		return "t"
	case ChangeFinder:
		return "finder"
	default:
		return "unknown"
	}
}

// Event is delivered to listeners after a session has recomputed.
type Event struct {
	Kind    ChangeKind
	Session *Session
}
