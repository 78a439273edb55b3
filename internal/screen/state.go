// Package screen owns the single-screen state machine: it sequences
// location acquisition and the weather fetch, and decides what is shown.
package screen

import (
	"errors"

	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/weather"
)

// User-facing messages for the Error phase.
const (
	MessagePermissionDenied = "Location permission denied"
	MessageFetchFailed      = "Failed to fetch weather data"
)

// Phase is the active screen state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseError:
		return "error"
	case PhaseReady:
		return "ready"
	default:
		return "loading"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// State is the complete screen state. It is a value: every transition
// produces a new State and never mutates the old one.
type State struct {
	Phase   Phase
	Message string
	Reading *weather.Reading
	// Generation numbers cycles; 0 means not mounted yet.
	Generation uint64
	CycleID    string
}

// Initial is the state before mount.
func Initial() State {
	return State{Phase: PhaseLoading}
}

// Mounted reports whether the first cycle has started.
func (s State) Mounted() bool {
	return s.Generation > 0
}

// CanRefresh reports whether a user Refresh/Retry would start a new cycle.
func (s State) CanRefresh() bool {
	return s.Mounted() && s.Phase != PhaseLoading
}

// View renders the reading of a Ready state.
func (s State) View() (weather.View, bool) {
	if s.Phase != PhaseReady || s.Reading == nil {
		return weather.View{}, false
	}
	return weather.Present(*s.Reading), true
}

// EventKind names the inputs of the state machine.
type EventKind int

const (
	EventMount EventKind = iota
	EventRefresh
	EventPermissionDenied
	EventLocationFailed
	EventLocationAcquired
	EventFetchFailed
	EventFetchSucceeded
)

func (k EventKind) String() string {
	switch k {
	case EventMount:
		return "mount"
	case EventRefresh:
		return "refresh"
	case EventPermissionDenied:
		return "permission_denied"
	case EventLocationFailed:
		return "location_failed"
	case EventLocationAcquired:
		return "location_acquired"
	case EventFetchFailed:
		return "fetch_failed"
	case EventFetchSucceeded:
		return "fetch_succeeded"
	default:
		return "unknown"
	}
}

// Event is an input to Transition. Results of a cycle carry that cycle's
// Generation; Mount and Refresh carry the CycleID of the cycle they start.
type Event struct {
	Kind       EventKind
	Generation uint64
	CycleID    string
	Err        error
	Coordinate location.Coordinate
	Reading    *weather.Reading
}

// Transition computes the next state. It is pure: the returned bool reports
// whether the event was applied, and a false result leaves s as it was.
func Transition(s State, e Event) (State, bool) {
	switch e.Kind {
	case EventMount:
		if s.Mounted() {
			return s, false
		}
		return State{Phase: PhaseLoading, Generation: 1, CycleID: e.CycleID}, true

	case EventRefresh:
		if !s.CanRefresh() {
			return s, false
		}
		return State{Phase: PhaseLoading, Generation: s.Generation + 1, CycleID: e.CycleID}, true
	}

	// Everything below is a cycle result; drop it unless it belongs to the
	// current generation and the cycle is still loading.
	if e.Generation != s.Generation || s.Phase != PhaseLoading || !s.Mounted() {
		return s, false
	}

	next := State{Generation: s.Generation, CycleID: s.CycleID}
	switch e.Kind {
	case EventPermissionDenied:
		next.Phase = PhaseError
		next.Message = MessagePermissionDenied
	case EventLocationFailed:
		next.Phase = PhaseError
		next.Message = locationMessage(e.Err)
	case EventLocationAcquired:
		next.Phase = PhaseLoading
	case EventFetchFailed:
		next.Phase = PhaseError
		next.Message = MessageFetchFailed
	case EventFetchSucceeded:
		if e.Reading == nil {
			next.Phase = PhaseError
			next.Message = MessageFetchFailed
			break
		}
		r := *e.Reading
		next.Phase = PhaseReady
		next.Reading = &r
	default:
		return s, false
	}
	return next, true
}

func locationMessage(err error) string {
	var f *location.Failure
	if errors.As(err, &f) {
		return f.Message
	}
	if err != nil {
		return err.Error()
	}
	return "Location unavailable"
}
