package screen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/weather"
)

func mounted(t *testing.T) State {
	t.Helper()
	s, ok := Transition(Initial(), Event{Kind: EventMount, CycleID: "c1"})
	require.True(t, ok)
	return s
}

func TestTransitionMount(t *testing.T) {
	s := mounted(t)
	assert.Equal(t, PhaseLoading, s.Phase)
	assert.EqualValues(t, 1, s.Generation)
	assert.Equal(t, "c1", s.CycleID)

	again, ok := Transition(s, Event{Kind: EventMount, CycleID: "c2"})
	assert.False(t, ok)
	assert.Equal(t, s, again)
}

func TestTransitionRefreshIgnoredWhileLoading(t *testing.T) {
	_, ok := Transition(Initial(), Event{Kind: EventRefresh})
	assert.False(t, ok, "not mounted")

	_, ok = Transition(mounted(t), Event{Kind: EventRefresh})
	assert.False(t, ok, "loading")
}

func TestTransitionResults(t *testing.T) {
	reading := &weather.Reading{Name: "Berlin"}

	cases := []struct {
		name    string
		event   Event
		phase   Phase
		message string
	}{
		{"permission denied", Event{Kind: EventPermissionDenied, Generation: 1}, PhaseError, MessagePermissionDenied},
		{"location failure message verbatim", Event{Kind: EventLocationFailed, Generation: 1,
			Err: &location.Failure{Message: "Location request timed out"}}, PhaseError, "Location request timed out"},
		{"location plain error", Event{Kind: EventLocationFailed, Generation: 1, Err: errors.New("gps off")}, PhaseError, "gps off"},
		{"location acquired stays loading", Event{Kind: EventLocationAcquired, Generation: 1}, PhaseLoading, ""},
		{"fetch failed", Event{Kind: EventFetchFailed, Generation: 1, Err: weather.ErrFetchFailed}, PhaseError, MessageFetchFailed},
		{"fetch succeeded", Event{Kind: EventFetchSucceeded, Generation: 1, Reading: reading}, PhaseReady, ""},
		{"fetch succeeded without reading", Event{Kind: EventFetchSucceeded, Generation: 1}, PhaseError, MessageFetchFailed},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := Transition(mounted(t), tc.event)
			require.True(t, ok)
			assert.Equal(t, tc.phase, next.Phase)
			assert.Equal(t, tc.message, next.Message)
			assert.EqualValues(t, 1, next.Generation)
			assert.Equal(t, "c1", next.CycleID)
		})
	}
}

func TestTransitionDropsStaleResults(t *testing.T) {
	s := mounted(t)

	_, ok := Transition(s, Event{Kind: EventFetchFailed, Generation: 2})
	assert.False(t, ok, "future generation")

	failed, ok := Transition(s, Event{Kind: EventFetchFailed, Generation: 1})
	require.True(t, ok)

	_, ok = Transition(failed, Event{Kind: EventFetchSucceeded, Generation: 1, Reading: &weather.Reading{}})
	assert.False(t, ok, "result after the cycle finished")

	refreshed, ok := Transition(failed, Event{Kind: EventRefresh, CycleID: "c2"})
	require.True(t, ok)
	assert.EqualValues(t, 2, refreshed.Generation)
	assert.Equal(t, PhaseLoading, refreshed.Phase)
	assert.Empty(t, refreshed.Message)

	_, ok = Transition(refreshed, Event{Kind: EventFetchSucceeded, Generation: 1, Reading: &weather.Reading{}})
	assert.False(t, ok, "older generation")
}

func TestTransitionCopiesReading(t *testing.T) {
	reading := &weather.Reading{Name: "Berlin"}
	next, ok := Transition(mounted(t), Event{Kind: EventFetchSucceeded, Generation: 1, Reading: reading})
	require.True(t, ok)

	reading.Name = "Paris"
	assert.Equal(t, "Berlin", next.Reading.Name)

	_, ok = next.View()
	assert.True(t, ok)
	assert.True(t, next.CanRefresh())
}

func TestPhaseText(t *testing.T) {
	text, err := PhaseReady.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ready", string(text))
	assert.Equal(t, "loading", PhaseLoading.String())
	assert.Equal(t, "error", PhaseError.String())
}
