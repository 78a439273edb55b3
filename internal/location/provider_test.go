package location

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource counts queries and returns a canned result, optionally after a delay.
type fakeSource struct {
	mu        sync.Mutex
	coord     Coordinate
	err       error
	delay     time.Duration
	calls     int
	lastHigh  bool
	ignoreCtx bool
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) CurrentPosition(ctx context.Context, highAccuracy bool) (Coordinate, error) {
	f.mu.Lock()
	f.calls++
	f.lastHigh = highAccuracy
	f.mu.Unlock()

	if f.delay > 0 {
		if f.ignoreCtx {
			time.Sleep(f.delay)
		} else {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return Coordinate{}, ctx.Err()
			}
		}
	}
	return f.coord, f.err
}

func (f *fakeSource) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeCache is a single-slot FixCache on a controllable clock.
type fakeCache struct {
	fix   *Fix
	now   time.Time
	saved int
}

func (c *fakeCache) SaveFix(fix Fix) {
	c.fix = &fix
	c.saved++
}

func (c *fakeCache) LatestFix(maxAge time.Duration) (Fix, error) {
	if c.fix == nil || c.now.Sub(c.fix.Timestamp) > maxAge {
		return Fix{}, errors.New("miss")
	}
	return *c.fix, nil
}

func newTestProvider(src Source, cache FixCache) *Provider {
	return NewProvider(src, cache, zap.NewNop().Sugar())
}

func TestAcquireSuccess(t *testing.T) {
	src := &fakeSource{coord: Coordinate{Latitude: 52.52, Longitude: 13.405}}
	p := newTestProvider(src, nil)

	coord, err := p.Acquire(context.Background(), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Latitude: 52.52, Longitude: 13.405}, coord)
	assert.Equal(t, 1, src.Calls())
	assert.True(t, src.lastHigh)
}

func TestAcquireFailureKeepsMessage(t *testing.T) {
	src := &fakeSource{err: errors.New("No location provider available.")}
	p := newTestProvider(src, nil)

	_, err := p.Acquire(context.Background(), DefaultPolicy())
	require.Error(t, err)

	var f *Failure
	require.ErrorAs(t, err, &f)
	assert.Equal(t, "No location provider available.", f.Message)
	assert.Equal(t, 1, src.Calls(), "no internal retry")
}

func TestAcquireTimeout(t *testing.T) {
	for _, ignoreCtx := range []bool{false, true} {
		src := &fakeSource{delay: 200 * time.Millisecond, ignoreCtx: ignoreCtx}
		p := newTestProvider(src, nil)

		policy := DefaultPolicy()
		policy.Timeout = 20 * time.Millisecond

		start := time.Now()
		_, err := p.Acquire(context.Background(), policy)
		elapsed := time.Since(start)

		var f *Failure
		require.ErrorAs(t, err, &f)
		assert.Equal(t, timeoutMessage, f.Message)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, elapsed, 150*time.Millisecond, "ignoreCtx=%v", ignoreCtx)
	}
}

func TestAcquireUsesFreshCachedFix(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache := &fakeCache{now: now}
	cache.SaveFix(Fix{Coordinate: Coordinate{Latitude: 1, Longitude: 2}, Timestamp: now.Add(-5 * time.Second)})

	src := &fakeSource{coord: Coordinate{Latitude: 3, Longitude: 4}}
	p := newTestProvider(src, cache)

	coord, err := p.Acquire(context.Background(), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Latitude: 1, Longitude: 2}, coord)
	assert.Equal(t, 0, src.Calls())
}

func TestAcquireQueriesWhenCachedFixTooOld(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache := &fakeCache{now: now}
	cache.SaveFix(Fix{Coordinate: Coordinate{Latitude: 1, Longitude: 2}, Timestamp: now.Add(-11 * time.Second)})

	src := &fakeSource{coord: Coordinate{Latitude: 3, Longitude: 4}}
	p := newTestProvider(src, cache)
	p.now = func() time.Time { return now }

	coord, err := p.Acquire(context.Background(), DefaultPolicy())
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Latitude: 3, Longitude: 4}, coord)
	assert.Equal(t, 1, src.Calls())
	assert.Equal(t, 2, cache.saved)
	assert.Equal(t, now, cache.fix.Timestamp)
}

func TestAcquireZeroMaxAgeAlwaysQueries(t *testing.T) {
	now := time.Now()
	cache := &fakeCache{now: now}
	cache.SaveFix(Fix{Coordinate: Coordinate{Latitude: 1, Longitude: 2}, Timestamp: now})

	src := &fakeSource{coord: Coordinate{Latitude: 3, Longitude: 4}}
	p := newTestProvider(src, cache)

	policy := DefaultPolicy()
	policy.MaximumAge = 0

	coord, err := p.Acquire(context.Background(), policy)
	require.NoError(t, err)
	assert.Equal(t, Coordinate{Latitude: 3, Longitude: 4}, coord)
	assert.Equal(t, 1, src.Calls())
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{Coordinate: Coordinate{Latitude: -33.87, Longitude: 151.21}}

	coord, err := src.CurrentPosition(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, -33.87, coord.Latitude)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.CurrentPosition(ctx, true)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCoordinateString(t *testing.T) {
	assert.Equal(t, "52.52, 13.405", Coordinate{Latitude: 52.52, Longitude: 13.405}.String())
	assert.Equal(t, "-1, 0", Coordinate{Latitude: -1}.String())
}
