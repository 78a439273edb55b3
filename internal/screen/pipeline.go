package screen

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/logger"
	"github.com/i474232898/weather-now/internal/weather"
)

// Locator acquires the device position under a policy.
type Locator interface {
	Acquire(ctx context.Context, policy location.Policy) (location.Coordinate, error)
}

// Pipeline runs acquisition cycles and owns the screen State. At most one
// cycle is live; results of superseded cycles are discarded by generation.
type Pipeline struct {
	locator    Locator
	fetcher    weather.Fetcher
	policy     location.Policy
	permission location.PermissionGate
	metrics    *Metrics
	log        *zap.SugaredLogger

	mu        sync.Mutex
	state     State
	base      context.Context
	cancel    context.CancelFunc
	permitted bool
	subs      map[chan State]struct{}

	wg sync.WaitGroup
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithPermission sets the runtime permission gate consulted before the
// first location query. Without one, location access is assumed granted.
func WithPermission(gate location.PermissionGate) Option {
	return func(p *Pipeline) {
		p.permission = gate
	}
}

func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

func WithLogger(log *zap.SugaredLogger) Option {
	return func(p *Pipeline) {
		p.log = log
	}
}

// New creates a Pipeline in the Initial state.
func New(locator Locator, fetcher weather.Fetcher, policy location.Policy, opts ...Option) *Pipeline {
	p := &Pipeline{
		locator: locator,
		fetcher: fetcher,
		policy:  policy,
		state:   Initial(),
		subs:    make(map[chan State]struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.metrics == nil {
		p.metrics = NewMetrics(nil)
	}
	if p.log == nil {
		p.log = logger.GetLogger()
	}
	return p
}

// State returns the current screen state.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mount starts the first cycle. ctx bounds the lifetime of the screen: every
// later cycle derives from it. Returns false if already mounted.
func (p *Pipeline) Mount(ctx context.Context) bool {
	return p.start(ctx, EventMount)
}

// Refresh is the user's Retry/Refresh action. It restarts from location
// acquisition and is ignored unless the screen is in Error or Ready.
func (p *Pipeline) Refresh() bool {
	return p.start(context.Background(), EventRefresh)
}

// Subscribe returns a channel that receives every new state. Slow readers
// only see the latest one. The returned func unsubscribes.
func (p *Pipeline) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	return ch, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subs, ch)
	}
}

// Close cancels the live cycle and waits for cycle goroutines to return.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}
	p.mu.Unlock()
	p.wg.Wait()
}

// Wait blocks until every started cycle goroutine has returned.
func (p *Pipeline) Wait() {
	p.wg.Wait()
}

func (p *Pipeline) start(ctx context.Context, kind EventKind) bool {
	cycleID := uuid.NewString()

	p.mu.Lock()
	next, ok := Transition(p.state, Event{Kind: kind, CycleID: cycleID})
	if !ok {
		current := p.state
		p.mu.Unlock()
		p.log.Debugw("Ignoring event", "event", kind, "phase", current.Phase, "generation", current.Generation)
		return false
	}

	if kind == EventMount {
		p.base = ctx
	}
	if p.cancel != nil {
		p.cancel()
	}
	cycleCtx, cancel := context.WithCancel(p.base)
	p.cancel = cancel

	askPermission := p.permission != nil && (kind == EventMount || !p.permitted)
	p.setStateLocked(next)
	p.wg.Add(1)
	p.mu.Unlock()

	p.metrics.cycleStarted(kind)
	p.log.Infow("Starting acquisition cycle", "trigger", kind, "generation", next.Generation, "cycle_id", cycleID)

	go p.run(cycleCtx, next, askPermission)
	return true
}

// run is one cycle: permission, then location, then weather. Each stage
// result goes through dispatch, and a rejected result ends the cycle.
func (p *Pipeline) run(ctx context.Context, cycle State, askPermission bool) {
	defer p.wg.Done()

	gen := cycle.Generation
	log := p.log.With("generation", gen, "cycle_id", cycle.CycleID)

	if askPermission {
		perm, err := p.permission.Request(ctx)
		if ctx.Err() != nil {
			log.Debugw("Cycle cancelled during permission request")
			return
		}
		if err != nil {
			log.Warnw("Permission request failed", "error", err)
		}
		p.mu.Lock()
		p.permitted = err == nil && perm == location.PermissionGranted
		permitted := p.permitted
		p.mu.Unlock()

		if !permitted {
			p.dispatch(Event{Kind: EventPermissionDenied, Generation: gen, Err: location.ErrPermissionDenied})
			return
		}
	}

	coord, err := p.locator.Acquire(ctx, p.policy)
	if ctx.Err() != nil {
		log.Debugw("Cycle cancelled during location acquisition")
		return
	}
	if err != nil {
		log.Warnw("Location acquisition failed", "error", err)
		p.dispatch(Event{Kind: EventLocationFailed, Generation: gen, Err: err})
		return
	}
	if !p.dispatch(Event{Kind: EventLocationAcquired, Generation: gen, Coordinate: coord}) {
		return
	}

	reading, err := p.fetcher.Fetch(ctx, coord)
	if ctx.Err() != nil {
		log.Debugw("Cycle cancelled during weather fetch")
		return
	}
	if err != nil {
		p.dispatch(Event{Kind: EventFetchFailed, Generation: gen, Err: err})
		return
	}
	p.dispatch(Event{Kind: EventFetchSucceeded, Generation: gen, Reading: &reading})
}

// dispatch applies a cycle result under the lock.
func (p *Pipeline) dispatch(e Event) bool {
	p.mu.Lock()
	next, ok := Transition(p.state, e)
	if !ok {
		current := p.state
		p.mu.Unlock()
		if e.Generation != current.Generation {
			p.metrics.staleDiscarded()
		}
		p.log.Debugw("Discarding stale result",
			"event", e.Kind, "event_generation", e.Generation, "generation", current.Generation)
		return false
	}
	p.setStateLocked(next)
	p.mu.Unlock()

	if next.Phase != PhaseLoading {
		p.metrics.cycleFinished(next, e.Kind)
		p.log.Infow("Cycle finished",
			"generation", next.Generation, "cycle_id", next.CycleID, "phase", next.Phase, "message", next.Message)
	}
	return true
}

func (p *Pipeline) setStateLocked(s State) {
	p.state = s
	for ch := range p.subs {
		select {
		case ch <- s:
		default:
			// Replace the unread state with the newer one.
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}
