package location

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// timeoutMessage is the text a device reports when no fix arrives in time.
const timeoutMessage = "Location request timed out"

// Provider performs one-shot position acquisition against a Source,
// honouring a Policy.
type Provider struct {
	source Source
	fixes  FixCache
	log    *zap.SugaredLogger
	now    func() time.Time
}

// NewProvider creates a Provider. fixes may be nil, in which case every
// call queries the source.
func NewProvider(source Source, fixes FixCache, log *zap.SugaredLogger) *Provider {
	return &Provider{
		source: source,
		fixes:  fixes,
		log:    log,
		now:    time.Now,
	}
}

// Acquire returns the current coordinate. A cached fix younger than
// policy.MaximumAge is returned as is; otherwise exactly one source query is
// issued, bounded by policy.Timeout. Errors are *Failure values.
func (p *Provider) Acquire(ctx context.Context, policy Policy) (Coordinate, error) {
	if p.fixes != nil && policy.MaximumAge > 0 {
		if fix, err := p.fixes.LatestFix(policy.MaximumAge); err == nil {
			p.log.Debugw("Using cached position fix",
				"source", p.source.Name(), "age", p.now().Sub(fix.Timestamp))
			return fix.Coordinate, nil
		}
	}

	queryCtx := ctx
	if policy.Timeout > 0 {
		var cancel context.CancelFunc
		queryCtx, cancel = context.WithTimeout(ctx, policy.Timeout)
		defer cancel()
	}

	coord, err := p.query(queryCtx, policy.HighAccuracy)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			err = &Failure{Message: timeoutMessage, Err: err}
		}
		f := newFailure(err)
		p.log.Warnw("Position query failed", "source", p.source.Name(), "error", f.Message)
		return Coordinate{}, f
	}

	if p.fixes != nil {
		p.fixes.SaveFix(Fix{Coordinate: coord, Timestamp: p.now()})
	}
	p.log.Debugw("Position acquired", "source", p.source.Name(), "lat", coord.Latitude, "lon", coord.Longitude)
	return coord, nil
}

// query runs the source call so a source that ignores its context still
// cannot outlive the timeout.
func (p *Provider) query(ctx context.Context, highAccuracy bool) (Coordinate, error) {
	type result struct {
		coord Coordinate
		err   error
	}
	done := make(chan result, 1)
	go func() {
		c, err := p.source.CurrentPosition(ctx, highAccuracy)
		done <- result{coord: c, err: err}
	}()

	select {
	case r := <-done:
		return r.coord, r.err
	case <-ctx.Done():
		return Coordinate{}, ctx.Err()
	}
}
