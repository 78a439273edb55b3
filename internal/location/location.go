package location

import (
	"context"
	"errors"
	"strconv"
	"time"
)

// ErrPermissionDenied is returned when the location permission was not granted.
var ErrPermissionDenied = errors.New("location permission denied")

// Coordinate is a position in decimal degrees.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Latitude, 'f', -1, 64) + ", " + strconv.FormatFloat(c.Longitude, 'f', -1, 64)
}

// Fix is a coordinate together with the time it was taken.
type Fix struct {
	Coordinate Coordinate
	Timestamp  time.Time
}

// Policy mirrors the one-shot "get current position" options of a device
// geolocation API.
type Policy struct {
	HighAccuracy bool
	Timeout      time.Duration
	// MaximumAge is how old a cached fix may be and still be returned.
	MaximumAge time.Duration
}

// DefaultPolicy returns high accuracy, a 15s timeout and a 10s max age.
func DefaultPolicy() Policy {
	return Policy{
		HighAccuracy: true,
		Timeout:      15 * time.Second,
		MaximumAge:   10 * time.Second,
	}
}

// Source is a device position capability. Each call is one query.
type Source interface {
	Name() string
	CurrentPosition(ctx context.Context, highAccuracy bool) (Coordinate, error)
}

// FixCache keeps the most recent position fix.
type FixCache interface {
	SaveFix(fix Fix)
	// LatestFix returns the newest fix not older than maxAge.
	LatestFix(maxAge time.Duration) (Fix, error)
}

// Failure is a failed position query. Message is shown to the user verbatim.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func newFailure(err error) *Failure {
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return &Failure{Message: err.Error(), Err: err}
}
