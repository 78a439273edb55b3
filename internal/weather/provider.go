package weather

import (
	"context"

	"github.com/i474232898/weather-now/internal/location"
)

// Fetcher retrieves the current weather for a coordinate. Any failure wraps
// ErrFetchFailed.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, coord location.Coordinate) (Reading, error)
}
