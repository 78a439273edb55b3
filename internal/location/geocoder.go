package location

import (
	"context"
	"sync"

	"github.com/kelvins/geocoder"
)

// geocoder keeps its API key in a package variable.
var geocoderMu sync.Mutex

// GeocoderSource resolves a fixed street address through the Google
// geocoding API. It suits stationary hosts that know their address but have
// no positioning hardware.
type GeocoderSource struct {
	address string
	apiKey  string
	lookup  func(geocoder.Address) (geocoder.Location, error)
}

func NewGeocoderSource(address, apiKey string) *GeocoderSource {
	return &GeocoderSource{
		address: address,
		apiKey:  apiKey,
		lookup:  geocoder.Geocoding,
	}
}

func (s *GeocoderSource) Name() string {
	return "geocoder"
}

// CurrentPosition geocodes the address. The geocoder client takes no
// context, so cancellation abandons the call rather than aborting it.
func (s *GeocoderSource) CurrentPosition(ctx context.Context, _ bool) (Coordinate, error) {
	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)

	go func() {
		geocoderMu.Lock()
		defer geocoderMu.Unlock()

		geocoder.ApiKey = s.apiKey
		loc, err := s.lookup(geocoder.Address{Street: s.address})
		done <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return Coordinate{}, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return Coordinate{}, r.err
		}
		return Coordinate{Latitude: r.loc.Latitude, Longitude: r.loc.Longitude}, nil
	}
}
