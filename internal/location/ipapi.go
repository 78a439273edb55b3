package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// providerUnavailable is shown when the lookup service gives no reason.
const providerUnavailable = "Location provider unavailable"

// IPSource estimates the position from the host's public IP address using an
// ip-api.com compatible endpoint. Accuracy is city level whatever the policy asks.
type IPSource struct {
	client  *http.Client
	baseURL string
}

func NewIPSource(client *http.Client, baseURL string) *IPSource {
	if client == nil {
		client = http.DefaultClient
	}
	return &IPSource{client: client, baseURL: baseURL}
}

func (s *IPSource) Name() string {
	return "ip"
}

func (s *IPSource) CurrentPosition(ctx context.Context, _ bool) (Coordinate, error) {
	values := url.Values{}
	values.Set("fields", "status,message,lat,lon")

	u := fmt.Sprintf("%s?%s", s.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Coordinate{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Coordinate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Coordinate{}, &Failure{
			Message: fmt.Sprintf("%s (status %d)", providerUnavailable, resp.StatusCode),
		}
	}

	var payload struct {
		Status  string  `json:"status"`
		Message string  `json:"message"`
		Lat     float64 `json:"lat"`
		Lon     float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Coordinate{}, fmt.Errorf("decode ip location: %w", err)
	}

	if payload.Status != "success" {
		if payload.Message == "" {
			return Coordinate{}, &Failure{Message: providerUnavailable}
		}
		return Coordinate{}, &Failure{Message: payload.Message}
	}

	return Coordinate{Latitude: payload.Lat, Longitude: payload.Lon}, nil
}
