package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/logger"
	"github.com/i474232898/weather-now/internal/weather"
)

// DefaultOpenWeatherURL is the current-weather endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements weather.Fetcher for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
	log     *zap.SugaredLogger
}

var _ weather.Fetcher = (*OpenWeatherProvider)(nil)

// NewOpenWeatherProvider builds the fetcher. An empty baseURL selects
// DefaultOpenWeatherURL.
func NewOpenWeatherProvider(client *http.Client, apiKey, baseURL string, log *zap.SugaredLogger) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("openweather", log),
		log:     log,
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Fetch issues one GET for the coordinate and parses the body. Coordinates
// are passed through unchecked; the remote service is authoritative.
func (p *OpenWeatherProvider) Fetch(ctx context.Context, coord location.Coordinate) (weather.Reading, error) {
	reading, err := p.fetch(ctx, coord)
	if err != nil {
		p.log.Errorw("Failed to get current weather data",
			"provider", p.name, "lat", coord.Latitude, "lon", coord.Longitude, "error", err)
		return weather.Reading{}, fmt.Errorf("%w: %v", weather.ErrFetchFailed, err)
	}
	return reading, nil
}

func (p *OpenWeatherProvider) fetch(ctx context.Context, coord location.Coordinate) (weather.Reading, error) {
	if p.apiKey == "" {
		return weather.Reading{}, fmt.Errorf("openweather api key is not configured")
	}

	values := url.Values{}
	values.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	values.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return weather.Reading{}, err
	}

	p.log.Debugw("Fetching current weather data",
		"lat", coord.Latitude, "lon", coord.Longitude, "appid", logger.MaskSensitiveString(p.apiKey, 2, 2))

	resp, err := doRequest(ctx, p.client, p.circuit, req)
	if err != nil {
		return weather.Reading{}, err
	}
	defer resp.Body.Close()

	var payload currentPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Reading{}, fmt.Errorf("decode response: %w", err)
	}

	return payload.toReading(), nil
}

// currentPayload is the subset of the /data/2.5/weather response we render.
type currentPayload struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64  `json:"temp"`
		TempMin   float64  `json:"temp_min"`
		TempMax   float64  `json:"temp_max"`
		Pressure  float64  `json:"pressure"`
		SeaLevel  *float64 `json:"sea_level"`
		GrndLevel *float64 `json:"grnd_level"`
		Humidity  float64  `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Visibility float64        `json:"visibility"`
	Timezone   int            `json:"timezone"`
	Rain       *precipPayload `json:"rain"`
	Snow       *precipPayload `json:"snow"`
}

type precipPayload struct {
	OneH   *float64 `json:"1h"`
	ThreeH *float64 `json:"3h"`
}

func (pp *precipPayload) toPrecipitation() *weather.Precipitation {
	if pp == nil {
		return nil
	}
	return &weather.Precipitation{OneHour: pp.OneH, ThreeHours: pp.ThreeH}
}

func (cp currentPayload) toReading() weather.Reading {
	r := weather.Reading{
		Name:    cp.Name,
		Country: cp.Sys.Country,
		Coord:   location.Coordinate{Latitude: cp.Coord.Lat, Longitude: cp.Coord.Lon},
		Temperature: weather.Temperature{
			Current: cp.Main.Temp,
			Min:     cp.Main.TempMin,
			Max:     cp.Main.TempMax,
		},
		Humidity: cp.Main.Humidity,
		Pressure: weather.Pressure{
			Value:       cp.Main.Pressure,
			SeaLevel:    cp.Main.SeaLevel,
			GroundLevel: cp.Main.GrndLevel,
		},
		Wind:       weather.Wind{Speed: cp.Wind.Speed, Deg: cp.Wind.Deg},
		Visibility: cp.Visibility,
		Timezone:   cp.Timezone,
		Rain:       cp.Rain.toPrecipitation(),
		Snow:       cp.Snow.toPrecipitation(),
	}
	if len(cp.Weather) > 0 {
		r.Condition = &weather.Condition{
			Main:        cp.Weather[0].Main,
			Description: cp.Weather[0].Description,
		}
	}
	return r
}
