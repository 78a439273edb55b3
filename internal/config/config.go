package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/logger"
	"github.com/i474232898/weather-now/internal/weather/providers"
)

const (
	SourceStatic   = "static"
	SourceIP       = "ip"
	SourceGeocoder = "geocoder"

	PermissionGranted = "granted"
	PermissionDenied  = "denied"
	PermissionPrompt  = "prompt"

	DefaultIPLocationURL = "http://ip-api.com/json"
)

var validate = validator.New()

type AppConfig struct {
	OpenWeatherAPIKey  string `validate:"required"`
	OpenWeatherBaseURL string `validate:"required,url"`

	// HTTPTimeout bounds outbound HTTP calls. Zero keeps the transport default.
	HTTPTimeout time.Duration `validate:"gte=0"`

	LocationSource string `validate:"oneof=static ip geocoder"`

	// Static source position.
	Latitude  *float64 `validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `validate:"omitempty,gte=-180,lte=180"`

	// Geocoder source.
	Address        string
	GeocoderAPIKey string

	IPLocationURL string `validate:"omitempty,url"`

	Permission string `validate:"oneof=granted denied prompt"`

	Policy location.Policy

	Port string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		logger.GetLogger().Infow("No .env file found or error loading it", "error", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", providers.DefaultOpenWeatherURL)

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "0s"); err != nil {
		return nil, err
	}

	cfg.LocationSource = getenvDefault("LOCATION_SOURCE", SourceIP)
	if cfg.Latitude, err = getenvFloat("LOCATION_LAT"); err != nil {
		return nil, err
	}
	if cfg.Longitude, err = getenvFloat("LOCATION_LON"); err != nil {
		return nil, err
	}
	cfg.Address = os.Getenv("LOCATION_ADDRESS")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.IPLocationURL = getenvDefault("IP_LOCATION_URL", DefaultIPLocationURL)

	cfg.Permission = getenvDefault("LOCATION_PERMISSION", PermissionGranted)

	// Position policy: high accuracy, 15s timeout, 10s max age.
	cfg.Policy = location.DefaultPolicy()
	cfg.Policy.HighAccuracy = getenvBool("LOCATION_HIGH_ACCURACY", cfg.Policy.HighAccuracy)
	if cfg.Policy.Timeout, err = getenvDuration("LOCATION_TIMEOUT", cfg.Policy.Timeout.String()); err != nil {
		return nil, err
	}
	if cfg.Policy.MaximumAge, err = getenvDuration("LOCATION_MAX_AGE", cfg.Policy.MaximumAge.String()); err != nil {
		return nil, err
	}

	cfg.Port = getenvDefault("PORT", "8080")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and the settings each location source needs.
func (c *AppConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Policy.Timeout <= 0 {
		return fmt.Errorf("invalid configuration: LOCATION_TIMEOUT must be positive")
	}
	if c.Policy.MaximumAge < 0 {
		return fmt.Errorf("invalid configuration: LOCATION_MAX_AGE must not be negative")
	}

	switch c.LocationSource {
	case SourceStatic:
		if c.Latitude == nil || c.Longitude == nil {
			return fmt.Errorf("invalid configuration: static location source requires LOCATION_LAT and LOCATION_LON")
		}
	case SourceGeocoder:
		if c.Address == "" || c.GeocoderAPIKey == "" {
			return fmt.Errorf("invalid configuration: geocoder location source requires LOCATION_ADDRESS and GEOCODER_API_KEY")
		}
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvFloat(key string) (*float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &f, nil
}
