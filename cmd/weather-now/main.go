package main

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-now/internal/config"
	"github.com/i474232898/weather-now/internal/location"
	"github.com/i474232898/weather-now/internal/logger"
	"github.com/i474232898/weather-now/internal/screen"
	"github.com/i474232898/weather-now/internal/store"
	"github.com/i474232898/weather-now/internal/weather/providers"
)

var rootCmd = &cobra.Command{
	Use:   "weather-now",
	Short: "Current weather for this device's position",
	Long: `weather-now finds where this device is, asks OpenWeatherMap for the
current conditions there and shows them as a single screen, either in the
terminal (show) or as JSON over HTTP (serve).`,
	SilenceUsage: true,
}

func main() {
	defer logger.Close()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildPipeline wires the location provider and weather fetcher from cfg.
// in and out are the terminal used by the prompt permission gate.
func buildPipeline(cfg *config.AppConfig, reg prometheus.Registerer, in io.Reader, out io.Writer) *screen.Pipeline {
	log := logger.GetLogger()

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	var source location.Source
	switch cfg.LocationSource {
	case config.SourceStatic:
		source = location.StaticSource{Coordinate: location.Coordinate{
			Latitude:  *cfg.Latitude,
			Longitude: *cfg.Longitude,
		}}
	case config.SourceGeocoder:
		source = location.NewGeocoderSource(cfg.Address, cfg.GeocoderAPIKey)
	default:
		source = location.NewIPSource(httpClient, cfg.IPLocationURL)
	}

	// Fixes only need to outlive the max-age window.
	fixes := store.NewMemoryStore(1, cfg.Policy.MaximumAge)
	locator := location.NewProvider(source, fixes, log)

	fetcher := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL, log)

	var gate location.PermissionGate
	switch cfg.Permission {
	case config.PermissionDenied:
		gate = location.StaticPermission(location.PermissionDenied)
	case config.PermissionPrompt:
		gate = location.NewPromptPermission(in, out)
	default:
		gate = location.StaticPermission(location.PermissionGranted)
	}

	log.Infow("Pipeline configured",
		"location_source", source.Name(),
		"permission", cfg.Permission,
		"high_accuracy", cfg.Policy.HighAccuracy,
		"timeout", cfg.Policy.Timeout,
		"max_age", cfg.Policy.MaximumAge,
	)

	return screen.New(locator, fetcher, cfg.Policy,
		screen.WithPermission(gate),
		screen.WithMetrics(screen.NewMetrics(reg)),
		screen.WithLogger(log),
	)
}
