package weather

import (
	"errors"

	"github.com/i474232898/weather-now/internal/location"
)

// ErrFetchFailed is the single kind of weather fetch failure. Transport,
// status and decoding causes are wrapped beneath it.
var ErrFetchFailed = errors.New("failed to fetch weather data")

// Condition is the first entry of the API's weather[] array.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// Temperature in degrees Celsius.
type Temperature struct {
	Current float64 `json:"current"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Pressure in hPa. SeaLevel and GroundLevel are only sent for some stations.
type Pressure struct {
	Value       float64  `json:"value"`
	SeaLevel    *float64 `json:"seaLevel,omitempty"`
	GroundLevel *float64 `json:"groundLevel,omitempty"`
}

// Wind speed in m/s, direction in degrees.
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
}

// Precipitation volume in mm over the last one or three hours.
type Precipitation struct {
	OneHour    *float64 `json:"1h,omitempty"`
	ThreeHours *float64 `json:"3h,omitempty"`
}

// Reading is the parsed current-weather snapshot for a coordinate.
type Reading struct {
	Name        string              `json:"name"`
	Country     string              `json:"country"`
	Coord       location.Coordinate `json:"coord"`
	Condition   *Condition          `json:"condition,omitempty"`
	Temperature Temperature         `json:"temperature"`
	Humidity    float64             `json:"humidity"`
	Pressure    Pressure            `json:"pressure"`
	Wind        Wind                `json:"wind"`
	Visibility  float64             `json:"visibility"`
	// Timezone is the shift from UTC in seconds.
	Timezone int            `json:"timezone"`
	Rain     *Precipitation `json:"rain,omitempty"`
	Snow     *Precipitation `json:"snow,omitempty"`
}
