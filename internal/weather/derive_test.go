package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindDirection(t *testing.T) {
	cases := []struct {
		deg  float64
		want string
	}{
		{0, "N"},
		{22.5, "N"},
		{22.6, "NE"},
		{45, "NE"},
		{67.5, "NE"},
		{67.6, "E"},
		{90, "E"},
		{112.5, "E"},
		{135, "SE"},
		{157.5, "SE"},
		{180, "S"},
		{202.5, "S"},
		{225, "SW"},
		{247.5, "SW"},
		{270, "W"},
		{292.5, "W"},
		{315, "NW"},
		{337.5, "NW"},
		{337.6, "N"},
		{360, "N"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, WindDirection(tc.deg), "deg=%v", tc.deg)
	}
}

// Every tenth of a degree in [0, 360] lands in exactly one sector, and the
// sectors appear in compass order without gaps.
func TestWindDirectionIsTotal(t *testing.T) {
	order := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW", "N"}
	idx := 0
	for i := 0; i <= 3600; i++ {
		deg := float64(i) / 10
		got := WindDirection(deg)
		if got != order[idx] {
			idx++
			if !assert.Less(t, idx, len(order), "deg=%v", deg) {
				return
			}
			assert.Equal(t, order[idx], got, "deg=%v", deg)
		}
		assert.Equal(t, got, WindDirection(deg))
	}
	assert.Equal(t, len(order)-1, idx)
}

func TestTimezoneString(t *testing.T) {
	assert.Equal(t, "UTC+0", TimezoneString(0))
	assert.Equal(t, "UTC-5", TimezoneString(-18000))
	assert.Equal(t, "UTC+5.5", TimezoneString(19800))
	assert.Equal(t, "UTC+1", TimezoneString(3600))
	assert.Equal(t, "UTC-3.5", TimezoneString(-12600))
	assert.Equal(t, "UTC+5.75", TimezoneString(20700))
}

func ptr(v float64) *float64 {
	return &v
}

func TestPrecipitationSummary(t *testing.T) {
	cases := []struct {
		name string
		rain *Precipitation
		snow *Precipitation
		want string
	}{
		{
			name: "rain wins over snow",
			rain: &Precipitation{OneHour: ptr(2)},
			snow: &Precipitation{OneHour: ptr(3)},
			want: "Rain: 2 mm",
		},
		{
			name: "snow three hours only",
			snow: &Precipitation{ThreeHours: ptr(1)},
			want: "Snow: 1 mm",
		},
		{
			name: "neither",
			want: "",
		},
		{
			name: "one hour preferred over three hours",
			rain: &Precipitation{OneHour: ptr(0.25), ThreeHours: ptr(4)},
			want: "Rain: 0.25 mm",
		},
		{
			name: "empty rain object falls through to snow",
			rain: &Precipitation{},
			snow: &Precipitation{OneHour: ptr(1.5)},
			want: "Snow: 1.5 mm",
		},
		{
			name: "zero volume is absent",
			rain: &Precipitation{OneHour: ptr(0)},
			want: "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PrecipitationSummary(tc.rain, tc.snow))
		})
	}
}
