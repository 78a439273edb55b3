package weather

import "strconv"

// WindDirection maps degrees to an 8-point compass label. Each sector has an
// exclusive lower and inclusive upper bound; everything outside
// (22.5, 337.5] folds into N, so 0 and 360 are both N.
func WindDirection(deg float64) string {
	switch {
	case deg > 337.5 || deg <= 22.5:
		return "N"
	case deg <= 67.5:
		return "NE"
	case deg <= 112.5:
		return "E"
	case deg <= 157.5:
		return "SE"
	case deg <= 202.5:
		return "S"
	case deg <= 247.5:
		return "SW"
	case deg <= 292.5:
		return "W"
	default:
		return "NW"
	}
}

// TimezoneString formats a UTC offset in seconds as UTC+H or UTC-H.
// Half-hour zones keep their fraction, e.g. 19800 gives UTC+5.5.
func TimezoneString(offsetSeconds int) string {
	hours := float64(offsetSeconds) / 3600
	sign := ""
	if hours >= 0 {
		sign = "+"
	}
	return "UTC" + sign + formatNumber(hours)
}

// PrecipitationSummary prefers rain over snow and the 1h volume over the 3h
// one. A zero volume counts as absent. Returns "" when nothing fell.
func PrecipitationSummary(rain, snow *Precipitation) string {
	if amount, ok := rain.volume(); ok {
		return "Rain: " + formatNumber(amount) + " mm"
	}
	if amount, ok := snow.volume(); ok {
		return "Snow: " + formatNumber(amount) + " mm"
	}
	return ""
}

func (p *Precipitation) volume() (float64, bool) {
	if p == nil {
		return 0, false
	}
	if p.OneHour != nil && *p.OneHour != 0 {
		return *p.OneHour, true
	}
	if p.ThreeHours != nil && *p.ThreeHours != 0 {
		return *p.ThreeHours, true
	}
	return 0, false
}

// formatNumber renders the shortest decimal form: 18.5, 15, 1012.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
