package weather

import "fmt"

// Field is one labeled row of the rendered screen.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

func (f Field) String() string {
	return f.Label + ": " + f.Value
}

// Section groups fields under a heading.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// View is the presentation of a Reading.
type View struct {
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// Fields returns every row of the view in display order.
func (v View) Fields() []Field {
	var out []Field
	for _, s := range v.Sections {
		out = append(out, s.Fields...)
	}
	return out
}

// Present derives the rendered field set from a reading. Optional rows
// (precipitation, sea and ground level pressure, conditions) are left out
// when the reading does not carry them.
func Present(r Reading) View {
	conditions := Section{Title: "Weather Conditions"}
	if r.Condition != nil {
		conditions.Fields = append(conditions.Fields,
			Field{"Main", r.Condition.Main},
			Field{"Description", r.Condition.Description},
		)
	}
	conditions.Fields = append(conditions.Fields,
		Field{"Current Temp", formatNumber(r.Temperature.Current) + " °C"},
		Field{"Min Temp", formatNumber(r.Temperature.Min) + " °C"},
		Field{"Max Temp", formatNumber(r.Temperature.Max) + " °C"},
		Field{"Humidity", formatNumber(r.Humidity) + "%"},
	)
	if precip := PrecipitationSummary(r.Rain, r.Snow); precip != "" {
		conditions.Fields = append(conditions.Fields, Field{"Precipitation", precip})
	}

	wind := Section{Title: "Wind & Pressure"}
	wind.Fields = append(wind.Fields,
		Field{"Wind Speed", formatNumber(r.Wind.Speed) + " m/s"},
		Field{"Wind Direction", fmt.Sprintf("%s° (%s)", formatNumber(r.Wind.Deg), WindDirection(r.Wind.Deg))},
		Field{"Pressure", formatNumber(r.Pressure.Value) + " hPa"},
	)
	if r.Pressure.SeaLevel != nil {
		wind.Fields = append(wind.Fields, Field{"Sea Level Pressure", formatNumber(*r.Pressure.SeaLevel) + " hPa"})
	}
	if r.Pressure.GroundLevel != nil {
		wind.Fields = append(wind.Fields, Field{"Ground Level Pressure", formatNumber(*r.Pressure.GroundLevel) + " hPa"})
	}
	wind.Fields = append(wind.Fields, Field{"Visibility", formatNumber(r.Visibility) + " m"})

	place := Section{
		Title: "Location & Timezone",
		Fields: []Field{
			{"Location", r.Coord.String()},
			{"Timezone", TimezoneString(r.Timezone)},
		},
	}

	return View{
		Title:    fmt.Sprintf("Weather in %s, %s", r.Name, r.Country),
		Sections: []Section{conditions, wind, place},
	}
}
