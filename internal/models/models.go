package models

import "time"

// City is the catalog entry. Identity is ID; name/country/coordinates are
// display and lookup data only.
type City struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Conditions holds the current-weather fields of a city record. Absent fields
// stay nil and render as a placeholder, never as zero.
type Conditions struct {
	Temperature *float64 `json:"temperature"`
	Windspeed   *float64 `json:"windspeed"`
	Dewpoint    *float64 `json:"dewpoint"`
	Visibility  *float64 `json:"visibility"` // metres; converted to km at render time
}

type ForecastDay struct {
	Date        string  `json:"date"`
	WeatherCode int     `json:"weathercode"`
	TempMax     float64 `json:"temp_max"`
	TempMin     float64 `json:"temp_min"`
	UVIndex     float64 `json:"uv_index"`
}

type AirQuality struct {
	EuropeanAQI *float64 `json:"european_aqi"`
	PM25        *float64 `json:"pm25"`
	PM10        *float64 `json:"pm10"`
	PollenGrass *float64 `json:"pollen_grass"`
	PollenTree  *float64 `json:"pollen_tree"`
	PollenWeed  *float64 `json:"pollen_weed"`
}

type Alert struct {
	Event       string `json:"event"`
	Description string `json:"description"`
}

// CityWeather is one record of the aggregated /api/data response, replaced
// wholesale on each poll cycle.
type CityWeather struct {
	ID                     int64         `json:"id"`
	Weather                *Conditions   `json:"weather"`
	Forecast               []ForecastDay `json:"forecast"`
	AirQuality             *AirQuality   `json:"air_quality"`
	Alerts                 []Alert       `json:"alerts"`
	OutfitRecommendation   string        `json:"outfit_recommendation"`
	ActivityRecommendation string        `json:"activity_recommendation"`
	WeatherTip             string        `json:"weather_tip"`
	Datetime               string        `json:"datetime"`
	Timezone               string        `json:"timezone"`
}

// ClockEntry pairs the reference instant from the last successful poll with the
// city's IANA timezone. Both must be present or the entry is cleared.
type ClockEntry struct {
	Reference time.Time
	Timezone  string
}

// HistoryDaily is the column-oriented daily series of /api/historical_weather.
// All slices share the ordering of Time.
type HistoryDaily struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
}

type History struct {
	Daily HistoryDaily `json:"daily"`
}

type Units string

const (
	UnitsCelsius    Units = "celsius"
	UnitsFahrenheit Units = "fahrenheit"
)

// Symbol returns the temperature suffix without the degree sign.
func (u Units) Symbol() string {
	if u == UnitsFahrenheit {
		return "F"
	}
	return "C"
}

// Toggled returns the other unit.
func (u Units) Toggled() Units {
	if u == UnitsCelsius {
		return UnitsFahrenheit
	}
	return UnitsCelsius
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) Toggled() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type MapLayer string

const (
	LayerWind          MapLayer = "wind"
	LayerTemperature   MapLayer = "temperature"
	LayerPrecipitation MapLayer = "precipitation"
)

// Overlay maps the layer to the embed provider's overlay name.
func (l MapLayer) Overlay() string {
	switch l {
	case LayerTemperature:
		return "temp"
	case LayerPrecipitation:
		return "rain"
	default:
		return "wind"
	}
}

// Next cycles wind -> temperature -> precipitation -> wind.
func (l MapLayer) Next() MapLayer {
	switch l {
	case LayerWind:
		return LayerTemperature
	case LayerTemperature:
		return LayerPrecipitation
	default:
		return LayerWind
	}
}
