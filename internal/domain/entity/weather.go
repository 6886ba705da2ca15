package entity

// WeatherSummary is the compact, LLM-facing view of a forecast response.
// Every leaf is a pointer so that fields missing upstream serialize as null.
type WeatherSummary struct {
	Location WeatherLocation `json:"location"`
	Current  CurrentWeather  `json:"current"`
	Forecast []ForecastDay   `json:"forecast"`
}

type WeatherLocation struct {
	Name      *string  `json:"name"`
	Region    *string  `json:"region"`
	Country   *string  `json:"country"`
	LocalTime *string  `json:"localtime"`
	Lat       *float64 `json:"lat"`
	Lon       *float64 `json:"lon"`
}

type CurrentWeather struct {
	Condition  *string  `json:"condition"`
	TempC      *float64 `json:"temp_c"`
	FeelsLikeC *float64 `json:"feelslike_c"`
	WindKPH    *float64 `json:"wind_kph"`
	Humidity   *float64 `json:"humidity"`
	Cloud      *float64 `json:"cloud"`
}

// ForecastDay keeps the upstream day order; entries are never sorted or merged.
type ForecastDay struct {
	Date              *string  `json:"date"`
	MaxTempC          *float64 `json:"maxtemp_c"`
	MinTempC          *float64 `json:"mintemp_c"`
	DailyChanceOfRain *float64 `json:"daily_chance_of_rain"`
	Condition         *string  `json:"condition"`
}
