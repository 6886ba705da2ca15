package weatherapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"travel-agent/internal/domain/entity"
	"travel-agent/internal/domain/errorsx"
)

// forecastResponse is the subset of the WeatherAPI forecast payload we read.
// Pointers everywhere: any level of the tree may be absent or null.
type forecastResponse struct {
	Location *struct {
		Name      *string  `json:"name"`
		Region    *string  `json:"region"`
		Country   *string  `json:"country"`
		LocalTime *string  `json:"localtime"`
		Lat       *float64 `json:"lat"`
		Lon       *float64 `json:"lon"`
	} `json:"location"`
	Current *struct {
		Condition  *condition `json:"condition"`
		TempC      *float64   `json:"temp_c"`
		FeelsLikeC *float64   `json:"feelslike_c"`
		WindKPH    *float64   `json:"wind_kph"`
		Humidity   *float64   `json:"humidity"`
		Cloud      *float64   `json:"cloud"`
	} `json:"current"`
	Forecast *struct {
		ForecastDay []forecastDay `json:"forecastday"`
	} `json:"forecast"`
}

// Unmarshal decodes the body whatever Content-Type the upstream declares.
func (r *forecastResponse) Unmarshal(_ http.Header, body io.Reader) error {
	if err := json.NewDecoder(body).Decode(r); err != nil {
		return errorsx.Wrap(fmt.Errorf("decode forecast response: %w", err), errorsx.ReasonWeatherDecode)
	}
	return nil
}

type condition struct {
	Text *string `json:"text"`
}

type forecastDay struct {
	Date *string `json:"date"`
	Day  *struct {
		MaxTempC          *float64   `json:"maxtemp_c"`
		MinTempC          *float64   `json:"mintemp_c"`
		DailyChanceOfRain *float64   `json:"daily_chance_of_rain"`
		Condition         *condition `json:"condition"`
	} `json:"day"`
}

func (c *condition) text() *string {
	if c == nil {
		return nil
	}
	return c.Text
}

// summarize reduces the upstream payload to the allow-listed fields, keeping
// at most maxDays forecast entries in upstream order.
func summarize(resp *forecastResponse, maxDays int) *entity.WeatherSummary {
	summary := &entity.WeatherSummary{}

	if loc := resp.Location; loc != nil {
		summary.Location = entity.WeatherLocation{
			Name:      loc.Name,
			Region:    loc.Region,
			Country:   loc.Country,
			LocalTime: loc.LocalTime,
			Lat:       loc.Lat,
			Lon:       loc.Lon,
		}
	}

	if cur := resp.Current; cur != nil {
		summary.Current = entity.CurrentWeather{
			Condition:  cur.Condition.text(),
			TempC:      cur.TempC,
			FeelsLikeC: cur.FeelsLikeC,
			WindKPH:    cur.WindKPH,
			Humidity:   cur.Humidity,
			Cloud:      cur.Cloud,
		}
	}

	var days []forecastDay
	if resp.Forecast != nil {
		days = resp.Forecast.ForecastDay
	}
	if len(days) > maxDays {
		days = days[:maxDays]
	}

	summary.Forecast = make([]entity.ForecastDay, 0, len(days))
	for _, d := range days {
		entry := entity.ForecastDay{Date: d.Date}
		if d.Day != nil {
			entry.MaxTempC = d.Day.MaxTempC
			entry.MinTempC = d.Day.MinTempC
			entry.DailyChanceOfRain = d.Day.DailyChanceOfRain
			entry.Condition = d.Day.Condition.text()
		}
		summary.Forecast = append(summary.Forecast, entry)
	}

	return summary
}
