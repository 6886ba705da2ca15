package weatherapi

import (
	"fmt"
	"net/url"
)

// ForecastRequest mirrors the query string of GET /forecast.json.
type ForecastRequest struct {
	Query      string
	Days       int
	AirQuality bool
	Alerts     bool
}

// Values always sets aqi and alerts explicitly, since the upstream defaults may change.
func (r *ForecastRequest) Values(apiKey string) url.Values {
	result := url.Values{}
	result.Set("key", apiKey)
	result.Set("q", r.Query)
	result.Set("days", fmt.Sprint(r.Days))
	result.Set("aqi", yesNo(r.AirQuality))
	result.Set("alerts", yesNo(r.Alerts))
	return result
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
