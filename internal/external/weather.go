package external

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/SimonMage/TravelSobolev/internal/domain"
)

type weatherResponse struct {
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

// GetWeather returns current conditions at the city's coordinates. Unknown
// units fall back to metric. A response without the "main" block is treated
// as unavailable.
func (c *Client) GetWeather(ctx context.Context, city domain.City, units domain.Units) (domain.Weather, error) {
	if !units.Valid() {
		units = domain.UnitsMetric
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(city.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(city.Longitude, 'f', -1, 64))
	q.Set("appid", c.weather.apiKey)
	q.Set("units", string(units))

	var resp weatherResponse
	if err := c.weather.getJSON(ctx, "/weather", q, &resp); err != nil {
		return domain.Weather{}, fmt.Errorf("external.Client.GetWeather: %w", err)
	}
	if resp.Main == nil {
		return domain.Weather{}, fmt.Errorf("external.Client.GetWeather: %w: empty weather response", domain.ErrExternalUnavailable)
	}

	w := domain.Weather{
		CityName:    city.Name,
		Temperature: resp.Main.Temp,
		FeelsLike:   resp.Main.FeelsLike,
		Humidity:    int(resp.Main.Humidity),
		Pressure:    int(resp.Main.Pressure),
		Units:       units,
	}
	if resp.Wind != nil {
		w.WindSpeed = resp.Wind.Speed
	}
	if len(resp.Weather) > 0 {
		w.Description = resp.Weather[0].Description
		w.Icon = resp.Weather[0].Icon
	}
	return w, nil
}
