package domain

// Weather is a current-conditions snapshot for a city. Units says whether
// temperatures are Celsius with wind in m/s, or Fahrenheit with wind in mph.
type Weather struct {
	CityName    string  `json:"city_name"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    int     `json:"humidity"`
	Pressure    int     `json:"pressure"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindSpeed   float64 `json:"wind_speed"`
	Units       Units   `json:"units"`
}

// CityOverview combines a city with its weather and points of interest.
// Weather is nil when the weather provider could not be reached.
type CityOverview struct {
	City    City
	Weather *Weather
	Pois    PoiLookup
}
