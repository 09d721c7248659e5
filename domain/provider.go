package domain

type Coordinates struct {
	Lon float64
	Lat float64
}

// WeatherReading is the current weather at a point. Nil fields were absent
// from the upstream response.
type WeatherReading struct {
	Temperature *float64 `json:"temperature"`
	WindSpeed   *float64 `json:"windspeed"`
}

type FuelPrice struct {
	Value  float64
	Period string
}
