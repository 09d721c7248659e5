package features

import (
	"math"

	"simToDec/domain"
)

const (
	defaultTemperature = 25.0
	defaultWindSpeed   = 5.0

	comfortTemperature = 20.0
	baselineFuelPrice  = 70.0
)

// WeatherScore maps temperature (°C) and wind (km/h) to a [0,1]
// favorability score; 20 °C with no wind scores 1.
func WeatherScore(temperature, windSpeed float64) float64 {
	s := 1.0 -
		math.Tanh(math.Abs(temperature-comfortTemperature)/20.0)*0.6 -
		math.Tanh(windSpeed/20.0)*0.4
	return clip(s, 0, 1)
}

func WeatherScoreFromReading(r domain.WeatherReading) float64 {
	temp, wind := defaultTemperature, defaultWindSpeed
	if r.Temperature != nil {
		temp = *r.Temperature
	}
	if r.WindSpeed != nil {
		wind = *r.WindSpeed
	}
	return WeatherScore(temp, wind)
}

// FuelIndexFromPrice maps a WTI price in USD to a multiplier in [0.9, 1.1]
// around the 70 USD baseline.
func FuelIndexFromPrice(price float64) float64 {
	return clip(1.0+(price-baselineFuelPrice)/200.0, 0.9, 1.1)
}

func clip(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
