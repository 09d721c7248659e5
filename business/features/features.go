package features

import (
	"context"

	"simToDec/domain"
)

// RouteCache stores distance lookups keyed by (origin, destination).
// A miss is (nil, nil).
type RouteCache interface {
	Get(ctx context.Context, origin, destination string) (*domain.RouteCacheEntry, error)
	Save(ctx context.Context, entry domain.RouteCacheEntry) error
}

type RouteClient interface {
	Configured() bool
	Geocode(ctx context.Context, place string) (domain.Coordinates, error)
	Matrix(ctx context.Context, from, to domain.Coordinates) (meters, seconds float64, err error)
}

type WeatherClient interface {
	CurrentWeather(ctx context.Context, lat, lon float64) (domain.WeatherReading, error)
}

type FuelClient interface {
	Configured() bool
	LatestPrice(ctx context.Context) (domain.FuelPrice, error)
}
