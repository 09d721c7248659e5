package features

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"simToDec/domain"
	"simToDec/pkg/logger"

	"golang.org/x/time/rate"
)

const (
	SourceDistance = "distance"
	SourceWeather  = "weather"
	SourceFuel     = "fuel"

	reasonNoCredential  = "no_credential"
	reasonDisabled      = "disabled"
	reasonRateLimited   = "rate_limited"
	reasonRequestFailed = "request_failed"
)

// Provider fetches live features on a best-effort basis. None of its
// methods fail: every error path degrades to the fallback policy. All
// randomness comes from the caller's rng so requests never share a source.
type Provider struct {
	cache    RouteCache
	routes   RouteClient
	weather  WeatherClient
	fuel     FuelClient
	fallback FallbackPolicy
	limiters map[string]*rate.Limiter
}

type ProviderConfig struct {
	RPS   float64
	Burst int
}

// NewProvider wires the upstream clients. Any client may be nil, in which
// case that source always falls back. The cache may be nil too.
func NewProvider(cache RouteCache, routes RouteClient, weather WeatherClient, fuel FuelClient, fallback FallbackPolicy, cfg ProviderConfig) *Provider {
	if fallback == nil {
		fallback = RandomFallback{}
	}
	limit := rate.Inf
	if cfg.RPS > 0 {
		limit = rate.Limit(cfg.RPS)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Provider{
		cache:    cache,
		routes:   routes,
		weather:  weather,
		fuel:     fuel,
		fallback: fallback,
		limiters: map[string]*rate.Limiter{
			SourceDistance: rate.NewLimiter(limit, burst),
			SourceWeather:  rate.NewLimiter(limit, burst),
			SourceFuel:     rate.NewLimiter(limit, burst),
		},
	}
}

// Distance returns road distance (km) and duration (hours) between two
// places, consulting the route cache first.
func (p *Provider) Distance(ctx context.Context, rng *rand.Rand, origin, destination string) (km, hr float64) {
	rng = ensureRand(rng)
	traceID := logger.TraceIDFromContext(ctx)

	if p.cache != nil {
		entry, err := p.cache.Get(ctx, origin, destination)
		switch {
		case err != nil:
			RouteCacheLookupsTotal.WithLabelValues("error").Inc()
			logger.Warn("route cache lookup failed", "trace_id", traceID, "origin", origin, "destination", destination, "error", err)
		case entry != nil:
			RouteCacheLookupsTotal.WithLabelValues("hit").Inc()
			logger.Debug("route cache hit", "trace_id", traceID, "origin", origin, "destination", destination, "distance_km", entry.DistanceKm)
			return entry.DistanceKm, entry.DurationHr
		default:
			RouteCacheLookupsTotal.WithLabelValues("miss").Inc()
		}
	}

	if p.routes == nil || !p.routes.Configured() {
		return p.distanceFallback(ctx, rng, reasonNoCredential, nil)
	}
	if !p.limiters[SourceDistance].Allow() {
		return p.distanceFallback(ctx, rng, reasonRateLimited, nil)
	}

	from, err := p.routes.Geocode(ctx, origin)
	if err != nil {
		return p.distanceFallback(ctx, rng, reasonRequestFailed, err)
	}
	to, err := p.routes.Geocode(ctx, destination)
	if err != nil {
		return p.distanceFallback(ctx, rng, reasonRequestFailed, err)
	}
	meters, seconds, err := p.routes.Matrix(ctx, from, to)
	if err != nil {
		return p.distanceFallback(ctx, rng, reasonRequestFailed, err)
	}

	km, hr = meters/1000.0, seconds/3600.0
	logger.Info("live distance", "trace_id", traceID, "origin", origin, "destination", destination, "distance_km", km, "duration_hr", hr)

	if p.cache != nil {
		entry := domain.RouteCacheEntry{Origin: origin, Destination: destination, DistanceKm: km, DurationHr: hr}
		if err := p.cache.Save(ctx, entry); err != nil {
			logger.Warn("route cache save failed", "trace_id", traceID, "origin", origin, "destination", destination, "error", err)
		}
	}
	return km, hr
}

// WeatherScore returns the [0,1] favorability of current weather at a point.
func (p *Provider) WeatherScore(ctx context.Context, rng *rand.Rand, lat, lon float64) float64 {
	rng = ensureRand(rng)

	if p.weather == nil {
		return p.weatherFallback(ctx, rng, reasonDisabled, nil)
	}
	if !p.limiters[SourceWeather].Allow() {
		return p.weatherFallback(ctx, rng, reasonRateLimited, nil)
	}

	reading, err := p.weather.CurrentWeather(ctx, lat, lon)
	if err != nil {
		return p.weatherFallback(ctx, rng, reasonRequestFailed, err)
	}

	score := WeatherScoreFromReading(reading)
	logger.Info("live weather", "trace_id", logger.TraceIDFromContext(ctx), "lat", lat, "lon", lon, "score", score)
	return score
}

// FuelIndex returns the fuel price multiplier. Without a credential the
// price is simulated around the baseline instead of fetched.
func (p *Provider) FuelIndex(ctx context.Context, rng *rand.Rand) float64 {
	rng = ensureRand(rng)
	traceID := logger.TraceIDFromContext(ctx)

	if p.fuel == nil || !p.fuel.Configured() {
		price := p.fallback.SimulatedFuelPrice(rng)
		FeatureFallbackTotal.WithLabelValues(SourceFuel, reasonNoCredential).Inc()
		logger.Warn("fuel price simulated", "trace_id", traceID, "price", price)
		return FuelIndexFromPrice(price)
	}
	if !p.limiters[SourceFuel].Allow() {
		return p.fuelFallback(ctx, rng, reasonRateLimited, nil)
	}

	price, err := p.fuel.LatestPrice(ctx)
	if err != nil {
		return p.fuelFallback(ctx, rng, reasonRequestFailed, err)
	}
	if math.IsNaN(price.Value) || math.IsInf(price.Value, 0) {
		return p.fuelFallback(ctx, rng, reasonRequestFailed, fmt.Errorf("non-finite fuel price %v", price.Value))
	}

	index := FuelIndexFromPrice(price.Value)
	logger.Info("live fuel price", "trace_id", traceID, "price", price.Value, "period", price.Period, "index", index)
	return index
}

func (p *Provider) distanceFallback(ctx context.Context, rng *rand.Rand, reason string, err error) (float64, float64) {
	km, hr := p.fallback.Distance(rng)
	p.recordFallback(ctx, SourceDistance, reason, err, "distance_km", km, "duration_hr", hr)
	return km, hr
}

func (p *Provider) weatherFallback(ctx context.Context, rng *rand.Rand, reason string, err error) float64 {
	v := p.fallback.WeatherScore(rng)
	p.recordFallback(ctx, SourceWeather, reason, err, "score", v)
	return v
}

func (p *Provider) fuelFallback(ctx context.Context, rng *rand.Rand, reason string, err error) float64 {
	v := p.fallback.FuelIndex(rng)
	p.recordFallback(ctx, SourceFuel, reason, err, "index", v)
	return v
}

func (p *Provider) recordFallback(ctx context.Context, source, reason string, err error, kv ...any) {
	FeatureFallbackTotal.WithLabelValues(source, reason).Inc()

	fields := []any{"trace_id", logger.TraceIDFromContext(ctx), "source", source, "reason", reason}
	if err != nil {
		fields = append(fields, "error", err)
	}
	logger.Warn("feature fallback", append(fields, kv...)...)
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
