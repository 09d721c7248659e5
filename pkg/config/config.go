package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	CacheBackendCSV      = "csv"
	CacheBackendPostgres = "postgres"
	CacheBackendRedis    = "redis"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Model     ModelConfig
	Mapbox    MapboxConfig
	Weather   WeatherConfig
	Fuel      FuelConfig
	Cache     CacheConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port         string
	AllowOrigins []string
}

type ModelConfig struct {
	SimulatorCheckpoints []string
	ActorCheckpoint      string
	EnsembleK            int
	MCSamples            int
	SeqLen               int
	MCDropout            bool
}

type MapboxConfig struct {
	APIKey  string
	BaseURL string
}

type WeatherConfig struct {
	BaseURL string
}

type FuelConfig struct {
	APIKey   string
	BaseURL  string
	SeriesID string
}

type CacheConfig struct {
	Backend string
	CSVPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// RateLimitConfig throttles calls to the third-party feature providers.
type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}
	ensembleK, err := getEnvInt("ENSEMBLE_K", 3)
	if err != nil {
		return nil, errors.New("invalid ENSEMBLE_K")
	}
	mcSamples, err := getEnvInt("MC_SAMPLES", 8)
	if err != nil {
		return nil, errors.New("invalid MC_SAMPLES")
	}
	seqLen, err := getEnvInt("SEQ_LEN", 5)
	if err != nil {
		return nil, errors.New("invalid SEQ_LEN")
	}
	rps, err := getEnvFloat("PROVIDER_RATE_RPS", 5)
	if err != nil {
		return nil, errors.New("invalid PROVIDER_RATE_RPS")
	}
	burst, err := getEnvInt("PROVIDER_RATE_BURST", 10)
	if err != nil {
		return nil, errors.New("invalid PROVIDER_RATE_BURST")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Sim-to-Dec ML API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:         getEnv("PORT", "8000"),
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173")),
		},
		Model: ModelConfig{
			SimulatorCheckpoints: splitList(getEnv("SIM_CHECKPOINTS", "models/sim_v40_seed0.json,models/sim_v40_seed1.json,models/sim_v40_seed2.json")),
			ActorCheckpoint:      getEnv("ACTOR_CHECKPOINT", "models/actor_best_v40.json"),
			EnsembleK:            ensembleK,
			MCSamples:            mcSamples,
			SeqLen:               seqLen,
			MCDropout:            getEnv("MC_DROPOUT", "true") != "false",
		},
		Mapbox: MapboxConfig{
			APIKey:  getEnv("MAPBOX_API_KEY", ""),
			BaseURL: getEnv("MAPBOX_BASE_URL", "https://api.mapbox.com"),
		},
		Weather: WeatherConfig{
			BaseURL: getEnv("OPEN_METEO_URL", "https://api.open-meteo.com"),
		},
		Fuel: FuelConfig{
			APIKey:   getEnv("EIA_API_KEY", ""),
			BaseURL:  getEnv("EIA_BASE_URL", "https://api.eia.gov"),
			SeriesID: getEnv("EIA_SERIES_ID", "PET.RWTC.D"),
		},
		Cache: CacheConfig{
			Backend: strings.ToLower(getEnv("ROUTE_CACHE_BACKEND", CacheBackendCSV)),
			CSVPath: getEnv("ROUTE_CACHE_FILE", "models/api_cache.csv"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "sim_to_dec"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		RateLimit: RateLimitConfig{
			RPS:   rps,
			Burst: burst,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Model.SimulatorCheckpoints) == 0 {
		return errors.New("missing simulator checkpoints")
	}
	if c.Model.ActorCheckpoint == "" {
		return errors.New("missing actor checkpoint")
	}
	if c.Model.EnsembleK < 1 {
		return errors.New("ENSEMBLE_K must be at least 1")
	}
	if c.Model.EnsembleK > len(c.Model.SimulatorCheckpoints) {
		return fmt.Errorf("ENSEMBLE_K=%d exceeds the %d configured simulator checkpoints",
			c.Model.EnsembleK, len(c.Model.SimulatorCheckpoints))
	}
	if c.Model.MCSamples < 1 {
		return errors.New("MC_SAMPLES must be at least 1")
	}
	if c.Model.SeqLen < 1 {
		return errors.New("SEQ_LEN must be at least 1")
	}

	switch c.Cache.Backend {
	case CacheBackendCSV:
		if c.Cache.CSVPath == "" {
			return errors.New("missing route cache file")
		}
	case CacheBackendPostgres:
		if c.Database.Password == "" {
			return errors.New("missing database password")
		}
	case CacheBackendRedis:
	default:
		return fmt.Errorf("unknown route cache backend %q", c.Cache.Backend)
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1 {
		return errors.New("provider rate limit must be positive")
	}

	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(val)
}

func getEnvFloat(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	return strconv.ParseFloat(val, 64)
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
