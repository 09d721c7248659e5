package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ROUTE_CACHE_BACKEND", "")
	t.Setenv("SIM_CHECKPOINTS", "")
	t.Setenv("ENSEMBLE_K", "")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "8000", cfg.Server.Port)
	require.Len(t, cfg.Model.SimulatorCheckpoints, 3)
	require.Equal(t, 3, cfg.Model.EnsembleK)
	require.Equal(t, 8, cfg.Model.MCSamples)
	require.Equal(t, 5, cfg.Model.SeqLen)
	require.True(t, cfg.Model.MCDropout)
	require.Equal(t, CacheBackendCSV, cfg.Cache.Backend)
	require.Equal(t, "PET.RWTC.D", cfg.Fuel.SeriesID)
	require.Contains(t, cfg.Server.AllowOrigins, "http://localhost:5173")
}

func TestLoad_EnsembleLargerThanCheckpoints(t *testing.T) {
	t.Setenv("SIM_CHECKPOINTS", "a.json,b.json")
	t.Setenv("ENSEMBLE_K", "3")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_PostgresBackendNeedsPassword(t *testing.T) {
	t.Setenv("ROUTE_CACHE_BACKEND", "postgres")
	t.Setenv("DB_PASSWORD", "")

	_, err := Load()
	require.EqualError(t, err, "missing database password")
}

func TestLoad_UnknownBackend(t *testing.T) {
	t.Setenv("ROUTE_CACHE_BACKEND", "memcached")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("MC_SAMPLES", "eight")

	_, err := Load()
	require.EqualError(t, err, "invalid MC_SAMPLES")
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"a", "b"}, splitList(" a , ,b,"))
	require.Empty(t, splitList(""))
}
