package routecache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"simToDec/domain"

	"github.com/stretchr/testify/require"
)

func TestCSVRepository_MissingFileIsMiss(t *testing.T) {
	repo := NewCSVRepository(filepath.Join(t.TempDir(), "api_cache.csv"))

	got, err := repo.Get(context.Background(), "Pune,India", "Delhi,India")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestCSVRepository_SaveThenGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models", "api_cache.csv")
	repo := NewCSVRepository(path)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, domain.RouteCacheEntry{
		Origin: "Pune,India", Destination: "Delhi,India", DistanceKm: 1421.3, DurationHr: 25.5,
	}))
	// a later duplicate never shadows the first row
	require.NoError(t, repo.Save(ctx, domain.RouteCacheEntry{
		Origin: "Pune,India", Destination: "Delhi,India", DistanceKm: 999, DurationHr: 1,
	}))

	got, err := repo.Get(ctx, "Pune,India", "Delhi,India")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 1421.3, got.DistanceKm)
	require.Equal(t, 25.5, got.DurationHr)

	// direction matters
	got, err = repo.Get(ctx, "Delhi,India", "Pune,India")
	require.NoError(t, err)
	require.Nil(t, got)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "orig,dest,distance_km,duration_hr", lines[0])
	require.Equal(t, `"Pune,India","Delhi,India",1421.3,25.5`, lines[1])
}

func TestCSVRepository_ReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_cache.csv")
	content := "orig,dest,distance_km,duration_hr\n" +
		"\"Mumbai,India\",\"Chennai,India\",1335.2,22.1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	got, err := NewCSVRepository(path).Get(context.Background(), "Mumbai,India", "Chennai,India")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, 1335.2, got.DistanceKm)
	require.Equal(t, 22.1, got.DurationHr)
}

func TestCSVRepository_BadHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "api_cache.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n1,2\n"), 0o644))

	_, err := NewCSVRepository(path).Get(context.Background(), "x", "y")
	require.Error(t, err)
}
