package redis

import (
	"strings"
	"testing"

	"simToDec/domain"

	"github.com/pobyzaarif/goshortcute"
	"github.com/stretchr/testify/require"
)

func TestRouteCacheKey(t *testing.T) {
	k1 := RouteCacheKey("Pune,India", "Delhi,India")
	k2 := RouteCacheKey("Delhi,India", "Pune,India")

	require.True(t, strings.HasPrefix(k1, "route_cache:"))
	require.Equal(t, "Pune,India|Delhi,India", goshortcute.StringtoBase64Decode(strings.TrimPrefix(k1, "route_cache:")))
	require.NotEqual(t, k1, k2)
	require.Equal(t, k1, RouteCacheKey("Pune,India", "Delhi,India"))
}

func TestRouteCodec(t *testing.T) {
	in := domain.RouteCacheEntry{Origin: "Pune,India", Destination: "Delhi,India", DistanceKm: 1421.3, DurationHr: 25.5}

	data, err := encodeRoute(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"orig":"Pune,India","dest":"Delhi,India","distance_km":1421.3,"duration_hr":25.5}`, string(data))

	out, err := decodeRoute(string(data))
	require.NoError(t, err)
	require.Equal(t, in, *out)

	_, err = decodeRoute("{")
	require.Error(t, err)
}
