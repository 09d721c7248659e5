package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"simToDec/business/features"
	"simToDec/domain"

	"github.com/pobyzaarif/goshortcute"
	"github.com/redis/go-redis/v9"
)

type RouteCacheRepository struct {
	client *redis.Client
}

var _ features.RouteCache = (*RouteCacheRepository)(nil)

func NewRouteCacheRepository(client *redis.Client) *RouteCacheRepository {
	return &RouteCacheRepository{client: client}
}

// RouteCacheKey encodes the pair so place names with separators or spaces
// stay a single key segment. Format: "route_cache:{base64(origin|destination)}".
func RouteCacheKey(origin, destination string) string {
	return "route_cache:" + goshortcute.StringtoBase64Encode(origin+"|"+destination)
}

func (r *RouteCacheRepository) Get(ctx context.Context, origin, destination string) (*domain.RouteCacheEntry, error) {
	val, err := r.client.Get(ctx, RouteCacheKey(origin, destination)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get route from Redis: %w", err)
	}
	return decodeRoute(val)
}

// Save keeps the first value written for a pair, matching the file backend.
func (r *RouteCacheRepository) Save(ctx context.Context, entry domain.RouteCacheEntry) error {
	data, err := encodeRoute(entry)
	if err != nil {
		return err
	}
	if err := r.client.SetNX(ctx, RouteCacheKey(entry.Origin, entry.Destination), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to store route in Redis: %w", err)
	}
	return nil
}

func encodeRoute(entry domain.RouteCacheEntry) ([]byte, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal route: %w", err)
	}
	return data, nil
}

func decodeRoute(val string) (*domain.RouteCacheEntry, error) {
	var entry domain.RouteCacheEntry
	if err := json.Unmarshal([]byte(val), &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal route: %w", err)
	}
	return &entry, nil
}
