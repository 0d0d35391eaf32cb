package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"horoscope-service/internal/domain"
	"horoscope-service/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "geocode:"

// RedisGeocodeCache is a Redis-backed cache mapping place names to
// coordinates. Entries expire after TTL; zero TTL means no expiry.
type RedisGeocodeCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisGeocodeCache(client *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{Client: client, TTL: ttl}
}

type redisCoord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Fetch cached coordinates for the given places in a single MGET.
func (r *RedisGeocodeCache) GetMany(
	ctx context.Context,
	places []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.redis.GetMany")(&err)

	if r.Client == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := dedupe(places)
	if len(uniq) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	keys := make([]string, len(uniq))
	for i, p := range uniq {
		keys[i] = redisKeyPrefix + p
	}

	vals, err := r.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: redis mget: %w", err)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue // cache miss
		}

		var c redisCoord
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("get geocode cache: decode entry %q: %w", keys[i], err)
		}
		out[uniq[i]] = domain.Coordinates{Lat: c.Lat, Lon: c.Lon}
	}

	return out, nil
}

// Store place -> coordinate mappings with a single pipelined round trip.
func (r *RedisGeocodeCache) PutMany(ctx context.Context, results map[string]domain.Coordinates) error {
	if r.Client == nil {
		return errors.New("geocode cache: redis client is nil")
	}

	if len(results) == 0 {
		return nil
	}

	pipe := r.Client.Pipeline()
	for place, coord := range results {
		if place == "" {
			return errors.New("insert geocode cache: empty place key")
		}

		raw, err := json.Marshal(redisCoord{Lat: coord.Lat, Lon: coord.Lon})
		if err != nil {
			return fmt.Errorf("insert geocode cache place=%q: encode: %w", place, err)
		}

		pipe.Set(ctx, redisKeyPrefix+place, raw, r.TTL)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert geocode cache: redis pipeline: %w", err)
	}

	return nil
}
