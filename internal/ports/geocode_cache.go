package ports

import (
	"context"
	"horoscope-service/internal/domain"
)

// Port: a boundary for caching resolved place-name coordinates.
// Place keys are expected to be normalized by the caller.
type GeocodeCache interface {
	// Fetch cached coordinates for the given places. Missing places are
	// simply absent from the result map.
	GetMany(ctx context.Context, places []string) (map[string]domain.Coordinates, error)

	// Store place -> coordinate mappings in the cache.
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
