package ports

import (
	"context"
	"horoscope-service/internal/domain"
)

// Port: resolves a free-text place name to geographic coordinates.
//
// Resolution is best-effort: implementations return
// domain.DefaultCoordinates on lookup failure, network error, or an empty
// result rather than failing the request.
type Geocoder interface {
	Resolve(ctx context.Context, place string) domain.Coordinates
}
