package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"horoscope-service/internal/domain"
	"horoscope-service/internal/platform/obs"
	"horoscope-service/internal/ports"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// NominatimGeocoder resolves free-text place names through the OpenStreetMap
// Nominatim search API, with an optional persistent cache in front of it.
//
// Resolution is best-effort by design: any failure (network error, bad
// status, empty result, unparsable payload) silently falls back to
// domain.DefaultCoordinates. Failures are logged but never surfaced to the
// caller. The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session   *http.Client
	baseURL   string
	userAgent string
	cache     ports.GeocodeCache
}

func NewNominatimGeocoder(cache ports.GeocodeCache) *NominatimGeocoder {
	return &NominatimGeocoder{
		session:   &http.Client{Timeout: 10 * time.Second},
		baseURL:   "https://nominatim.openstreetmap.org",
		userAgent: "horary_astrology_app",
		cache:     cache,
	}
}

// normalize ensures consistent cache keys by collapsing whitespace and
// lowercasing the place name.
func (g *NominatimGeocoder) normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// Resolve returns coordinates for a place name, or the default fallback.
func (g *NominatimGeocoder) Resolve(ctx context.Context, place string) domain.Coordinates {
	norm := g.normalize(place)
	if norm == "" {
		return domain.DefaultCoordinates
	}

	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{norm})
		if err != nil {
			log.Printf("geocode cache read failed: place=%q err=%v", norm, err)
		} else if coord, ok := hits[norm]; ok {
			return coord
		}
	}

	coord, err := g.lookup(ctx, norm)
	if err != nil {
		log.Printf("geocode lookup failed, using default: place=%q err=%v", norm, err)
		return domain.DefaultCoordinates
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{norm: coord}); err != nil {
			log.Printf("geocode cache write failed: place=%q err=%v", norm, err)
		}
	}

	return coord
}

// Nominatim returns numeric fields as JSON strings.
type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// lookup queries the Nominatim search endpoint (/search?format=json).
// Transient failures are retried via doWithRetry.
func (g *NominatimGeocoder) lookup(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.lookup")(&err)

	endpoint := g.baseURL + "/search"

	resp, err := g.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := g.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", place)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", place)
	}

	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse latitude %q: %w", decoded[0].Lat, err)
	}

	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse longitude %q: %w", decoded[0].Lon, err)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
