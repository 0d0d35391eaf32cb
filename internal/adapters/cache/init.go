package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"horoscope-service/internal/domain"
	"horoscope-service/internal/ports"
	"os"
	"strings"
)

// Initialize the geocode cache schema. The SQL is portable between SQLite
// and Postgres.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	createGeocodeCacheQuery := `
	CREATE TABLE IF NOT EXISTS geocode_cache (
        place TEXT PRIMARY KEY,
        lat DOUBLE PRECISION NOT NULL,
        lon DOUBLE PRECISION NOT NULL
    );
	`

	if _, err := db.Exec(createGeocodeCacheQuery); err != nil {
		return fmt.Errorf("init schema: create geocode_cache: %w", err)
	}

	return nil
}

type CitySeed struct {
	Place string  `json:"place"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Warm a geocode cache with well-known city coordinates from a JSON file,
// saving Nominatim round trips for the common cases. Writing through the
// cache port keeps the seed backend-agnostic.
func SeedFromJSON(ctx context.Context, geocodeCache ports.GeocodeCache, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed geocode cache: read %q: %w", jsonPath, err)
	}

	var data []CitySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed geocode cache: parse json: %w", err)
	}

	rows := make(map[string]domain.Coordinates, len(data))
	for i, item := range data {
		place := strings.ToLower(strings.Join(strings.Fields(item.Place), " "))
		if place == "" {
			return fmt.Errorf("seed geocode cache: item at index %d: place cannot be empty", i+1)
		}
		rows[place] = domain.Coordinates{Lat: item.Lat, Lon: item.Lon}
	}

	if err := geocodeCache.PutMany(ctx, rows); err != nil {
		return fmt.Errorf("seed geocode cache: %w", err)
	}

	return nil
}
