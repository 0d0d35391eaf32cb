package main

import (
	"context"
	"database/sql"
	"fmt"
	"horoscope-service/internal/adapters/cache"
	"horoscope-service/internal/adapters/ephemeris"
	"horoscope-service/internal/adapters/geocode"
	"horoscope-service/internal/api"
	"horoscope-service/internal/config"
	"horoscope-service/internal/platform/db"
	"horoscope-service/internal/ports"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires the Swiss Ephemeris engine, the Nominatim geocoder, and one of
// three geocode cache backends behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	ephePath := config.Get("EPHE_PATH", "./sweph")
	seedPath := config.Get("SEED_PATH", "data/seeds/cities.json")
	backend := config.Get("GEOCODE_CACHE", "sqlite")

	geocodeCache, closeCache, err := openGeocodeCache(backend, seedPath)
	if err != nil {
		log.Fatal(err)
	}
	defer closeCache()

	// The ephemeris data-file path is process-wide and set once before the
	// first request is served.
	eph := ephemeris.NewSwissEphemeris(ephePath)
	defer eph.Close()

	geocoder := geocode.NewNominatimGeocoder(geocodeCache)
	router := api.NewRouter(eph, geocoder)

	log.Printf("Server listening addr=:%s ephe_path=%s geocode_cache=%s", port, ephePath, backend)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openGeocodeCache selects the cache backend and warms it from the city seed
// file when one is present.
func openGeocodeCache(backend, seedPath string) (ports.GeocodeCache, func(), error) {
	var (
		geocodeCache ports.GeocodeCache
		closeCache   func()
	)

	switch backend {
	case "sqlite":
		dbPath := config.Get("DB_PATH", "data/app.db")
		sdb, err := openSqlite(dbPath)
		if err != nil {
			return nil, nil, err
		}

		if err := cache.InitSchema(sdb); err != nil {
			sdb.Close()
			return nil, nil, err
		}

		geocodeCache = cache.NewSqliteGeocodeCache(sdb)
		closeCache = func() { sdb.Close() }

	case "postgres":
		databaseURL := os.Getenv("DATABASE_URL")
		if strings.TrimSpace(databaseURL) == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required when GEOCODE_CACHE=postgres")
		}

		pdb, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, err
		}

		geocodeCache = cache.NewSQLGeocodeCache(pdb)
		closeCache = func() { pdb.Close() }

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr: config.Get("REDIS_ADDR", "localhost:6379"),
		})

		geocodeCache = cache.NewRedisGeocodeCache(client, 24*time.Hour)
		closeCache = func() { client.Close() }

	default:
		return nil, nil, fmt.Errorf("unknown GEOCODE_CACHE backend %q", backend)
	}

	// Warm the cache with well-known cities for local runs.
	if _, err := os.Stat(seedPath); err == nil {
		if err := cache.SeedFromJSON(context.Background(), geocodeCache, seedPath); err != nil {
			log.Printf("geocode cache seed failed: %v", err)
		}
	}

	return geocodeCache, closeCache, nil
}

func openSqlite(dbPath string) (*sql.DB, error) {
	sdb, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sdb.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sdb, nil
}
