package main

import (
	"context"
	"horoscope-service/internal/adapters/cache"
	"horoscope-service/internal/config"
	"horoscope-service/internal/platform/db"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// dbtool prepares the shared Postgres geocode cache: creates the schema and
// warms it from the city seed file.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	pdb, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pdb.Close()

	log.Println("Initializing geocode cache schema...")
	if err := cache.InitSchema(pdb); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	seedPath := config.Get("SEED_PATH", "data/seeds/cities.json")
	log.Println("Seeding geocode cache...")
	geocodeCache := cache.NewSQLGeocodeCache(pdb)
	if err := cache.SeedFromJSON(context.Background(), geocodeCache, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
