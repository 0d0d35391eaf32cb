package api

import (
	"horoscope-service/internal/api/handlers"
	"horoscope-service/internal/ports"
	"net/http"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(eph ports.Ephemeris, geocoder ports.Geocoder) http.Handler {
	mux := http.NewServeMux()

	horoscopeHandler := &handlers.HoroscopeHandler{
		Ephemeris: eph,
		Geocoder:  geocoder,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/horoscope", horoscopeHandler.Calculate)

	return loggingMiddleware(recoverMiddleware(mux))
}
