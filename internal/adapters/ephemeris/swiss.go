package ephemeris

import (
	"bytes"
	"context"
	"fmt"
	"horoscope-service/internal/ports"
	"sync"

	"github.com/mshafiee/swephgo"
)

// Swiss Ephemeris planet numbers for the tracked bodies.
var bodyIndex = map[string]int{
	"Sun":     swephgo.SeSun,
	"Moon":    swephgo.SeMoon,
	"Mercury": swephgo.SeMercury,
	"Venus":   swephgo.SeVenus,
	"Mars":    swephgo.SeMars,
	"Jupiter": swephgo.SeJupiter,
	"Saturn":  swephgo.SeSaturn,
	"Uranus":  swephgo.SeUranus,
	"Neptune": swephgo.SeNeptune,
	"Pluto":   swephgo.SePluto,
}

// Placidus house system selector.
const placidus = 'P'

// SwissEphemeris implements the Ephemeris port using the Swiss Ephemeris C
// library via swephgo.
//
// The C library keeps process-global state (ephemeris file handles, caches),
// so all calls are serialized behind a mutex. The data-file path is set once
// at construction and never changed afterwards.
type SwissEphemeris struct {
	mu sync.Mutex
}

func NewSwissEphemeris(ephePath string) *SwissEphemeris {
	swephgo.SetEphePath([]byte(ephePath))
	return &SwissEphemeris{}
}

// Close releases the ephemeris file handles held by the C library.
func (s *SwissEphemeris) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	swephgo.Close()
}

// BodyLongitude returns the ecliptic longitude of body at the given Julian
// Day (UT timescale). The engine normalizes longitudes to [0, 360).
func (s *SwissEphemeris) BodyLongitude(ctx context.Context, jd float64, body string) (float64, error) {
	idx, ok := bodyIndex[body]
	if !ok {
		return 0, fmt.Errorf("swiss ephemeris: unknown body %q", body)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	xx := make([]float64, 6)
	serr := make([]byte, 256)

	if rc := swephgo.CalcUt(jd, idx, swephgo.SeflgSwieph, xx, serr); rc < 0 {
		return 0, fmt.Errorf("swiss ephemeris: calc %s at jd=%f: %s", body, jd, cString(serr))
	}

	return xx[0], nil
}

// Houses computes Placidus house cusps plus the Ascendant and Midheaven for
// the given Julian Day and geographic position.
func (s *SwissEphemeris) Houses(ctx context.Context, jd float64, lat, lon float64) (ports.HouseAngles, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// swe_houses uses 1-based cusp indexing; slot 0 is unused.
	cusps := make([]float64, 13)
	ascmc := make([]float64, 10)

	if rc := swephgo.Houses(jd, lat, lon, placidus, cusps, ascmc); rc < 0 {
		return ports.HouseAngles{}, fmt.Errorf("swiss ephemeris: houses at jd=%f lat=%f lon=%f: computation failed", jd, lat, lon)
	}

	// ascmc slot 0 is the Ascendant, slot 1 the Midheaven (MC).
	var out ports.HouseAngles
	copy(out.Cusps[:], cusps[1:13])
	out.Ascendant = ascmc[0]
	out.Midheaven = ascmc[1]

	return out, nil
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
