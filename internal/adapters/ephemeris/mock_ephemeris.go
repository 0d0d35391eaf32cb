package ephemeris

import (
	"context"
	"fmt"
	"horoscope-service/internal/ports"
)

// MockEphemeris is a scripted engine for tests: fixed longitudes per body,
// optional per-body failures, and a fixed house result.
type MockEphemeris struct {
	Longitudes map[string]float64
	FailBodies map[string]bool
	Angles     ports.HouseAngles
	HousesErr  error
}

func (m *MockEphemeris) BodyLongitude(ctx context.Context, jd float64, body string) (float64, error) {
	if m.FailBodies[body] {
		return 0, fmt.Errorf("mock ephemeris: scripted failure for %q", body)
	}

	longitude, ok := m.Longitudes[body]
	if !ok {
		return 0, fmt.Errorf("mock ephemeris: no longitude scripted for %q", body)
	}

	return longitude, nil
}

func (m *MockEphemeris) Houses(ctx context.Context, jd float64, lat, lon float64) (ports.HouseAngles, error) {
	if m.HousesErr != nil {
		return ports.HouseAngles{}, m.HousesErr
	}

	return m.Angles, nil
}
