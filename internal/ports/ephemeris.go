package ports

import "context"

// Raw house-system output: twelve cusp longitudes plus the two derived
// angles, all in ecliptic degrees.
type HouseAngles struct {
	Cusps     [12]float64
	Ascendant float64
	Midheaven float64
}

// Contract for the external ephemeris engine.
type Ephemeris interface {
	// Return the ecliptic longitude of a tracked body at the given Julian Day.
	BodyLongitude(ctx context.Context, jd float64, body string) (float64, error)

	// Return Placidus house cusps and angles for the given Julian Day and
	// geographic position.
	Houses(ctx context.Context, jd float64, lat, lon float64) (HouseAngles, error)
}
