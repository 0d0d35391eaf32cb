package domain

// Immutable geographic coordinates in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// DefaultCoordinates is the fallback birth location (Istanbul) used when the
// caller supplies no coordinates and place-name resolution is unavailable.
var DefaultCoordinates = Coordinates{Lat: 41.0082, Lon: 28.9784}
