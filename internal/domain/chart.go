package domain

// Bodies tracked in every chart, in response order: luminaries first, then
// the classical through outer planets.
var Bodies = [10]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

// Chart is the computed output for a single birth moment. It is immutable
// result data, recomputed fresh on every request and never cached.
//
// Planets holds one entry per tracked body. Houses holds the twelve cusps
// keyed house_1..house_12 plus the ascendant and midheaven points; it is
// empty when house computation failed.
type Chart struct {
	Planets map[string]SignPlacement
	Houses  map[string]SignPlacement
}

// SentinelPlacement is substituted for a single body whose ephemeris lookup
// failed. One bad lookup must not fail the whole chart.
func SentinelPlacement() SignPlacement {
	return SignPlacement{
		Longitude: 0,
		Sign:      "Unknown",
		Degree:    0,
		Label:     "Error",
	}
}
