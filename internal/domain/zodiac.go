package domain

import (
	"fmt"
	"math"
)

// The twelve zodiac signs in ecliptic order. Each spans exactly 30 degrees
// of ecliptic longitude starting at Aries = [0, 30).
var SignNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// SignPlacement is a zodiac decomposition of an ecliptic longitude.
// Longitude and Degree are rounded to 2 decimals for display. Label carries
// the degree rounded to the nearest whole number, which may differ from
// Degree by up to one near .5 boundaries; downstream consumers rely on that
// exact formatting, so the two roundings are intentionally independent.
type SignPlacement struct {
	Longitude float64
	Sign      string
	Degree    float64
	Label     string
}

// ToSignAndDegree maps an ecliptic longitude in degrees to its zodiac sign
// and degree within that sign.
//
// Only [0, 360) is astronomically meaningful, but any real input is accepted:
// the sign index wraps modulo 12 and the degree is reduced to [0, 30). A
// longitude of exactly 30.0 belongs to Taurus, not Aries; boundaries always
// resolve to the higher sign.
func ToSignAndDegree(longitude float64) SignPlacement {
	idx := int(math.Floor(longitude/30.0)) % 12
	if idx < 0 {
		idx += 12
	}

	degree := math.Mod(longitude, 30.0)
	if degree < 0 {
		degree += 30.0
	}

	sign := SignNames[idx]

	return SignPlacement{
		Longitude: round2(longitude),
		Sign:      sign,
		Degree:    round2(degree),
		Label:     fmt.Sprintf("%d° %s", int(math.Round(degree)), sign),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
