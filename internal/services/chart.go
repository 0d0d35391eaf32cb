package services

import (
	"context"
	"fmt"
	"horoscope-service/internal/domain"
	"horoscope-service/internal/platform/obs"
	"horoscope-service/internal/ports"
	"log"
)

// BuildChart computes sign placements for every tracked body and the house
// cusps for the given Julian Day and location.
//
// The partial-failure policy is deliberately asymmetric:
//   - a failed body lookup substitutes a sentinel placement for that body
//     and the remaining bodies are still computed;
//   - a failed house computation blanks the whole houses section.
//
// BuildChart therefore never returns an error; the worst outcome is a chart
// of sentinels with empty houses.
func BuildChart(
	ctx context.Context,
	jd float64,
	coord domain.Coordinates,
	eph ports.Ephemeris,
) *domain.Chart {
	defer obs.Time(ctx, "chart.build")(nil)

	chart := &domain.Chart{
		Planets: make(map[string]domain.SignPlacement, len(domain.Bodies)),
		Houses:  make(map[string]domain.SignPlacement, 14),
	}

	for _, body := range domain.Bodies {
		longitude, err := eph.BodyLongitude(ctx, jd, body)
		if err != nil {
			log.Printf("body lookup failed: body=%s jd=%f err=%v", body, jd, err)
			chart.Planets[body] = domain.SentinelPlacement()
			continue
		}

		chart.Planets[body] = domain.ToSignAndDegree(longitude)
	}

	angles, err := eph.Houses(ctx, jd, coord.Lat, coord.Lon)
	if err != nil {
		log.Printf("house computation failed: jd=%f lat=%f lon=%f err=%v", jd, coord.Lat, coord.Lon, err)
		return chart
	}

	for i, cusp := range angles.Cusps {
		chart.Houses[fmt.Sprintf("house_%d", i+1)] = domain.ToSignAndDegree(cusp)
	}
	chart.Houses["ascendant"] = domain.ToSignAndDegree(angles.Ascendant)
	chart.Houses["midheaven"] = domain.ToSignAndDegree(angles.Midheaven)

	return chart
}
