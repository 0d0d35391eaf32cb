package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"horoscope-service/internal/api/dto"
	"horoscope-service/internal/domain"
	"horoscope-service/internal/ports"
	"horoscope-service/internal/services"
	"net/http"
	"strconv"
	"time"
)

const (
	ephemerisName   = "Swiss Ephemeris"
	houseSystemName = "Placidus"

	defaultTimezoneOffset = 3
)

// HoroscopeHandler computes natal chart placements for a birth moment.
type HoroscopeHandler struct {
	Ephemeris ports.Ephemeris
	Geocoder  ports.Geocoder
}

// Calculate accepts input as query parameters (GET) or a JSON body (POST),
// validates required fields, and assembles the chart response. Validation
// failures never touch the calculation core.
func (h *HoroscopeHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRequest(r)
	if err != nil {
		var me *methodError
		if errors.As(err, &me) {
			w.Header().Set("Allow", "GET, POST")
			writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if req.BirthDate == "" || req.BirthTime == "" {
		writeJSON(w, r, http.StatusBadRequest, dto.ErrorResponse{
			Success: false,
			Error:   "birth_date and birth_time are required",
			Example: &dto.ExamplePayload{
				BirthDate:      "1990-01-01",
				BirthTime:      "12:00",
				Latitude:       domain.DefaultCoordinates.Lat,
				Longitude:      domain.DefaultCoordinates.Lon,
				TimezoneOffset: defaultTimezoneOffset,
			},
		})
		return
	}

	offset := defaultTimezoneOffset
	if req.TimezoneOffset != nil {
		offset = *req.TimezoneOffset
	}

	coord := h.resolveCoordinates(r, req)

	jd, err := domain.ToJulianDay(req.BirthDate, req.BirthTime, offset)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "Invalid date or time format")
		return
	}

	chart := services.BuildChart(r.Context(), jd, coord, h.Ephemeris)

	res := dto.HoroscopeResponse{
		Success: true,
		Message: "Horoscope calculated successfully",
		InputData: dto.InputData{
			BirthDate:      req.BirthDate,
			BirthTime:      req.BirthTime,
			Latitude:       coord.Lat,
			Longitude:      coord.Lon,
			TimezoneOffset: offset,
			JulianDay:      jd,
		},
		Planets: toPlacements(chart.Planets),
		Houses:  toPlacements(chart.Houses),
		ChartInfo: dto.ChartInfo{
			CalculationTime: time.Now().UTC().Format(time.RFC3339),
			Ephemeris:       ephemerisName,
			HouseSystem:     houseSystemName,
		},
	}

	writeJSON(w, r, http.StatusOK, res)
}

// resolveCoordinates picks the birth location: explicit coordinates win,
// then a geocoded place name, then the default pair.
func (h *HoroscopeHandler) resolveCoordinates(r *http.Request, req dto.HoroscopeRequest) domain.Coordinates {
	coord := domain.DefaultCoordinates

	switch {
	case req.Latitude != nil || req.Longitude != nil:
		if req.Latitude != nil {
			coord.Lat = *req.Latitude
		}
		if req.Longitude != nil {
			coord.Lon = *req.Longitude
		}
	case req.Location != "" && h.Geocoder != nil:
		coord = h.Geocoder.Resolve(r.Context(), req.Location)
	}

	return coord
}

type methodError struct{ method string }

func (e *methodError) Error() string {
	return fmt.Sprintf("method %s not allowed", e.method)
}

func decodeRequest(r *http.Request) (dto.HoroscopeRequest, error) {
	switch r.Method {
	case http.MethodGet:
		return decodeQuery(r)
	case http.MethodPost:
		return decodeBody(r)
	default:
		return dto.HoroscopeRequest{}, &methodError{method: r.Method}
	}
}

func decodeBody(r *http.Request) (dto.HoroscopeRequest, error) {
	var req dto.HoroscopeRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()

	if err := dec.Decode(&req); err != nil {
		return dto.HoroscopeRequest{}, errors.New("invalid json body")
	}

	return req, nil
}

func decodeQuery(r *http.Request) (dto.HoroscopeRequest, error) {
	q := r.URL.Query()

	req := dto.HoroscopeRequest{
		BirthDate: q.Get("birth_date"),
		BirthTime: q.Get("birth_time"),
		Location:  q.Get("location"),
	}

	if raw := q.Get("latitude"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dto.HoroscopeRequest{}, errors.New("latitude must be a number")
		}
		req.Latitude = &v
	}

	if raw := q.Get("longitude"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return dto.HoroscopeRequest{}, errors.New("longitude must be a number")
		}
		req.Longitude = &v
	}

	if raw := q.Get("timezone_offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return dto.HoroscopeRequest{}, errors.New("timezone_offset must be an integer")
		}
		req.TimezoneOffset = &v
	}

	return req, nil
}

func toPlacements(placements map[string]domain.SignPlacement) map[string]dto.PlacementResponse {
	out := make(map[string]dto.PlacementResponse, len(placements))
	for name, p := range placements {
		out[name] = dto.PlacementResponse{
			Longitude:  p.Longitude,
			Sign:       p.Sign,
			Degree:     p.Degree,
			SignDegree: p.Label,
		}
	}
	return out
}
