package handlers

import (
	"context"
	"encoding/json"
	"horoscope-service/internal/adapters/ephemeris"
	"horoscope-service/internal/api/dto"
	"horoscope-service/internal/domain"
	"horoscope-service/internal/ports"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubGeocoder struct {
	coord domain.Coordinates
	calls int
}

func (s *stubGeocoder) Resolve(ctx context.Context, place string) domain.Coordinates {
	s.calls++
	return s.coord
}

func testEphemeris() *ephemeris.MockEphemeris {
	longitudes := make(map[string]float64, len(domain.Bodies))
	for i, body := range domain.Bodies {
		longitudes[body] = float64(i) * 36.0
	}

	var angles ports.HouseAngles
	for i := range angles.Cusps {
		angles.Cusps[i] = float64(i) * 30.0
	}
	angles.Ascendant = 95.5
	angles.Midheaven = 5.5

	return &ephemeris.MockEphemeris{Longitudes: longitudes, Angles: angles}
}

func testHandler() *HoroscopeHandler {
	return &HoroscopeHandler{
		Ephemeris: testEphemeris(),
		Geocoder:  &stubGeocoder{coord: domain.Coordinates{Lat: 51.5074, Lon: -0.1278}},
	}
}

func doRequest(t *testing.T, h *HoroscopeHandler, r *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.Calculate(w, r)
	return w
}

func TestCalculateFullScenario(t *testing.T) {
	h := testHandler()
	r := httptest.NewRequest(http.MethodGet,
		"/api/horoscope?birth_date=1990-01-01&birth_time=12:00&latitude=41.0082&longitude=28.9784&timezone_offset=3", nil)

	w := doRequest(t, h, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var res dto.HoroscopeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !res.Success {
		t.Errorf("success = false")
	}
	if len(res.Planets) != 10 {
		t.Errorf("planets = %d entries, want 10", len(res.Planets))
	}
	if len(res.Houses) != 14 {
		t.Errorf("houses = %d entries, want 14", len(res.Houses))
	}
	if _, ok := res.Houses["ascendant"]; !ok {
		t.Errorf("missing ascendant entry")
	}
	if _, ok := res.Houses["midheaven"]; !ok {
		t.Errorf("missing midheaven entry")
	}
	if res.InputData.JulianDay != 2447892.875 {
		t.Errorf("julian_day = %v, want 2447892.875", res.InputData.JulianDay)
	}
	if res.InputData.Latitude != 41.0082 || res.InputData.Longitude != 28.9784 {
		t.Errorf("echoed coordinates = %v, %v", res.InputData.Latitude, res.InputData.Longitude)
	}
	if res.ChartInfo.Ephemeris != "Swiss Ephemeris" || res.ChartInfo.HouseSystem != "Placidus" {
		t.Errorf("chart_info = %+v", res.ChartInfo)
	}
	if res.ChartInfo.CalculationTime == "" {
		t.Errorf("calculation_time is empty")
	}
}

func TestCalculatePostBody(t *testing.T) {
	h := testHandler()
	body := `{"birth_date":"1990-01-01","birth_time":"12:00","timezone_offset":3}`
	r := httptest.NewRequest(http.MethodPost, "/api/horoscope", strings.NewReader(body))

	w := doRequest(t, h, r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", w.Code, w.Body.String())
	}

	var res dto.HoroscopeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// No coordinates supplied and no location: the default pair applies.
	if res.InputData.Latitude != 41.0082 || res.InputData.Longitude != 28.9784 {
		t.Errorf("default coordinates not applied: %v, %v", res.InputData.Latitude, res.InputData.Longitude)
	}
	if res.InputData.JulianDay != 2447892.875 {
		t.Errorf("julian_day = %v, want 2447892.875", res.InputData.JulianDay)
	}
}

func TestCalculateMissingRequiredFields(t *testing.T) {
	cases := []struct {
		name   string
		target string
	}{
		{"missing birth_date", "/api/horoscope?birth_time=12:00"},
		{"missing birth_time", "/api/horoscope?birth_date=1990-01-01"},
		{"missing both", "/api/horoscope"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := testHandler()
			w := doRequest(t, h, httptest.NewRequest(http.MethodGet, tc.target, nil))

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}

			var res dto.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if res.Success {
				t.Errorf("success = true on validation failure")
			}
			if res.Example == nil {
				t.Errorf("example payload missing")
			}
		})
	}
}

func TestCalculateBadDateOrTime(t *testing.T) {
	cases := []string{
		"/api/horoscope?birth_date=1990/01/01&birth_time=12:00",
		"/api/horoscope?birth_date=1990-01-01&birth_time=25:61",
	}

	for _, target := range cases {
		h := testHandler()
		w := doRequest(t, h, httptest.NewRequest(http.MethodGet, target, nil))

		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d, want 400", target, w.Code)
		}

		var res dto.ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if res.Error != "Invalid date or time format" {
			t.Errorf("%s: error = %q", target, res.Error)
		}
	}
}

func TestCalculateBadNumericParams(t *testing.T) {
	cases := []string{
		"/api/horoscope?birth_date=1990-01-01&birth_time=12:00&latitude=north",
		"/api/horoscope?birth_date=1990-01-01&birth_time=12:00&longitude=east",
		"/api/horoscope?birth_date=1990-01-01&birth_time=12:00&timezone_offset=3.5",
	}

	for _, target := range cases {
		h := testHandler()
		w := doRequest(t, h, httptest.NewRequest(http.MethodGet, target, nil))
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", target, w.Code)
		}
	}
}

func TestCalculateOneBodyFailure(t *testing.T) {
	eph := testEphemeris()
	eph.FailBodies = map[string]bool{"Neptune": true}
	h := &HoroscopeHandler{Ephemeris: eph}

	r := httptest.NewRequest(http.MethodGet, "/api/horoscope?birth_date=1990-01-01&birth_time=12:00", nil)
	w := doRequest(t, h, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var res dto.HoroscopeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(res.Planets) != 10 {
		t.Fatalf("planets = %d entries, want 10", len(res.Planets))
	}

	neptune := res.Planets["Neptune"]
	if neptune.Sign != "Unknown" || neptune.SignDegree != "Error" {
		t.Errorf("Neptune = %+v, want sentinel", neptune)
	}

	for _, body := range domain.Bodies {
		if body == "Neptune" {
			continue
		}
		if res.Planets[body].Sign == "Unknown" {
			t.Errorf("%s unexpectedly marked Unknown", body)
		}
	}
}

func TestCalculateGeocodesLocation(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinates{Lat: 51.5074, Lon: -0.1278}}
	h := &HoroscopeHandler{Ephemeris: testEphemeris(), Geocoder: geocoder}

	r := httptest.NewRequest(http.MethodGet,
		"/api/horoscope?birth_date=1990-01-01&birth_time=12:00&location=London", nil)
	w := doRequest(t, h, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if geocoder.calls != 1 {
		t.Errorf("geocoder calls = %d, want 1", geocoder.calls)
	}

	var res dto.HoroscopeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if res.InputData.Latitude != 51.5074 {
		t.Errorf("latitude = %v, want geocoded 51.5074", res.InputData.Latitude)
	}
}

func TestCalculateExplicitCoordinatesSkipGeocoding(t *testing.T) {
	geocoder := &stubGeocoder{coord: domain.Coordinates{Lat: 51.5074, Lon: -0.1278}}
	h := &HoroscopeHandler{Ephemeris: testEphemeris(), Geocoder: geocoder}

	r := httptest.NewRequest(http.MethodGet,
		"/api/horoscope?birth_date=1990-01-01&birth_time=12:00&latitude=39.9334&longitude=32.8597&location=London", nil)
	w := doRequest(t, h, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if geocoder.calls != 0 {
		t.Errorf("geocoder calls = %d, want 0", geocoder.calls)
	}
}

func TestCalculateMethodNotAllowed(t *testing.T) {
	h := testHandler()
	w := doRequest(t, h, httptest.NewRequest(http.MethodDelete, "/api/horoscope", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", w.Code)
	}
}
