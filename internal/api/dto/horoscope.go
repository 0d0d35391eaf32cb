package dto

// HoroscopeRequest is the field set shared by the query-parameter and JSON
// body forms of the horoscope endpoint. Optional numeric fields are pointers
// so absent and zero can be told apart.
type HoroscopeRequest struct {
	BirthDate      string   `json:"birth_date"`
	BirthTime      string   `json:"birth_time"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	TimezoneOffset *int     `json:"timezone_offset"`
	Location       string   `json:"location"`
}

// PlacementResponse is one body or house-cusp entry.
type PlacementResponse struct {
	Longitude  float64 `json:"longitude"`
	Sign       string  `json:"sign"`
	Degree     float64 `json:"degree"`
	SignDegree string  `json:"sign_degree"`
}

// InputData echoes the effective inputs plus the derived Julian Day.
type InputData struct {
	BirthDate      string  `json:"birth_date"`
	BirthTime      string  `json:"birth_time"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	TimezoneOffset int     `json:"timezone_offset"`
	JulianDay      float64 `json:"julian_day"`
}

type ChartInfo struct {
	CalculationTime string `json:"calculation_time"`
	Ephemeris       string `json:"ephemeris"`
	HouseSystem     string `json:"house_system"`
}

type HoroscopeResponse struct {
	Success   bool                         `json:"success"`
	Message   string                       `json:"message"`
	InputData InputData                    `json:"input_data"`
	Planets   map[string]PlacementResponse `json:"planets"`
	Houses    map[string]PlacementResponse `json:"houses"`
	ChartInfo ChartInfo                    `json:"chart_info"`
}

// ExamplePayload shows callers the expected request shape on validation
// failures.
type ExamplePayload struct {
	BirthDate      string  `json:"birth_date"`
	BirthTime      string  `json:"birth_time"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	TimezoneOffset int     `json:"timezone_offset"`
}

type ErrorResponse struct {
	Success   bool            `json:"success"`
	Error     string          `json:"error"`
	Example   *ExamplePayload `json:"example,omitempty"`
	InputData any             `json:"input_data,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}
