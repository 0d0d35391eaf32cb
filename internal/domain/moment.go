package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat reports a birth date or time that does not match the
// expected layouts. Callers map it to a client-visible validation error.
var ErrInvalidTimeFormat = errors.New("invalid date or time format")

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// BirthMoment is a civil date and time with a fixed UTC offset in whole hours.
// The offset is subtracted to reach UTC before any astronomical calculation;
// no daylight-saving or historical-offset rules are applied.
type BirthMoment struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int

	UTCOffsetHours int
}

// ParseBirthMoment builds a BirthMoment from "YYYY-MM-DD" and "HH:MM" strings.
func ParseBirthMoment(dateStr, timeStr string, utcOffsetHours int) (BirthMoment, error) {
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return BirthMoment{}, fmt.Errorf("parse birth date %q: %w", dateStr, ErrInvalidTimeFormat)
	}

	t, err := time.Parse(timeLayout, timeStr)
	if err != nil {
		return BirthMoment{}, fmt.Errorf("parse birth time %q: %w", timeStr, ErrInvalidTimeFormat)
	}

	return BirthMoment{
		Year:           d.Year(),
		Month:          int(d.Month()),
		Day:            d.Day(),
		Hour:           t.Hour(),
		Minute:         t.Minute(),
		UTCOffsetHours: utcOffsetHours,
	}, nil
}

// JulianDay converts the moment to a Julian Day Number on the UT timescale.
//
// The civil timestamp is shifted to UTC first, so an offset can roll the
// calendar date across midnight. The fractional day is derived from hour and
// minute only; seconds are not modeled.
func (m BirthMoment) JulianDay() float64 {
	local := time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, 0, 0, time.UTC)
	utc := local.Add(-time.Duration(m.UTCOffsetHours) * time.Hour)

	jdn := gregorianJDN(utc.Year(), int(utc.Month()), utc.Day())

	// jdn is the Julian Day Number at 12:00 UT of the calendar date.
	return float64(jdn) + float64(utc.Hour()-12)/24.0 + float64(utc.Minute())/1440.0
}

// ToJulianDay parses a civil date/time pair and converts it to a Julian Day.
// Pure and deterministic; identical inputs always yield the identical value.
func ToJulianDay(dateStr, timeStr string, utcOffsetHours int) (float64, error) {
	m, err := ParseBirthMoment(dateStr, timeStr, utcOffsetHours)
	if err != nil {
		return 0, err
	}

	return m.JulianDay(), nil
}

// Fliegel-Van Flandern day-count formula for the Gregorian calendar.
func gregorianJDN(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3

	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}
