package utils

import "time"

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD trip date. Empty input yields the zero time and no error.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}

// OptionalDate turns an empty date string into nil for nullable date columns.
func OptionalDate(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// TripDays counts calendar days in [start, end]; 0 when either bound is missing or reversed.
func TripDays(start, end string) int {
	s, err := ParseDate(start)
	if err != nil || s.IsZero() {
		return 0
	}
	e, err := ParseDate(end)
	if err != nil || e.IsZero() || e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}
