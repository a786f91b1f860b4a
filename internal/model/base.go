package model

import "time"

// Wire formats shared by the backend and the booking flows. Dates travel
// as calendar strings and times as office-local 12-hour labels, matching
// the opening-hours strings the offices publish.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "03:04 PM"
)

// Coordinate is a WGS84 point
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// FormatDate renders t as a calendar date string.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Weekday returns the weekday name ("Monday"…) for a calendar date
// string, used to index an office's opening-hours table.
func Weekday(date string) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.Weekday().String(), nil
}
