package model

import "strings"

// Service is one entry of an office's service catalog.
type Service struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// Office is a bookable physical location. The list endpoint returns it
// without Services and OpeningHours; the detail endpoint fills both.
// Immutable once fetched for the active session.
type Office struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Address      string            `json:"address"`
	City         string            `json:"city,omitempty"`
	Zip          string            `json:"zip,omitempty"`
	Location     Coordinate        `json:"location"`
	Rating       float64           `json:"rating,omitempty"`
	OpeningHours map[string]string `json:"openingHours,omitempty"`
	Services     []Service         `json:"services,omitempty"`
}

// HoursFor returns the opening-hours entry for the weekday of the given
// calendar date, or "" when the table has no entry.
func (o *Office) HoursFor(date string) string {
	day, err := Weekday(date)
	if err != nil {
		return ""
	}
	return o.OpeningHours[day]
}

// ServiceByID looks a service up in the office catalog.
func (o *Office) ServiceByID(id string) (Service, bool) {
	for _, svc := range o.Services {
		if svc.ID == id {
			return svc, true
		}
	}
	return Service{}, false
}

// MatchesQuery reports whether the office matches a free-text search
// over name, address, city and zip.
func (o *Office) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.Name), q) ||
		strings.Contains(strings.ToLower(o.Address), q) ||
		strings.Contains(strings.ToLower(o.City), q) ||
		strings.Contains(o.Zip, q)
}
