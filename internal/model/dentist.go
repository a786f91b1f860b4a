package model

// UnavailableDay is one exception entry layered on top of a dentist's
// computed availability: the listed time labels are not bookable on
// that date.
type UnavailableDay struct {
	Date  string   `json:"date"`
	Times []string `json:"times"`
}

// Dentist is a practitioner tied to one office, supporting a subset of
// that office's services.
type Dentist struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	OfficeID         string           `json:"officeId"`
	Rating           float64          `json:"rating,omitempty"`
	Specialties      []string         `json:"specialties,omitempty"`
	ServiceIDs       []string         `json:"serviceIds,omitempty"`
	UnavailableSlots []UnavailableDay `json:"unavailableSlots,omitempty"`
}

// SupportsService reports whether the service is in the dentist's
// capability set.
func (d *Dentist) SupportsService(serviceID string) bool {
	for _, id := range d.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}

// UnavailableOn returns the exception time labels for the exact date,
// or nil when the date carries no exceptions.
func (d *Dentist) UnavailableOn(date string) []string {
	for _, day := range d.UnavailableSlots {
		if day.Date == date {
			return day.Times
		}
	}
	return nil
}
