package mockapi

import "github.com/dentabook/booking-client/internal/model"

// seed loads the development data set: two offices with full catalogs
// and three dentists with a handful of blocked slots.
func (s *Server) seed() {
	weekdays := map[string]string{
		"Monday":    "09:00 AM - 05:00 PM",
		"Tuesday":   "09:00 AM - 05:00 PM",
		"Wednesday": "09:00 AM - 05:00 PM",
		"Thursday":  "09:00 AM - 05:00 PM",
		"Friday":    "09:00 AM - 05:00 PM",
		"Saturday":  "10:00 AM - 02:00 PM",
		"Sunday":    "Closed",
	}

	smile := model.Office{
		ID:      "office-smile",
		Name:    "Smile Dental Care",
		Address: "12 Elm Street",
		City:    "Springfield",
		Zip:     "62701",
		Location: model.Coordinate{
			Lat: 39.7817,
			Lng: -89.6501,
		},
		Rating:       4.6,
		OpeningHours: weekdays,
		Services: []model.Service{
			{ID: "svc-cleaning", Name: "Teeth Cleaning", Price: 80, Description: "Routine cleaning and polish"},
			{ID: "svc-whitening", Name: "Teeth Whitening", Price: 200, Description: "In-office whitening session"},
			{ID: "svc-rootcanal", Name: "Root Canal", Price: 650, Description: "Single-canal treatment"},
		},
	}

	river := model.Office{
		ID:      "office-river",
		Name:    "Riverside Family Dentistry",
		Address: "480 Harbor Avenue",
		City:    "Springfield",
		Zip:     "62704",
		Location: model.Coordinate{
			Lat: 39.7990,
			Lng: -89.6440,
		},
		Rating:       4.3,
		OpeningHours: weekdays,
		Services: []model.Service{
			{ID: "svc-cleaning", Name: "Teeth Cleaning", Price: 75, Description: "Routine cleaning and polish"},
			{ID: "svc-braces", Name: "Braces Consultation", Price: 120, Description: "Orthodontic assessment"},
		},
	}

	s.offices[smile.ID] = smile
	s.offices[river.ID] = river

	dentists := []model.Dentist{
		{
			ID:          "dentist-patel",
			Name:        "Dr. Anita Patel",
			OfficeID:    smile.ID,
			Rating:      4.8,
			Specialties: []string{"General Dentistry"},
			ServiceIDs:  []string{"svc-cleaning", "svc-whitening"},
			UnavailableSlots: []model.UnavailableDay{
				{Date: "2026-09-07", Times: []string{"09:00 AM", "09:30 AM"}},
			},
		},
		{
			ID:          "dentist-okafor",
			Name:        "Dr. Chidi Okafor",
			OfficeID:    smile.ID,
			Rating:      4.5,
			Specialties: []string{"Endodontics"},
			ServiceIDs:  []string{"svc-cleaning", "svc-rootcanal"},
		},
		{
			ID:          "dentist-lindgren",
			Name:        "Dr. Maja Lindgren",
			OfficeID:    river.ID,
			Rating:      4.4,
			Specialties: []string{"Orthodontics"},
			ServiceIDs:  []string{"svc-cleaning", "svc-braces"},
		},
	}
	for _, d := range dentists {
		s.dentists[d.ID] = d
	}
}
