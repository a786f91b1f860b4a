// Package geo ranks offices by great-circle distance from the user.
// Short-range local search only; no antimeridian or pole handling.
package geo

import (
	"math"
	"sort"

	"github.com/dentabook/booking-client/internal/model"
)

// EarthRadiusKM is the mean Earth radius used by the haversine formula.
const EarthRadiusKM = 6371.0

// RankedOffice annotates an office with its computed distance.
type RankedOffice struct {
	model.Office
	DistanceKM float64 `json:"distance"`
}

// Distance computes the haversine great-circle distance in kilometres.
func Distance(a, b model.Coordinate) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKM * c
}

// Rank sorts offices ascending by distance from the user, ties broken
// by stable input order.
func Rank(user model.Coordinate, offices []model.Office) []RankedOffice {
	ranked := make([]RankedOffice, 0, len(offices))
	for _, office := range offices {
		ranked = append(ranked, RankedOffice{
			Office:     office,
			DistanceKM: Distance(user, office.Location),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKM < ranked[j].DistanceKM
	})
	return ranked
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
