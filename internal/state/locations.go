package state

import (
	"context"
	"sync"

	"github.com/dentabook/booking-client/internal/api"
	"github.com/dentabook/booking-client/internal/geo"
	"github.com/dentabook/booking-client/internal/model"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

// OfficeDirectory holds the nearby offices for the location-selection
// screen, ranked by distance from the user.
type OfficeDirectory struct {
	mu      sync.Mutex
	api     *api.Client
	log     *logger.Logger
	tracker *Tracker

	offices      []geo.RankedOffice
	userLocation *model.Coordinate
}

func NewOfficeDirectory(client *api.Client, log *logger.Logger, m *metrics.Metrics) *OfficeDirectory {
	if log == nil {
		log = logger.Nop()
	}
	return &OfficeDirectory{
		api:     client,
		log:     log.WithComponent("locations"),
		tracker: NewTracker("fetch_offices", m),
	}
}

// Fetch loads the office list and ranks it by proximity to the user.
func (d *OfficeDirectory) Fetch(ctx context.Context, user model.Coordinate) error {
	gen := d.tracker.Begin()
	offices, err := d.api.ListOffices(ctx)
	if err != nil {
		d.tracker.Reject(gen, messageOf(err))
		return err
	}
	if !d.tracker.Fulfill(gen) {
		return nil
	}

	ranked := geo.Rank(user, offices)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.offices = ranked
	d.userLocation = &user
	d.log.Debug("offices ranked", "count", len(ranked))
	return nil
}

// Offices returns the ranked list as last fetched.
func (d *OfficeDirectory) Offices() []geo.RankedOffice {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.offices
}

// Filter narrows the fetched list by a free-text query over name,
// address, city and zip. The underlying list is kept so clearing the
// query restores it without a refetch.
func (d *OfficeDirectory) Filter(query string) []geo.RankedOffice {
	d.mu.Lock()
	defer d.mu.Unlock()

	var matched []geo.RankedOffice
	for _, office := range d.offices {
		if office.MatchesQuery(query) {
			matched = append(matched, office)
		}
	}
	return matched
}

func (d *OfficeDirectory) UserLocation() *model.Coordinate {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.userLocation
}

func (d *OfficeDirectory) Loading() bool { return d.tracker.Loading() }
func (d *OfficeDirectory) Err() string   { return d.tracker.Err() }
