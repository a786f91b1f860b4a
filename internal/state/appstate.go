// Package state holds the application's client-side state containers:
// the booking wizard, the reschedule draft, the session and the
// supporting lists. Containers own disjoint slices of state and are
// wired together through an explicit AppState rather than any global.
package state

import (
	"github.com/dentabook/booking-client/internal/api"
	"github.com/dentabook/booking-client/internal/storage"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

// AppState is the application's central store. Each container is
// independently owned; nothing is shared-mutable across them except by
// value copy.
type AppState struct {
	Session      *SessionState
	Booking      *BookingState
	Reschedule   *RescheduleState
	Offices      *OfficeDirectory
	Appointments *AppointmentList
}

// New wires the containers to the API client and persisted store. The
// reschedule flow's refresh hook is pointed at the appointment list so
// a successful commit marks it for refetch.
func New(client *api.Client, store storage.Store, log *logger.Logger, m *metrics.Metrics) *AppState {
	if log == nil {
		log = logger.Nop()
	}

	session := NewSessionState(client, store, log, m)
	app := &AppState{
		Session:      session,
		Booking:      NewBookingState(client, store, log, m, session.Identity),
		Reschedule:   NewRescheduleState(client, log, m, session.Identity),
		Offices:      NewOfficeDirectory(client, log, m),
		Appointments: NewAppointmentList(client, log, m, session.Identity),
	}
	app.Reschedule.SetRefreshHook(app.Appointments.MarkStale)
	return app
}
