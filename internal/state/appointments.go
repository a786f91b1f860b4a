package state

import (
	"context"
	"sync"

	"github.com/dentabook/booking-client/internal/api"
	"github.com/dentabook/booking-client/internal/model"
	apperrors "github.com/dentabook/booking-client/pkg/errors"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

// AppointmentList backs the appointments screen: the signed-in user's
// bookings, with cancel and a staleness flag the reschedule flow flips
// after a successful commit.
type AppointmentList struct {
	mu       sync.Mutex
	api      *api.Client
	log      *logger.Logger
	identity identityFn
	fetch    *Tracker
	cancel   *Tracker

	appointments []model.Appointment
	stale        bool
}

func NewAppointmentList(client *api.Client, log *logger.Logger, m *metrics.Metrics, identity identityFn) *AppointmentList {
	if log == nil {
		log = logger.Nop()
	}
	return &AppointmentList{
		api:      client,
		log:      log.WithComponent("appointments"),
		identity: identity,
		fetch:    NewTracker("fetch_appointments", m),
		cancel:   NewTracker("cancel_appointment", m),
	}
}

// Fetch loads the user's appointments. Requires a signed-in session.
func (l *AppointmentList) Fetch(ctx context.Context) error {
	var user *model.User
	var token string
	if l.identity != nil {
		user, token = l.identity()
	}
	if user == nil {
		return apperrors.State("sign in to view appointments")
	}

	gen := l.fetch.Begin()
	appts, err := l.api.ListUserAppointments(ctx, user.ID, token)
	if err != nil {
		l.fetch.Reject(gen, messageOf(err))
		return err
	}
	if !l.fetch.Fulfill(gen) {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.appointments = appts
	l.stale = false
	return nil
}

// Cancel cancels one appointment and drops it from the local list.
// Repeat cancels are a no-op success.
func (l *AppointmentList) Cancel(ctx context.Context, id string) error {
	var token string
	if l.identity != nil {
		_, token = l.identity()
	}

	gen := l.cancel.Begin()
	if err := l.api.CancelAppointment(ctx, id, token); err != nil {
		l.cancel.Reject(gen, messageOf(err))
		return err
	}
	if !l.cancel.Fulfill(gen) {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	kept := l.appointments[:0]
	for _, appt := range l.appointments {
		if appt.ID != id {
			kept = append(kept, appt)
		}
	}
	l.appointments = kept
	l.log.Info("appointment cancelled", "id", id)
	return nil
}

// MarkStale flags the list for refresh; the reschedule flow calls this
// after a successful commit.
func (l *AppointmentList) MarkStale() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stale = true
}

func (l *AppointmentList) Stale() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stale
}

func (l *AppointmentList) Appointments() []model.Appointment {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.appointments
}

func (l *AppointmentList) Loading() bool { return l.fetch.Loading() || l.cancel.Loading() }

func (l *AppointmentList) Err() string {
	if msg := l.fetch.Err(); msg != "" {
		return msg
	}
	return l.cancel.Err()
}
