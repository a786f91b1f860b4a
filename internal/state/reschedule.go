package state

import (
	"context"
	"sync"
	"time"

	"github.com/dentabook/booking-client/internal/api"
	"github.com/dentabook/booking-client/internal/model"
	"github.com/dentabook/booking-client/internal/schedule"
	apperrors "github.com/dentabook/booking-client/pkg/errors"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

// RescheduleState holds the working draft for moving an existing
// appointment. It mirrors the booking wizard's shape but is seeded
// from the appointment under change and lives only until commit or
// cancel. The hydrated office and dentist are independently fetched
// copies, never references into BookingState.
type RescheduleState struct {
	mu       sync.Mutex
	api      *api.Client
	log      *logger.Logger
	identity identityFn

	fetchOffice  *Tracker
	fetchDentist *Tracker
	commit       *Tracker

	appointmentID string
	date          string
	timeLabel     string
	serviceID     string
	serviceName   string
	officeID      string
	dentistID     string
	office        *model.Office
	dentist       *model.Dentist
	rescheduling  bool

	// onCommitted signals the originating appointment list to refresh
	// after a successful commit.
	onCommitted func()
}

func NewRescheduleState(client *api.Client, log *logger.Logger, m *metrics.Metrics, identity identityFn) *RescheduleState {
	if log == nil {
		log = logger.Nop()
	}
	return &RescheduleState{
		api:          client,
		log:          log.WithComponent("reschedule"),
		identity:     identity,
		fetchOffice:  NewTracker("fetch_office_details", m),
		fetchDentist: NewTracker("fetch_dentist_details", m),
		commit:       NewTracker("reschedule_appointment", m),
	}
}

// SetRefreshHook registers the callback fired after a successful
// commit.
func (r *RescheduleState) SetRefreshHook(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onCommitted = fn
}

// Initiate seeds the draft from an existing appointment and hydrates
// the full office and dentist records. The two fetches run
// independently; either may fail without blocking the other, leaving
// the corresponding field nil and the flow degraded but alive.
func (r *RescheduleState) Initiate(ctx context.Context, appt model.Appointment) {
	r.mu.Lock()
	r.rescheduling = true
	r.appointmentID = appt.ID
	r.date = appt.Date
	r.timeLabel = appt.Time
	r.serviceID = appt.ServiceID
	r.serviceName = appt.ServiceName
	r.officeID = appt.OfficeID
	r.dentistID = appt.DentistID
	r.office = nil
	r.dentist = nil
	officeID, dentistID := r.officeID, r.dentistID
	r.mu.Unlock()

	var wg sync.WaitGroup
	if officeID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.hydrateOffice(ctx, officeID)
		}()
	}
	if dentistID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.hydrateDentist(ctx, dentistID)
		}()
	}
	wg.Wait()
}

func (r *RescheduleState) hydrateOffice(ctx context.Context, id string) {
	gen := r.fetchOffice.Begin()
	office, err := r.api.GetOffice(ctx, id)
	if err != nil {
		r.fetchOffice.Reject(gen, messageOf(err))
		r.log.Warn(err, "office hydration failed", "officeId", id)
		return
	}
	if !r.fetchOffice.Fulfill(gen) {
		return
	}
	r.mu.Lock()
	r.office = office
	r.mu.Unlock()
}

func (r *RescheduleState) hydrateDentist(ctx context.Context, id string) {
	gen := r.fetchDentist.Begin()
	dentist, err := r.api.GetDentist(ctx, id)
	if err != nil {
		r.fetchDentist.Reject(gen, messageOf(err))
		r.log.Warn(err, "dentist hydration failed", "dentistId", id)
		return
	}
	if !r.fetchDentist.Fulfill(gen) {
		return
	}
	r.mu.Lock()
	r.dentist = dentist
	r.mu.Unlock()
}

// SetDate mutates the draft without touching the original appointment.
func (r *RescheduleState) SetDate(date string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.rescheduling {
		return apperrors.State("no reschedule in progress")
	}
	r.date = date
	r.timeLabel = ""
	return nil
}

func (r *RescheduleState) SetTime(label string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.rescheduling {
		return apperrors.State("no reschedule in progress")
	}
	r.timeLabel = label
	return nil
}

// AvailableSlots computes bookable labels for the draft date. The
// original appointment's own slot stays selectable: availability is
// filtered only through the dentist exception list, and committing
// back to the unchanged slot is a no-op update on the server.
func (r *RescheduleState) AvailableSlots(now time.Time) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.office == nil || r.dentist == nil || r.date == "" {
		return nil
	}
	return schedule.Available(r.office.HoursFor(r.date), r.date, schedule.DefaultInterval, r.dentist.UnavailableSlots, now)
}

// Commit moves the appointment. Success clears the draft and fires the
// refresh hook; failure preserves the draft, rescheduling flag
// included, so the user can retry.
func (r *RescheduleState) Commit(ctx context.Context) (*model.Appointment, error) {
	r.mu.Lock()
	if !r.rescheduling || r.appointmentID == "" {
		r.mu.Unlock()
		return nil, apperrors.State("no reschedule in progress")
	}
	if r.date == "" || r.timeLabel == "" {
		r.mu.Unlock()
		return nil, apperrors.State("please select both date and time")
	}

	req := &model.RescheduleRequest{
		NewDate:   r.date,
		NewTime:   r.timeLabel,
		ServiceID: r.serviceID,
		OfficeID:  r.officeID,
		DentistID: r.dentistID,
	}
	id := r.appointmentID
	hook := r.onCommitted
	r.mu.Unlock()

	var token string
	if r.identity != nil {
		_, token = r.identity()
	}

	gen := r.commit.Begin()
	appt, err := r.api.RescheduleAppointment(ctx, id, req, token)
	if err != nil {
		r.commit.Reject(gen, messageOf(err))
		return nil, err
	}
	if !r.commit.Fulfill(gen) {
		return nil, apperrors.State("reschedule superseded")
	}

	r.clear()
	r.log.Info("appointment rescheduled", "id", id, "date", req.NewDate, "time", req.NewTime)
	if hook != nil {
		hook()
	}
	return appt, nil
}

// Cancel abandons the draft without committing.
func (r *RescheduleState) Cancel() {
	r.clear()
}

func (r *RescheduleState) clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rescheduling = false
	r.appointmentID = ""
	r.date = ""
	r.timeLabel = ""
	r.serviceID = ""
	r.serviceName = ""
	r.officeID = ""
	r.dentistID = ""
	r.office = nil
	r.dentist = nil
}

func (r *RescheduleState) IsRescheduling() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rescheduling
}

// Draft exposes the working copy for display.
func (r *RescheduleState) Draft() (appointmentID, date, timeLabel string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appointmentID, r.date, r.timeLabel
}

func (r *RescheduleState) Office() *model.Office {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.office
}

func (r *RescheduleState) Dentist() *model.Dentist {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dentist
}

// Loading reports whether any reschedule request is in flight.
func (r *RescheduleState) Loading() bool {
	return r.fetchOffice.Loading() || r.fetchDentist.Loading() || r.commit.Loading()
}

// Err surfaces the most relevant pending error message.
func (r *RescheduleState) Err() string {
	if msg := r.commit.Err(); msg != "" {
		return msg
	}
	if msg := r.fetchOffice.Err(); msg != "" {
		return msg
	}
	return r.fetchDentist.Err()
}
