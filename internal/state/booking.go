package state

import (
	"context"
	"sync"
	"time"

	"github.com/dentabook/booking-client/internal/api"
	"github.com/dentabook/booking-client/internal/model"
	"github.com/dentabook/booking-client/internal/schedule"
	"github.com/dentabook/booking-client/internal/storage"
	apperrors "github.com/dentabook/booking-client/pkg/errors"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

// Stage is the wizard step implied by which selections are populated.
type Stage int

const (
	StageOffice Stage = iota
	StageService
	StageDentist
	StageSchedule
	StageConfirm
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StageOffice:
		return "office"
	case StageService:
		return "service"
	case StageDentist:
		return "dentist"
	case StageSchedule:
		return "schedule"
	case StageConfirm:
		return "confirm"
	case StageComplete:
		return "complete"
	}
	return "unknown"
}

// PaymentState is the client-side view of the confirm step's outcome.
type PaymentState string

const (
	PaymentPending   PaymentState = "pending"
	PaymentCompleted PaymentState = "completed"
	PaymentFailed    PaymentState = "failed"
)

// identityFn supplies the signed-in user and bearer token at the
// moment a remote call needs them.
type identityFn func() (*model.User, string)

// BookingState is the multi-step wizard container. Selections form a
// dependency chain office → service → dentist → date/time; selecting
// upstream invalidates everything downstream. An unsatisfied chain is
// normal "incomplete" state, reported as a state error so the caller
// can disable the action rather than crash.
type BookingState struct {
	mu       sync.Mutex
	api      *api.Client
	mirror   *mirror
	log      *logger.Logger
	identity identityFn
	confirm  *Tracker

	office        *model.Office
	service       *model.Service
	dentist       *model.Dentist
	date          string
	timeLabel     string
	appointment   *model.Appointment
	paymentStatus PaymentState
}

func NewBookingState(client *api.Client, store storage.Store, log *logger.Logger, m *metrics.Metrics, identity identityFn) *BookingState {
	if log == nil {
		log = logger.Nop()
	}
	return &BookingState{
		api:           client,
		mirror:        newMirror(store, log, m),
		log:           log.WithComponent("booking"),
		identity:      identity,
		confirm:       NewTracker("confirm_appointment", m),
		paymentStatus: PaymentPending,
	}
}

// SelectOffice starts (or restarts) the chain. Everything chosen after
// the office is invalidated.
func (b *BookingState) SelectOffice(office model.Office) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.office = &office
	b.clearFromServiceLocked()
	b.mirror.setJSON(storage.KeySelectedOffice, office)
}

func (b *BookingState) SelectService(service model.Service) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.office == nil {
		return apperrors.State("select an office first")
	}
	b.service = &service
	b.clearFromDentistLocked()
	b.mirror.setJSON(storage.KeySelectedService, service)
	return nil
}

func (b *BookingState) SelectDentist(dentist model.Dentist) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.office == nil || b.service == nil {
		return apperrors.State("select an office and a service first")
	}
	b.dentist = &dentist
	b.clearFromDateLocked()
	b.mirror.setJSON(storage.KeySelectedDentist, dentist)
	return nil
}

func (b *BookingState) SelectDate(date string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dentist == nil {
		return apperrors.State("select a dentist first")
	}
	b.date = date
	// Changing the day invalidates the chosen time; the new day may
	// not offer it.
	b.timeLabel = ""
	b.mirror.setString(storage.KeySelectedDate, date)
	b.mirror.remove(storage.KeySelectedTime)
	return nil
}

func (b *BookingState) SelectTime(label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.dentist == nil {
		return apperrors.State("select a dentist first")
	}
	b.timeLabel = label
	b.mirror.setString(storage.KeySelectedTime, label)
	return nil
}

// DentistOptions narrows a dentist list to the selected office and
// service capability. The backend returns all dentists; filtering is
// client-side.
func (b *BookingState) DentistOptions(dentists []model.Dentist) []model.Dentist {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.office == nil || b.service == nil {
		return nil
	}
	var options []model.Dentist
	for _, d := range dentists {
		if d.OfficeID == b.office.ID && d.SupportsService(b.service.ID) {
			options = append(options, d)
		}
	}
	return options
}

// AvailableSlots computes the bookable time labels for the selected
// date. now is injected so the today-cutoff is reproducible.
func (b *BookingState) AvailableSlots(now time.Time) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.office == nil || b.dentist == nil || b.date == "" {
		return nil
	}
	return schedule.Available(b.office.HoursFor(b.date), b.date, schedule.DefaultInterval, b.dentist.UnavailableSlots, now)
}

// Confirm books the appointment. The full chain must be populated and
// a user signed in; otherwise the call is rejected before any network
// traffic. On failure the selections stay intact so the user can retry
// without re-selecting.
func (b *BookingState) Confirm(ctx context.Context) (*model.Appointment, error) {
	b.mu.Lock()
	if b.office == nil || b.service == nil || b.dentist == nil || b.date == "" || b.timeLabel == "" {
		b.mu.Unlock()
		return nil, apperrors.State("missing appointment details, please complete all steps")
	}

	var user *model.User
	var token string
	if b.identity != nil {
		user, token = b.identity()
	}
	if user == nil {
		b.mu.Unlock()
		return nil, apperrors.State("sign in to book an appointment")
	}

	// Denormalized display fields are snapshotted here, at booking
	// time, and never re-synced.
	req := &model.CreateAppointmentRequest{
		UserID:        user.ID,
		OfficeID:      b.office.ID,
		ServiceID:     b.service.ID,
		DentistID:     b.dentist.ID,
		Date:          b.date,
		Time:          b.timeLabel,
		Status:        model.AppointmentStatusConfirmed,
		PaymentStatus: model.PaymentStatusPaid,
		OfficeName:    b.office.Name,
		ServiceName:   b.service.Name,
		DentistName:   b.dentist.Name,
		ServicePrice:  b.service.Price,
		Location:      b.office.Location,
	}
	b.mu.Unlock()

	gen := b.confirm.Begin()
	appt, err := b.api.CreateAppointment(ctx, req, token)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		if b.confirm.Reject(gen, messageOf(err)) {
			b.paymentStatus = PaymentFailed
		}
		return nil, err
	}
	if !b.confirm.Fulfill(gen) {
		return nil, apperrors.State("booking superseded")
	}

	b.appointment = appt
	b.paymentStatus = PaymentCompleted
	b.mirror.setJSON(storage.KeyAppointmentDetails, appt)
	b.log.Info("appointment confirmed", "id", appt.ID, "date", appt.Date, "time", appt.Time)
	return appt, nil
}

// Clear resets the wizard and drops every mirrored selection. Called
// when starting a fresh booking or leaving the flow root.
func (b *BookingState) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.office = nil
	b.clearFromServiceLocked()
	b.appointment = nil
	b.paymentStatus = PaymentPending
	b.mirror.remove(
		storage.KeySelectedOffice,
		storage.KeyAppointmentDetails,
	)
}

// Stage reports the wizard step implied by the populated selections.
func (b *BookingState) Stage() Stage {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.appointment != nil:
		return StageComplete
	case b.office == nil:
		return StageOffice
	case b.service == nil:
		return StageService
	case b.dentist == nil:
		return StageDentist
	case b.date == "" || b.timeLabel == "":
		return StageSchedule
	}
	return StageConfirm
}

func (b *BookingState) Selection() (office *model.Office, service *model.Service, dentist *model.Dentist, date, timeLabel string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.office, b.service, b.dentist, b.date, b.timeLabel
}

func (b *BookingState) PaymentStatus() PaymentState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paymentStatus
}

func (b *BookingState) Appointment() *model.Appointment {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.appointment
}

func (b *BookingState) Loading() bool { return b.confirm.Loading() }
func (b *BookingState) Err() string   { return b.confirm.Err() }

func (b *BookingState) clearFromServiceLocked() {
	b.service = nil
	b.clearFromDentistLocked()
	b.mirror.remove(storage.KeySelectedService)
}

func (b *BookingState) clearFromDentistLocked() {
	b.dentist = nil
	b.clearFromDateLocked()
	b.mirror.remove(storage.KeySelectedDentist)
}

func (b *BookingState) clearFromDateLocked() {
	b.date = ""
	b.timeLabel = ""
	b.mirror.remove(storage.KeySelectedDate, storage.KeySelectedTime)
}
