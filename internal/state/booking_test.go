package state_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentabook/booking-client/internal/model"
	"github.com/dentabook/booking-client/internal/state"
	"github.com/dentabook/booking-client/internal/storage"
	apperrors "github.com/dentabook/booking-client/pkg/errors"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

func TestSelectionChainEnforced(t *testing.T) {
	e := newEnv(t)
	b := e.app.Booking

	assert.True(t, apperrors.IsState(b.SelectService(cleaningService())))
	assert.True(t, apperrors.IsState(b.SelectDentist(drPatel())))
	assert.True(t, apperrors.IsState(b.SelectDate("2026-09-08")))
	assert.True(t, apperrors.IsState(b.SelectTime("10:00 AM")))
	assert.Equal(t, state.StageOffice, b.Stage())
}

func TestUpstreamSelectionInvalidatesDownstream(t *testing.T) {
	e := newEnv(t)
	b := e.app.Booking
	selectChain(t, b)
	require.Equal(t, state.StageConfirm, b.Stage())

	// Re-selecting the office, even the same one, restarts the chain.
	b.SelectOffice(smileOffice())

	_, service, dentist, date, timeLabel := b.Selection()
	assert.Nil(t, service)
	assert.Nil(t, dentist)
	assert.Empty(t, date)
	assert.Empty(t, timeLabel)
	assert.Equal(t, state.StageService, b.Stage())

	// Mirrored selections are dropped along with the in-memory ones.
	_, err := e.store.Get(context.Background(), storage.KeySelectedService)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = e.store.Get(context.Background(), storage.KeySelectedTime)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSelectDateClearsTime(t *testing.T) {
	e := newEnv(t)
	b := e.app.Booking
	selectChain(t, b)

	require.NoError(t, b.SelectDate("2026-09-09"))

	_, _, _, date, timeLabel := b.Selection()
	assert.Equal(t, "2026-09-09", date)
	assert.Empty(t, timeLabel)
	assert.Equal(t, state.StageSchedule, b.Stage())
}

func TestDentistOptions(t *testing.T) {
	e := newEnv(t)
	b := e.app.Booking

	all := []model.Dentist{
		drPatel(),
		{ID: "dentist-okafor", OfficeID: "office-smile", ServiceIDs: []string{"svc-cleaning", "svc-rootcanal"}},
		{ID: "dentist-lindgren", OfficeID: "office-river", ServiceIDs: []string{"svc-cleaning"}},
	}

	// No office or service selected yet.
	assert.Nil(t, b.DentistOptions(all))

	b.SelectOffice(smileOffice())
	require.NoError(t, b.SelectService(cleaningService()))

	options := b.DentistOptions(all)
	require.Len(t, options, 2)
	assert.Equal(t, "dentist-patel", options[0].ID)
	assert.Equal(t, "dentist-okafor", options[1].ID)

	require.NoError(t, b.SelectService(model.Service{ID: "svc-whitening", Name: "Teeth Whitening"}))
	options = b.DentistOptions(all)
	require.Len(t, options, 1)
	assert.Equal(t, "dentist-patel", options[0].ID)
}

func TestAvailableSlotsRespectExceptions(t *testing.T) {
	e := newEnv(t)
	b := e.app.Booking
	b.SelectOffice(smileOffice())
	require.NoError(t, b.SelectService(cleaningService()))
	require.NoError(t, b.SelectDentist(drPatel()))

	// 2026-09-07 is a Monday with two blocked morning slots.
	require.NoError(t, b.SelectDate("2026-09-07"))

	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	slots := b.AvailableSlots(now)
	require.Len(t, slots, 14)
	assert.Equal(t, "10:00 AM", slots[0])
	assert.NotContains(t, slots, "09:00 AM")
	assert.NotContains(t, slots, "09:30 AM")
	assert.Equal(t, "04:30 PM", slots[len(slots)-1])
}

func TestConfirmIncompleteChain(t *testing.T) {
	e := newEnv(t)
	signIn(t, e)
	b := e.app.Booking
	b.SelectOffice(smileOffice())
	require.NoError(t, b.SelectService(cleaningService()))

	before := e.hits.Load()
	_, err := b.Confirm(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))
	assert.Equal(t, before, e.hits.Load())
}

func TestConfirmRequiresSession(t *testing.T) {
	e := newEnv(t)
	b := e.app.Booking
	selectChain(t, b)

	before := e.hits.Load()
	_, err := b.Confirm(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsState(err))
	assert.Equal(t, before, e.hits.Load())
	assert.Equal(t, state.PaymentPending, b.PaymentStatus())
}

func TestConfirmBooksAppointment(t *testing.T) {
	e := newEnv(t)
	user := signIn(t, e)
	b := e.app.Booking
	selectChain(t, b)

	appt, err := b.Confirm(context.Background())
	require.NoError(t, err)
	require.NotNil(t, appt)

	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, user.ID, appt.UserID)
	assert.Equal(t, model.AppointmentStatusConfirmed, appt.Status)
	assert.Equal(t, model.PaymentStatusPaid, appt.PaymentStatus)
	// Display snapshots captured at booking time.
	assert.Equal(t, "Smile Dental Care", appt.OfficeName)
	assert.Equal(t, "Teeth Cleaning", appt.ServiceName)
	assert.Equal(t, "Dr. Anita Patel", appt.DentistName)
	assert.Equal(t, 80.0, appt.ServicePrice)

	assert.Equal(t, state.StageComplete, b.Stage())
	assert.Equal(t, state.PaymentCompleted, b.PaymentStatus())
	assert.NotNil(t, b.Appointment())

	stored, err := e.store.Get(context.Background(), storage.KeyAppointmentDetails)
	require.NoError(t, err)
	assert.Contains(t, stored, appt.ID)
}

func TestConfirmFailureKeepsSelections(t *testing.T) {
	e := failingEnv(t)
	b := state.NewBookingState(e.client, e.store, logger.Nop(), metrics.New("test", prometheus.NewRegistry()),
		func() (*model.User, string) { return &model.User{ID: "u1"}, "tok" })
	selectChain(t, b)

	_, err := b.Confirm(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))

	assert.Equal(t, state.PaymentFailed, b.PaymentStatus())
	assert.Equal(t, "boom", b.Err())
	assert.False(t, b.Loading())

	// The user can retry without re-selecting anything.
	office, service, dentist, date, timeLabel := b.Selection()
	assert.NotNil(t, office)
	assert.NotNil(t, service)
	assert.NotNil(t, dentist)
	assert.Equal(t, "2026-09-08", date)
	assert.Equal(t, "10:00 AM", timeLabel)
	assert.Equal(t, state.StageConfirm, b.Stage())
}

func TestClearResetsWizard(t *testing.T) {
	e := newEnv(t)
	signIn(t, e)
	b := e.app.Booking
	selectChain(t, b)

	_, err := b.Confirm(context.Background())
	require.NoError(t, err)

	b.Clear()

	assert.Equal(t, state.StageOffice, b.Stage())
	assert.Nil(t, b.Appointment())
	assert.Equal(t, state.PaymentPending, b.PaymentStatus())

	for _, key := range []string{
		storage.KeySelectedOffice,
		storage.KeySelectedService,
		storage.KeySelectedDentist,
		storage.KeySelectedDate,
		storage.KeySelectedTime,
		storage.KeyAppointmentDetails,
	} {
		_, err := e.store.Get(context.Background(), key)
		assert.ErrorIs(t, err, storage.ErrNotFound, "key %s should be cleared", key)
	}
}
