package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentabook/booking-client/internal/api"
	"github.com/dentabook/booking-client/internal/mockapi"
	"github.com/dentabook/booking-client/internal/model"
	apperrors "github.com/dentabook/booking-client/pkg/errors"
	"github.com/dentabook/booking-client/pkg/logger"
)

func newTestClient(t *testing.T) *api.Client {
	t.Helper()
	server := mockapi.NewServer(mockapi.Config{}, logger.Nop())
	ts := httptest.NewServer(server.Engine())
	t.Cleanup(ts.Close)
	return api.NewClient(api.Config{BaseURL: ts.URL}, logger.Nop())
}

func signup(t *testing.T, client *api.Client) *model.AuthResponse {
	t.Helper()
	resp, err := client.Signup(context.Background(), &model.SignupRequest{
		Name:     "Test User",
		Email:    "test@dentabook.dev",
		Phone:    "5551234567",
		Password: "passw0rd",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	return resp
}

func book(t *testing.T, client *api.Client, auth *model.AuthResponse) *model.Appointment {
	t.Helper()
	appt, err := client.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		UserID:        auth.User.ID,
		OfficeID:      "office-smile",
		ServiceID:     "svc-cleaning",
		DentistID:     "dentist-patel",
		Date:          "2026-09-08",
		Time:          "10:00 AM",
		Status:        model.AppointmentStatusConfirmed,
		PaymentStatus: model.PaymentStatusPaid,
	}, auth.Token)
	require.NoError(t, err)
	return appt
}

func TestListAndGetOffices(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	offices, err := client.ListOffices(ctx)
	require.NoError(t, err)
	require.Len(t, offices, 2)
	// List form omits detail.
	assert.Nil(t, offices[0].Services)
	assert.Nil(t, offices[0].OpeningHours)

	office, err := client.GetOffice(ctx, offices[0].ID)
	require.NoError(t, err)
	assert.NotEmpty(t, office.Services)
	assert.NotEmpty(t, office.OpeningHours)
}

func TestGetOfficeNotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.GetOffice(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
	assert.Equal(t, http.StatusNotFound, api.StatusOf(err))
}

func TestListDentists(t *testing.T) {
	client := newTestClient(t)

	dentists, err := client.ListDentists(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, dentists)

	dentist, err := client.GetDentist(context.Background(), dentists[0].ID)
	require.NoError(t, err)
	assert.Equal(t, dentists[0].ID, dentist.ID)
}

func TestSignupLoginFlow(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	signup(t, client)

	resp, err := client.Login(ctx, &model.LoginRequest{Email: "test@dentabook.dev", Password: "passw0rd"})
	require.NoError(t, err)
	assert.Equal(t, "test@dentabook.dev", resp.User.Email)

	_, err = client.Login(ctx, &model.LoginRequest{Email: "test@dentabook.dev", Password: "wrong0pass"})
	require.Error(t, err)
	// The server-supplied message travels verbatim.
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "invalid email or password", appErr.Message)
}

func TestAppointmentLifecycle(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	auth := signup(t, client)

	appt := book(t, client, auth)
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, model.AppointmentStatusConfirmed, appt.Status)

	appts, err := client.ListUserAppointments(ctx, auth.User.ID, auth.Token)
	require.NoError(t, err)
	require.Len(t, appts, 1)

	moved, err := client.RescheduleAppointment(ctx, appt.ID, &model.RescheduleRequest{
		NewDate: "2026-09-09",
		NewTime: "11:00 AM",
	}, auth.Token)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-09", moved.Date)
	assert.Equal(t, "11:00 AM", moved.Time)

	require.NoError(t, client.CancelAppointment(ctx, appt.ID, auth.Token))
	// Repeating the cancel is a no-op success.
	require.NoError(t, client.CancelAppointment(ctx, appt.ID, auth.Token))
	// So is cancelling something that never existed.
	require.NoError(t, client.CancelAppointment(ctx, "ghost", auth.Token))
}

func TestListAppointmentsRequiresToken(t *testing.T) {
	client := newTestClient(t)

	_, err := client.ListUserAppointments(context.Background(), "u1", "")
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, api.StatusOf(err))
}

func TestDoubleBookingConflict(t *testing.T) {
	client := newTestClient(t)
	auth := signup(t, client)
	book(t, client, auth)

	_, err := client.CreateAppointment(context.Background(), &model.CreateAppointmentRequest{
		UserID:    auth.User.ID,
		OfficeID:  "office-smile",
		ServiceID: "svc-cleaning",
		DentistID: "dentist-patel",
		Date:      "2026-09-08",
		Time:      "10:00 AM",
	}, auth.Token)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, api.StatusOf(err))
}

func TestMalformedPayloadIsNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"this is": not json`))
	}))
	t.Cleanup(ts.Close)

	client := api.NewClient(api.Config{BaseURL: ts.URL}, logger.Nop())
	_, err := client.ListOffices(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	client := api.NewClient(api.Config{BaseURL: "http://127.0.0.1:1"}, logger.Nop())

	_, err := client.ListOffices(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsNetwork(err))
}
