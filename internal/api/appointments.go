package api

import (
	"context"
	"net/http"

	"github.com/dentabook/booking-client/internal/model"
)

// CreateAppointment books an appointment. The server treats the call
// as a single atomic operation; the client performs no multi-step
// commit.
func (c *Client) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest, token string) (*model.Appointment, error) {
	var appt model.Appointment
	if err := c.do(ctx, http.MethodPost, "/appointments", req, &appt, token); err != nil {
		return nil, err
	}
	return &appt, nil
}

// ListUserAppointments returns the user's appointments. Requires a
// bearer token.
func (c *Client) ListUserAppointments(ctx context.Context, userID, token string) ([]model.Appointment, error) {
	var appts []model.Appointment
	if err := c.do(ctx, http.MethodGet, "/appointments/user/"+userID, nil, &appts, token); err != nil {
		return nil, err
	}
	return appts, nil
}

// CancelAppointment cancels by id. Idempotent from the client's view:
// a repeat cancel that the server reports as already gone is a no-op
// success.
func (c *Client) CancelAppointment(ctx context.Context, id, token string) error {
	err := c.do(ctx, http.MethodDelete, "/appointments/cancel/"+id, nil, nil, token)
	if err != nil && StatusOf(err) == http.StatusNotFound {
		return nil
	}
	return err
}

// RescheduleAppointment moves an existing appointment to a new slot.
func (c *Client) RescheduleAppointment(ctx context.Context, id string, req *model.RescheduleRequest, token string) (*model.Appointment, error) {
	var appt model.Appointment
	if err := c.do(ctx, http.MethodPut, "/appointments/reschedule/"+id, req, &appt, token); err != nil {
		return nil, err
	}
	return &appt, nil
}
