// Package storage is the persisted key-value mirror of selected state
// fields. Writes are best-effort: the in-memory state containers remain
// the source of truth for the running session, storage only survives a
// restart.
package storage

import (
	"context"
	"errors"
)

// Keys mirrored by the state containers.
const (
	KeyUser               = "user"
	KeyToken              = "token"
	KeySelectedOffice     = "selectedOffice"
	KeySelectedService    = "selectedService"
	KeySelectedDentist    = "selectedDentist"
	KeySelectedDate       = "selectedDate"
	KeySelectedTime       = "selectedTime"
	KeyAppointmentDetails = "appointmentDetails"
)

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("storage: key not found")

// Store is the capability the state containers are handed. Values are
// serialized snapshots of the corresponding state field.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
