package state_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/dentabook/booking-client/internal/api"
	"github.com/dentabook/booking-client/internal/mockapi"
	"github.com/dentabook/booking-client/internal/model"
	"github.com/dentabook/booking-client/internal/state"
	"github.com/dentabook/booking-client/internal/storage"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

type env struct {
	app    *state.AppState
	client *api.Client
	store  *storage.MemoryStore
	hits   *atomic.Int64
}

// newEnv builds an AppState against the fixture backend, counting every
// request that reaches the server so tests can assert "no network call".
func newEnv(t *testing.T) *env {
	t.Helper()
	engine := mockapi.NewServer(mockapi.Config{}, logger.Nop()).Engine()

	hits := &atomic.Int64{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		engine.ServeHTTP(w, r)
	}))
	t.Cleanup(ts.Close)

	client := api.NewClient(api.Config{BaseURL: ts.URL}, logger.Nop())
	store := storage.NewMemoryStore()
	app := state.New(client, store, logger.Nop(), metrics.New("test", prometheus.NewRegistry()))
	return &env{app: app, client: client, store: store, hits: hits}
}

// failingEnv answers every request with a server error.
func failingEnv(t *testing.T) *env {
	t.Helper()
	hits := &atomic.Int64{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	t.Cleanup(ts.Close)

	client := api.NewClient(api.Config{BaseURL: ts.URL}, logger.Nop())
	store := storage.NewMemoryStore()
	app := state.New(client, store, logger.Nop(), metrics.New("test", prometheus.NewRegistry()))
	return &env{app: app, client: client, store: store, hits: hits}
}

func signIn(t *testing.T, e *env) *model.User {
	t.Helper()
	err := e.app.Session.Signup(context.Background(), "Test User", "user@dentabook.dev", "5551234567", "passw0rd")
	require.NoError(t, err)
	user := e.app.Session.User()
	require.NotNil(t, user)
	return user
}

// Fixture entities matching the mockapi seed data, so confirmed
// bookings land server-side.

func smileOffice() model.Office {
	return model.Office{
		ID:      "office-smile",
		Name:    "Smile Dental Care",
		Address: "12 Elm Street",
		City:    "Springfield",
		Zip:     "62701",
		Location: model.Coordinate{
			Lat: 39.7817,
			Lng: -89.6501,
		},
		OpeningHours: map[string]string{
			"Monday":    "09:00 AM - 05:00 PM",
			"Tuesday":   "09:00 AM - 05:00 PM",
			"Wednesday": "09:00 AM - 05:00 PM",
			"Thursday":  "09:00 AM - 05:00 PM",
			"Friday":    "09:00 AM - 05:00 PM",
			"Saturday":  "10:00 AM - 02:00 PM",
			"Sunday":    "Closed",
		},
	}
}

func cleaningService() model.Service {
	return model.Service{ID: "svc-cleaning", Name: "Teeth Cleaning", Price: 80}
}

func drPatel() model.Dentist {
	return model.Dentist{
		ID:         "dentist-patel",
		Name:       "Dr. Anita Patel",
		OfficeID:   "office-smile",
		ServiceIDs: []string{"svc-cleaning", "svc-whitening"},
		UnavailableSlots: []model.UnavailableDay{
			{Date: "2026-09-07", Times: []string{"09:00 AM", "09:30 AM"}},
		},
	}
}

// selectChain walks the wizard to the confirm step. 2026-09-08 is a
// Tuesday, a full working day at the fixture office.
func selectChain(t *testing.T, b *state.BookingState) {
	t.Helper()
	b.SelectOffice(smileOffice())
	require.NoError(t, b.SelectService(cleaningService()))
	require.NoError(t, b.SelectDentist(drPatel()))
	require.NoError(t, b.SelectDate("2026-09-08"))
	require.NoError(t, b.SelectTime("10:00 AM"))
}
