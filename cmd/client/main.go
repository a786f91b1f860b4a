// Command client walks the whole booking flow against a running
// backend: sign in, rank offices by distance, drive the wizard to a
// confirmed appointment, then reschedule it one slot later.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dentabook/booking-client/config"
	"github.com/dentabook/booking-client/internal/api"
	"github.com/dentabook/booking-client/internal/model"
	"github.com/dentabook/booking-client/internal/state"
	"github.com/dentabook/booking-client/internal/storage"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

func main() {
	_ = godotenv.Load()

	email := flag.String("email", "demo@dentabook.dev", "account email")
	password := flag.String("password", "demo1234", "account password")
	name := flag.String("name", "Demo User", "account name for first-time signup")
	phone := flag.String("phone", "5550001234", "account phone for first-time signup")
	lat := flag.Float64("lat", 39.7900, "user latitude")
	lng := flag.Float64("lng", -89.6500, "user longitude")
	date := flag.String("date", "", "appointment date (YYYY-MM-DD, default next weekday)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger(&logger.Config{
		Level:  logger.InfoLevel,
		Pretty: cfg.Log.Pretty,
	})

	store, err := openStore(cfg)
	if err != nil {
		log.Fatal(err, "failed to open persisted store")
	}

	client := api.NewClient(api.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}, log)
	app := state.New(client, store, log, metrics.New("dentabook", prometheus.DefaultRegisterer))

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if !app.Session.Restore(ctx) {
		if err := app.Session.Login(ctx, *email, *password); err != nil {
			log.Warn(err, "login failed, signing up")
			if err := app.Session.Signup(ctx, *name, *email, *phone, *password); err != nil {
				log.Fatal(err, "signup failed")
			}
		}
	}

	if err := app.Offices.Fetch(ctx, model.Coordinate{Lat: *lat, Lng: *lng}); err != nil {
		log.Fatal(err, "failed to fetch offices")
	}
	ranked := app.Offices.Offices()
	if len(ranked) == 0 {
		log.Fatal(nil, "no offices available")
	}
	log.Info("nearest office", "name", ranked[0].Name, "distance_km", fmt.Sprintf("%.1f", ranked[0].DistanceKM))

	office, err := client.GetOffice(ctx, ranked[0].ID)
	if err != nil {
		log.Fatal(err, "failed to fetch office detail")
	}
	if len(office.Services) == 0 {
		log.Fatal(nil, "office has no services")
	}

	app.Booking.Clear()
	app.Booking.SelectOffice(*office)
	if err := app.Booking.SelectService(office.Services[0]); err != nil {
		log.Fatal(err, "select service")
	}

	dentists, err := client.ListDentists(ctx)
	if err != nil {
		log.Fatal(err, "failed to fetch dentists")
	}
	options := app.Booking.DentistOptions(dentists)
	if len(options) == 0 {
		log.Fatal(nil, "no dentist offers this service here")
	}
	if err := app.Booking.SelectDentist(options[0]); err != nil {
		log.Fatal(err, "select dentist")
	}

	day := *date
	if day == "" {
		day = nextWeekday(time.Now())
	}
	if err := app.Booking.SelectDate(day); err != nil {
		log.Fatal(err, "select date")
	}

	slots := app.Booking.AvailableSlots(time.Now())
	if len(slots) == 0 {
		log.Fatal(nil, "no slots available on "+day)
	}
	if err := app.Booking.SelectTime(slots[0]); err != nil {
		log.Fatal(err, "select time")
	}

	appt, err := app.Booking.Confirm(ctx)
	if err != nil {
		log.Fatal(err, "confirm failed")
	}
	log.Info("booked", "id", appt.ID, "date", appt.Date, "time", appt.Time, "payment", string(app.Booking.PaymentStatus()))

	if len(slots) > 1 {
		app.Reschedule.Initiate(ctx, *appt)
		if err := app.Reschedule.SetTime(slots[1]); err != nil {
			log.Fatal(err, "reschedule set time")
		}
		moved, err := app.Reschedule.Commit(ctx)
		if err != nil {
			log.Fatal(err, "reschedule failed")
		}
		log.Info("rescheduled", "id", moved.ID, "time", moved.Time, "list_stale", app.Appointments.Stale())
	}

	if err := app.Appointments.Fetch(ctx); err != nil {
		log.Fatal(err, "failed to fetch appointments")
	}
	for _, a := range app.Appointments.Appointments() {
		log.Info("appointment", "id", a.ID, "date", a.Date, "time", a.Time, "status", string(a.Status))
	}
}

func openStore(cfg *config.Config) (storage.Store, error) {
	if cfg.Storage.RedisURL == "" {
		return storage.NewMemoryStore(), nil
	}
	return storage.NewRedisStore(storage.RedisConfig{
		URL:    cfg.Storage.RedisURL,
		Prefix: cfg.Storage.Prefix,
		TTL:    cfg.Storage.TTL,
	})
}

// nextWeekday returns tomorrow, skipped past Sunday when the office
// week closes.
func nextWeekday(now time.Time) string {
	day := now.AddDate(0, 0, 1)
	if day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return day.Format(model.DateLayout)
}
