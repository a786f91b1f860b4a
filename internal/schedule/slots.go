// Package schedule computes bookable appointment slots from office
// opening hours, dentist exceptions and the current instant. Pure
// functions only; callers inject "now" so results are reproducible.
package schedule

import (
	"strings"
	"time"

	"github.com/dentabook/booking-client/internal/model"
)

// DefaultInterval is the slot granularity offices book at.
const DefaultInterval = 30 * time.Minute

const closedMarker = "closed"

// Available returns the ordered bookable time labels for one date.
//
// hours is the office's opening-hours entry for the weekday of date,
// e.g. "09:00 AM - 05:00 PM" or "Closed". Slots are generated every
// interval inside the half-open window [open, close): a slot exactly at
// closing time is excluded. Labels listed in exceptions for the exact
// date are removed, and when date is today relative to now, slots at or
// before now's wall clock are removed as well.
func Available(hours, date string, interval time.Duration, exceptions []model.UnavailableDay, now time.Time) []string {
	open, close, ok := parseHours(hours)
	if !ok {
		return nil
	}
	if interval <= 0 {
		interval = DefaultInterval
	}

	blocked := make(map[string]struct{})
	for _, day := range exceptions {
		if day.Date != date {
			continue
		}
		for _, t := range day.Times {
			blocked[t] = struct{}{}
		}
	}

	var cutoff time.Duration
	today := date == now.Format(model.DateLayout)
	if today {
		cutoff = wallClock(now)
	}

	var slots []string
	for at := open; at < close; at += interval {
		if today && at <= cutoff {
			continue
		}
		label := formatLabel(at)
		if _, skip := blocked[label]; skip {
			continue
		}
		slots = append(slots, label)
	}
	return slots
}

// parseHours splits an opening-hours string into wall-clock offsets
// from midnight. Returns ok=false for empty, "Closed" or unparseable
// entries.
func parseHours(hours string) (open, close time.Duration, ok bool) {
	hours = strings.TrimSpace(hours)
	if hours == "" || strings.EqualFold(hours, closedMarker) {
		return 0, 0, false
	}

	// Office tables use either a hyphen or an en dash between the ends.
	hours = strings.ReplaceAll(hours, "–", "-")
	parts := strings.SplitN(hours, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}

	open, err := parseLabel(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	close, err = parseLabel(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}
	if close <= open {
		return 0, 0, false
	}
	return open, close, true
}

func parseLabel(label string) (time.Duration, error) {
	t, err := time.Parse(model.TimeLayout, label)
	if err != nil {
		return 0, err
	}
	return wallClock(t), nil
}

func formatLabel(offset time.Duration) string {
	base := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC)
	return base.Add(offset).Format(model.TimeLayout)
}

func wallClock(t time.Time) time.Duration {
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute
}
