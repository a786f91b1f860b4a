package state

import (
	"errors"
	"sync"
	"time"

	apperrors "github.com/dentabook/booking-client/pkg/errors"
	"github.com/dentabook/booking-client/pkg/metrics"
)

// Tracker runs one kind of remote call through the pending/fulfilled/
// rejected lifecycle on behalf of a state container.
//
// Begin returns a generation token; a completion presenting a token
// that is no longer current is discarded without touching state. That
// is the stale-response policy: no cancellation is propagated to the
// transport, the superseded result simply never lands. No retries and
// no deduplication; callers avoid firing duplicates by consulting
// Loading.
type Tracker struct {
	mu         sync.Mutex
	operation  string
	generation uint64
	loading    bool
	err        string
	started    time.Time
	metrics    *metrics.Metrics
}

func NewTracker(operation string, m *metrics.Metrics) *Tracker {
	return &Tracker{operation: operation, metrics: m}
}

// Begin enters the pending phase: loading set, prior error cleared.
func (t *Tracker) Begin() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.generation++
	t.loading = true
	t.err = ""
	t.started = time.Now()

	if t.metrics != nil {
		t.metrics.RequestsStarted.WithLabelValues(t.operation).Inc()
		t.metrics.RequestsInFlight.Inc()
	}
	return t.generation
}

// Fulfill settles the request successfully. Returns false when the
// token is stale; the caller must not apply the payload in that case.
func (t *Tracker) Fulfill(gen uint64) bool {
	return t.settle(gen, "", "fulfilled")
}

// Reject settles the request with an error message. Returns false when
// the token is stale.
func (t *Tracker) Reject(gen uint64, message string) bool {
	if message == "" {
		message = "something went wrong, please try again"
	}
	return t.settle(gen, message, "rejected")
}

func (t *Tracker) settle(gen uint64, message, outcome string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if gen != t.generation {
		if t.metrics != nil {
			t.metrics.StaleResponses.Inc()
		}
		return false
	}

	t.loading = false
	t.err = message

	if t.metrics != nil {
		t.metrics.RequestsSettled.WithLabelValues(t.operation, outcome).Inc()
		t.metrics.RequestLatency.WithLabelValues(t.operation).Observe(time.Since(t.started).Seconds())
		t.metrics.RequestsInFlight.Dec()
	}
	return true
}

func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

func (t *Tracker) Err() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// messageOf extracts the user-facing message from an error, falling
// back to a generic string for errors with no application message.
func messageOf(err error) string {
	if err == nil {
		return ""
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "something went wrong, please try again"
}
