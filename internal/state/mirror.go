package state

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dentabook/booking-client/internal/storage"
	"github.com/dentabook/booking-client/pkg/logger"
	"github.com/dentabook/booking-client/pkg/metrics"
)

const mirrorTimeout = 2 * time.Second

// mirror copies selected state fields into persisted storage. Writes
// are fire-and-forget: failures are logged and counted but never
// returned, since in-memory state stays authoritative for the running
// session.
type mirror struct {
	store   storage.Store
	log     *logger.Logger
	metrics *metrics.Metrics
}

func newMirror(store storage.Store, log *logger.Logger, m *metrics.Metrics) *mirror {
	if log == nil {
		log = logger.Nop()
	}
	return &mirror{store: store, log: log.WithComponent("storage"), metrics: m}
}

func (m *mirror) setString(key, value string) {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	err := m.store.Set(ctx, key, value)
	m.count("set", err)
	if err != nil {
		m.log.Warn(err, "persist failed", "key", key)
	}
}

func (m *mirror) setJSON(key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		m.count("set", err)
		m.log.Warn(err, "persist marshal failed", "key", key)
		return
	}
	m.setString(key, string(data))
}

func (m *mirror) remove(keys ...string) {
	if m.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), mirrorTimeout)
	defer cancel()

	for _, key := range keys {
		err := m.store.Remove(ctx, key)
		m.count("remove", err)
		if err != nil {
			m.log.Warn(err, "remove failed", "key", key)
		}
	}
}

func (m *mirror) get(ctx context.Context, key string) (string, bool) {
	if m.store == nil {
		return "", false
	}
	value, err := m.store.Get(ctx, key)
	if err != nil {
		m.count("get", err)
		return "", false
	}
	m.count("get", nil)
	return value, true
}

func (m *mirror) count(op string, err error) {
	if m.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.metrics.StorageOperations.WithLabelValues(op, status).Inc()
}
