package store

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/structpack/errs"
)

const (
	statusSuccess  = "success"
	statusNotFound = "not_found"
	statusMismatch = "schema_mismatch"
	statusError    = "error"
)

// metrics holds the Prometheus collectors of a store. A nil *metrics records nothing.
type metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		return nil
	}

	return &metrics{
		operations: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "structpack_store_operations_total",
				Help: "Total number of record store operations",
			},
			[]string{"schema", "operation", "status"},
		)),
		duration: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "structpack_store_operation_duration_seconds",
				Help:    "Record store operation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"schema", "operation"},
		)),
	}
}

// register registers c on reg, reusing the collector already registered by another
// store on the same registry.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}

	return c
}

// observe records one operation on schema started at start.
func (m *metrics) observe(schema, op string, start time.Time, err error) {
	if m == nil {
		return
	}

	m.operations.WithLabelValues(schema, op, status(err)).Inc()
	m.duration.WithLabelValues(schema, op).Observe(time.Since(start).Seconds())
}

func status(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, errs.ErrRecordNotFound):
		return statusNotFound
	case errors.Is(err, errs.ErrSchemaMismatch):
		return statusMismatch
	default:
		return statusError
	}
}
