package client

import (
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	bberrors "github.com/domdoescode/blue-billywig/client/internal/errors"
)

// metrics holds the per-client request collectors. Without a registerer
// they still count but are not exported.
type metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "bbvms_client",
				Name:      "requests_total",
				Help:      "VMS API calls by operation and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "bbvms_client",
				Name:      "request_duration_seconds",
				Help:      "Latency of VMS API calls.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// register adds c to reg, reusing an identical collector registered earlier
// by another client.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// observe records one call. errp is read after the call returned.
func (m *metrics) observe(op string, start time.Time, errp *error) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	m.requests.WithLabelValues(op, outcome(*errp)).Inc()
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if k, ok := bberrors.KindOf(err); ok {
		return strings.ToLower(k.String())
	}
	return "error"
}
