// Package metrics exposes Prometheus collectors for notification outcomes.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels.
const (
	OutcomeDispatched = "dispatched"
	OutcomeSkipped    = "skipped"
	OutcomeFailed     = "failed"
)

// Recorder counts handled notifications by kind and outcome.
type Recorder struct {
	notifications *prometheus.CounterVec
}

// NewRecorder creates a Recorder and registers its collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bankalerts",
			Name:      "notifications_total",
			Help:      "Notification requests handled, by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(r.notifications)
	return r
}

// Observe records one handled request. err decides between failed and
// dispatched unless skipped is set.
func (r *Recorder) Observe(kind string, skipped bool, err error) {
	outcome := OutcomeDispatched
	switch {
	case err != nil:
		outcome = OutcomeFailed
	case skipped:
		outcome = OutcomeSkipped
	}
	r.notifications.WithLabelValues(kind, outcome).Inc()
}

// Notifications returns the underlying counter vector.
func (r *Recorder) Notifications() *prometheus.CounterVec {
	return r.notifications
}
