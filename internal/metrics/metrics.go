package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values
const (
	OutcomeSuccess  = "success"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// Metrics holds the service collectors and the registry they are bound to
type Metrics struct {
	registry *prometheus.Registry

	Signups         *prometheus.CounterVec
	Unregistrations *prometheus.CounterVec
	Participants    *prometheus.GaugeVec
}

// New creates the collectors on a fresh registry, so several instances can
// coexist in one process
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Signups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activities_signups_total",
				Help: "Total number of signup attempts by activity and outcome",
			},
			[]string{"activity", "outcome"},
		),
		Unregistrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "activities_unregistrations_total",
				Help: "Total number of unregister attempts by activity and outcome",
			},
			[]string{"activity", "outcome"},
		),
		Participants: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "activities_participants",
				Help: "Current number of participants per activity",
			},
			[]string{"activity"},
		),
	}
}

// Registry returns the registry the collectors are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the exposition handler for the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSignup records a signup attempt
func (m *Metrics) ObserveSignup(activity, outcome string) {
	m.Signups.WithLabelValues(activity, outcome).Inc()
}

// ObserveUnregistration records an unregister attempt
func (m *Metrics) ObserveUnregistration(activity, outcome string) {
	m.Unregistrations.WithLabelValues(activity, outcome).Inc()
}

// SetParticipants records the roster size of an activity
func (m *Metrics) SetParticipants(activity string, n int) {
	m.Participants.WithLabelValues(activity).Set(float64(n))
}
