package hxhoc

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what a Registry does with the instances it hosts.
type Metrics struct {
	lifecycle *prometheus.CounterVec
	renders   *prometheus.CounterVec
	errors    *prometheus.CounterVec
}

// NewMetrics creates the registry counters and registers them with reg.
// A nil reg leaves the counters unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		lifecycle: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hxhoc",
				Name:      "lifecycle_events_total",
				Help:      "Lifecycle transitions of hosted component instances.",
			},
			[]string{"component", "event"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hxhoc",
				Name:      "renders_total",
				Help:      "Successful renders of hosted component instances.",
			},
			[]string{"component"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "hxhoc",
				Name:      "errors_total",
				Help:      "Failed requests by component and error kind.",
			},
			[]string{"component", "kind"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.lifecycle, m.renders, m.errors)
	}
	return m
}

func (m *Metrics) observeLifecycle(component, event string) {
	if m == nil {
		return
	}
	m.lifecycle.WithLabelValues(component, event).Inc()
}

func (m *Metrics) observeRender(component string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(component).Inc()
}

func (m *Metrics) observeError(component string, err error) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(component, errorKind(err)).Inc()
}

// errorKind buckets err for the errors_total label.
func errorKind(err error) string {
	switch {
	case IsLifecycleViolation(err):
		return "lifecycle"
	case IsContractViolation(err):
		return "contract"
	case IsDecryptionError(err), IsInvalidFormat(err):
		return "decode"
	case IsNotFound(err):
		return "not_found"
	}
	return "render"
}
