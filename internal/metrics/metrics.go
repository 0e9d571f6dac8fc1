// Package metrics exposes the site's Prometheus counters.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-hotelsite/pkg/notify"
)

const namespace = "hotelsite"

// Form outcome labels.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeLimited  = "limited"
)

// Metrics owns a private registry so tests and multiple servers never
// collide on the global one.
type Metrics struct {
	registry      *prometheus.Registry
	notifications *prometheus.CounterVec
	forms         *prometheus.CounterVec
	requests      *prometheus.CounterVec
	sessions      prometheus.Gauge
}

// New registers the site collectors plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Notifications shown, by kind.",
		}, []string{"kind"}),
		forms: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "form_submissions_total",
			Help:      "Form submissions, by form and outcome.",
		}, []string{"form", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route and status code.",
		}, []string{"route", "status"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently holding a notification surface.",
		}),
	}
	m.registry.MustRegister(
		m.notifications,
		m.forms,
		m.requests,
		m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Notification counts a visible notification. It has the shape of a
// broadcaster observer.
func (m *Metrics) Notification(n notify.Notification) {
	if m == nil || !n.Visible {
		return
	}
	m.notifications.WithLabelValues(string(n.Kind)).Inc()
}

// Form counts a form submission.
func (m *Metrics) Form(form, outcome string) {
	if m == nil {
		return
	}
	m.forms.WithLabelValues(form, outcome).Inc()
}

// Request counts a served request.
func (m *Metrics) Request(route string, status int) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() {
	if m != nil {
		m.sessions.Inc()
	}
}

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() {
	if m != nil {
		m.sessions.Dec()
	}
}
