// Package metrics collects and exposes Prometheus metrics for the account
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts authentication outcomes.  Handlers record into it; the
// registry it was built with is exposed on /metrics.
type Collector struct {
	registrations prometheus.Counter
	loginSuccess  prometheus.Counter
	loginFailure  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics on the given
// registry.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		registrations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accounts_registrations_total",
			Help: "Total number of successful registrations",
		}),
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "accounts_login_success_total",
			Help: "Total number of successful logins",
		}),
		loginFailure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "accounts_login_failure_total",
			Help: "Total number of failed logins by reason",
		}, []string{"reason"}),
	}
	reg.MustRegister(c.registrations, c.loginSuccess, c.loginFailure)
	return c
}

// RecordRegistration counts a successful registration.
func (c *Collector) RecordRegistration() { c.registrations.Inc() }

// RecordLoginSuccess counts a successful login.
func (c *Collector) RecordLoginSuccess() { c.loginSuccess.Inc() }

// RecordLoginFailure counts a failed login.  reason is one of
// "user_not_found", "invalid_password" or "internal".
func (c *Collector) RecordLoginFailure(reason string) {
	c.loginFailure.WithLabelValues(reason).Inc()
}
