// Package metrics exposes authentication outcomes as Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"

	"checklist/internal/domain/entity"
	"checklist/internal/domain/service"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector implements service.AuthMetrics.
type Collector struct {
	logins          *prometheus.CounterVec
	resolutions     *prometheus.CounterVec
	guardRejections *prometheus.CounterVec
	renewals        prometheus.Counter
}

var _ service.AuthMetrics = (*Collector)(nil)

// NewCollector registers the auth metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checklist_auth_logins_total",
			Help: "Login attempts by origin and outcome",
		}, []string{"origin", "success"}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checklist_identity_resolutions_total",
			Help: "Identity resolver outcomes",
		}, []string{"outcome"}),
		guardRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "checklist_access_guard_rejections_total",
			Help: "Requests rejected by the access guard by reason",
		}, []string{"reason"}),
		renewals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "checklist_session_renewals_total",
			Help: "Session tokens re-issued inside the renewal window",
		}),
	}

	reg.MustRegister(c.logins, c.resolutions, c.guardRejections, c.renewals)

	return c
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(origin entity.ClaimOrigin, success bool) {
	c.logins.WithLabelValues(string(origin), strconv.FormatBool(success)).Inc()
}

// RecordResolution counts a resolver outcome.
func (c *Collector) RecordResolution(outcome string) {
	c.resolutions.WithLabelValues(outcome).Inc()
}

// RecordGuardRejection counts a rejected request.
func (c *Collector) RecordGuardRejection(reason string) {
	c.guardRejections.WithLabelValues(reason).Inc()
}

// RecordRenewal counts a renewed session.
func (c *Collector) RecordRenewal() {
	c.renewals.Inc()
}

// NewRegistry returns a registry carrying the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return reg
}

// Handler returns the scrape handler for the registry.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
