// internal/app/system/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LiveSubscriptions tracks open change-stream subscriptions. Each one holds
// a server-side cursor, so a leak shows up here first.
var LiveSubscriptions = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "sevahub",
	Name:      "live_subscriptions_active",
	Help:      "Number of active live-query subscriptions.",
})

// LoginAttempts counts login attempts by outcome.
var LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sevahub",
	Name:      "login_attempts_total",
	Help:      "Login attempts by outcome.",
}, []string{"outcome"})

// Registrations counts completed registrations by role.
var Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "sevahub",
	Name:      "registrations_total",
	Help:      "Completed registrations by role.",
}, []string{"role"})
