// Package metrics exposes the Prometheus counters of the site.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	contentLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitch",
		Name:      "content_loads_total",
		Help:      "Content list loads by kind and where the list came from (store, seed, error)",
	}, []string{"kind", "source"})

	contentWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitch",
		Name:      "content_writes_total",
		Help:      "Admin content writes by kind, operation and result",
	}, []string{"kind", "op", "result"})

	registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitch",
		Name:      "registrations_total",
		Help:      "Academy registration submissions by result",
	}, []string{"result"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitch",
		Name:      "auth_attempts_total",
		Help:      "Sign-up and sign-in attempts by result",
	}, []string{"op", "result"})
)

// RecordContentLoad counts one list load.
func RecordContentLoad(kind, source string) {
	contentLoads.WithLabelValues(kind, source).Inc()
}

// RecordContentWrite counts one admin write.
func RecordContentWrite(kind, op string, err error) {
	contentWrites.WithLabelValues(kind, op, result(err)).Inc()
}

// RecordRegistration counts one registration submission.
func RecordRegistration(outcome string) {
	registrations.WithLabelValues(outcome).Inc()
}

// RecordAuthAttempt counts one sign-up or sign-in.
func RecordAuthAttempt(op string, err error) {
	authAttempts.WithLabelValues(op, result(err)).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
