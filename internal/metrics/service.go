/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// Service holds the Prometheus collectors for the pairing engine.
type Service struct {
	PairingDuration *prometheus.HistogramVec
	PairingFailures *prometheus.CounterVec
	RoundsApplied   prometheus.Counter
}

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		PairingDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "swisstd_pairing_duration_seconds",
			Help:    "The time taken to compute one round's pairings.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}, []string{"algorithm"}),
		PairingFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "swisstd_pairing_failures_total",
			Help: "The total number of rounds for which no legal pairing was found.",
		}, []string{"algorithm"}),
		RoundsApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "swisstd_rounds_applied_total",
			Help: "The total number of rounds folded into tournaments.",
		}),
	}

	reg.MustRegister(
		s.PairingDuration,
		s.PairingFailures,
		s.RoundsApplied,
	)

	return s
}

func (s *Service) ObservePairingDuration(algorithm string, seconds float64) {
	s.PairingDuration.WithLabelValues(algorithm).Observe(seconds)
}

func (s *Service) IncPairingFailures(algorithm string) {
	s.PairingFailures.WithLabelValues(algorithm).Inc()
}

func (s *Service) IncRoundsApplied() {
	s.RoundsApplied.Inc()
}
