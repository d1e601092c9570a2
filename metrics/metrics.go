// Package metrics exposes Prometheus metrics for the matching service.
package metrics

import (
	"time"

	"gigmatch/services/matching"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gigmatch"

// Manager owns the service's Prometheus collectors.
type Manager struct {
	registry prometheus.Gatherer

	searches           *prometheus.CounterVec
	searchDuration     prometheus.Histogram
	candidatesPerQuery prometheus.Histogram
	returnedPerQuery   prometheus.Histogram
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	refreshTasks       *prometheus.CounterVec
}

// New registers the collectors on reg. Passing a fresh registry keeps tests isolated.
func New(reg *prometheus.Registry) *Manager {
	f := promauto.With(reg)
	return &Manager{
		registry: reg,
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "searches_total",
			Help:      "Musician searches by outcome.",
		}, []string{"outcome"}),
		searchDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "search_duration_seconds",
			Help:      "Wall time of a musician search including the repository fetch.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		candidatesPerQuery: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "candidates_evaluated",
			Help:      "Candidates evaluated per successful search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		returnedPerQuery: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matching",
			Name:      "results_returned",
			Help:      "Ranked results returned per successful search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		refreshTasks: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "tasks",
			Name:      "recommendation_refresh_total",
			Help:      "Recommendation refresh tasks by result.",
		}, []string{"result"}),
	}
}

// Gatherer returns the registry backing this manager, for the /metrics handler.
func (m *Manager) Gatherer() prometheus.Gatherer {
	return m.registry
}

// ObserveSearch records one search. Implements matching.Recorder.
func (m *Manager) ObserveSearch(outcome string, candidates, returned int, elapsed time.Duration) {
	m.searches.WithLabelValues(outcome).Inc()
	m.searchDuration.Observe(elapsed.Seconds())
	if outcome == matching.OutcomeOK {
		m.candidatesPerQuery.Observe(float64(candidates))
		m.returnedPerQuery.Observe(float64(returned))
	}
}

// ObserveHTTP records one HTTP request.
func (m *Manager) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, status).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveRefresh records the result of one refresh task.
func (m *Manager) ObserveRefresh(result string) {
	m.refreshTasks.WithLabelValues(result).Inc()
}
