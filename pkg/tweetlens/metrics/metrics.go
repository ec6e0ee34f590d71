// Package metrics defines the Prometheus collectors recorded during an
// analysis run. A run is a batch job, so metrics are written to a
// node-exporter textfile at the end instead of being scraped.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Document outcomes recorded by ObserveDocument.
const (
	OutcomeAdded    = "added"
	OutcomeReplaced = "replaced"
	OutcomeRejected = "rejected"
)

// Metrics holds all collectors for one run. All methods are safe on a nil
// receiver so callers can leave metrics disabled.
type Metrics struct {
	registry *prometheus.Registry

	DocumentsTotal  *prometheus.CounterVec
	DistinctPhrases prometheus.Gauge
	CorpusTweets    prometheus.Gauge
	BuildDuration   prometheus.Histogram
	SelectDuration  prometheus.Histogram
	LastRunSuccess  prometheus.Gauge
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		DocumentsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tweetlens_documents_total",
				Help: "Documents fed to the phrase matrix by outcome (added, replaced, rejected).",
			},
			[]string{"outcome"},
		),
		DistinctPhrases: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tweetlens_distinct_phrases",
				Help: "Number of distinct phrases in the last built matrix.",
			},
		),
		CorpusTweets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tweetlens_corpus_tweets",
				Help: "Number of tweets loaded from the corpus source.",
			},
		),
		BuildDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tweetlens_matrix_build_seconds",
				Help:    "Time spent building the phrase matrix.",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
		),
		SelectDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tweetlens_select_seconds",
				Help:    "Time spent selecting top phrases.",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		LastRunSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tweetlens_last_run_success",
				Help: "1 if the last analysis run completed, 0 otherwise.",
			},
		),
	}

	m.registry.MustRegister(
		m.DocumentsTotal,
		m.DistinctPhrases,
		m.CorpusTweets,
		m.BuildDuration,
		m.SelectDuration,
		m.LastRunSuccess,
	)
	return m
}

// Registry exposes the private registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveDocument counts one document by outcome.
func (m *Metrics) ObserveDocument(outcome string) {
	if m == nil {
		return
	}
	m.DocumentsTotal.WithLabelValues(outcome).Inc()
}

// ObserveBuild records a finished matrix build.
func (m *Metrics) ObserveBuild(elapsed time.Duration, distinctPhrases int) {
	if m == nil {
		return
	}
	m.BuildDuration.Observe(elapsed.Seconds())
	m.DistinctPhrases.Set(float64(distinctPhrases))
}

// ObserveSelect records a top-phrase selection.
func (m *Metrics) ObserveSelect(elapsed time.Duration) {
	if m == nil {
		return
	}
	m.SelectDuration.Observe(elapsed.Seconds())
}

// SetCorpusSize records how many tweets were loaded.
func (m *Metrics) SetCorpusSize(n int) {
	if m == nil {
		return
	}
	m.CorpusTweets.Set(float64(n))
}

// SetRunResult marks the run as succeeded or failed.
func (m *Metrics) SetRunResult(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.LastRunSuccess.Set(1)
		return
	}
	m.LastRunSuccess.Set(0)
}

// WriteTextfile writes all collectors in the text exposition format,
// atomically replacing path.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
