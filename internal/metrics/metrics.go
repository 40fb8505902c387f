// Package metrics defines the Prometheus collectors describing a
// segmentation run. Runs are batch jobs, so the collectors are written to a
// node_exporter textfile instead of being scraped.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"morphseg/internal/domain"
)

// Metrics holds the collectors of one process on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	WordsTotal       prometheus.Counter
	SplitsTotal      *prometheus.CounterVec
	ScoreSum         *prometheus.GaugeVec
	TrieNodes        *prometheus.GaugeVec
	PhaseDuration    *prometheus.HistogramVec
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec
	WinningModel     *prometheus.GaugeVec
	LastRunTimestamp prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		WordsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "morphseg_words_scored_total",
				Help: "Total number of words scored against both models.",
			},
		),
		SplitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "morphseg_splits_total",
				Help: "Accepted splits by model.",
			},
			[]string{"model"},
		),
		ScoreSum: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "morphseg_score_sum",
				Help: "Sum of accepted split scores in the last run by model.",
			},
			[]string{"model"},
		),
		TrieNodes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "morphseg_trie_nodes",
				Help: "Number of nodes in each model's trie, root included.",
			},
			[]string{"model"},
		),
		PhaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "morphseg_phase_duration_seconds",
				Help:    "Duration of the build and score phases in seconds.",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
			},
			[]string{"phase"},
		),
		CacheHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "morphseg_decision_cache_hits_total",
				Help: "Decision cache hits by model.",
			},
			[]string{"model"},
		),
		CacheMissesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "morphseg_decision_cache_misses_total",
				Help: "Decision cache misses by model.",
			},
			[]string{"model"},
		),
		WinningModel: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "morphseg_winning_model",
				Help: "1 for the model selected in the last run, 0 otherwise.",
			},
			[]string{"model"},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "morphseg_last_run_timestamp_seconds",
				Help: "Unix time the last run finished.",
			},
		),
	}

	m.Registry.MustRegister(
		m.WordsTotal,
		m.SplitsTotal,
		m.ScoreSum,
		m.TrieNodes,
		m.PhaseDuration,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.WinningModel,
		m.LastRunTimestamp,
	)

	return m
}

// ObservePhase records how long a phase took.
func (m *Metrics) ObservePhase(phase string, d time.Duration) {
	m.PhaseDuration.WithLabelValues(phase).Observe(d.Seconds())
}

// ObserveSummary records the outcome of a finished run.
func (m *Metrics) ObserveSummary(s domain.Summary) {
	m.WordsTotal.Add(float64(s.Words))
	for _, model := range domain.Models {
		t := s.Tally(model)
		label := string(model)
		m.SplitsTotal.WithLabelValues(label).Add(float64(t.SplitCount))
		m.ScoreSum.WithLabelValues(label).Set(t.ScoreSum)
		if model == s.Winner {
			m.WinningModel.WithLabelValues(label).Set(1)
		} else {
			m.WinningModel.WithLabelValues(label).Set(0)
		}
	}
	m.LastRunTimestamp.SetToCurrentTime()
}

// WriteTextfile writes all collectors in the text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
