// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes digest pipeline metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "paper_digest"

// Metrics holds the collectors for one process. Each instance owns its
// registry so tests do not collide on the default one.
type Metrics struct {
	Registry *prometheus.Registry

	Runs          *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	LastSuccess   prometheus.Gauge
	Fetched       prometheus.Gauge
	Selected      prometheus.Gauge
	CascadeTier   prometheus.Gauge
	Summaries     *prometheus.CounterVec
	Notifications *prometheus.CounterVec
}

// New registers the pipeline collectors plus the Go and process collectors
// on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Digest runs by outcome.",
		}, []string{"status"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a digest run.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300},
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful run.",
		}),
		Fetched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "fetched_documents",
			Help:      "Documents fetched by the last run.",
		}),
		Selected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "selected_documents",
			Help:      "Documents selected by the last run's cascade.",
		}),
		CascadeTier: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cascade_tier",
			Help:      "Index of the cascade tier accepted by the last run.",
		}),
		Summaries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summaries_total",
			Help:      "Summaries by source (model or fallback).",
		}, []string{"source"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Slack posts by kind and outcome.",
		}, []string{"kind", "status"}),
	}

	m.Registry.MustRegister(
		m.Runs, m.RunDuration, m.LastSuccess, m.Fetched, m.Selected,
		m.CascadeTier, m.Summaries, m.Notifications,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// ObserveRun records the outcome and duration of one run.
func (m *Metrics) ObserveRun(ok bool, started, finished time.Time) {
	if m == nil {
		return
	}
	status := "failed"
	if ok {
		status = "ok"
		m.LastSuccess.Set(float64(finished.Unix()))
	}
	m.Runs.WithLabelValues(status).Inc()
	m.RunDuration.Observe(finished.Sub(started).Seconds())
}

// ObserveSelection records the batch and cascade sizes of one run.
func (m *Metrics) ObserveSelection(fetched, selected, tier int) {
	if m == nil {
		return
	}
	m.Fetched.Set(float64(fetched))
	m.Selected.Set(float64(selected))
	m.CascadeTier.Set(float64(tier))
}

// ObserveSummary counts one summary by whether the model produced it.
func (m *Metrics) ObserveSummary(fromModel bool) {
	if m == nil {
		return
	}
	source := "fallback"
	if fromModel {
		source = "model"
	}
	m.Summaries.WithLabelValues(source).Inc()
}

// ObserveNotification counts one Slack post.
func (m *Metrics) ObserveNotification(kind string, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "failed"
	}
	m.Notifications.WithLabelValues(kind, status).Inc()
}
