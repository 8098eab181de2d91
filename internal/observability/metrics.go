// Package observability holds the process-wide Prometheus collectors.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PipelineRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songscout_pipeline_runs_total",
		Help: "Extraction pipeline runs by terminal outcome",
	}, []string{"outcome"})

	ItemsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songscout_items_skipped_total",
		Help: "Result-item nodes that produced no record, by reason",
	}, []string{"reason"})

	RecordsReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "songscout_records_returned",
		Help:    "Records returned per pipeline run after truncation",
		Buckets: []float64{0, 1, 5, 10, 15, 20, 30},
	})

	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "songscout_fetch_duration_seconds",
		Help:    "Duration of outbound search page fetches",
		Buckets: prometheus.DefBuckets,
	})

	AudioResolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songscout_audio_resolutions_total",
		Help: "Audio resolution attempts by status",
	}, []string{"status"})

	AudioDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "songscout_audio_duration_seconds",
		Help:    "Duration of audio stream resolution calls",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "songscout_http_requests_total",
		Help: "HTTP requests served by route and status code",
	}, []string{"route", "code"})
)
