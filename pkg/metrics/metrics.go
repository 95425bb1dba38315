// Package metrics holds the prometheus collectors of a run.
package metrics

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "edgarsent"

// Document outcomes.
const (
	StatusScored = "scored"
	StatusFailed = "failed"
)

// Download outcomes.
const (
	StatusFetched = "fetched"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

type Metrics struct {
	Registry *prometheus.Registry

	Documents      *prometheus.CounterVec
	DocumentLength prometheus.Histogram
	MetadataWarns  prometheus.Counter
	Downloads      *prometheus.CounterVec
	RunDuration    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "documents_total",
				Help:      "Documents processed, by outcome.",
			},
			[]string{"status"},
		),
		DocumentLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "document_length_words",
				Help:      "Lexicon-recognized tokens per scored document.",
				Buckets:   prometheus.ExponentialBuckets(100, 4, 8),
			},
		),
		MetadataWarns: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "metadata_warnings_total",
				Help:      "Filenames whose entity id or date could not be read.",
			},
		),
		Downloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "downloads_total",
				Help:      "Archive files requested, by outcome.",
			},
			[]string{"status"},
		),
		RunDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_duration_seconds",
				Help:      "Wall time of the last completed run.",
			},
		),
	}
	m.Registry.MustRegister(m.Documents, m.DocumentLength, m.MetadataWarns, m.Downloads, m.RunDuration)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done. An empty addr is a no-op.
func (m *Metrics) Serve(ctx context.Context, addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Println("metrics listen:", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Println("metrics server:", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()
}
