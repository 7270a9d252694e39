package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pridkett/aqi2mqtt/aqi"
)

// metrics exposes the latest AQI values for scraping. A nil *metrics is
// valid and records nothing.
type metrics struct {
	registry      *prometheus.Registry
	index         *prometheus.GaugeVec
	total         prometheus.Gauge
	polls         *prometheus.CounterVec
	publishErrors *prometheus.CounterVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		index: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "aqi_index",
			Help: "Most recent AQI sub-index by pollutant.",
		}, []string{"pollutant"}),
		total: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aqi_total",
			Help: "Most recent overall AQI, the worst sub-index.",
		}),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aqi_polls_total",
			Help: "Sensor polls by result.",
		}, []string{"result"}),
		publishErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aqi_publish_errors_total",
			Help: "Failed publishes by sink.",
		}, []string{"sink"}),
	}

	m.registry.MustRegister(m.index, m.total, m.polls, m.publishErrors)
	return m
}

func (m *metrics) observe(rep aqi.Report) {
	if m == nil {
		return
	}
	for p, v := range rep.Indices() {
		m.index.WithLabelValues(p.String()).Set(float64(v))
	}
	m.total.Set(float64(rep.AQI))
}

func (m *metrics) poll(result string) {
	if m == nil {
		return
	}
	m.polls.WithLabelValues(result).Inc()
}

func (m *metrics) publishError(sink string) {
	if m == nil {
		return
	}
	m.publishErrors.WithLabelValues(sink).Inc()
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, "ok\n")
}

func (m *metrics) router() *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})).Methods("GET")
	r.HandleFunc("/healthz", healthHandler).Methods("GET")
	return r
}

// serveMetrics runs the scrape endpoint until ctx is cancelled
func serveMetrics(ctx context.Context, addr string, m *metrics, accessLog io.Writer) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handlers.LoggingHandler(accessLog, m.router()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Infof("Serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
