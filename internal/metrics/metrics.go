// Package metrics 同步与 HTTP 接口的 Prometheus 指标，使用独立 registry
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cricket"

// Metrics 所有指标；nil 接收者上的方法均为空操作
type Metrics struct {
	// Counters
	IngestRuns      *prometheus.CounterVec
	MatchesIngested *prometheus.CounterVec
	ErrorsTotal     *prometheus.CounterVec
	HTTPRequests    *prometheus.CounterVec

	// Gauges
	LastSuccess *prometheus.GaugeVec

	// Histograms
	IngestDuration *prometheus.HistogramVec
	HTTPDuration   *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New 创建并注册全部指标
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.IngestRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_runs_total",
			Help:      "Total ingestion runs by source and status",
		},
		[]string{"source", "status"}, // "succeeded", "failed"
	)

	m.MatchesIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_ingested_total",
			Help:      "Total matches committed by source",
		},
		[]string{"source"},
	)

	m.ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Total errors by kind",
		},
		[]string{"kind"}, // "ddl", "fetch", "format", "ingestion", "query"
	)

	m.HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by route and status code",
		},
		[]string{"method", "route", "code"},
	)

	m.LastSuccess = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "ingest_last_success_timestamp_seconds",
			Help:      "Unix time of the last successful ingestion by source",
		},
		[]string{"source"},
	)

	m.IngestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ingest_duration_seconds",
			Help:      "Fetch plus ingest duration by source",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"source"},
	)

	m.HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	m.registry.MustRegister(
		m.IngestRuns,
		m.MatchesIngested,
		m.ErrorsTotal,
		m.HTTPRequests,
		m.LastSuccess,
		m.IngestDuration,
		m.HTTPDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveIngest 记录一次同步结果
func (m *Metrics) ObserveIngest(source, status string, inserted int, d time.Duration) {
	if m == nil {
		return
	}
	m.IngestRuns.WithLabelValues(source, status).Inc()
	m.IngestDuration.WithLabelValues(source).Observe(d.Seconds())
	if inserted > 0 {
		m.MatchesIngested.WithLabelValues(source).Add(float64(inserted))
	}
	if status == "succeeded" {
		m.LastSuccess.WithLabelValues(source).SetToCurrentTime()
	}
}

// IncError 按类别计数
func (m *Metrics) IncError(kind string) {
	if m == nil || kind == "" {
		return
	}
	m.ErrorsTotal.WithLabelValues(kind).Inc()
}

// ObserveHTTP 记录一次 HTTP 请求
func (m *Metrics) ObserveHTTP(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Registry 供测试读取
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler /metrics 暴露接口
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
