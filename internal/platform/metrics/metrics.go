// Package metrics expone contadores Prometheus del cliente API y del cache de consultas.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// APIMetrics mide las llamadas REST hacia el backend.
type APIMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func NewAPIMetrics(reg prometheus.Registerer) *APIMetrics {
	m := &APIMetrics{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetclinic",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Total de llamadas al backend por recurso y estado",
		}, []string{"method", "resource", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "vetclinic",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Latencia de llamadas al backend",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "resource"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.requestsTotal, m.requestDuration)
	return m
}

// ObserveRequest registra una llamada. status=0 indica error de transporte.
func (m *APIMetrics) ObserveRequest(method, resource string, status int, seconds float64) {
	if m == nil {
		return
	}
	label := "transport_error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.requestsTotal.WithLabelValues(method, resource, label).Inc()
	m.requestDuration.WithLabelValues(method, resource).Observe(seconds)
}

// CacheMetrics mide aciertos, fallos e invalidaciones del cache de consultas.
type CacheMetrics struct {
	lookups       *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	discarded     prometheus.Counter
}

func NewCacheMetrics(reg prometheus.Registerer) *CacheMetrics {
	m := &CacheMetrics{
		lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetclinic",
			Subsystem: "query_cache",
			Name:      "lookups_total",
			Help:      "Lecturas del cache por resultado (hit/miss)",
		}, []string{"resource", "result"}),
		invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vetclinic",
			Subsystem: "query_cache",
			Name:      "invalidations_total",
			Help:      "Invalidaciones por prefijo",
		}, []string{"prefix"}),
		discarded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vetclinic",
			Subsystem: "query_cache",
			Name:      "discarded_results_total",
			Help:      "Resultados no guardados porque hubo una invalidación durante el fetch",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.lookups, m.invalidations, m.discarded)
	return m
}

func (m *CacheMetrics) ObserveLookup(resource string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.lookups.WithLabelValues(resource, result).Inc()
}

func (m *CacheMetrics) ObserveInvalidation(prefix string) {
	if m == nil {
		return
	}
	m.invalidations.WithLabelValues(prefix).Inc()
}

func (m *CacheMetrics) ObserveDiscard() {
	if m == nil {
		return
	}
	m.discarded.Inc()
}
