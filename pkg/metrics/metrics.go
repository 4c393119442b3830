package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultBuckets are latency buckets in seconds for HTTP handlers.
var DefaultBuckets = []float64{.0005, .001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5}

// Recorder owns a private registry so tests can build as many as they like.
type Recorder struct {
	registry    *prometheus.Registry
	assessments *prometheus.CounterVec
	noResult    prometheus.Counter
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	savedPairs  prometheus.Counter
}

// NewRecorder registers the belaycheck collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "belaycheck",
			Name:      "assessments_total",
			Help:      "Safety classifications produced, by verdict and device.",
		}, []string{"safety", "device"}),
		noResult: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "belaycheck",
			Name:      "assessments_without_result_total",
			Help:      "Assessment requests whose weights were not usable.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "belaycheck",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "belaycheck",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   DefaultBuckets,
		}, []string{"route", "method"}),
		savedPairs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "belaycheck",
			Name:      "saved_pairs_total",
			Help:      "Climber/belayer pairs saved by clients.",
		}),
	}
	r.registry.MustRegister(
		r.assessments,
		r.noResult,
		r.requests,
		r.latency,
		r.savedPairs,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ObserveAssessment counts a produced verdict.
func (r *Recorder) ObserveAssessment(safety, device string) {
	if r == nil {
		return
	}
	r.assessments.WithLabelValues(safety, device).Inc()
}

// ObserveNoResult counts a request that produced no classification.
func (r *Recorder) ObserveNoResult() {
	if r == nil {
		return
	}
	r.noResult.Inc()
}

// ObservePairSaved counts a saved pair.
func (r *Recorder) ObservePairSaved() {
	if r == nil {
		return
	}
	r.savedPairs.Inc()
}

// ObserveRequest records one served HTTP request.
func (r *Recorder) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	r.requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Handler exposes the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry is exposed for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}
