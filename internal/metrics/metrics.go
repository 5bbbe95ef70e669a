// Package metrics exposes Prometheus collectors fed by service use-case
// events, LLM calls and HTTP requests.
package metrics

import (
	"context"
	"net/http"
	"strconv"

	"github.com/abushaidislam/study-guide/internal/llm"
	"github.com/abushaidislam/study-guide/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "studyflow"

// Metrics owns a private registry so tests and embedded servers never
// collide on the global one.
type Metrics struct {
	registry     *prometheus.Registry
	useCases     *prometheus.CounterVec
	durations    *prometheus.HistogramVec
	planBlocks   *prometheus.GaugeVec
	llmCalls     *prometheus.CounterVec
	httpRequests *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		useCases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "use_case_total",
			Help:      "Service use-case executions.",
		}, []string{"use_case", "success"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "use_case_duration_seconds",
			Help:      "Service use-case latency.",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"use_case"}),
		planBlocks: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "plan_blocks",
			Help:      "Blocks in the most recent rebuilt plan.",
		}, []string{"day"}),
		llmCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_calls_total",
			Help:      "LLM calls by task and outcome.",
		}, []string{"task", "status"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.useCases, m.durations, m.planBlocks, m.llmCalls, m.httpRequests,
		collectors.NewGoCollector(),
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveUseCase(_ context.Context, ev service.UseCaseEvent) {
	m.useCases.WithLabelValues(ev.Name, strconv.FormatBool(ev.Success)).Inc()
	m.durations.WithLabelValues(ev.Name).Observe(ev.Duration.Seconds())

	if ev.Name != service.UseCaseRebuildPlan || !ev.Success {
		return
	}
	day, _ := ev.Fields[service.FieldDay].(string)
	if count, ok := ev.Fields[service.FieldBlockCount].(int); ok && day != "" {
		m.planBlocks.WithLabelValues(day).Set(float64(count))
	}
}

func (m *Metrics) OnCallComplete(ev llm.LLMCallEvent) {
	status := "ok"
	if !ev.Success {
		status = ev.ErrorCode
	}
	m.llmCalls.WithLabelValues(string(ev.Task), status).Inc()
}

// ObserveHTTP counts one finished request. route is the matched pattern,
// not the raw path.
func (m *Metrics) ObserveHTTP(method, route string, status int) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
