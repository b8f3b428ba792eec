package metrics

import (
	"net/http"

	"trustcms/internal/form"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "trustcms"

// Metrics holds the form pipeline counters on a private registry. A nil
// *Metrics records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	coercions  *prometheus.CounterVec
	rejections *prometheus.CounterVec
	violations *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		coercions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "coercions_total",
			Help:      "Form fields converted from strings during normalization.",
		}, []string{"entity", "type"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "rejections_total",
			Help:      "Requests rejected by validation.",
		}, []string{"entity"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "form",
			Name:      "violations_total",
			Help:      "Field violations reported by validation.",
		}, []string{"entity", "field", "reason"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.coercions,
		m.rejections,
		m.violations,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveCoercions(entity string, counts map[form.FieldType]int) {
	if m == nil {
		return
	}
	for t, n := range counts {
		m.coercions.WithLabelValues(entity, string(t)).Add(float64(n))
	}
}

func (m *Metrics) ObserveRejection(entity string, violations []form.Violation) {
	if m == nil {
		return
	}
	m.rejections.WithLabelValues(entity).Inc()
	for _, v := range violations {
		m.violations.WithLabelValues(entity, v.Field, string(v.Reason)).Inc()
	}
}
