package openapi

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts document assemblies and documentation endpoint hits.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	builds   prometheus.Counter
	requests *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg. Collectors
// that are already registered are reused, so building metrics twice against
// the same registry is not an error.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "apidoc_document_builds_total",
			Help: "Total OpenAPI document assemblies performed for serving",
		}),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apidoc_docs_requests_total",
				Help: "Total requests served by the documentation endpoints",
			},
			[]string{"endpoint"},
		),
	}

	var err error
	if m.builds, err = register(reg, m.builds); err != nil {
		return nil, err
	}
	if m.requests, err = register(reg, m.requests); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *Metrics) observeBuild() {
	if m == nil {
		return
	}
	m.builds.Inc()
}

func (m *Metrics) observeRequest(endpoint string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(endpoint).Inc()
}
