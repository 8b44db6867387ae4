package dashboard

import "github.com/prometheus/client_golang/prometheus"

const (
	opAdd    = "add"
	opUpdate = "update"
	opDelete = "delete"
)

type Metrics struct {
	Mutations   *prometheus.CounterVec
	StoreErrors *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Mutations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_mutations_total",
				Help: "Products added, updated or deleted",
			},
			[]string{"op"},
		),
		StoreErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_store_errors_total",
				Help: "Catalog store failures by operation",
			},
			[]string{"op"},
		),
	}

	reg.MustRegister(m.Mutations, m.StoreErrors)
	return m
}

// A nil *Metrics is valid and records nothing.
func (m *Metrics) observe(op string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Mutations.WithLabelValues(op).Add(float64(n))
}

func (m *Metrics) storeFailed(op string) {
	if m == nil {
		return
	}
	m.StoreErrors.WithLabelValues(op).Inc()
}
