package pantry

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts pantry mutations. A nil *Metrics is valid and counts nothing.
type Metrics struct {
	cascades     *prometheus.CounterVec
	listOps      *prometheus.CounterVec
	ledgerWrites *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them on reg when not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		cascades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "cascade_total",
			Help:      "Purchase cascade invocations by outcome.",
		}, []string{"outcome"}),
		listOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "list_mutations_total",
			Help:      "List store mutations by operation.",
		}, []string{"op"}),
		ledgerWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pantry",
			Name:      "ledger_writes_total",
			Help:      "Inventory and expense ledger writes.",
		}, []string{"ledger"}),
	}
	if reg != nil {
		reg.MustRegister(m.cascades, m.listOps, m.ledgerWrites)
	}
	return m
}

func (m *Metrics) cascade(o Outcome) {
	if m != nil {
		m.cascades.WithLabelValues(o.String()).Inc()
	}
}

func (m *Metrics) listOp(op string) {
	if m != nil {
		m.listOps.WithLabelValues(op).Inc()
	}
}

func (m *Metrics) ledgerWrite(ledger string) {
	if m != nil {
		m.ledgerWrites.WithLabelValues(ledger).Inc()
	}
}
