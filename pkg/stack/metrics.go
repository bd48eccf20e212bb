package stack

import (
	"github.com/prometheus/client_golang/prometheus"
)

const MetricsNamespace = "longstack"

// Metrics counts stack operations. A nil *Metrics records nothing.
type Metrics struct {
	operations     *prometheus.CounterVec
	liveStacks     prometheus.Gauge
	allocatedSlots prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "operations_total",
			Help:      "Stack operations by operation and result.",
		}, []string{"op", "result"}),
		liveStacks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      "live_stacks",
			Help:      "Stacks allocated and not yet deallocated.",
		}),
		allocatedSlots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "allocated_slots_total",
			Help:      "Slots requested by successful allocations.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.operations, m.liveStacks, m.allocatedSlots)
	}
	return m
}

func (m *Metrics) observe(op Op, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(string(op), Kind(err)).Inc()
}

func (m *Metrics) setLive(n int) {
	if m == nil {
		return
	}
	m.liveStacks.Set(float64(n))
}

func (m *Metrics) addSlots(n int) {
	if m == nil {
		return
	}
	m.allocatedSlots.Add(float64(n))
}
