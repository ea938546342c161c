package pos

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Metrics counts completed checkouts and the revenue they recorded.
type Metrics struct {
	checkouts prometheus.Counter
	revenue   prometheus.Counter
}

// NewMetrics registers the checkout counters on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_checkouts_total",
			Help: "Jumlah checkout yang berhasil.",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pos_revenue_rupiah_total",
			Help: "Total pendapatan dari checkout dalam rupiah.",
		}),
	}
	reg.MustRegister(m.checkouts, m.revenue)
	return m
}

func (m *Metrics) observe(total decimal.Decimal) {
	if m == nil {
		return
	}
	m.checkouts.Inc()
	if total.IsPositive() {
		m.revenue.Add(total.InexactFloat64())
	}
}
