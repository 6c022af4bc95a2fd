package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Итоги доставки одного outbox-сообщения.
const (
	DeliverySent      = "sent"
	DeliveryRetry     = "retry"
	DeliveryDead      = "dead"
	DeliveryDLQFailed = "dlq_failed"
)

// Outbox — метрики доставки transactional outbox.
type Outbox struct {
	deliveries *prometheus.CounterVec
	pending    prometheus.Gauge
	lag        prometheus.Gauge
	pruned     prometheus.Counter
}

// NewOutbox регистрирует метрики outbox в переданном registerer.
func NewOutbox(registerer prometheus.Registerer) *Outbox {
	return &Outbox{
		deliveries: register(registerer, "oms_outbox_deliveries_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oms_outbox_deliveries_total",
			Help: "Outbox publish attempts grouped by outcome.",
		}, []string{"outcome"})),
		pending: register(registerer, "oms_outbox_pending", prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oms_outbox_pending",
			Help: "Outbox messages waiting for publication.",
		})),
		lag: register(registerer, "oms_outbox_lag_seconds", prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "oms_outbox_lag_seconds",
			Help: "Age of the oldest pending outbox message.",
		})),
		pruned: register(registerer, "oms_outbox_pruned_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oms_outbox_pruned_total",
			Help: "Sent outbox messages removed after the retention period.",
		})),
	}
}

// RecordDelivery учитывает итог попытки: DeliverySent, DeliveryRetry, DeliveryDead, DeliveryDLQFailed.
func (m *Outbox) RecordDelivery(outcome string) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(outcome).Inc()
}

// SetBacklog обновляет размер очереди и её задержку.
func (m *Outbox) SetBacklog(pending int, lag time.Duration) {
	if m == nil {
		return
	}
	m.pending.Set(float64(pending))
	if lag < 0 {
		lag = 0
	}
	m.lag.Set(lag.Seconds())
}

func (m *Outbox) RecordPruned(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pruned.Add(float64(n))
}
