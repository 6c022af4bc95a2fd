package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты перехода для label result.
const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultStale    = "stale"
	ResultError    = "error"
)

// Lifecycle содержит метрики жизненного цикла заказа.
// Все методы безопасны для nil-получателя.
type Lifecycle struct {
	ordersCreated       prometheus.Counter
	transitions         *prometheus.CounterVec
	operationDuration   *prometheus.HistogramVec
	discount            prometheus.Histogram
	promotionsApplied   prometheus.Counter
	returnsCreated      *prometheus.CounterVec
	restockFailures     prometheus.Counter
	reservationFailures *prometheus.CounterVec
	promotionConflicts  prometheus.Counter
}

// NewLifecycle регистрирует метрики в prometheus.DefaultRegisterer.
func NewLifecycle() *Lifecycle {
	return NewLifecycleWithRegisterer(prometheus.DefaultRegisterer)
}

// NewLifecycleWithRegisterer регистрирует метрики в переданном registerer.
func NewLifecycleWithRegisterer(registerer prometheus.Registerer) *Lifecycle {
	return &Lifecycle{
		ordersCreated: register(registerer, "oms_orders_created_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oms_orders_created_total",
			Help: "Total number of orders created.",
		})),
		transitions: register(registerer, "oms_order_transitions_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oms_order_transitions_total",
			Help: "Order status transitions grouped by edge and result.",
		}, []string{"from", "to", "result"})),
		operationDuration: register(registerer, "oms_order_operation_duration_seconds", prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "oms_order_operation_duration_seconds",
			Help:    "Duration of order lifecycle operations in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		}, []string{"operation"})),
		discount: register(registerer, "oms_order_discount_minor", prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "oms_order_discount_minor",
			Help:    "Discount applied to priced orders in minor currency units.",
			Buckets: prometheus.ExponentialBuckets(100, 10, 7),
		})),
		promotionsApplied: register(registerer, "oms_promotions_applied_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oms_promotions_applied_total",
			Help: "Total number of promotions attached to orders at pricing time.",
		})),
		returnsCreated: register(registerer, "oms_returns_created_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oms_returns_created_total",
			Help: "Total number of returns grouped by reason.",
		}, []string{"reason"})),
		restockFailures: register(registerer, "oms_restock_failures_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oms_restock_failures_total",
			Help: "Restock requests rejected by inventory.",
		})),
		reservationFailures: register(registerer, "oms_reservation_failures_total", prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "oms_reservation_failures_total",
			Help: "Stock reservation requests rejected by inventory, by action.",
		}, []string{"action"})),
		promotionConflicts: register(registerer, "oms_promotion_usage_conflicts_total", prometheus.NewCounter(prometheus.CounterOpts{
			Name: "oms_promotion_usage_conflicts_total",
			Help: "Confirmations rejected because a promotion usage limit was reached.",
		})),
	}
}

// RecordOrderCreated учитывает новый заказ и его скидку.
func (m *Lifecycle) RecordOrderCreated(discountMinor int64, promotions int) {
	if m == nil {
		return
	}
	m.ordersCreated.Inc()
	m.RecordPricing(discountMinor, promotions)
}

// RecordPricing учитывает результат расчёта цены.
func (m *Lifecycle) RecordPricing(discountMinor int64, promotions int) {
	if m == nil {
		return
	}
	m.discount.Observe(float64(discountMinor))
	if promotions > 0 {
		m.promotionsApplied.Add(float64(promotions))
	}
}

// RecordTransition учитывает попытку перехода.
func (m *Lifecycle) RecordTransition(from, to, result string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to, result).Inc()
}

// RecordDuration записывает длительность операции контроллера.
func (m *Lifecycle) RecordDuration(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordReturn учитывает созданный возврат.
func (m *Lifecycle) RecordReturn(reason string) {
	if m == nil {
		return
	}
	m.returnsCreated.WithLabelValues(reason).Inc()
}

// RecordRestockFailure учитывает отказ склада.
func (m *Lifecycle) RecordRestockFailure() {
	if m == nil {
		return
	}
	m.restockFailures.Inc()
}

// RecordReservationFailure учитывает отказ склада в резерве или его снятии.
func (m *Lifecycle) RecordReservationFailure(action string) {
	if m == nil {
		return
	}
	m.reservationFailures.WithLabelValues(action).Inc()
}

// RecordPromotionConflict учитывает исчерпанный лимит при подтверждении.
func (m *Lifecycle) RecordPromotionConflict() {
	if m == nil {
		return
	}
	m.promotionConflicts.Inc()
}
