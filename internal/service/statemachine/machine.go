package statemachine

import (
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// ShipmentPayload — обязательные данные для preparing → shipped.
type ShipmentPayload struct {
	TrackingCode     string
	Carrier          string
	ShippingFeeMinor int64
	Notes            string
}

// Payload — необязательные данные перехода.
type Payload struct {
	Reason   string
	Note     string
	Shipment *ShipmentPayload
}

// Request описывает запрос на смену статуса.
type Request struct {
	Order           domain.Order
	To              domain.OrderStatus
	Actor           domain.Actor
	Payload         Payload
	ExpectedVersion int64
	At              time.Time
}

// UsageDelta — изменение счётчика применений промо-акции.
type UsageDelta struct {
	PromotionID string
	Delta       int
}

// Outcome — результат перехода: новый снимок заказа и побочные эффекты,
// которые вызывающий обязан применить одной атомарной записью.
type Outcome struct {
	Order domain.Order
	Usage []UsageDelta
	Event domain.DomainEvent
}

// Transition применяет переход. Порядок проверок: версия, ребро, роль, данные.
// Исходный заказ не меняется.
func Transition(req Request) (Outcome, error) {
	order := req.Order
	if req.ExpectedVersion != order.Version {
		return Outcome{}, &domain.StaleOrderError{
			OrderID:         order.ID,
			ExpectedVersion: req.ExpectedVersion,
			ActualVersion:   order.Version,
		}
	}

	edge := domain.Edge{From: order.Status, To: req.To}
	if !CanTransition(edge.From, edge.To) {
		return Outcome{}, &domain.InvalidTransitionError{OrderID: order.ID, Edge: edge}
	}
	if !Permitted(edge, req.Actor.Role) {
		return Outcome{}, &domain.ForbiddenError{OrderID: order.ID, Edge: edge, Role: req.Actor.Role}
	}
	if err := validatePayload(order.ID, edge, req.Payload); err != nil {
		return Outcome{}, err
	}

	at := req.At.UTC()
	next := order.Clone()
	next.Status = req.To
	next.Version = order.Version + 1
	next.UpdatedAt = at

	note := strings.TrimSpace(req.Payload.Note)
	var usage []UsageDelta

	switch {
	case edge.To == domain.OrderStatusConfirmed:
		usage = usageDeltas(order.AppliedPromotions, +1)
	case edge.To == domain.OrderStatusCancelled:
		next.CancelReason = strings.TrimSpace(req.Payload.Reason)
		note = joinNote(note, "reason: "+next.CancelReason)
		// Черновик ещё не учитывался в счётчиках, компенсировать нечего.
		if edge.From != domain.OrderStatusDraft {
			usage = usageDeltas(order.AppliedPromotions, -1)
		}
	case edge.To == domain.OrderStatusShipped:
		s := req.Payload.Shipment
		next.Shipment = &domain.Shipment{
			TrackingCode:     strings.TrimSpace(s.TrackingCode),
			Carrier:          strings.TrimSpace(s.Carrier),
			ShippingFeeMinor: s.ShippingFeeMinor,
			Notes:            strings.TrimSpace(s.Notes),
			ShippedAt:        at,
		}
		note = joinNote(note, fmt.Sprintf("carrier: %s, tracking: %s", next.Shipment.Carrier, next.Shipment.TrackingCode))
		if next.Shipment.Notes != "" {
			note = joinNote(note, next.Shipment.Notes)
		}
	}

	next.ActorTrail = append(next.ActorTrail, domain.ActorTrailEntry{
		From:     edge.From,
		To:       edge.To,
		ActorID:  req.Actor.ID,
		Role:     req.Actor.Role,
		Note:     note,
		Occurred: at,
	})

	eventType, _ := domain.EventForStatus(edge.To)
	return Outcome{
		Order: next,
		Usage: usage,
		Event: domain.DomainEvent{
			Type:        eventType,
			OrderID:     next.ID,
			OrderNumber: next.Number,
			From:        edge.From,
			To:          edge.To,
			ActorID:     req.Actor.ID,
			Role:        req.Actor.Role,
			Reason:      next.CancelReason,
			Occurred:    at,
		},
	}, nil
}

func validatePayload(orderID string, edge domain.Edge, p Payload) error {
	invalid := func(field, reason string) error {
		return &domain.InvalidPayloadError{OrderID: orderID, Edge: edge, Field: field, Reason: reason}
	}

	switch edge.To {
	case domain.OrderStatusCancelled:
		if strings.TrimSpace(p.Reason) == "" {
			return invalid("reason", "is required")
		}
	case domain.OrderStatusShipped:
		if p.Shipment == nil {
			return invalid("shipment", "is required")
		}
		if strings.TrimSpace(p.Shipment.TrackingCode) == "" {
			return invalid("tracking_code", "is required")
		}
		if strings.TrimSpace(p.Shipment.Carrier) == "" {
			return invalid("carrier", "is required")
		}
		if p.Shipment.ShippingFeeMinor < 0 {
			return invalid("shipping_fee", "must be non-negative")
		}
	}
	return nil
}

func usageDeltas(promotionIDs []string, delta int) []UsageDelta {
	if len(promotionIDs) == 0 {
		return nil
	}
	out := make([]UsageDelta, 0, len(promotionIDs))
	for _, id := range promotionIDs {
		out = append(out, UsageDelta{PromotionID: id, Delta: delta})
	}
	return out
}

func joinNote(base, extra string) string {
	if base == "" {
		return extra
	}
	return base + "; " + extra
}
