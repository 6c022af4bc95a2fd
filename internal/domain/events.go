package domain

import "time"

// EventType — тип доменного события заказа.
type EventType string

const (
	EventOrderCreated   EventType = "OrderCreated"
	EventOrderConfirmed EventType = "OrderConfirmed"
	EventOrderPreparing EventType = "OrderPreparing"
	EventOrderShipped   EventType = "OrderShipped"
	EventOrderDelivered EventType = "OrderDelivered"
	EventOrderCancelled EventType = "OrderCancelled"
	EventOrderReturned  EventType = "OrderReturned"
	EventOrderRepriced  EventType = "OrderRepriced"
)

// EventForStatus возвращает событие, которым сопровождается вход в статус.
func EventForStatus(status OrderStatus) (EventType, bool) {
	switch status {
	case OrderStatusConfirmed:
		return EventOrderConfirmed, true
	case OrderStatusPreparing:
		return EventOrderPreparing, true
	case OrderStatusShipped:
		return EventOrderShipped, true
	case OrderStatusDelivered:
		return EventOrderDelivered, true
	case OrderStatusCancelled:
		return EventOrderCancelled, true
	default:
		return "", false
	}
}

// DomainEvent — событие для внешних слушателей (уведомления, аудит, склад).
type DomainEvent struct {
	Type        EventType
	OrderID     string
	OrderNumber string
	From        OrderStatus
	To          OrderStatus
	ActorID     string
	Role        Role
	Reason      string
	ReturnID    string
	Occurred    time.Time
}
