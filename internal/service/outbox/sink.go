package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// AggregateOrder — тип агрегата для событий заказа в outbox.
const AggregateOrder = "order"

// EventPayload — JSON-представление доменного события в outbox и в топике.
type EventPayload struct {
	Type        string    `json:"type"`
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number,omitempty"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	ActorID     string    `json:"actor_id,omitempty"`
	Role        string    `json:"role,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	ReturnID    string    `json:"return_id,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// NewEventPayload переводит доменное событие в JSON-представление.
func NewEventPayload(event domain.DomainEvent) EventPayload {
	return EventPayload{
		Type:        string(event.Type),
		OrderID:     event.OrderID,
		OrderNumber: event.OrderNumber,
		From:        string(event.From),
		To:          string(event.To),
		ActorID:     event.ActorID,
		Role:        string(event.Role),
		Reason:      event.Reason,
		ReturnID:    event.ReturnID,
		OccurredAt:  event.Occurred,
	}
}

// Sink — EventSink поверх outbox. Emit вызывается внутри транзакции заказа,
// поэтому событие появляется в outbox тогда и только тогда, когда фиксируется изменение.
type Sink struct {
	repo domain.OutboxRepository
}

// NewSink создаёт EventSink, пишущий в outbox.
func NewSink(repo domain.OutboxRepository) *Sink {
	return &Sink{repo: repo}
}

// Emit сериализует событие и ставит его в очередь публикации.
func (s *Sink) Emit(ctx context.Context, event domain.DomainEvent) error {
	payload, err := json.Marshal(NewEventPayload(event))
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}
	if _, err := s.repo.Enqueue(ctx, domain.OutboxMessage{
		AggregateType: AggregateOrder,
		AggregateID:   event.OrderID,
		EventType:     string(event.Type),
		Payload:       payload,
		CreatedAt:     event.Occurred,
	}); err != nil {
		return fmt.Errorf("enqueue %s event: %w", event.Type, err)
	}
	return nil
}

var _ domain.EventSink = (*Sink)(nil)
