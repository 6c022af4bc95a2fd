package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// Topics для Kafka
const (
	TopicOrderEvents      = "oms.order.events"
	TopicInventoryRestock = "oms.inventory.restock"
	TopicRestockResults   = "oms.inventory.restock.results"
	TopicDeadLetterQueue  = "oms.dlq" // Dead Letter Queue для failed messages
)

// Kafka headers
const (
	HeaderEventType     = "x-event-type"
	HeaderRetryCount    = "x-retry-count"
	HeaderOutboxID      = "x-outbox-id"
	HeaderAggregateType = "x-aggregate-type"
)

// EventTypeDeadLetter помечает записи, которые consumer переложил в DLQ.
const EventTypeDeadLetter = "DeadLetter"

// Envelope — обёртка outbox-сообщения в топике событий заказа.
type Envelope struct {
	ID            string          `json:"id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishedAt   time.Time       `json:"published_at"`
}

// DeadLetter — сообщение, которое consumer не смог обработать за maxRetries попыток.
type DeadLetter struct {
	OriginalTopic     string    `json:"original_topic"`
	OriginalKey       string    `json:"original_key"`
	OriginalPartition int32     `json:"original_partition"`
	OriginalOffset    int64     `json:"original_offset"`
	OriginalValue     string    `json:"original_value"`
	Error             string    `json:"error"`
	FailedAt          time.Time `json:"failed_at"`
}

// RestockCommand — запрос складу вернуть количество в доступный остаток.
type RestockCommand struct {
	CommandID   string    `json:"command_id"`
	ReturnID    string    `json:"return_id,omitempty"`
	OrderID     string    `json:"order_id,omitempty"`
	ProductRef  string    `json:"product_ref"`
	Qty         int32     `json:"qty"`
	RequestedAt time.Time `json:"requested_at"`
}

// ReservationCommand — резерв позиции подтверждённого заказа или его снятие.
type ReservationCommand struct {
	CommandID     string    `json:"command_id"`
	ReservationID string    `json:"reservation_id"`
	OrderID       string    `json:"order_id"`
	ProductRef    string    `json:"product_ref"`
	Qty           int32     `json:"qty"`
	Action        string    `json:"action"`
	RequestedAt   time.Time `json:"requested_at"`
}

// RestockStatus — итог обработки команды складом.
type RestockStatus string

const (
	RestockStatusDone   RestockStatus = "done"
	RestockStatusFailed RestockStatus = "failed"
)

// RestockResult — ответ склада на RestockCommand.
type RestockResult struct {
	CommandID  string        `json:"command_id"`
	ReturnID   string        `json:"return_id"`
	ProductRef string        `json:"product_ref"`
	Qty        int32         `json:"qty"`
	Status     RestockStatus `json:"status"`
	Error      string        `json:"error,omitempty"`
}

// Warning формирует текст предупреждения для возврата.
func (r RestockResult) Warning() string {
	return fmt.Sprintf("restock of %d x %s rejected by inventory: %s", r.Qty, r.ProductRef, r.Error)
}

// ParseRestockResult парсит ответ склада из сообщения.
func ParseRestockResult(message *sarama.ConsumerMessage) (RestockResult, error) {
	var result RestockResult
	if err := json.Unmarshal(message.Value, &result); err != nil {
		return RestockResult{}, fmt.Errorf("failed to unmarshal restock result: %w", err)
	}
	if result.ReturnID == "" {
		return RestockResult{}, fmt.Errorf("restock result %q has no return_id", result.CommandID)
	}
	return result, nil
}

// intentCommand переводит намерение в команду для склада.
func intentCommand(id string, intent domain.RestockIntent, at time.Time) RestockCommand {
	return RestockCommand{
		CommandID:   id,
		ReturnID:    intent.ReturnID,
		OrderID:     intent.OrderID,
		ProductRef:  intent.ProductRef,
		Qty:         intent.Qty,
		RequestedAt: at,
	}
}

func reservationCommand(id string, reservation domain.Reservation) ReservationCommand {
	return ReservationCommand{
		CommandID:     id,
		ReservationID: reservation.ID,
		OrderID:       reservation.OrderID,
		ProductRef:    reservation.ProductRef,
		Qty:           reservation.Qty,
		Action:        string(reservation.Action),
		RequestedAt:   reservation.RequestedAt,
	}
}
