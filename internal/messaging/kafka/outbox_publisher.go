package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

var errPublisherNotReady = errors.New("kafka outbox publisher is not initialized")

// OutboxTopicPublisher доставляет outbox-сообщения в топик событий заказа.
// Ключ записи — AggregateID, поэтому события одного заказа попадают в одну партицию.
type OutboxTopicPublisher struct {
	producer *Producer
	topic    string
	now      func() time.Time
}

// NewOutboxPublisher создаёт паблишер; пустой topic означает oms.order.events.
func NewOutboxPublisher(producer *Producer, topic string) *OutboxTopicPublisher {
	if topic == "" {
		topic = TopicOrderEvents
	}
	return &OutboxTopicPublisher{producer: producer, topic: topic, now: time.Now}
}

// Publish оборачивает сообщение в Envelope и отправляет его.
// Невалидный JSON в payload не отправляется: повтор такой записи бесполезен.
func (p *OutboxTopicPublisher) Publish(ctx context.Context, msg domain.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return errPublisherNotReady
	}
	if !json.Valid(msg.Payload) {
		return fmt.Errorf("outbox message %s carries malformed payload: %w", msg.ID, domain.ErrOutboxPublish)
	}

	value, err := json.Marshal(envelopeFor(msg, p.now().UTC()))
	if err != nil {
		return fmt.Errorf("encode envelope for %s: %w", msg.ID, err)
	}
	return p.producer.send(ctx, p.topic, partitionKey(msg), value, outboxHeaders(msg))
}

func envelopeFor(msg domain.OutboxMessage, at time.Time) Envelope {
	return Envelope{
		ID:            msg.ID,
		AggregateType: msg.AggregateType,
		AggregateID:   msg.AggregateID,
		EventType:     msg.EventType,
		Payload:       json.RawMessage(msg.Payload),
		PublishedAt:   at,
	}
}

func partitionKey(msg domain.OutboxMessage) string {
	if msg.AggregateID != "" {
		return msg.AggregateID
	}
	return msg.ID
}

func outboxHeaders(msg domain.OutboxMessage) []sarama.RecordHeader {
	headers := []sarama.RecordHeader{header(HeaderOutboxID, msg.ID)}
	if msg.EventType != "" {
		headers = append(headers, header(HeaderEventType, msg.EventType))
	}
	if msg.AggregateType != "" {
		headers = append(headers, header(HeaderAggregateType, msg.AggregateType))
	}
	return headers
}

var _ domain.OutboxPublisher = (*OutboxTopicPublisher)(nil)
