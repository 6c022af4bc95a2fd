package kafka

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IBM/sarama"
)

// ReplaySource — кто положил запись в DLQ.
type ReplaySource string

const (
	ReplaySourceConsumer ReplaySource = "consumer"
	ReplaySourceOutbox   ReplaySource = "outbox"
)

// ErrNotReplayable — запись DLQ не содержит исходного сообщения.
var ErrNotReplayable = errors.New("dlq record is not replayable")

// ReplayMessage — исходное сообщение, восстановленное из записи DLQ.
type ReplayMessage struct {
	Source    ReplaySource
	Topic     string
	Key       string
	EventType string
	Value     []byte
}

// outboxDeadLetter — тело, которое outbox worker кладёт в payload конверта DLQ.
type outboxDeadLetter struct {
	OutboxID      string          `json:"outbox_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload"`
	PublishError  string          `json:"publish_error"`
}

// DecodeReplay разбирает запись DLQ.
// События outbox возвращаются в eventsTopic в новом конверте с временем now.
func DecodeReplay(msg *sarama.ConsumerMessage, eventsTopic string, now time.Time) (ReplayMessage, error) {
	if msg == nil || len(msg.Value) == 0 {
		return ReplayMessage{}, ErrNotReplayable
	}

	if headerValue(msg, HeaderEventType) == EventTypeDeadLetter {
		return decodeConsumerLetter(msg.Value)
	}
	var wrapped struct {
		OriginalValue string `json:"original_value"`
	}
	if err := json.Unmarshal(msg.Value, &wrapped); err == nil && wrapped.OriginalValue != "" {
		return decodeConsumerLetter(msg.Value)
	}
	return decodeOutboxLetter(msg.Value, eventsTopic, now)
}

func decodeConsumerLetter(raw []byte) (ReplayMessage, error) {
	var letter DeadLetter
	if err := json.Unmarshal(raw, &letter); err != nil {
		return ReplayMessage{}, fmt.Errorf("decode dead letter: %w", err)
	}
	if strings.TrimSpace(letter.OriginalTopic) == "" || letter.OriginalValue == "" {
		return ReplayMessage{}, fmt.Errorf("dead letter without original message: %w", ErrNotReplayable)
	}
	return ReplayMessage{
		Source: ReplaySourceConsumer,
		Topic:  letter.OriginalTopic,
		Key:    letter.OriginalKey,
		Value:  []byte(letter.OriginalValue),
	}, nil
}

func decodeOutboxLetter(raw []byte, eventsTopic string, now time.Time) (ReplayMessage, error) {
	var outer Envelope
	if err := json.Unmarshal(raw, &outer); err != nil || len(outer.Payload) == 0 {
		return ReplayMessage{}, ErrNotReplayable
	}

	var letter outboxDeadLetter
	if err := json.Unmarshal(outer.Payload, &letter); err != nil {
		return ReplayMessage{}, fmt.Errorf("decode outbox dead letter: %w", err)
	}
	if len(letter.Payload) == 0 {
		return ReplayMessage{}, fmt.Errorf("outbox dead letter %s lost its payload: %w", outer.ID, ErrNotReplayable)
	}

	envelope := Envelope{
		ID:            firstNonEmpty(letter.OutboxID, outer.ID),
		AggregateType: firstNonEmpty(letter.AggregateType, outer.AggregateType),
		AggregateID:   firstNonEmpty(letter.AggregateID, outer.AggregateID),
		EventType:     firstNonEmpty(letter.EventType, outer.EventType),
		Payload:       letter.Payload,
		PublishedAt:   now.UTC(),
	}
	value, err := json.Marshal(envelope)
	if err != nil {
		return ReplayMessage{}, fmt.Errorf("encode replay envelope: %w", err)
	}

	if eventsTopic == "" {
		eventsTopic = TopicOrderEvents
	}
	return ReplayMessage{
		Source:    ReplaySourceOutbox,
		Topic:     eventsTopic,
		Key:       firstNonEmpty(envelope.AggregateID, envelope.ID),
		EventType: envelope.EventType,
		Value:     value,
	}, nil
}

func headerValue(msg *sarama.ConsumerMessage, key string) string {
	for _, header := range msg.Headers {
		if header != nil && string(header.Key) == key {
			return string(header.Value)
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
