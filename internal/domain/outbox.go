package domain

import (
	"context"
	"errors"
	"time"
)

// ErrOutboxMessageNotFound — сообщение с таким ID отсутствует в outbox.
var ErrOutboxMessageNotFound = errors.New("outbox message not found")

// OutboxState — состояние записи outbox.
type OutboxState string

const (
	OutboxStatePending OutboxState = "pending"
	OutboxStateSent    OutboxState = "sent"
	// OutboxStateDead: попытки исчерпаны, сообщение ушло (или не смогло уйти) в DLQ.
	OutboxStateDead OutboxState = "dead"
)

// Final сообщает, что запись больше не будет выбрана для публикации.
func (s OutboxState) Final() bool {
	return s == OutboxStateSent || s == OutboxStateDead
}

// OutboxMessage — событие, записанное в той же транзакции, что и изменение агрегата.
// AggregateID служит ключом партиции: события одного заказа публикуются по порядку.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	Attempts      int
	CreatedAt     time.Time
}

// OutboxBacklog — объём неопубликованных сообщений.
type OutboxBacklog struct {
	Pending int
	Oldest  time.Time
}

// Lag — возраст самого старого pending-сообщения на момент now.
func (b OutboxBacklog) Lag(now time.Time) time.Duration {
	if b.Pending == 0 || b.Oldest.IsZero() || now.Before(b.Oldest) {
		return 0
	}
	return now.Sub(b.Oldest)
}

// OutboxRepository — хранилище transactional outbox.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	// Pending возвращает до limit pending-сообщений в порядке записи.
	Pending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Backlog(ctx context.Context) (OutboxBacklog, error)
	// Resolve переводит сообщение в финальное состояние и увеличивает счётчик попыток.
	Resolve(ctx context.Context, id string, state OutboxState) error
	// Prune удаляет не более limit отправленных сообщений старше before.
	Prune(ctx context.Context, before time.Time, limit int) (int, error)
}
