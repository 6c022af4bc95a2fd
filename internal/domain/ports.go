package domain

import (
	"context"
	"time"
)

// InventoryService — внешний склад. Возврат на склад вызывается без повторов.
// Намерение несёт productRef и количество, а также идентификаторы возврата для сверки.
// Reserve и Release вызываются после фиксации подтверждения и отмены заказа.
type InventoryService interface {
	Restock(ctx context.Context, intent RestockIntent) error
	Reserve(ctx context.Context, reservation Reservation) error
	Release(ctx context.Context, reservation Reservation) error
}

// EventSink принимает доменные события. Вызывается внутри единицы работы,
// поэтому событие фиксируется вместе с изменением заказа.
type EventSink interface {
	Emit(ctx context.Context, event DomainEvent) error
}

// TxManager выполняет fn атомарно: все записи через репозитории внутри fn
// либо фиксируются вместе, либо откатываются.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// SequenceGenerator выдаёт монотонные номера в пределах scope (например, "orders:2026").
type SequenceGenerator interface {
	Next(ctx context.Context, scope string) (int64, error)
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(ctx context.Context, event OutboxMessage) error
}

// IdempotencyRepository хранит резервации ключей идемпотентности.
// Reserve возвращает существующую запись вместе с ошибкой Reuse при повторе ключа.
type IdempotencyRepository interface {
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) (IdempotencyRecord, error)
	Get(ctx context.Context, key string) (IdempotencyRecord, error)
	Settle(ctx context.Context, key string, result IdempotencyResult) error
	// Purge удаляет не более limit записей с истёкшим сроком (limit <= 0 без ограничения).
	Purge(ctx context.Context, before time.Time, limit int) (int, error)
}
