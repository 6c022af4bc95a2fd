package domain

import (
	"context"
	"time"
)

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create сохраняет новый заказ. Возвращает ErrOrderAlreadyExists, если запись с таким ID уже есть.
	Create(ctx context.Context, order Order) error
	// Get возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	Get(ctx context.Context, id string) (Order, error)
	// List возвращает заказы клиента от новых к старым.
	List(ctx context.Context, filter OrderFilter) ([]Order, error)
	// Save записывает заказ, если сохранённая версия равна expectedVersion,
	// иначе ErrOrderVersionConflict. Новая версия — expectedVersion+1.
	// Журнал действий только дополняется.
	Save(ctx context.Context, order Order, expectedVersion int64) error
}

// OrderFilter — выборка заказов одного клиента. Пустой Status не фильтрует, Limit <= 0 не ограничивает.
type OrderFilter struct {
	CustomerID string
	Status     OrderStatus
	Limit      int
}

// Match проверяет заказ против фильтра.
func (f OrderFilter) Match(order Order) bool {
	if order.CustomerID != f.CustomerID {
		return false
	}
	return f.Status == "" || order.Status == f.Status
}

// PromotionRepository — каталог промо-акций.
type PromotionRepository interface {
	// LoadActive возвращает активные акции, окно которых включает now.
	LoadActive(ctx context.Context, now time.Time) ([]Promotion, error)
	Get(ctx context.Context, id string) (Promotion, error)
	Upsert(ctx context.Context, promotion Promotion) error
	// IncrementUsage атомарно увеличивает счётчик, ErrPromotionUsageExhausted при достижении лимита.
	IncrementUsage(ctx context.Context, id string) error
	// DecrementUsage атомарно уменьшает счётчик, не опускаясь ниже нуля.
	DecrementUsage(ctx context.Context, id string) error
}

// ReturnRepository хранит возвраты.
type ReturnRepository interface {
	Create(ctx context.Context, ret Return) error
	Get(ctx context.Context, id string) (Return, error)
	ListByOrder(ctx context.Context, orderID string) ([]Return, error)
	// AppendWarnings добавляет предупреждения о неудачном возврате на склад.
	AppendWarnings(ctx context.Context, id string, warnings []string) error
}
