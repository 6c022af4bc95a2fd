package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// orders хранит заказы в карте по ID. Наружу всегда отдаются копии.
type orders struct {
	mu   sync.RWMutex
	byID map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orders{byID: make(map[string]domain.Order)}
}

func (r *orders) Create(ctx context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byID[order.ID]; taken {
		return domain.ErrOrderAlreadyExists
	}
	r.byID[order.ID] = order.Clone()

	remember(ctx, func() { r.drop(order.ID) })
	return nil
}

func (r *orders) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.byID[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order.Clone(), nil
}

// List сортирует по created_at и ID по убыванию, как индекс в PostgreSQL.
func (r *orders) List(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	r.mu.RLock()
	matched := make([]domain.Order, 0)
	for _, order := range r.byID {
		if filter.Match(order) {
			matched = append(matched, order.Clone())
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b domain.Order) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

// Save заменяет заказ при совпадении версии. Записанный журнал не переписывается:
// короткий журнал отклоняется, изменённые старые записи восстанавливаются.
func (r *orders) Save(ctx context.Context, order domain.Order, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, ok := r.byID[order.ID]
	switch {
	case !ok:
		return domain.ErrOrderNotFound
	case previous.Version != expectedVersion:
		return domain.ErrOrderVersionConflict
	case len(order.ActorTrail) < len(previous.ActorTrail):
		return domain.ErrActorTrailRewrite
	}

	next := order.Clone()
	copy(next.ActorTrail, previous.ActorTrail)
	next.Version = expectedVersion + 1
	r.byID[order.ID] = next

	remember(ctx, func() { r.restore(previous) })
	return nil
}

func (r *orders) drop(id string) {
	r.mu.Lock()
	delete(r.byID, id)
	r.mu.Unlock()
}

func (r *orders) restore(order domain.Order) {
	r.mu.Lock()
	r.byID[order.ID] = order
	r.mu.Unlock()
}

var _ domain.OrderRepository = (*orders)(nil)
