package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

type returnRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Return
}

// NewReturnRepository создаёт in-memory хранилище возвратов.
func NewReturnRepository() domain.ReturnRepository {
	return &returnRepositoryInMemory{items: make(map[string]domain.Return)}
}

func (r *returnRepositoryInMemory) Create(ctx context.Context, ret domain.Return) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[ret.ID]; exists {
		return domain.ErrReturnAlreadyExists
	}
	r.items[ret.ID] = cloneReturn(ret)

	remember(ctx, func() {
		r.mu.Lock()
		delete(r.items, ret.ID)
		r.mu.Unlock()
	})
	return nil
}

func (r *returnRepositoryInMemory) Get(_ context.Context, id string) (domain.Return, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ret, ok := r.items[id]
	if !ok {
		return domain.Return{}, domain.ErrReturnNotFound
	}
	return cloneReturn(ret), nil
}

func (r *returnRepositoryInMemory) ListByOrder(_ context.Context, orderID string) ([]domain.Return, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Return
	for _, ret := range r.items {
		if ret.OrderID == orderID {
			result = append(result, cloneReturn(ret))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *returnRepositoryInMemory) AppendWarnings(_ context.Context, id string, warnings []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ret, ok := r.items[id]
	if !ok {
		return domain.ErrReturnNotFound
	}
	ret.RestockWarnings = append(append([]string(nil), ret.RestockWarnings...), warnings...)
	r.items[id] = ret
	return nil
}

func cloneReturn(ret domain.Return) domain.Return {
	out := ret
	out.Lines = append([]domain.LineDisposition(nil), ret.Lines...)
	out.RestockWarnings = append([]string(nil), ret.RestockWarnings...)
	return out
}

var _ domain.ReturnRepository = (*returnRepositoryInMemory)(nil)
