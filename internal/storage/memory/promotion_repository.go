package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

type promotionRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Promotion
}

// NewPromotionRepository создаёт in-memory каталог промо-акций.
func NewPromotionRepository(seed ...domain.Promotion) domain.PromotionRepository {
	repo := &promotionRepositoryInMemory{items: make(map[string]domain.Promotion, len(seed))}
	for _, p := range seed {
		repo.items[p.ID] = clonePromotion(p)
	}
	return repo
}

func (r *promotionRepositoryInMemory) LoadActive(_ context.Context, now time.Time) ([]domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Promotion, 0, len(r.items))
	for _, p := range r.items {
		if !p.Active || !p.InWindow(now) {
			continue
		}
		result = append(result, clonePromotion(p))
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *promotionRepositoryInMemory) Get(_ context.Context, id string) (domain.Promotion, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return domain.Promotion{}, domain.ErrPromotionNotFound
	}
	return clonePromotion(p), nil
}

func (r *promotionRepositoryInMemory) Upsert(ctx context.Context, promotion domain.Promotion) error {
	if err := promotion.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.items[promotion.ID]
	if existed {
		// Счётчик меняется только через Increment/Decrement.
		promotion.UsageCount = previous.UsageCount
	}
	r.items[promotion.ID] = clonePromotion(promotion)

	remember(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if existed {
			r.items[previous.ID] = previous
			return
		}
		delete(r.items, promotion.ID)
	})
	return nil
}

func (r *promotionRepositoryInMemory) IncrementUsage(ctx context.Context, id string) error {
	return r.adjust(ctx, id, +1)
}

func (r *promotionRepositoryInMemory) DecrementUsage(ctx context.Context, id string) error {
	return r.adjust(ctx, id, -1)
}

func (r *promotionRepositoryInMemory) adjust(ctx context.Context, id string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return domain.ErrPromotionNotFound
	}
	before := p.UsageCount

	switch {
	case delta > 0 && !p.UnderUsageLimit():
		return domain.ErrPromotionUsageExhausted
	case delta < 0 && p.UsageCount == 0:
		return nil
	}
	p.UsageCount += delta
	p.UpdatedAt = time.Now().UTC()
	r.items[id] = p

	remember(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		if cur, ok := r.items[id]; ok {
			cur.UsageCount = before
			r.items[id] = cur
		}
	})
	return nil
}

func clonePromotion(p domain.Promotion) domain.Promotion {
	out := p
	out.Rules = append([]domain.Rule(nil), p.Rules...)
	if p.StartAt != nil {
		v := *p.StartAt
		out.StartAt = &v
	}
	if p.EndAt != nil {
		v := *p.EndAt
		out.EndAt = &v
	}
	if p.UsageLimit != nil {
		v := *p.UsageLimit
		out.UsageLimit = &v
	}
	return out
}

var _ domain.PromotionRepository = (*promotionRepositoryInMemory)(nil)
