package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/storage/memory"
)

var orderCreatedAt = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newOrder() domain.Order {
	return domain.Order{
		ID:           "order-1",
		Number:       "ORD-2026-000001",
		CustomerID:   "customer-1",
		CustomerKind: domain.CustomerKindRetail,
		Status:       domain.OrderStatusDraft,
		Currency:     "VND",
		Items: []domain.OrderItem{
			{ID: "item-1", ProductRef: "product-1", Qty: 5, UnitPriceMinor: 100},
		},
		Pricing:   domain.Pricing{SubtotalMinor: 500, TotalMinor: 500},
		CreatedAt: orderCreatedAt,
		UpdatedAt: orderCreatedAt,
	}
}

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	order := newOrder()

	require.NoError(t, repo.Create(ctx, order))
	require.ErrorIs(t, repo.Create(ctx, order), domain.ErrOrderAlreadyExists)

	stored, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order, stored)

	stored.Items[0].Qty = 99
	again, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(5), again.Items[0].Qty, "repository must not share slices")

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestOrderRepositoryList(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()

	seed := []struct {
		id       string
		customer string
		status   domain.OrderStatus
		offset   time.Duration
	}{
		{"order-a", "customer-1", domain.OrderStatusDraft, 0},
		{"order-b", "customer-1", domain.OrderStatusConfirmed, time.Minute},
		{"order-c", "customer-1", domain.OrderStatusConfirmed, 2 * time.Minute},
		{"order-d", "customer-1", domain.OrderStatusDraft, 2 * time.Minute},
		{"order-e", "customer-2", domain.OrderStatusConfirmed, 3 * time.Minute},
	}
	for _, s := range seed {
		order := newOrder()
		order.ID, order.CustomerID, order.Status = s.id, s.customer, s.status
		order.CreatedAt = orderCreatedAt.Add(s.offset)
		require.NoError(t, repo.Create(ctx, order))
	}

	ids := func(list []domain.Order) []string {
		out := make([]string, 0, len(list))
		for _, o := range list {
			out = append(out, o.ID)
		}
		return out
	}

	all, err := repo.List(ctx, domain.OrderFilter{CustomerID: "customer-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"order-d", "order-c", "order-b", "order-a"}, ids(all))

	confirmed, err := repo.List(ctx, domain.OrderFilter{CustomerID: "customer-1", Status: domain.OrderStatusConfirmed, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"order-c"}, ids(confirmed))

	none, err := repo.List(ctx, domain.OrderFilter{CustomerID: "customer-3"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOrderRepositorySave(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	order := newOrder()
	require.NoError(t, repo.Create(ctx, order))

	order.Status = domain.OrderStatusConfirmed
	order.ActorTrail = []domain.ActorTrailEntry{{From: domain.OrderStatusDraft, To: domain.OrderStatusConfirmed, Role: domain.RoleManager}}
	require.NoError(t, repo.Save(ctx, order, 0))

	stored, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
	assert.Equal(t, domain.OrderStatusConfirmed, stored.Status)

	require.True(t, domain.IsVersionConflict(repo.Save(ctx, order, 0)))

	ghost := newOrder()
	ghost.ID = "ghost"
	require.ErrorIs(t, repo.Save(ctx, ghost, 0), domain.ErrOrderNotFound)
}

func TestOrderRepositoryActorTrailIsAppendOnly(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	order := newOrder()
	order.ActorTrail = []domain.ActorTrailEntry{{To: domain.OrderStatusDraft, Note: "created"}}
	require.NoError(t, repo.Create(ctx, order))

	truncated := order.Clone()
	truncated.ActorTrail = nil
	require.ErrorIs(t, repo.Save(ctx, truncated, 0), domain.ErrActorTrailRewrite)

	rewritten := order.Clone()
	rewritten.ActorTrail[0].Note = "tampered"
	rewritten.ActorTrail = append(rewritten.ActorTrail, domain.ActorTrailEntry{To: domain.OrderStatusConfirmed})
	require.NoError(t, repo.Save(ctx, rewritten, 0))

	stored, err := repo.Get(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, stored.ActorTrail, 2)
	assert.Equal(t, "created", stored.ActorTrail[0].Note)
}
