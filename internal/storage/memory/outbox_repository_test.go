package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/storage/memory"
)

func TestOutboxRepository_PendingKeepsEnqueueOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOutboxRepository()

	for _, eventType := range []string{"OrderCreated", "OrderConfirmed", "OrderShipped"} {
		_, err := repo.Enqueue(ctx, domain.OutboxMessage{AggregateType: "order", AggregateID: "o-1", EventType: eventType})
		require.NoError(t, err)
	}

	pending, err := repo.Pending(ctx, 2)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	require.Equal(t, "OrderCreated", pending[0].EventType)
	require.Equal(t, "OrderConfirmed", pending[1].EventType)
	require.NotEmpty(t, pending[0].ID)

	backlog, err := repo.Backlog(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, backlog.Pending)
	require.Positive(t, backlog.Lag(time.Now().Add(time.Second)))
}

func TestOutboxRepository_ResolveIsOneShot(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOutboxRepository()

	sent, err := repo.Enqueue(ctx, domain.OutboxMessage{EventType: "OrderConfirmed"})
	require.NoError(t, err)
	dead, err := repo.Enqueue(ctx, domain.OutboxMessage{EventType: "OrderCancelled"})
	require.NoError(t, err)

	require.NoError(t, repo.Resolve(ctx, sent.ID, domain.OutboxStateSent))
	require.NoError(t, repo.Resolve(ctx, dead.ID, domain.OutboxStateDead))
	require.Empty(t, repo.Queued())

	require.ErrorIs(t, repo.Resolve(ctx, sent.ID, domain.OutboxStateDead), domain.ErrOutboxMessageNotFound)
	require.ErrorIs(t, repo.Resolve(ctx, "missing", domain.OutboxStateSent), domain.ErrOutboxMessageNotFound)
	require.Error(t, repo.Resolve(ctx, dead.ID, domain.OutboxStatePending))
}

func TestOutboxRepository_PruneOnlySent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOutboxRepository()

	for i := 0; i < 3; i++ {
		msg, err := repo.Enqueue(ctx, domain.OutboxMessage{EventType: "OrderCreated"})
		require.NoError(t, err)
		require.NoError(t, repo.Resolve(ctx, msg.ID, domain.OutboxStateSent))
	}
	dead, err := repo.Enqueue(ctx, domain.OutboxMessage{EventType: "OrderCreated"})
	require.NoError(t, err)
	require.NoError(t, repo.Resolve(ctx, dead.ID, domain.OutboxStateDead))
	_, err = repo.Enqueue(ctx, domain.OutboxMessage{EventType: "OrderCreated"})
	require.NoError(t, err)

	cutoff := time.Now().Add(time.Minute)
	n, err := repo.Prune(ctx, cutoff, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	n, err = repo.Prune(ctx, cutoff, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.Len(t, repo.Queued(), 1)
	require.ErrorIs(t, repo.Resolve(ctx, dead.ID, domain.OutboxStateSent), domain.ErrOutboxMessageNotFound)
}

func TestOutboxRepository_EnqueueRolledBackWithTx(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOutboxRepository()
	boom := errors.New("boom")

	err := memory.NewTxManager().WithinTx(ctx, func(ctx context.Context) error {
		if _, err := repo.Enqueue(ctx, domain.OutboxMessage{EventType: "OrderCreated"}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Empty(t, repo.Queued())
}
