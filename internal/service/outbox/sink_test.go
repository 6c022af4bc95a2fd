package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/storage/memory"
)

func TestSink_EmitEnqueuesOrderEvent(t *testing.T) {
	repo := memory.NewOutboxRepository()
	sink := NewSink(repo)
	occurred := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	err := sink.Emit(context.Background(), domain.DomainEvent{
		Type:        domain.EventOrderCancelled,
		OrderID:     "order-1",
		OrderNumber: "ORD-2026-000001",
		From:        domain.OrderStatusConfirmed,
		To:          domain.OrderStatusCancelled,
		ActorID:     "mgr-1",
		Role:        domain.RoleManager,
		Reason:      "customer request",
		Occurred:    occurred,
	})
	require.NoError(t, err)

	pending := repo.Queued()
	require.Len(t, pending, 1)
	require.Equal(t, AggregateOrder, pending[0].AggregateType)
	require.Equal(t, "order-1", pending[0].AggregateID)
	require.Equal(t, "OrderCancelled", pending[0].EventType)

	var payload EventPayload
	require.NoError(t, json.Unmarshal(pending[0].Payload, &payload))
	require.Equal(t, "confirmed", payload.From)
	require.Equal(t, "cancelled", payload.To)
	require.Equal(t, "customer request", payload.Reason)
	require.True(t, payload.OccurredAt.Equal(occurred))
}

func TestSink_EmitRolledBackWithTransaction(t *testing.T) {
	repo := memory.NewOutboxRepository()
	sink := NewSink(repo)
	tx := memory.NewTxManager()
	boom := errors.New("save failed")

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, sink.Emit(ctx, domain.DomainEvent{Type: domain.EventOrderConfirmed, OrderID: "order-1"}))
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Empty(t, repo.Queued())
}

func TestSinkAndWorker_DeliverInOrder(t *testing.T) {
	repo := memory.NewOutboxRepository()
	sink := NewSink(repo)
	publisher := &recordingPublisher{}

	for _, typ := range []domain.EventType{domain.EventOrderCreated, domain.EventOrderConfirmed, domain.EventOrderPreparing} {
		require.NoError(t, sink.Emit(context.Background(), domain.DomainEvent{Type: typ, OrderID: "order-1"}))
	}

	worker := NewWorker(repo, publisher, WithMetrics(testMetrics()), WithRetryBaseDelay(0))
	require.Equal(t, 3, worker.ProcessOnce(context.Background()))
	require.Equal(t, []string{"OrderCreated", "OrderConfirmed", "OrderPreparing"}, publisher.types)

	backlog, err := repo.Backlog(context.Background())
	require.NoError(t, err)
	require.Zero(t, backlog.Pending)
}

func TestBackoff(t *testing.T) {
	require.Zero(t, backoff(0, 3))
	require.Equal(t, 10*time.Millisecond, backoff(10*time.Millisecond, 1))
	require.Equal(t, 40*time.Millisecond, backoff(10*time.Millisecond, 3))
	require.Equal(t, time.Duration(1<<63-1), backoff(time.Hour, 80))
}

type recordingPublisher struct {
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, msg domain.OutboxMessage) error {
	p.types = append(p.types, msg.EventType)
	return nil
}
