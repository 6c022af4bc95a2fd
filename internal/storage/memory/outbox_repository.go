package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

type outboxEntry struct {
	msg       domain.OutboxMessage
	state     domain.OutboxState
	updatedAt time.Time
}

// OutboxRepository — in-memory журнал outbox. Записи хранятся в порядке Enqueue.
type OutboxRepository struct {
	mu  sync.RWMutex
	log []*outboxEntry
	now func() time.Time
}

// NewOutboxRepository создаёт in-memory реализацию outbox.
func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{now: func() time.Time { return time.Now().UTC() }}
}

// Enqueue добавляет сообщение в конец журнала; внутри WithinTx запись откатывается вместе с заказом.
func (r *OutboxRepository) Enqueue(ctx context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = r.now()
	}
	msg.Attempts = 0
	msg.Payload = append([]byte(nil), msg.Payload...)
	entry := &outboxEntry{msg: msg, state: domain.OutboxStatePending, updatedAt: msg.CreatedAt}

	r.mu.Lock()
	r.log = append(r.log, entry)
	r.mu.Unlock()

	remember(ctx, func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.log = slices.DeleteFunc(r.log, func(e *outboxEntry) bool { return e == entry })
	})
	return msg, nil
}

func (r *OutboxRepository) Pending(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	if limit <= 0 {
		limit = 100
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(domain.OutboxStatePending, limit), nil
}

func (r *OutboxRepository) Backlog(_ context.Context) (domain.OutboxBacklog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var backlog domain.OutboxBacklog
	for _, e := range r.log {
		if e.state != domain.OutboxStatePending {
			continue
		}
		backlog.Pending++
		if backlog.Oldest.IsZero() || e.msg.CreatedAt.Before(backlog.Oldest) {
			backlog.Oldest = e.msg.CreatedAt
		}
	}
	return backlog, nil
}

// Resolve меняет только pending-записи.
func (r *OutboxRepository) Resolve(_ context.Context, id string, state domain.OutboxState) error {
	if !state.Final() {
		return fmt.Errorf("outbox state %q is not final", state)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.log {
		if e.msg.ID != id || e.state != domain.OutboxStatePending {
			continue
		}
		e.state = state
		e.msg.Attempts++
		e.updatedAt = r.now()
		return nil
	}
	return domain.ErrOutboxMessageNotFound
}

func (r *OutboxRepository) Prune(_ context.Context, before time.Time, limit int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0
	r.log = slices.DeleteFunc(r.log, func(e *outboxEntry) bool {
		if limit > 0 && pruned >= limit {
			return false
		}
		if e.state == domain.OutboxStateSent && e.updatedAt.Before(before) {
			pruned++
			return true
		}
		return false
	})
	return pruned, nil
}

// Queued возвращает копию всех pending-сообщений; удобно в тестах.
func (r *OutboxRepository) Queued() []domain.OutboxMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.collect(domain.OutboxStatePending, 0)
}

func (r *OutboxRepository) collect(state domain.OutboxState, limit int) []domain.OutboxMessage {
	var out []domain.OutboxMessage
	for _, e := range r.log {
		if e.state != state {
			continue
		}
		msg := e.msg
		msg.Payload = append([]byte(nil), e.msg.Payload...)
		out = append(out, msg)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

var _ domain.OutboxRepository = (*OutboxRepository)(nil)
