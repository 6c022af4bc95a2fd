package postgres

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// Sequence — счётчик номеров в таблице sequences. Внутри транзакции строка scope
// остаётся заблокированной до коммита, поэтому номера идут без пропусков.
type Sequence struct {
	store *Store
}

// NewSequence создаёт генератор номеров поверх store.
func NewSequence(store *Store) *Sequence {
	return &Sequence{store: store}
}

// Next возвращает следующее значение для scope, начиная с 1.
func (s *Sequence) Next(ctx context.Context, scope string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var value int64
	if err := s.store.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO sequences (scope, value) VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET value = sequences.value + 1
		RETURNING value
	`, scope).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence value for %s: %w", scope, err)
	}
	return value, nil
}

var _ domain.SequenceGenerator = (*Sequence)(nil)
