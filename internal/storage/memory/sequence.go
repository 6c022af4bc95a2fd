package memory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// Sequence — in-memory генератор номеров. Номер, выданный внутри откатившейся
// единицы работы, не переиспользуется: пропуски допустимы.
type Sequence struct {
	mu     sync.Mutex
	values map[string]int64
}

// NewSequence создаёт генератор номеров.
func NewSequence() *Sequence {
	return &Sequence{values: make(map[string]int64)}
}

// Next возвращает следующее значение для scope, начиная с 1.
func (s *Sequence) Next(_ context.Context, scope string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[scope]++
	return s.values[scope], nil
}

var _ domain.SequenceGenerator = (*Sequence)(nil)
