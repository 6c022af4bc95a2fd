// Package inventory содержит реализации InventoryService, не требующие брокера.
package inventory

import (
	"context"
	"sync"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// MockService — конфигурируемая заглушка склада: запоминает принятые намерения
// и отказывает по товарам из FailFor.
type MockService struct {
	mu sync.Mutex

	// Err возвращается на каждый вызов, если задан.
	Err error
	// FailFor — отказ только по перечисленным товарам.
	FailFor map[string]error

	accepted     []domain.RestockIntent
	reservations []domain.Reservation
	calls        int
}

// NewMockService возвращает mock с успешным сценарием по умолчанию.
func NewMockService() *MockService {
	return &MockService{FailFor: make(map[string]error)}
}

// Restock записывает намерение или возвращает настроенную ошибку.
func (m *MockService) Restock(ctx context.Context, intent domain.RestockIntent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.Err != nil {
		return m.Err
	}
	if err, ok := m.FailFor[intent.ProductRef]; ok {
		return err
	}
	m.accepted = append(m.accepted, intent)
	return nil
}

// Reserve записывает резерв или возвращает настроенную ошибку.
func (m *MockService) Reserve(ctx context.Context, reservation domain.Reservation) error {
	return m.hold(ctx, reservation)
}

// Release записывает снятие резерва так же, как Reserve.
func (m *MockService) Release(ctx context.Context, reservation domain.Reservation) error {
	return m.hold(ctx, reservation)
}

func (m *MockService) hold(ctx context.Context, reservation domain.Reservation) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++
	if m.Err != nil {
		return m.Err
	}
	if err, ok := m.FailFor[reservation.ProductRef]; ok {
		return err
	}
	m.reservations = append(m.reservations, reservation)
	return nil
}

// Reservations возвращает принятые резервы и снятия в порядке вызова.
func (m *MockService) Reservations() []domain.Reservation {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Reservation(nil), m.reservations...)
}

// Accepted возвращает копию принятых намерений в порядке вызова.
func (m *MockService) Accepted() []domain.RestockIntent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.RestockIntent(nil), m.accepted...)
}

// Calls — число вызовов склада любого вида.
func (m *MockService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

var _ domain.InventoryService = (*MockService)(nil)
