package inventory

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// ErrCircuitOpen возвращается, пока circuit breaker не пропускает вызовы склада.
var ErrCircuitOpen = errors.New("inventory circuit breaker is open")

// RetryConfig конфигурация для retry логики.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig возвращает конфигурацию по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		BackoffFactor: 2.0,
	}
}

// ResilientService оборачивает склад повторами и circuit breaker.
type ResilientService struct {
	next    domain.InventoryService
	config  RetryConfig
	breaker *CircuitBreaker
	logger  *log.Entry
}

// NewResilientService создаёт декоратор. breaker может быть nil.
func NewResilientService(next domain.InventoryService, config RetryConfig, breaker *CircuitBreaker, logger *log.Entry) *ResilientService {
	if logger == nil {
		logger = log.WithField("component", "inventory-resilient")
	}
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	if config.BackoffFactor < 1 {
		config.BackoffFactor = 1
	}
	return &ResilientService{next: next, config: config, breaker: breaker, logger: logger}
}

// Restock повторяет вызов склада с экспоненциальной задержкой.
func (s *ResilientService) Restock(ctx context.Context, intent domain.RestockIntent) error {
	entry := s.logger.WithFields(log.Fields{
		"return_id":   intent.ReturnID,
		"product_ref": intent.ProductRef,
	})
	return s.retry(ctx, entry, "restock", func() error { return s.next.Restock(ctx, intent) })
}

// Reserve повторяет резервирование по тем же правилам, что и Restock.
func (s *ResilientService) Reserve(ctx context.Context, reservation domain.Reservation) error {
	return s.retry(ctx, s.reservationEntry(reservation), "reserve", func() error { return s.next.Reserve(ctx, reservation) })
}

// Release повторяет снятие резерва.
func (s *ResilientService) Release(ctx context.Context, reservation domain.Reservation) error {
	return s.retry(ctx, s.reservationEntry(reservation), "release", func() error { return s.next.Release(ctx, reservation) })
}

func (s *ResilientService) reservationEntry(reservation domain.Reservation) *log.Entry {
	return s.logger.WithFields(log.Fields{
		"order_id":    reservation.OrderID,
		"product_ref": reservation.ProductRef,
	})
}

func (s *ResilientService) retry(ctx context.Context, entry *log.Entry, op string, fn func() error) error {
	var lastErr error
	delay := s.config.InitialDelay
	for attempt := 1; attempt <= s.config.MaxAttempts; attempt++ {
		lastErr = s.call(fn)
		if lastErr == nil {
			if attempt > 1 {
				entry.WithField("attempt", attempt).Info(op + " succeeded after retry")
			}
			return nil
		}
		if !retryable(lastErr) || attempt == s.config.MaxAttempts {
			break
		}

		entry.WithError(lastErr).WithFields(log.Fields{"attempt": attempt, "delay": delay}).Warn(op + " failed, retrying")
		if delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}
		delay = time.Duration(float64(delay) * s.config.BackoffFactor)
		if s.config.MaxDelay > 0 && delay > s.config.MaxDelay {
			delay = s.config.MaxDelay
		}
	}
	return lastErr
}

func (s *ResilientService) call(fn func() error) error {
	if s.breaker == nil {
		return fn()
	}
	return s.breaker.Execute(fn)
}

// retryable: отмена контекста и открытый breaker не повторяются.
func retryable(err error) bool {
	return !errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded) &&
		!errors.Is(err, ErrCircuitOpen)
}

var _ domain.InventoryService = (*ResilientService)(nil)

// CircuitState — состояние circuit breaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker размыкается после maxFailures ошибок подряд и
// пропускает пробный вызов по истечении resetTimeout.
type CircuitBreaker struct {
	mu           sync.Mutex
	maxFailures  int
	resetTimeout time.Duration
	failures     int
	lastFailure  time.Time
	state        CircuitState
	now          func() time.Time
	logger       *log.Entry
}

// NewCircuitBreaker создаёт новый circuit breaker.
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration, logger *log.Entry) *CircuitBreaker {
	if logger == nil {
		logger = log.WithField("component", "inventory-circuit-breaker")
	}
	if maxFailures <= 0 {
		maxFailures = 1
	}
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		state:        CircuitClosed,
		now:          time.Now,
		logger:       logger,
	}
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Execute выполняет операцию через circuit breaker.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	if cb.state == CircuitOpen {
		if cb.now().Sub(cb.lastFailure) <= cb.resetTimeout {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.state = CircuitHalfOpen
		cb.logger.Info("circuit breaker half-open")
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil {
		cb.failures++
		cb.lastFailure = cb.now()
		if cb.state == CircuitHalfOpen || cb.failures >= cb.maxFailures {
			cb.state = CircuitOpen
			cb.logger.WithField("failures", cb.failures).Warn("circuit breaker opened")
		}
		return err
	}
	if cb.state == CircuitHalfOpen {
		cb.logger.Info("circuit breaker closed")
	}
	cb.state = CircuitClosed
	cb.failures = 0
	return nil
}
