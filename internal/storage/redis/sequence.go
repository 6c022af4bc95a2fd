// Package redis — генератор номеров заказов и возвратов поверх Redis INCR.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

const defaultKeyPrefix = "oms:seq:"

// Sequence выдаёт номера атомарным INCR по ключу scope. Номер, выданный внутри
// откатившейся транзакции, не возвращается: пропуски допустимы.
type Sequence struct {
	client redis.UniversalClient
	prefix string
}

// NewSequence создаёт генератор поверх готового клиента.
func NewSequence(client redis.UniversalClient) *Sequence {
	return &Sequence{client: client, prefix: defaultKeyPrefix}
}

// Dial подключается к Redis и проверяет доступность.
func Dial(ctx context.Context, addr, password string, db int) (*Sequence, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return NewSequence(client), nil
}

// Next возвращает следующее значение для scope, начиная с 1.
func (s *Sequence) Next(ctx context.Context, scope string) (int64, error) {
	value, err := s.client.Incr(ctx, s.prefix+scope).Result()
	if err != nil {
		return 0, fmt.Errorf("incr sequence %s: %w", scope, err)
	}
	return value, nil
}

// Ping проверяет соединение; используется readiness-проверкой.
func (s *Sequence) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close закрывает клиент.
func (s *Sequence) Close() error {
	return s.client.Close()
}

var _ domain.SequenceGenerator = (*Sequence)(nil)
