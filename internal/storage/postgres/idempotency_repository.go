package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

const idempotencyColumns = `key, request_hash, status, response, result_code, expires_at, created_at, updated_at`

type idempotencyRepository struct {
	store *Store
	ttl   time.Duration
}

// NewIdempotencyRepository создаёт PostgreSQL-реализацию IdempotencyRepository.
func NewIdempotencyRepository(store *Store) domain.IdempotencyRepository {
	return &idempotencyRepository{store: store, ttl: 24 * time.Hour}
}

// Reserve вставляет ключ через ON CONFLICT DO NOTHING: пустой RETURNING означает повтор.
func (r *idempotencyRepository) Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) (domain.IdempotencyRecord, error) {
	key, requestHash, err := domain.NormalizeIdempotencyKey(key, requestHash, true)
	if err != nil {
		return domain.IdempotencyRecord{}, err
	}
	now := time.Now().UTC()
	if expiresAt.IsZero() {
		expiresAt = now.Add(r.ttl)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	record, err := scanIdempotencyRecord(r.store.conn(ctx).QueryRowContext(ctx, `
		INSERT INTO idempotency_keys (key, request_hash, status, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (key) DO NOTHING
		RETURNING `+idempotencyColumns,
		key, requestHash, string(domain.IdempotencyStatusProcessing), expiresAt, now,
	))
	switch {
	case err == nil:
		return record, nil
	case !errors.Is(err, sql.ErrNoRows):
		return domain.IdempotencyRecord{}, fmt.Errorf("reserve idempotency key: %w", err)
	}

	existing, err := r.get(ctx, key)
	if errors.Is(err, domain.ErrIdempotencyKeyNotFound) {
		// ключ успели удалить между INSERT и SELECT
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyAlreadyExists
	}
	if err != nil {
		return domain.IdempotencyRecord{}, err
	}
	return existing, existing.Reuse(requestHash)
}

func (r *idempotencyRepository) Get(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	key, _, err := domain.NormalizeIdempotencyKey(key, "", false)
	if err != nil {
		return domain.IdempotencyRecord{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return r.get(ctx, key)
}

func (r *idempotencyRepository) get(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	record, err := scanIdempotencyRecord(r.store.conn(ctx).QueryRowContext(ctx,
		`SELECT `+idempotencyColumns+` FROM idempotency_keys WHERE key = $1`, key))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyNotFound
	}
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("get idempotency key %s: %w", key, err)
	}
	return record, nil
}

func (r *idempotencyRepository) Settle(ctx context.Context, key string, result domain.IdempotencyResult) error {
	key, _, err := domain.NormalizeIdempotencyKey(key, "", false)
	if err != nil {
		return err
	}
	if err := result.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.store.conn(ctx).ExecContext(ctx, `
		UPDATE idempotency_keys
		SET status = $2, response = $3, result_code = $4, updated_at = $5
		WHERE key = $1
	`, key, string(result.Status), result.Response, result.Code, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("settle idempotency key %s: %w", key, err)
	}
	return requireAffected(res, domain.ErrIdempotencyKeyNotFound)
}

// Purge удаляет самые старые истёкшие ключи. LIMIT NULL в PostgreSQL снимает ограничение.
func (r *idempotencyRepository) Purge(ctx context.Context, before time.Time, limit int) (int, error) {
	if before.IsZero() {
		before = time.Now().UTC()
	}
	batch := sql.NullInt64{Int64: int64(limit), Valid: limit > 0}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.store.conn(ctx).ExecContext(ctx, `
		DELETE FROM idempotency_keys
		WHERE key IN (
			SELECT key FROM idempotency_keys
			WHERE expires_at <= $1
			ORDER BY expires_at
			LIMIT $2
		)
	`, before, batch)
	if err != nil {
		return 0, fmt.Errorf("purge idempotency keys: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge idempotency keys: %w", err)
	}
	return int(n), nil
}

func scanIdempotencyRecord(row rowScanner) (domain.IdempotencyRecord, error) {
	var (
		rec    domain.IdempotencyRecord
		status string
	)
	if err := row.Scan(&rec.Key, &rec.RequestHash, &status, &rec.Response, &rec.Code,
		&rec.ExpiresAt, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return domain.IdempotencyRecord{}, err
	}
	rec.Status = domain.IdempotencyStatus(status)
	if !rec.Status.Valid() {
		return domain.IdempotencyRecord{}, fmt.Errorf("unknown idempotency status %q for key %s", status, rec.Key)
	}
	rec.ExpiresAt = rec.ExpiresAt.UTC()
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return rec, nil
}

var _ domain.IdempotencyRepository = (*idempotencyRepository)(nil)
