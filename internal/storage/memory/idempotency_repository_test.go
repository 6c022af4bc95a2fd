package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/storage/memory"
)

func TestIdempotencyKeys_ReserveAndReuse(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	expires := time.Now().UTC().Add(time.Hour).Truncate(time.Second)

	rec, err := repo.Reserve(ctx, " order-create-1 ", "hash-a", expires)
	require.NoError(t, err)
	require.Equal(t, "order-create-1", rec.Key)
	require.Equal(t, domain.IdempotencyStatusProcessing, rec.Status)
	require.True(t, rec.ExpiresAt.Equal(expires))

	again, err := repo.Reserve(ctx, "order-create-1", "hash-a", expires)
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyAlreadyExists)
	require.Equal(t, domain.IdempotencyStatusProcessing, again.Status)

	_, err = repo.Reserve(ctx, "order-create-1", "hash-b", expires)
	require.ErrorIs(t, err, domain.ErrIdempotencyHashMismatch)

	_, err = repo.Reserve(ctx, "", "hash-a", expires)
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)
	_, err = repo.Reserve(ctx, "k", " ", expires)
	require.ErrorIs(t, err, domain.ErrIdempotencyRequestHashRequired)
}

func TestIdempotencyKeys_ReserveDefaultsExpiry(t *testing.T) {
	rec, err := memory.NewIdempotencyRepository().Reserve(context.Background(), "k", "h", time.Time{})
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(24*time.Hour), rec.ExpiresAt, time.Minute)
}

func TestIdempotencyKeys_SettleStoresCopy(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	_, err := repo.Reserve(ctx, "return-1", "h", time.Time{})
	require.NoError(t, err)

	body := []byte(`{"code":9}`)
	require.NoError(t, repo.Settle(ctx, "return-1", domain.IdempotencyResult{
		Status: domain.IdempotencyStatusFailed, Response: body, Code: 9,
	}))
	body[0] = 'x'

	got, err := repo.Get(ctx, "return-1")
	require.NoError(t, err)
	require.Equal(t, domain.IdempotencyStatusFailed, got.Status)
	require.Equal(t, 9, got.Code)
	require.JSONEq(t, `{"code":9}`, string(got.Response))

	existing, err := repo.Reserve(ctx, "return-1", "h", time.Time{})
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyAlreadyExists)
	require.Equal(t, 9, existing.Code)

	err = repo.Settle(ctx, "return-1", domain.IdempotencyResult{Status: domain.IdempotencyStatusProcessing})
	require.Error(t, err)
	require.ErrorIs(t, repo.Settle(ctx, "missing", domain.IdempotencyResult{Status: domain.IdempotencyStatusDone}),
		domain.ErrIdempotencyKeyNotFound)
}

func TestIdempotencyKeys_PurgeOldestFirst(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewIdempotencyRepository()
	now := time.Now().UTC()

	for key, offset := range map[string]time.Duration{
		"oldest": -3 * time.Minute,
		"older":  -2 * time.Minute,
		"old":    -time.Minute,
		"fresh":  time.Hour,
	} {
		_, err := repo.Reserve(ctx, key, "h", now.Add(offset))
		require.NoError(t, err)
	}

	n, err := repo.Purge(ctx, now, 2)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	_, err = repo.Get(ctx, "oldest")
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)
	_, err = repo.Get(ctx, "old")
	require.NoError(t, err)

	n, err = repo.Purge(ctx, now, 0)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = repo.Get(ctx, "fresh")
	require.NoError(t, err)
}
