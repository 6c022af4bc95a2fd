package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

func TestIdempotencyStatus(t *testing.T) {
	for _, status := range []domain.IdempotencyStatus{
		domain.IdempotencyStatusProcessing, domain.IdempotencyStatusDone, domain.IdempotencyStatusFailed,
	} {
		require.True(t, status.Valid(), status)
	}
	require.False(t, domain.IdempotencyStatus("broken").Valid())

	require.False(t, domain.IdempotencyStatusProcessing.Settled())
	require.True(t, domain.IdempotencyStatusDone.Settled())
	require.True(t, domain.IdempotencyStatusFailed.Settled())
}

func TestIdempotencyRecordReuseAndExpiry(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	record := domain.IdempotencyRecord{Key: "k", RequestHash: "h1", ExpiresAt: now}

	require.ErrorIs(t, record.Reuse("h1"), domain.ErrIdempotencyKeyAlreadyExists)
	require.ErrorIs(t, record.Reuse("h2"), domain.ErrIdempotencyHashMismatch)

	require.True(t, record.Expired(now))
	require.False(t, record.Expired(now.Add(-time.Second)))
}

func TestIdempotencyRecordCloneCopiesResponse(t *testing.T) {
	record := domain.IdempotencyRecord{Response: []byte("abc")}
	clone := record.Clone()
	clone.Response[0] = 'x'
	require.Equal(t, "abc", string(record.Response))
	require.Nil(t, domain.IdempotencyRecord{}.Clone().Response)
}

func TestIdempotencyResultValidate(t *testing.T) {
	require.NoError(t, domain.IdempotencyResult{Status: domain.IdempotencyStatusDone}.Validate())
	require.NoError(t, domain.IdempotencyResult{Status: domain.IdempotencyStatusFailed, Code: 9}.Validate())
	require.Error(t, domain.IdempotencyResult{Status: domain.IdempotencyStatusProcessing}.Validate())
	require.Error(t, domain.IdempotencyResult{}.Validate())
}

func TestNormalizeIdempotencyKey(t *testing.T) {
	key, hash, err := domain.NormalizeIdempotencyKey("  k-1 ", " h ", true)
	require.NoError(t, err)
	require.Equal(t, "k-1", key)
	require.Equal(t, "h", hash)

	_, _, err = domain.NormalizeIdempotencyKey(" ", "h", true)
	require.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)

	_, _, err = domain.NormalizeIdempotencyKey("k", "", true)
	require.ErrorIs(t, err, domain.ErrIdempotencyRequestHashRequired)

	_, _, err = domain.NormalizeIdempotencyKey("k", "", false)
	require.NoError(t, err)
}
