package domain

import (
	"fmt"
	"strings"
	"time"
)

// IdempotencyStatus — стадия обработки запроса с ключом идемпотентности.
type IdempotencyStatus string

const (
	IdempotencyStatusProcessing IdempotencyStatus = "processing"
	IdempotencyStatusDone       IdempotencyStatus = "done"
	IdempotencyStatusFailed     IdempotencyStatus = "failed"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s IdempotencyStatus) Valid() bool {
	switch s {
	case IdempotencyStatusProcessing, IdempotencyStatusDone, IdempotencyStatusFailed:
		return true
	default:
		return false
	}
}

// Settled сообщает, что ответ уже сохранён и его можно отдавать на повтор.
func (s IdempotencyStatus) Settled() bool {
	return s == IdempotencyStatusDone || s == IdempotencyStatusFailed
}

// IdempotencyRecord — зарезервированный ключ и, после завершения, ответ транспорта.
// Code хранит код транспорта (для gRPC это codes.Code).
type IdempotencyRecord struct {
	Key         string
	RequestHash string
	Status      IdempotencyStatus
	Response    []byte
	Code        int
	ExpiresAt   time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Expired сообщает, что срок хранения записи истёк к моменту now.
func (r IdempotencyRecord) Expired(now time.Time) bool {
	return !r.ExpiresAt.After(now)
}

// Reuse классифицирует повторную резервацию ключа: тот же запрос даёт
// ErrIdempotencyKeyAlreadyExists, другое тело ErrIdempotencyHashMismatch.
func (r IdempotencyRecord) Reuse(requestHash string) error {
	if r.RequestHash != requestHash {
		return ErrIdempotencyHashMismatch
	}
	return ErrIdempotencyKeyAlreadyExists
}

// Clone копирует запись вместе с телом ответа.
func (r IdempotencyRecord) Clone() IdempotencyRecord {
	out := r
	if r.Response != nil {
		out.Response = append([]byte(nil), r.Response...)
	}
	return out
}

// IdempotencyResult — итог обработки, который сохраняется под ключом.
type IdempotencyResult struct {
	Status   IdempotencyStatus
	Response []byte
	Code     int
}

// Validate требует завершающий статус.
func (r IdempotencyResult) Validate() error {
	if !r.Status.Settled() {
		return fmt.Errorf("idempotency result status %q is not final", r.Status)
	}
	return nil
}

// NormalizeIdempotencyKey обрезает пробелы и проверяет ключ и хеш запроса.
// Пустой requestHash допустим только для операций чтения (hashRequired=false).
func NormalizeIdempotencyKey(key, requestHash string, hashRequired bool) (string, string, error) {
	key, requestHash = strings.TrimSpace(key), strings.TrimSpace(requestHash)
	if key == "" {
		return "", "", ErrIdempotencyKeyRequired
	}
	if hashRequired && requestHash == "" {
		return "", "", ErrIdempotencyRequestHashRequired
	}
	return key, requestHash, nil
}
