package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// DefaultTTL — срок хранения ответа по ключу.
const DefaultTTL = 24 * time.Hour

// Outcome — закодированный транспортом ответ. Code — код транспорта,
// Failed отличает сохранённую ошибку от успеха.
type Outcome struct {
	Body     []byte
	Code     int
	Failed   bool
	Replayed bool
}

func (o Outcome) result() domain.IdempotencyResult {
	st := domain.IdempotencyStatusDone
	if o.Failed {
		st = domain.IdempotencyStatusFailed
	}
	return domain.IdempotencyResult{Status: st, Response: o.Body, Code: o.Code}
}

// Guard выполняет мутацию не более одного раза на ключ и
// отдаёт сохранённый ответ на повтор с тем же телом запроса.
type Guard struct {
	repo   domain.IdempotencyRepository
	ttl    time.Duration
	logger *log.Entry
	now    func() time.Time
}

// NewGuard создаёт Guard. При nil repo защита отключена и run вызывается напрямую.
func NewGuard(repo domain.IdempotencyRepository, ttl time.Duration, logger *log.Entry) *Guard {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = log.WithField("component", "idempotency-guard")
	}
	return &Guard{repo: repo, ttl: ttl, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// Do регистрирует ключ и выполняет run. run всегда возвращает Outcome:
// при ошибке это закодированный ответ об ошибке, который будет отдан на повтор.
func (g *Guard) Do(ctx context.Context, key, requestHash string, run func(context.Context) (Outcome, error)) (Outcome, error) {
	if g == nil || g.repo == nil {
		return run(ctx)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return Outcome{}, domain.ErrIdempotencyKeyRequired
	}

	record, err := g.repo.Reserve(ctx, key, requestHash, g.now().Add(g.ttl))
	if err != nil {
		return replay(record, err)
	}

	out, runErr := run(ctx)
	if runErr != nil {
		out.Failed = true
	}
	if settleErr := g.repo.Settle(ctx, key, out.result()); settleErr != nil {
		g.logger.WithError(settleErr).WithFields(log.Fields{
			"idempotency_key": key,
			"failed":          out.Failed,
		}).Warn("failed to store idempotent response")
	}
	return out, runErr
}

func replay(record domain.IdempotencyRecord, reserveErr error) (Outcome, error) {
	switch {
	case errors.Is(reserveErr, domain.ErrIdempotencyHashMismatch):
		return Outcome{}, reserveErr
	case !errors.Is(reserveErr, domain.ErrIdempotencyKeyAlreadyExists):
		return Outcome{}, fmt.Errorf("reserve idempotency key: %w", reserveErr)
	case record.Status == domain.IdempotencyStatusProcessing:
		return Outcome{}, domain.ErrIdempotencyInProgress
	case !record.Status.Settled():
		return Outcome{}, fmt.Errorf("unknown idempotency record status %q", record.Status)
	}
	return Outcome{
		Body:     record.Response,
		Code:     record.Code,
		Failed:   record.Status == domain.IdempotencyStatusFailed,
		Replayed: true,
	}, nil
}

// RequestHash связывает метод и детерминированно закодированное тело запроса.
func RequestHash(method string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte{':'})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
