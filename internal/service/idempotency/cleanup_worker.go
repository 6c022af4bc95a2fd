// Package idempotency хранит ответы мутирующих запросов по ключу и чистит просроченные ключи.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

var (
	sweepRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "oms_idempotency_sweep_runs_total",
		Help: "Idempotency key sweeps grouped by result.",
	}, []string{"result"})
	sweepPurged = promauto.NewCounter(prometheus.CounterOpts{
		Name: "oms_idempotency_sweep_purged_total",
		Help: "Expired idempotency keys removed by the sweeper.",
	})
	sweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "oms_idempotency_sweep_duration_seconds",
		Help:    "Duration of one idempotency sweep.",
		Buckets: prometheus.DefBuckets,
	})
)

// CleanupConfig задаёт расписание очистки.
// MaxBatches ограничивает число порций за один проход, 0 снимает ограничение.
type CleanupConfig struct {
	Interval   time.Duration
	BatchSize  int
	MaxBatches int
}

func (c CleanupConfig) withDefaults() CleanupConfig {
	if c.Interval <= 0 {
		c.Interval = 10 * time.Minute
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 500
	}
	if c.MaxBatches < 0 {
		c.MaxBatches = 0
	}
	return c
}

// SweepResult — итог одного прохода.
type SweepResult struct {
	Purged  int
	Batches int
	// Truncated: проход остановлен по MaxBatches, просроченные ключи ещё остались.
	Truncated bool
}

// CleanupWorker периодически удаляет ключи с истёкшим сроком хранения.
type CleanupWorker struct {
	repo   domain.IdempotencyRepository
	cfg    CleanupConfig
	logger *log.Entry
	now    func() time.Time
}

// NewCleanupWorker создаёт воркер очистки. Нулевые поля cfg заменяются значениями по умолчанию.
func NewCleanupWorker(repo domain.IdempotencyRepository, cfg CleanupConfig, logger *log.Entry) *CleanupWorker {
	if logger == nil {
		logger = log.WithField("component", "idempotency-cleanup")
	}
	return &CleanupWorker{
		repo:   repo,
		cfg:    cfg.withDefaults(),
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run чистит ключи сразу и затем раз в Interval до отмены ctx.
func (w *CleanupWorker) Run(ctx context.Context) {
	if w.repo == nil {
		w.logger.Warn("idempotency cleanup is disabled: no repository")
		return
	}

	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		w.tick(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *CleanupWorker) tick(ctx context.Context) {
	started := time.Now()
	res, err := w.Sweep(ctx, w.now())
	sweepDuration.Observe(time.Since(started).Seconds())

	entry := w.logger.WithFields(log.Fields{"purged": res.Purged, "batches": res.Batches})
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return
	case err != nil:
		sweepRuns.WithLabelValues("error").Inc()
		entry.WithError(err).Warn("idempotency sweep failed")
	case res.Truncated:
		sweepRuns.WithLabelValues("truncated").Inc()
		entry.Info("idempotency sweep stopped at batch limit")
	default:
		sweepRuns.WithLabelValues("ok").Inc()
		if res.Purged > 0 {
			entry.Debug("idempotency sweep completed")
		}
	}
}

// Sweep удаляет ключи, истёкшие к моменту before, порциями BatchSize.
// Проход заканчивается на первой неполной порции.
func (w *CleanupWorker) Sweep(ctx context.Context, before time.Time) (SweepResult, error) {
	var res SweepResult
	if before.IsZero() {
		before = w.now()
	}

	for w.cfg.MaxBatches == 0 || res.Batches < w.cfg.MaxBatches {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		n, err := w.repo.Purge(ctx, before, w.cfg.BatchSize)
		if err != nil {
			return res, err
		}
		res.Batches++
		res.Purged += n
		sweepPurged.Add(float64(n))
		if n < w.cfg.BatchSize {
			return res, nil
		}
	}
	res.Truncated = true
	return res, nil
}
