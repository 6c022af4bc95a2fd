// Package outbox доставляет события заказов из transactional outbox в брокер.
package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/metrics"
)

type workerConfig struct {
	logger       *log.Entry
	dlq          domain.OutboxPublisher
	metrics      *metrics.Outbox
	pollInterval time.Duration
	batchSize    int
	maxAttempts  int
	retryDelay   time.Duration
	retention    time.Duration
	now          func() time.Time
}

// Option настраивает Worker.
type Option func(*workerConfig)

func WithLogger(logger *log.Entry) Option {
	return func(cfg *workerConfig) { cfg.logger = logger }
}

// WithDLQPublisher задаёт получателя сообщений, для которых исчерпаны попытки.
// Без него такие сообщения сразу помечаются dead.
func WithDLQPublisher(publisher domain.OutboxPublisher) Option {
	return func(cfg *workerConfig) { cfg.dlq = publisher }
}

// WithMetrics задаёт метрики; по умолчанию регистрируются в DefaultRegisterer.
func WithMetrics(m *metrics.Outbox) Option {
	return func(cfg *workerConfig) { cfg.metrics = m }
}

func WithPollInterval(interval time.Duration) Option {
	return func(cfg *workerConfig) { cfg.pollInterval = interval }
}

func WithBatchSize(batchSize int) Option {
	return func(cfg *workerConfig) { cfg.batchSize = batchSize }
}

// WithMaxAttempts задаёт число попыток публикации за один проход.
func WithMaxAttempts(maxAttempts int) Option {
	return func(cfg *workerConfig) { cfg.maxAttempts = maxAttempts }
}

// WithRetryBaseDelay задаёт первую паузу между попытками; далее она удваивается.
func WithRetryBaseDelay(delay time.Duration) Option {
	return func(cfg *workerConfig) { cfg.retryDelay = delay }
}

// WithRetention включает удаление отправленных сообщений старше retention.
func WithRetention(retention time.Duration) Option {
	return func(cfg *workerConfig) { cfg.retention = retention }
}

func (cfg *workerConfig) normalize() {
	if cfg.logger == nil {
		cfg.logger = log.WithField("component", "outbox-worker")
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.NewOutbox(prometheus.DefaultRegisterer)
	}
	if cfg.pollInterval <= 0 {
		cfg.pollInterval = time.Second
	}
	if cfg.batchSize <= 0 {
		cfg.batchSize = 100
	}
	if cfg.maxAttempts <= 0 {
		cfg.maxAttempts = 3
	}
	if cfg.retryDelay < 0 {
		cfg.retryDelay = 0
	}
	if cfg.now == nil {
		cfg.now = func() time.Time { return time.Now().UTC() }
	}
}

// verdict — чем закончилась доставка одного сообщения.
type verdict int

const (
	verdictSent verdict = iota
	verdictDead
	// verdictHeld: сообщение осталось pending и будет взято следующим проходом.
	verdictHeld
)

// Worker публикует pending-сообщения outbox.
// Доставка at-least-once; порядок внутри одного агрегата сохраняется:
// если сообщение заказа задержано, следующие сообщения того же заказа ждут следующего прохода.
type Worker struct {
	repo      domain.OutboxRepository
	publisher domain.OutboxPublisher
	cfg       workerConfig
}

// NewWorker создаёт outbox worker.
func NewWorker(repo domain.OutboxRepository, publisher domain.OutboxPublisher, options ...Option) *Worker {
	var cfg workerConfig
	for _, option := range options {
		option(&cfg)
	}
	cfg.normalize()
	return &Worker{repo: repo, publisher: publisher, cfg: cfg}
}

// Run опрашивает outbox до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	if w.repo == nil || w.publisher == nil {
		w.cfg.logger.Warn("outbox worker is disabled: repo or publisher is nil")
		return
	}

	ticker := time.NewTicker(w.cfg.pollInterval)
	defer ticker.Stop()

	for {
		w.ProcessOnce(ctx)
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// ProcessOnce выполняет один проход и возвращает число опубликованных сообщений.
func (w *Worker) ProcessOnce(ctx context.Context) int {
	if ctx.Err() != nil {
		return 0
	}
	defer w.observeBacklog(ctx)

	batch, err := w.repo.Pending(ctx, w.cfg.batchSize)
	if err != nil {
		w.cfg.logger.WithError(err).Warn("failed to read pending outbox messages")
		return 0
	}

	sent := 0
	held := make(map[string]struct{})
	for _, msg := range batch {
		if ctx.Err() != nil {
			break
		}
		if _, blocked := held[msg.AggregateID]; blocked {
			continue
		}
		switch w.deliver(ctx, msg) {
		case verdictSent:
			sent++
		case verdictHeld:
			held[msg.AggregateID] = struct{}{}
		}
	}

	w.prune(ctx)
	return sent
}

func (w *Worker) deliver(ctx context.Context, msg domain.OutboxMessage) verdict {
	entry := w.cfg.logger.WithFields(log.Fields{
		"outbox_id":    msg.ID,
		"event_type":   msg.EventType,
		"aggregate_id": msg.AggregateID,
	})

	publishErr := w.publish(ctx, msg)
	if publishErr == nil {
		w.resolve(ctx, entry, msg.ID, domain.OutboxStateSent)
		return verdictSent
	}
	if ctx.Err() != nil {
		return verdictHeld
	}

	entry.WithError(publishErr).Error("outbox message exhausted publish attempts")
	if err := w.deadLetter(ctx, msg, publishErr); err != nil {
		w.cfg.metrics.RecordDelivery(metrics.DeliveryDLQFailed)
		entry.WithError(err).Warn("dead letter publish failed, message stays pending")
		return verdictHeld
	}
	w.cfg.metrics.RecordDelivery(metrics.DeliveryDead)
	w.resolve(ctx, entry, msg.ID, domain.OutboxStateDead)
	return verdictDead
}

func (w *Worker) resolve(ctx context.Context, entry *log.Entry, id string, state domain.OutboxState) {
	if err := w.repo.Resolve(ctx, id, state); err != nil {
		entry.WithError(err).WithField("state", state).Warn("failed to resolve outbox message")
	}
}

func (w *Worker) publish(ctx context.Context, msg domain.OutboxMessage) error {
	var err error
	for attempt := 1; ; attempt++ {
		if err = w.publisher.Publish(ctx, msg); err == nil {
			w.cfg.metrics.RecordDelivery(metrics.DeliverySent)
			return nil
		}
		w.cfg.metrics.RecordDelivery(metrics.DeliveryRetry)
		if attempt >= w.cfg.maxAttempts {
			return fmt.Errorf("publish failed after %d attempts: %w", attempt, err)
		}
		if !sleep(ctx, backoff(w.cfg.retryDelay, attempt)) {
			return ctx.Err()
		}
	}
}

func (w *Worker) prune(ctx context.Context) {
	if w.cfg.retention <= 0 || ctx.Err() != nil {
		return
	}
	n, err := w.repo.Prune(ctx, w.cfg.now().Add(-w.cfg.retention), w.cfg.batchSize)
	if err != nil {
		w.cfg.logger.WithError(err).Warn("failed to prune sent outbox messages")
		return
	}
	w.cfg.metrics.RecordPruned(n)
}

func (w *Worker) observeBacklog(ctx context.Context) {
	backlog, err := w.repo.Backlog(ctx)
	if err != nil {
		w.cfg.logger.WithError(err).Debug("failed to read outbox backlog")
		return
	}
	w.cfg.metrics.SetBacklog(backlog.Pending, backlog.Lag(w.cfg.now()))
}

// sleep ждёт d или отмены ctx; false означает отмену.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// backoff удваивает base на каждую попытку, не переполняясь.
func backoff(base time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	const maxDuration = time.Duration(1<<63 - 1)
	delay := base
	for i := 1; i < attempt; i++ {
		if delay > maxDuration/2 {
			return maxDuration
		}
		delay *= 2
	}
	return delay
}

// deadLetterBody — содержимое DLQ-сообщения; dlq-replay восстанавливает из него исходное событие.
type deadLetterBody struct {
	OutboxID      string          `json:"outbox_id"`
	AggregateType string          `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     string          `json:"event_type"`
	Payload       json.RawMessage `json:"payload,omitempty"`
	Attempts      int             `json:"attempts"`
	PublishError  string          `json:"publish_error"`
	FailedAt      time.Time       `json:"failed_at"`
}

func (w *Worker) deadLetter(ctx context.Context, msg domain.OutboxMessage, publishErr error) error {
	if w.cfg.dlq == nil {
		return nil
	}

	body := deadLetterBody{
		OutboxID:      msg.ID,
		AggregateType: msg.AggregateType,
		AggregateID:   msg.AggregateID,
		EventType:     msg.EventType,
		Attempts:      msg.Attempts + w.cfg.maxAttempts,
		PublishError:  publishErr.Error(),
		FailedAt:      w.cfg.now(),
	}
	if json.Valid(msg.Payload) {
		body.Payload = msg.Payload
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal dead letter: %w", err)
	}

	letter := msg
	letter.Payload = raw
	if err := w.cfg.dlq.Publish(ctx, letter); err != nil {
		return fmt.Errorf("publish dead letter: %w", err)
	}
	return nil
}
