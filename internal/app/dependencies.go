package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/oms/internal/health"
	"github.com/vladislavdragonenkov/oms/internal/storage/memory"
	"github.com/vladislavdragonenkov/oms/internal/storage/postgres"
	"github.com/vladislavdragonenkov/oms/internal/storage/redis"
)

// runtimeDependencies — хранилище, выбранное конфигурацией.
type runtimeDependencies struct {
	repo            domain.OrderRepository
	promotionRepo   domain.PromotionRepository
	returnRepo      domain.ReturnRepository
	outboxRepo      domain.OutboxRepository
	idempotencyRepo domain.IdempotencyRepository
	tx              domain.TxManager
	sequence        domain.SequenceGenerator

	storageChecker  healthcheck.Checker
	sequenceChecker healthcheck.Checker
	closeFn         func() error
}

// initRuntimeDependencies открывает хранилище и генератор номеров.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	var (
		deps *runtimeDependencies
		err  error
	)
	switch driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver)); driver {
	case "", StorageDriverMemory:
		deps = memoryDependencies()
		logger.Info("storage: in-memory")
	case StorageDriverPostgres:
		deps, err = postgresDependencies(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	if err := deps.useSequenceBackend(ctx, cfg, logger); err != nil {
		_ = deps.close()
		return nil, err
	}
	return deps, nil
}

func memoryDependencies() *runtimeDependencies {
	return &runtimeDependencies{
		repo:            memory.NewOrderRepository(),
		promotionRepo:   memory.NewPromotionRepository(),
		returnRepo:      memory.NewReturnRepository(),
		outboxRepo:      memory.NewOutboxRepository(),
		idempotencyRepo: memory.NewIdempotencyRepository(),
		tx:              memory.NewTxManager(),
		sequence:        memory.NewSequence(),
	}
}

func postgresDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	dsn := strings.TrimSpace(cfg.PostgresDSN)
	if dsn == "" {
		return nil, errors.New("postgres dsn is required for storage driver postgres")
	}

	store, err := postgres.Open(ctx, dsn, postgres.PoolConfig{
		MaxOpenConns:    cfg.PostgresMaxOpenConns,
		MaxIdleConns:    cfg.PostgresMaxIdleConns,
		ConnMaxLifetime: cfg.PostgresConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres storage: %w", err)
	}
	if cfg.PostgresAutoMigrate {
		if err := store.EnsureSchema(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply postgres migrations: %w", err)
		}
		logger.Info("postgres migrations applied")
	} else {
		pending, err := store.PendingMigrations(ctx)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("check pending migrations: %w", err)
		}
		if len(pending) > 0 {
			logger.WithField("pending", pending).Warn("postgres schema has pending migrations")
		}
	}
	logger.Info("storage: postgres")

	return &runtimeDependencies{
		repo:            postgres.NewOrderRepository(store),
		promotionRepo:   postgres.NewPromotionRepository(store),
		returnRepo:      postgres.NewReturnRepository(store),
		outboxRepo:      postgres.NewOutboxRepository(store),
		idempotencyRepo: postgres.NewIdempotencyRepository(store),
		tx:              store,
		sequence:        postgres.NewSequence(store),
		storageChecker:  healthcheck.NewSimpleChecker("storage", store.Ping),
		closeFn:         store.Close,
	}, nil
}

// useSequenceBackend переключает нумерацию на Redis. Номера из Redis не откатываются
// вместе с транзакцией, поэтому в нумерации возможны пропуски.
func (d *runtimeDependencies) useSequenceBackend(ctx context.Context, cfg Config, logger *log.Entry) error {
	switch backend := strings.ToLower(strings.TrimSpace(cfg.SequenceBackend)); backend {
	case "", SequenceBackendStorage:
		return nil
	case SequenceBackendRedis:
		seq, err := redis.Dial(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return fmt.Errorf("connect sequence backend: %w", err)
		}
		d.sequence = seq
		d.sequenceChecker = healthcheck.NewSimpleChecker("sequence", seq.Ping)
		d.chainClose(seq.Close)
		logger.WithField("redis_addr", cfg.RedisAddr).Info("order numbers: redis")
		return nil
	default:
		return fmt.Errorf("unsupported sequence backend %q", cfg.SequenceBackend)
	}
}

func (d *runtimeDependencies) chainClose(fn func() error) {
	prev := d.closeFn
	d.closeFn = func() error {
		err := fn()
		if prev != nil {
			err = errors.Join(err, prev())
		}
		return err
	}
}

func (d *runtimeDependencies) close() error {
	if d == nil || d.closeFn == nil {
		return nil
	}
	return d.closeFn()
}
