package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vladislavdragonenkov/oms/internal/app"
)

const envPrefix = "OMS_"

const (
	envConfigFile = "OMS_CONFIG_FILE"
	envLogLevel   = "OMS_LOG_LEVEL"
	envLogFormat  = "OMS_LOG_FORMAT"

	envGRPCAddr    = "OMS_GRPC_ADDR"
	envHTTPAddr    = "OMS_HTTP_ADDR"
	envMetricsAddr = "OMS_METRICS_ADDR"

	envStorageDriver           = "OMS_STORAGE_DRIVER"
	envPostgresDSN             = "OMS_POSTGRES_DSN"
	envPostgresAutoMigrate     = "OMS_POSTGRES_AUTO_MIGRATE"
	envPostgresMaxOpenConns    = "OMS_POSTGRES_MAX_OPEN_CONNS"
	envPostgresMaxIdleConns    = "OMS_POSTGRES_MAX_IDLE_CONNS"
	envPostgresConnMaxLifetime = "OMS_POSTGRES_CONN_MAX_LIFETIME"

	envSequenceBackend = "OMS_SEQUENCE_BACKEND"
	envRedisAddr       = "OMS_REDIS_ADDR"
	envRedisPassword   = "OMS_REDIS_PASSWORD"
	envRedisDB         = "OMS_REDIS_DB"

	envKafkaBrokers             = "OMS_KAFKA_BROKERS"
	envKafkaOrderEventsTopic    = "OMS_KAFKA_ORDER_EVENTS_TOPIC"
	envKafkaRestockTopic        = "OMS_KAFKA_RESTOCK_TOPIC"
	envKafkaRestockResultsTopic = "OMS_KAFKA_RESTOCK_RESULTS_TOPIC"
	envKafkaDLQTopic            = "OMS_KAFKA_DLQ_TOPIC"
	envKafkaConsumerGroup       = "OMS_KAFKA_CONSUMER_GROUP"
	envKafkaConsumerMaxRetries  = "OMS_KAFKA_CONSUMER_MAX_RETRIES"
	envAllowMockIntegrations    = "OMS_ALLOW_MOCK_INTEGRATIONS"

	envOutboxPollInterval = "OMS_OUTBOX_POLL_INTERVAL"
	envOutboxBatchSize    = "OMS_OUTBOX_BATCH_SIZE"
	envOutboxMaxAttempts  = "OMS_OUTBOX_MAX_ATTEMPTS"
	envOutboxRetryDelay   = "OMS_OUTBOX_RETRY_DELAY"
	envOutboxMaxPending   = "OMS_OUTBOX_MAX_PENDING"
	envOutboxRetention    = "OMS_OUTBOX_RETENTION"

	envIdempotencyTTL              = "OMS_IDEMPOTENCY_TTL"
	envIdempotencyCleanupInterval  = "OMS_IDEMPOTENCY_CLEANUP_INTERVAL"
	envIdempotencyCleanupBatchSize = "OMS_IDEMPOTENCY_CLEANUP_BATCH_SIZE"

	envRestockTimeout  = "OMS_RESTOCK_TIMEOUT"
	envShutdownTimeout = "OMS_SHUTDOWN_TIMEOUT"
	envPromotionsFile  = "OMS_PROMOTIONS_FILE"
)

type envLookup func(string) (string, bool)

func positiveInt(v int) bool                   { return v > 0 }
func nonNegativeInt(v int) bool                { return v >= 0 }
func positiveDuration(v time.Duration) bool    { return v > 0 }
func nonNegativeDuration(v time.Duration) bool { return v >= 0 }

// readConfig читает конфигурацию из окружения поверх YAML-файла OMS_CONFIG_FILE.
// Переменные окружения имеют приоритет над файлом.
func readConfig() (app.Config, []string) {
	lookup := envLookup(os.LookupEnv)

	var warnings []string
	if path, ok := lookup(envConfigFile); ok && strings.TrimSpace(path) != "" {
		fileValues, err := loadConfigFile(strings.TrimSpace(path))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %v", envConfigFile, err))
		} else {
			lookup = layered(lookup, fileValues)
		}
	}

	cfg, more := readConfigFromEnv(lookup)
	return cfg, append(warnings, more...)
}

// loadConfigFile читает плоский YAML: ключ grpc_addr соответствует OMS_GRPC_ADDR.
func loadConfigFile(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	values := make(map[string]string, len(doc))
	for key, value := range doc {
		if value == nil {
			continue
		}
		values[envPrefix+strings.ToUpper(strings.TrimSpace(key))] = fmt.Sprint(value)
	}
	return values, nil
}

func layered(primary envLookup, fallback map[string]string) envLookup {
	return func(key string) (string, bool) {
		if value, ok := primary(key); ok {
			return value, true
		}
		value, ok := fallback[key]
		return value, ok
	}
}

// readConfigFromEnv формирует конфигурацию. Некорректное значение оставляет
// значение по умолчанию и добавляет предупреждение.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	r := &reader{lookup: lookup}

	r.str(envGRPCAddr, &cfg.GRPCAddr)
	r.str(envHTTPAddr, &cfg.HTTPAddr)
	r.str(envMetricsAddr, &cfg.MetricsAddr)

	if v, ok := r.value(envStorageDriver); ok {
		cfg.StorageDriver = strings.ToLower(v)
	}
	if v, ok := r.value(envPostgresDSN); ok {
		cfg.PostgresDSN = v
	}
	r.boolean(envPostgresAutoMigrate, &cfg.PostgresAutoMigrate)
	r.integer(envPostgresMaxOpenConns, &cfg.PostgresMaxOpenConns, positiveInt, "must be > 0")
	r.integer(envPostgresMaxIdleConns, &cfg.PostgresMaxIdleConns, nonNegativeInt, "must be >= 0")
	r.duration(envPostgresConnMaxLifetime, &cfg.PostgresConnMaxLifetime, positiveDuration, "must be > 0")

	if v, ok := r.value(envSequenceBackend); ok {
		cfg.SequenceBackend = strings.ToLower(v)
	}
	r.str(envRedisAddr, &cfg.RedisAddr)
	r.str(envRedisPassword, &cfg.RedisPassword)
	r.integer(envRedisDB, &cfg.RedisDB, nonNegativeInt, "must be >= 0")

	if v, ok := r.value(envKafkaBrokers); ok {
		cfg.KafkaBrokers = v
	}
	r.str(envKafkaOrderEventsTopic, &cfg.KafkaOrderEventsTopic)
	r.str(envKafkaRestockTopic, &cfg.KafkaRestockTopic)
	r.str(envKafkaRestockResultsTopic, &cfg.KafkaRestockResultsTopic)
	r.str(envKafkaDLQTopic, &cfg.KafkaDLQTopic)
	r.str(envKafkaConsumerGroup, &cfg.KafkaConsumerGroup)
	r.integer(envKafkaConsumerMaxRetries, &cfg.KafkaConsumerMaxRetries, positiveInt, "must be > 0")
	r.boolean(envAllowMockIntegrations, &cfg.AllowMockIntegrations)

	r.duration(envOutboxPollInterval, &cfg.OutboxPollInterval, positiveDuration, "must be > 0")
	r.integer(envOutboxBatchSize, &cfg.OutboxBatchSize, positiveInt, "must be > 0")
	r.integer(envOutboxMaxAttempts, &cfg.OutboxMaxAttempts, positiveInt, "must be > 0")
	r.duration(envOutboxRetryDelay, &cfg.OutboxRetryDelay, nonNegativeDuration, "must be >= 0")
	r.integer(envOutboxMaxPending, &cfg.OutboxMaxPending, nonNegativeInt, "must be >= 0")
	r.duration(envOutboxRetention, &cfg.OutboxRetention, nonNegativeDuration, "must be >= 0")

	r.duration(envIdempotencyTTL, &cfg.IdempotencyTTL, positiveDuration, "must be > 0")
	r.duration(envIdempotencyCleanupInterval, &cfg.IdempotencyCleanupInterval, positiveDuration, "must be > 0")
	r.integer(envIdempotencyCleanupBatchSize, &cfg.IdempotencyCleanupBatchSize, positiveInt, "must be > 0")

	r.duration(envRestockTimeout, &cfg.RestockTimeout, positiveDuration, "must be > 0")
	r.duration(envShutdownTimeout, &cfg.ShutdownTimeout, positiveDuration, "must be > 0")
	r.str(envPromotionsFile, &cfg.PromotionsFile)

	return cfg, r.warnings
}

// reader накапливает предупреждения разбора.
type reader struct {
	lookup   envLookup
	warnings []string
}

// value возвращает обрезанное значение; пустая строка считается отсутствующей.
func (r *reader) value(key string) (string, bool) {
	raw, ok := r.lookup(key)
	if !ok {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func (r *reader) warn(key, raw string, err error) {
	r.warnings = append(r.warnings, fmt.Sprintf("%s=%q ignored: %v", key, raw, err))
}

func (r *reader) str(key string, dst *string) {
	if v, ok := r.value(key); ok {
		*dst = v
	}
}

func (r *reader) boolean(key string, dst *bool) {
	raw, ok := r.value(key)
	if !ok {
		return
	}
	v, err := parseBool(raw)
	if err != nil {
		r.warn(key, raw, err)
		return
	}
	*dst = v
}

func (r *reader) integer(key string, dst *int, validate func(int) bool, msg string) {
	raw, ok := r.value(key)
	if !ok {
		return
	}
	v, err := parseInt(raw, validate, msg)
	if err != nil {
		r.warn(key, raw, err)
		return
	}
	*dst = v
}

func (r *reader) duration(key string, dst *time.Duration, validate func(time.Duration) bool, msg string) {
	raw, ok := r.value(key)
	if !ok {
		return
	}
	v, err := parseDuration(raw, validate, msg)
	if err != nil {
		r.warn(key, raw, err)
		return
	}
	*dst = v
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool %q", raw)
	}
}

func parseInt(raw string, validate func(int) bool, msg string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if validate != nil && !validate(v) {
		return 0, fmt.Errorf("%d %s", v, msg)
	}
	return v, nil
}

func parseDuration(raw string, validate func(time.Duration) bool, msg string) (time.Duration, error) {
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if validate != nil && !validate(v) {
		return 0, fmt.Errorf("%s %s", v, msg)
	}
	return v, nil
}
