package app

import "time"

// Драйверы хранилища.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)

// Источники номеров заказов и возвратов.
const (
	SequenceBackendStorage = "storage"
	SequenceBackendRedis   = "redis"
)

// Config описывает настройки запуска приложения.
// Все поля сравнимы: конфигурации можно сравнивать через ==.
type Config struct {
	GRPCAddr    string
	HTTPAddr    string
	MetricsAddr string

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool
	// PostgresMaxOpenConns и остальные лимиты пула; 0 означает значение драйвера по умолчанию.
	PostgresMaxOpenConns    int
	PostgresMaxIdleConns    int
	PostgresConnMaxLifetime time.Duration

	SequenceBackend string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int

	// KafkaBrokers — список брокеров через запятую. Пустая строка отключает Kafka.
	KafkaBrokers             string
	KafkaOrderEventsTopic    string
	KafkaRestockTopic        string
	KafkaRestockResultsTopic string
	KafkaDLQTopic            string
	KafkaConsumerGroup       string
	KafkaConsumerMaxRetries  int

	// AllowMockIntegrations разрешает работать без Kafka при хранилище postgres.
	AllowMockIntegrations bool

	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
	// OutboxMaxPending — порог очереди, после которого readiness становится degraded. 0 отключает проверку.
	OutboxMaxPending int
	// OutboxRetention — сколько хранить отправленные сообщения. 0 отключает удаление.
	OutboxRetention time.Duration

	IdempotencyTTL              time.Duration
	IdempotencyCleanupInterval  time.Duration
	IdempotencyCleanupBatchSize int

	RestockTimeout  time.Duration
	ShutdownTimeout time.Duration

	// PromotionsFile — YAML с каталогом промо-акций, загружается при старте через Upsert.
	PromotionsFile string
}

// DefaultConfig возвращает настройки для локального запуска в памяти.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:    ":50051",
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",

		StorageDriver:           StorageDriverMemory,
		PostgresAutoMigrate:     true,
		PostgresMaxOpenConns:    25,
		PostgresMaxIdleConns:    25,
		PostgresConnMaxLifetime: 30 * time.Minute,

		SequenceBackend: SequenceBackendStorage,
		RedisAddr:       "localhost:6379",

		KafkaOrderEventsTopic:    "oms.order.events",
		KafkaRestockTopic:        "oms.inventory.restock",
		KafkaRestockResultsTopic: "oms.inventory.restock.results",
		KafkaDLQTopic:            "oms.dlq",
		KafkaConsumerGroup:       "oms-order-service",
		KafkaConsumerMaxRetries:  3,

		OutboxPollInterval: time.Second,
		OutboxBatchSize:    100,
		OutboxMaxAttempts:  3,
		OutboxRetryDelay:   100 * time.Millisecond,
		OutboxMaxPending:   1000,
		OutboxRetention:    72 * time.Hour,

		IdempotencyTTL:              24 * time.Hour,
		IdempotencyCleanupInterval:  10 * time.Minute,
		IdempotencyCleanupBatchSize: 500,

		RestockTimeout:  5 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}
