package app

import (
	"context"
	"errors"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/oms/internal/service/inventory"
)

const (
	inventoryBreakerFailures = 5
	inventoryBreakerReset    = 30 * time.Second
)

// integrations — внешние коллабораторы: брокер событий и склад.
type integrations struct {
	producer        *kafka.Producer
	consumer        *kafka.Consumer
	outboxPublisher domain.OutboxPublisher
	dlqPublisher    domain.OutboxPublisher
	inventory       domain.InventoryService
}

// initKafkaProducer инициализирует Kafka producer если brokers не пустой.
// Возвращает nil, nil если brokers пустой.
func initKafkaProducer(brokers string, logger *log.Entry) (*kafka.Producer, error) {
	brokerList := splitBrokers(brokers)
	if len(brokerList) == 0 {
		return nil, nil
	}

	producer, err := kafka.NewProducer(brokerList, logger.WithField("component", "kafka-producer"))
	if err != nil {
		logger.WithError(err).Warn("failed to create kafka producer")
		return nil, err
	}

	logger.WithField("brokers", brokerList).Info("kafka producer initialized")
	return producer, nil
}

func splitBrokers(brokers string) []string {
	var out []string
	for _, broker := range strings.Split(brokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			out = append(out, broker)
		}
	}
	return out
}

// mockIntegrationsAllowed: память всегда работает с заглушками, postgres — только по явному флагу.
func mockIntegrationsAllowed(cfg Config) bool {
	return cfg.AllowMockIntegrations || strings.EqualFold(strings.TrimSpace(cfg.StorageDriver), StorageDriverMemory) ||
		strings.TrimSpace(cfg.StorageDriver) == ""
}

// initIntegrations подключает Kafka. Без брокеров склад и публикация событий
// заменяются заглушками, если это разрешено конфигурацией.
func initIntegrations(cfg Config, returns domain.ReturnRepository, logger *log.Entry) (*integrations, error) {
	producer, err := initKafkaProducer(cfg.KafkaBrokers, logger)
	if err != nil && !mockIntegrationsAllowed(cfg) {
		return nil, err
	}
	if producer == nil {
		if !mockIntegrationsAllowed(cfg) {
			return nil, errors.New("kafka brokers are required when mock integrations are not allowed")
		}
		logger.Warn("kafka is not configured: using mock inventory and logging outbox publisher")
		return &integrations{
			outboxPublisher: newLogPublisher(logger.WithField("component", "outbox-log-publisher")),
			inventory:       inventory.NewMockService(),
		}, nil
	}

	breaker := inventory.NewCircuitBreaker(inventoryBreakerFailures, inventoryBreakerReset, logger.WithField("component", "inventory-breaker"))
	result := &integrations{
		producer:        producer,
		outboxPublisher: kafka.NewOutboxPublisher(producer, cfg.KafkaOrderEventsTopic),
		dlqPublisher:    kafka.NewOutboxPublisher(producer, cfg.KafkaDLQTopic),
		inventory: inventory.NewResilientService(
			kafka.NewRestockPublisher(producer, cfg.KafkaRestockTopic),
			inventory.DefaultRetryConfig(),
			breaker,
			logger.WithField("component", "inventory"),
		),
	}

	consumer, err := kafka.NewConsumer(
		splitBrokers(cfg.KafkaBrokers),
		cfg.KafkaConsumerGroup,
		[]string{cfg.KafkaRestockResultsTopic},
		kafka.NewRestockResultHandler(returns, logger.WithField("component", "restock-results")),
		kafka.WithConsumerLogger(logger.WithField("component", "kafka-consumer")),
		kafka.WithDLQ(producer, cfg.KafkaConsumerMaxRetries),
	)
	if err != nil {
		// Без ответов склада сервис работает: предупреждения появятся только от синхронных отказов.
		logger.WithError(err).Warn("restock results consumer is disabled")
	} else {
		result.consumer = consumer
	}
	return result, nil
}

func (i *integrations) startConsumer(ctx context.Context, logger *log.Entry) {
	if i == nil || i.consumer == nil {
		return
	}
	if err := i.consumer.Start(ctx); err != nil {
		logger.WithError(err).Warn("failed to start restock results consumer")
	}
}

func (i *integrations) close(logger *log.Entry) {
	if i == nil {
		return
	}
	if i.consumer != nil {
		if err := i.consumer.Stop(); err != nil {
			logger.WithError(err).Warn("failed to stop kafka consumer")
		}
	}
	closeKafkaProducer(i.producer, logger)
}

// closeKafkaProducer закрывает Kafka producer если он не nil.
func closeKafkaProducer(producer *kafka.Producer, logger *log.Entry) {
	if producer == nil {
		return
	}

	if err := producer.Close(); err != nil {
		logger.WithError(err).Warn("failed to close kafka producer")
	} else {
		logger.Info("kafka producer closed")
	}
}

// logPublisher пишет события outbox в лог вместо брокера.
type logPublisher struct {
	logger *log.Entry
}

func newLogPublisher(logger *log.Entry) *logPublisher {
	return &logPublisher{logger: logger}
}

func (p *logPublisher) Publish(ctx context.Context, msg domain.OutboxMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.logger.WithFields(log.Fields{
		"event_id":     msg.ID,
		"event_type":   msg.EventType,
		"aggregate_id": msg.AggregateID,
	}).Info("outbox event")
	return nil
}

var _ domain.OutboxPublisher = (*logPublisher)(nil)
