package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

const (
	defaultProducerClientID = "oms-order-service"
	defaultProducerRetries  = 5
)

// ProducerConfig — параметры синхронного producer.
type ProducerConfig struct {
	ClientID    string
	MaxRetries  int
	Compression sarama.CompressionCodec
}

func (c ProducerConfig) saramaConfig() *sarama.Config {
	if c.ClientID == "" {
		c.ClientID = defaultProducerClientID
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultProducerRetries
	}

	cfg := sarama.NewConfig()
	cfg.ClientID = c.ClientID
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = c.MaxRetries
	cfg.Producer.Compression = c.Compression
	// Идемпотентный producer требует acks=all и одного запроса в полёте.
	cfg.Producer.Idempotent = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Net.MaxOpenRequests = 1
	return cfg
}

// Producer публикует события заказов и служебные записи в Kafka.
type Producer struct {
	producer sarama.SyncProducer
	logger   *log.Entry
	now      func() time.Time
}

// NewProducer подключается к брокерам с настройками по умолчанию (snappy).
func NewProducer(brokers []string, logger *log.Entry) (*Producer, error) {
	return NewProducerWithConfig(brokers, ProducerConfig{Compression: sarama.CompressionSnappy}, logger)
}

// NewProducerWithConfig подключается к брокерам с явной конфигурацией.
func NewProducerWithConfig(brokers []string, cfg ProducerConfig, logger *log.Entry) (*Producer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka producer: no brokers configured")
	}
	client, err := sarama.NewSyncProducer(brokers, cfg.saramaConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}
	return NewProducerWithClient(client, logger), nil
}

// NewProducerWithClient оборачивает готовый sarama.SyncProducer (в тестах — mocks.SyncProducer).
func NewProducerWithClient(client sarama.SyncProducer, logger *log.Entry) *Producer {
	if logger == nil {
		logger = log.WithField("component", "kafka-producer")
	}
	return &Producer{producer: client, logger: logger, now: time.Now}
}

// PublishEvent кодирует event в JSON и отправляет его; eventType уходит в заголовок x-event-type.
func (p *Producer) PublishEvent(ctx context.Context, topic, key, eventType string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", topicLabel(eventType), err)
	}
	return p.PublishRaw(ctx, topic, key, eventType, value)
}

// PublishRaw отправляет уже сериализованное значение без повторного кодирования.
func (p *Producer) PublishRaw(ctx context.Context, topic, key, eventType string, value []byte) error {
	var headers []sarama.RecordHeader
	if eventType != "" {
		headers = append(headers, header(HeaderEventType, eventType))
	}
	return p.send(ctx, topic, key, value, headers)
}

func (p *Producer) send(ctx context.Context, topic, key string, value []byte, headers []sarama.RecordHeader) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fields := log.Fields{"topic": topic, "key": key}
	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic:     topic,
		Key:       sarama.StringEncoder(key),
		Value:     sarama.ByteEncoder(value),
		Headers:   headers,
		Timestamp: p.now(),
	})
	if err != nil {
		p.logger.WithError(err).WithFields(fields).Error("kafka send failed")
		return fmt.Errorf("send to %s: %w", topic, err)
	}

	fields["partition"] = partition
	fields["offset"] = offset
	p.logger.WithFields(fields).Debug("kafka message sent")
	return nil
}

// Close закрывает producer.
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close kafka producer: %w", err)
	}
	return nil
}

func header(key, value string) sarama.RecordHeader {
	return sarama.RecordHeader{Key: []byte(key), Value: []byte(value)}
}

func topicLabel(eventType string) string {
	if eventType == "" {
		return "untyped"
	}
	return eventType
}
