package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"
)

const defaultConsumerMaxRetries = 3

// MessageHandler обрабатывает одно сообщение из Kafka.
type MessageHandler func(ctx context.Context, message *sarama.ConsumerMessage) error

// ConsumerOption настраивает Consumer.
type ConsumerOption func(*Consumer)

// WithConsumerLogger задаёт logger.
func WithConsumerLogger(logger *log.Entry) ConsumerOption {
	return func(c *Consumer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDLQ включает перекладывание сообщения в DLQ после maxRetries неудачных попыток.
func WithDLQ(producer *Producer, maxRetries int) ConsumerOption {
	return func(c *Consumer) {
		c.dlqProducer = producer
		if maxRetries > 0 {
			c.maxRetries = maxRetries
		}
	}
}

// Consumer читает топики в составе consumer group.
// Сообщение коммитится после успешной обработки или после переноса в DLQ.
type Consumer struct {
	group       sarama.ConsumerGroup
	topics      []string
	handler     MessageHandler
	logger      *log.Entry
	dlqProducer *Producer
	maxRetries  int
	now         func() time.Time
	wg          sync.WaitGroup
}

func groupConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = defaultProducerClientID
	cfg.Consumer.Return.Errors = true
	cfg.Consumer.Offsets.Initial = sarama.OffsetNewest
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	return cfg
}

// NewConsumer подключается к брокерам как участник группы groupID.
func NewConsumer(brokers []string, groupID string, topics []string, handler MessageHandler, opts ...ConsumerOption) (*Consumer, error) {
	group, err := sarama.NewConsumerGroup(brokers, groupID, groupConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer group %s: %w", groupID, err)
	}
	return newConsumer(group, topics, handler, opts...), nil
}

func newConsumer(group sarama.ConsumerGroup, topics []string, handler MessageHandler, opts ...ConsumerOption) *Consumer {
	c := &Consumer{
		group:      group,
		topics:     topics,
		handler:    handler,
		logger:     log.WithField("component", "kafka-consumer"),
		maxRetries: defaultConsumerMaxRetries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start запускает чтение в фоне и сразу возвращает управление.
func (c *Consumer) Start(ctx context.Context) error {
	c.wg.Add(2)
	go c.consumeLoop(ctx)
	go c.drainErrors()

	c.logger.WithField("topics", c.topics).Info("kafka consumer started")
	return nil
}

// consumeLoop перезапускает Consume после каждого rebalance, пока жив ctx.
func (c *Consumer) consumeLoop(ctx context.Context) {
	defer c.wg.Done()
	for ctx.Err() == nil {
		if err := c.group.Consume(ctx, c.topics, c); err != nil {
			c.logger.WithError(err).Error("consumer session ended with error")
		}
	}
}

func (c *Consumer) drainErrors() {
	defer c.wg.Done()
	for err := range c.group.Errors() {
		c.logger.WithError(err).Error("consumer group error")
	}
}

// Stop закрывает группу и ждёт фоновые горутины.
func (c *Consumer) Stop() error {
	if err := c.group.Close(); err != nil {
		return fmt.Errorf("failed to close kafka consumer: %w", err)
	}
	c.wg.Wait()
	c.logger.Info("kafka consumer stopped")
	return nil
}

func (c *Consumer) Setup(sarama.ConsumerGroupSession) error { return nil }

func (c *Consumer) Cleanup(sarama.ConsumerGroupSession) error { return nil }

// ConsumeClaim обрабатывает сообщения партиции до закрытия claim или конца сессии.
func (c *Consumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	ctx := session.Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}
			c.process(ctx, session, message)
		}
	}
}

func (c *Consumer) process(ctx context.Context, session sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) {
	entry := c.logger.WithFields(log.Fields{
		"topic":     message.Topic,
		"partition": message.Partition,
		"offset":    message.Offset,
	})
	entry.Debug("message received")

	if err := c.handle(ctx, message); err != nil {
		// Без MarkMessage сообщение придёт повторно после rebalance или рестарта.
		entry.WithError(err).Error("message left uncommitted")
		return
	}
	session.MarkMessage(message, "")
}

// handle продолжает счёт попыток с x-retry-count и после maxRetries отправляет сообщение в DLQ.
func (c *Consumer) handle(ctx context.Context, message *sarama.ConsumerMessage) error {
	attempt := retryCount(message)
	var lastErr error
	for ; attempt <= c.maxRetries; attempt++ {
		lastErr = c.handler(ctx, message)
		if lastErr == nil {
			return nil
		}
		c.logger.WithError(lastErr).WithFields(log.Fields{
			"topic":       message.Topic,
			"attempt":     attempt,
			"max_retries": c.maxRetries,
		}).Warn("message handler failed")
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	if c.dlqProducer == nil {
		return lastErr
	}
	if err := c.sendToDLQ(ctx, message, lastErr, attempt); err != nil {
		return fmt.Errorf("failed to send to DLQ: %w", err)
	}
	c.logger.WithField("topic", message.Topic).Info("message moved to DLQ")
	return nil
}

// retryCount читает x-retry-count; мусор в заголовке считается нулём.
func retryCount(message *sarama.ConsumerMessage) int {
	raw := headerValue(message, HeaderRetryCount)
	if raw == "" {
		return 0
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0
	}
	return count
}

func deadLetterFor(message *sarama.ConsumerMessage, cause error, at time.Time) DeadLetter {
	return DeadLetter{
		OriginalTopic:     message.Topic,
		OriginalKey:       string(message.Key),
		OriginalPartition: message.Partition,
		OriginalOffset:    message.Offset,
		OriginalValue:     string(message.Value),
		Error:             cause.Error(),
		FailedAt:          at.UTC(),
	}
}

func (c *Consumer) sendToDLQ(ctx context.Context, message *sarama.ConsumerMessage, cause error, attempts int) error {
	value, err := json.Marshal(deadLetterFor(message, cause, c.now()))
	if err != nil {
		return fmt.Errorf("encode dead letter: %w", err)
	}
	return c.dlqProducer.send(ctx, TopicDeadLetterQueue, string(message.Key), value, []sarama.RecordHeader{
		header(HeaderEventType, EventTypeDeadLetter),
		header(HeaderRetryCount, strconv.Itoa(attempts)),
	})
}
