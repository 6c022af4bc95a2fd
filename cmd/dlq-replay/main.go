// Команда dlq-replay перечитывает DLQ и возвращает сообщения в исходные топики.
// По умолчанию работает в dry-run и только логирует кандидатов.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	"github.com/IBM/sarama"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms/internal/messaging/kafka"
)

const (
	defaultReplayLimit = 100
	defaultIdleTimeout = 2 * time.Second

	envKafkaBrokers = "OMS_KAFKA_BROKERS"
	envDLQTopic     = "OMS_KAFKA_DLQ_TOPIC"
	envEventsTopic  = "OMS_KAFKA_ORDER_EVENTS_TOPIC"
)

type config struct {
	brokers     []string
	dlqTopic    string
	eventsTopic string
	only        kafka.ReplaySource
	limit       int
	execute     bool
	idleTimeout time.Duration
}

type offsetReader interface {
	Partitions(topic string) ([]int32, error)
	GetOffset(topic string, partition int32, time int64) (int64, error)
}

type partitionStream interface {
	Messages() <-chan *sarama.ConsumerMessage
	Errors() <-chan *sarama.ConsumerError
	Close() error
}

type streamSource interface {
	ConsumePartition(topic string, partition int32, offset int64) (partitionStream, error)
}

type publisher interface {
	PublishRaw(ctx context.Context, topic, key, eventType string, value []byte) error
}

type saramaStreams struct {
	consumer sarama.Consumer
}

func (s saramaStreams) ConsumePartition(topic string, partition int32, offset int64) (partitionStream, error) {
	return s.consumer.ConsumePartition(topic, partition, offset)
}

type stats struct {
	scanned  int
	replayed int
	skipped  int
}

func (s *stats) add(other stats) {
	s.scanned += other.scanned
	s.replayed += other.replayed
	s.skipped += other.skipped
}

type replayer struct {
	cfg       config
	offsets   offsetReader
	streams   streamSource
	publisher publisher // nil в dry-run
	logger    *log.Entry
	now       func() time.Time
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	cfg, err := readConfig(os.Args[1:], os.Getenv, os.Stderr)
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		fail("dlq replay failed: %v", err)
	}
}

func readConfig(args []string, getenv func(string) string, output io.Writer) (config, error) {
	var (
		cfg        config
		brokersRaw string
		only       string
	)

	fs := flag.NewFlagSet("dlq-replay", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&brokersRaw, "brokers", getenv(envKafkaBrokers), "comma-separated kafka brokers")
	fs.StringVar(&cfg.dlqTopic, "dlq-topic", orDefault(getenv(envDLQTopic), kafka.TopicDeadLetterQueue), "dead letter topic to scan")
	fs.StringVar(&cfg.eventsTopic, "events-topic", orDefault(getenv(envEventsTopic), kafka.TopicOrderEvents), "topic for replayed outbox events")
	fs.StringVar(&only, "only", "", "replay only one source: consumer | outbox")
	fs.IntVar(&cfg.limit, "limit", defaultReplayLimit, "max records to scan")
	fs.BoolVar(&cfg.execute, "execute", false, "publish records; dry-run otherwise")
	fs.DurationVar(&cfg.idleTimeout, "idle-timeout", defaultIdleTimeout, "stop reading a partition after this much silence")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	for _, broker := range strings.Split(brokersRaw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.brokers = append(cfg.brokers, broker)
		}
	}

	switch src := kafka.ReplaySource(strings.ToLower(strings.TrimSpace(only))); src {
	case "", kafka.ReplaySourceConsumer, kafka.ReplaySourceOutbox:
		cfg.only = src
	default:
		return config{}, fmt.Errorf("unsupported -only value %q", only)
	}

	switch {
	case len(cfg.brokers) == 0:
		return config{}, fmt.Errorf("kafka brokers are required (-brokers or %s)", envKafkaBrokers)
	case strings.TrimSpace(cfg.dlqTopic) == "":
		return config{}, errors.New("dlq-topic is required")
	case cfg.limit <= 0:
		return config{}, errors.New("limit must be > 0")
	case cfg.idleTimeout <= 0:
		return config{}, errors.New("idle-timeout must be > 0")
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config) error {
	logger := log.WithField("component", "dlq-replay")

	saramaCfg := sarama.NewConfig()
	saramaCfg.Consumer.Return.Errors = true
	client, err := sarama.NewClient(cfg.brokers, saramaCfg)
	if err != nil {
		return fmt.Errorf("create kafka client: %w", err)
	}
	defer func() { _ = client.Close() }()

	consumer, err := sarama.NewConsumerFromClient(client)
	if err != nil {
		return fmt.Errorf("create kafka consumer: %w", err)
	}
	defer func() { _ = consumer.Close() }()

	r := &replayer{
		cfg:     cfg,
		offsets: client,
		streams: saramaStreams{consumer: consumer},
		logger:  logger,
		now:     time.Now,
	}
	if cfg.execute {
		producer, err := kafka.NewProducer(cfg.brokers, logger)
		if err != nil {
			return err
		}
		defer func() { _ = producer.Close() }()
		r.publisher = producer
	}

	_, err = r.run(ctx)
	return err
}

func (r *replayer) run(ctx context.Context) (stats, error) {
	var total stats
	if r.cfg.execute && r.publisher == nil {
		return total, errors.New("publisher is required in execute mode")
	}

	partitions, err := r.offsets.Partitions(r.cfg.dlqTopic)
	if err != nil {
		return total, fmt.Errorf("list partitions of %s: %w", r.cfg.dlqTopic, err)
	}
	slices.Sort(partitions)

	for _, partition := range partitions {
		budget := r.cfg.limit - total.scanned
		if budget <= 0 {
			break
		}
		got, err := r.scanPartition(ctx, partition, budget)
		total.add(got)
		if err != nil {
			return total, err
		}
	}

	mode := "dry-run"
	if r.cfg.execute {
		mode = "execute"
	}
	r.logger.WithFields(log.Fields{
		"mode":     mode,
		"scanned":  total.scanned,
		"replayed": total.replayed,
		"skipped":  total.skipped,
	}).Info("dlq replay finished")
	return total, nil
}

// scanPartition читает партицию от начала до high watermark, снятого перед чтением.
func (r *replayer) scanPartition(ctx context.Context, partition int32, budget int) (stats, error) {
	var got stats

	oldest, err := r.offsets.GetOffset(r.cfg.dlqTopic, partition, sarama.OffsetOldest)
	if err != nil {
		return got, fmt.Errorf("oldest offset of partition %d: %w", partition, err)
	}
	newest, err := r.offsets.GetOffset(r.cfg.dlqTopic, partition, sarama.OffsetNewest)
	if err != nil {
		return got, fmt.Errorf("newest offset of partition %d: %w", partition, err)
	}
	if newest <= oldest {
		return got, nil
	}

	stream, err := r.streams.ConsumePartition(r.cfg.dlqTopic, partition, oldest)
	if err != nil {
		return got, fmt.Errorf("consume partition %d: %w", partition, err)
	}
	defer func() { _ = stream.Close() }()

	idle := time.NewTimer(r.cfg.idleTimeout)
	defer idle.Stop()

	for got.scanned < budget {
		select {
		case <-ctx.Done():
			return got, ctx.Err()
		case <-idle.C:
			return got, nil
		case consumeErr := <-stream.Errors():
			if consumeErr != nil {
				return got, fmt.Errorf("partition %d: %w", partition, consumeErr)
			}
		case msg, ok := <-stream.Messages():
			if !ok || msg == nil || msg.Offset >= newest {
				return got, nil
			}
			idle.Reset(r.cfg.idleTimeout)

			got.scanned++
			replayed, err := r.handle(ctx, msg)
			if err != nil {
				return got, err
			}
			if replayed {
				got.replayed++
			} else {
				got.skipped++
			}
			if msg.Offset+1 >= newest {
				return got, nil
			}
		}
	}
	return got, nil
}

func (r *replayer) handle(ctx context.Context, msg *sarama.ConsumerMessage) (bool, error) {
	entry := r.logger.WithFields(log.Fields{
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	replay, err := kafka.DecodeReplay(msg, r.cfg.eventsTopic, r.now())
	if err != nil {
		entry.WithError(err).Warn("skip dlq record")
		return false, nil
	}
	if r.cfg.only != "" && replay.Source != r.cfg.only {
		return false, nil
	}

	entry = entry.WithFields(log.Fields{
		"source":       replay.Source,
		"target_topic": replay.Topic,
		"key":          replay.Key,
	})
	if !r.cfg.execute {
		entry.Info("dlq replay candidate")
		return true, nil
	}
	if err := r.publisher.PublishRaw(ctx, replay.Topic, replay.Key, replay.EventType, replay.Value); err != nil {
		return false, fmt.Errorf("replay offset %d of partition %d: %w", msg.Offset, msg.Partition, err)
	}
	entry.Debug("dlq record replayed")
	return true, nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
