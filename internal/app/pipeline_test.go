package app

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/metadata"

	"github.com/vladislavdragonenkov/oms/internal/messaging/kafka"
	grpcsvc "github.com/vladislavdragonenkov/oms/internal/service/grpc"
	"github.com/vladislavdragonenkov/oms/internal/service/outbox"
	omsv1 "github.com/vladislavdragonenkov/oms/proto/oms/v1"
)

// PipelineSuite прогоняет заказ от gRPC-вызова до сообщения в Kafka (через mocks sarama).
type PipelineSuite struct {
	suite.Suite

	ctx      context.Context
	deps     *runtimeDependencies
	service  *grpcsvc.OrderService
	broker   *mocks.SyncProducer
	producer *kafka.Producer
	sent     []*sarama.ProducerMessage
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func (s *PipelineSuite) SetupTest() {
	s.ctx = context.Background()
	s.sent = nil

	logger := log.New()
	logger.SetLevel(log.WarnLevel)
	deps, err := initRuntimeDependencies(s.ctx, DefaultConfig(), logger.WithField("test", "pipeline"))
	s.Require().NoError(err)
	s.deps = deps
	s.service = newTestOrderService(s.T(), deps)

	s.broker = mocks.NewSyncProducer(s.T(), nil)
	s.producer = kafka.NewProducerWithClient(s.broker, logger.WithField("component", "kafka-producer"))
}

func (s *PipelineSuite) TearDownTest() {
	s.Require().NoError(s.broker.Close())
}

func (s *PipelineSuite) capture(msg *sarama.ProducerMessage) error {
	s.sent = append(s.sent, msg)
	return nil
}

func (s *PipelineSuite) call(key string) context.Context {
	return metadata.NewIncomingContext(s.ctx, metadata.Pairs("idempotency-key", key))
}

func (s *PipelineSuite) createAndCancel() string {
	created, err := s.service.CreateOrder(s.call("create-1"), &omsv1.CreateOrderRequest{
		Actor:        &omsv1.Actor{Id: "sales-1", Role: "salesperson"},
		CustomerId:   "customer-1",
		CustomerKind: "retail",
		Currency:     "VND",
		Items:        []*omsv1.OrderItemInput{{ProductRef: "kb-1", Qty: 1, UnitPriceMinor: 90000}},
	})
	s.Require().NoError(err)
	order := created.GetOrder()

	manager := &omsv1.Actor{Id: "mgr-1", Role: "manager"}
	confirmed, err := s.service.RequestTransition(s.call("confirm-1"), &omsv1.RequestTransitionRequest{
		Actor: manager, OrderId: order.GetId(), To: "confirmed", ExpectedVersion: order.GetVersion(),
	})
	s.Require().NoError(err)
	_, err = s.service.RequestTransition(s.call("cancel-1"), &omsv1.RequestTransitionRequest{
		Actor: manager, OrderId: order.GetId(), To: "cancelled", ExpectedVersion: confirmed.GetOrder().GetVersion(), Reason: "customer request",
	})
	s.Require().NoError(err)
	return order.GetId()
}

func (s *PipelineSuite) envelope(msg *sarama.ProducerMessage) kafka.Envelope {
	raw, err := msg.Value.Encode()
	s.Require().NoError(err)
	var env kafka.Envelope
	s.Require().NoError(json.Unmarshal(raw, &env))
	return env
}

func (s *PipelineSuite) TestEventsArePublishedInOrderPerOrderKey() {
	orderID := s.createAndCancel()
	for n := 0; n < 3; n++ {
		s.broker.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(s.capture)
	}

	worker := outbox.NewWorker(s.deps.outboxRepo, kafka.NewOutboxPublisher(s.producer, kafka.TopicOrderEvents))
	s.Equal(3, worker.ProcessOnce(s.ctx))

	var types []string
	for _, msg := range s.sent {
		s.Equal(kafka.TopicOrderEvents, msg.Topic)
		key, err := msg.Key.Encode()
		s.Require().NoError(err)
		s.Equal(orderID, string(key))

		env := s.envelope(msg)
		var payload outbox.EventPayload
		s.Require().NoError(json.Unmarshal(env.Payload, &payload))
		s.Equal(env.EventType, payload.Type)
		types = append(types, env.EventType)
	}
	s.Equal([]string{"OrderCreated", "OrderConfirmed", "OrderCancelled"}, types)

	backlog, err := s.deps.outboxRepo.Backlog(s.ctx)
	s.Require().NoError(err)
	s.Zero(backlog.Pending)
}

func (s *PipelineSuite) TestFailedEventGoesToDLQAndCanBeReplayed() {
	orderID := s.createAndCancel()

	// первое событие не доходит до брокера, остальные публикуются
	s.broker.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)
	s.broker.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(s.capture)
	for n := 0; n < 2; n++ {
		s.broker.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(s.capture)
	}

	worker := outbox.NewWorker(s.deps.outboxRepo,
		kafka.NewOutboxPublisher(s.producer, kafka.TopicOrderEvents),
		outbox.WithMaxAttempts(1),
		outbox.WithDLQPublisher(kafka.NewOutboxPublisher(s.producer, kafka.TopicDeadLetterQueue)),
	)
	s.Equal(2, worker.ProcessOnce(s.ctx))
	s.Require().Len(s.sent, 3)

	dead := s.sent[0]
	s.Equal(kafka.TopicDeadLetterQueue, dead.Topic)
	value, err := dead.Value.Encode()
	s.Require().NoError(err)

	replay, err := kafka.DecodeReplay(&sarama.ConsumerMessage{Value: value}, kafka.TopicOrderEvents, time.Now())
	s.Require().NoError(err)
	s.Equal(kafka.ReplaySourceOutbox, replay.Source)
	s.Equal(kafka.TopicOrderEvents, replay.Topic)
	s.Equal(orderID, replay.Key)
	s.Equal("OrderCreated", replay.EventType)

	var restored kafka.Envelope
	s.Require().NoError(json.Unmarshal(replay.Value, &restored))
	var payload outbox.EventPayload
	s.Require().NoError(json.Unmarshal(restored.Payload, &payload))
	s.Equal(orderID, payload.OrderID)
}

func (s *PipelineSuite) TestReplayedRecordIsRepublishedRaw() {
	letter, err := json.Marshal(kafka.DeadLetter{
		OriginalTopic: kafka.TopicRestockResults,
		OriginalKey:   "ret-1",
		OriginalValue: `{"command_id":"c-1","return_id":"ret-1","status":"done"}`,
		Error:         "temporary",
	})
	s.Require().NoError(err)
	replay, err := kafka.DecodeReplay(&sarama.ConsumerMessage{Value: letter}, "", time.Now())
	s.Require().NoError(err)

	s.broker.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(s.capture)
	s.Require().NoError(s.producer.PublishRaw(s.ctx, replay.Topic, replay.Key, replay.EventType, replay.Value))

	raw, err := s.sent[0].Value.Encode()
	s.Require().NoError(err)
	s.JSONEq(`{"command_id":"c-1","return_id":"ret-1","status":"done"}`, string(raw))
}
