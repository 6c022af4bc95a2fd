package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerConfigDefaults(t *testing.T) {
	cfg := ProducerConfig{}.saramaConfig()
	assert.Equal(t, defaultProducerClientID, cfg.ClientID)
	assert.Equal(t, defaultProducerRetries, cfg.Producer.Retry.Max)
	assert.True(t, cfg.Producer.Idempotent)
	assert.True(t, cfg.Producer.Return.Successes)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.Equal(t, sarama.CompressionNone, cfg.Producer.Compression)

	custom := ProducerConfig{ClientID: "dlq-replay", MaxRetries: 2, Compression: sarama.CompressionLZ4}.saramaConfig()
	assert.Equal(t, "dlq-replay", custom.ClientID)
	assert.Equal(t, 2, custom.Producer.Retry.Max)
	assert.Equal(t, sarama.CompressionLZ4, custom.Producer.Compression)
}

func TestNewProducerWithoutBrokers(t *testing.T) {
	_, err := NewProducer(nil, nil)
	require.Error(t, err)
}

func TestProducerPublishEvent(t *testing.T) {
	client := mocks.NewSyncProducer(t, nil)
	sentAt := time.Date(2026, 2, 2, 10, 0, 0, 0, time.UTC)

	client.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, TopicOrderEvents, msg.Topic)
		key, _ := msg.Key.Encode()
		assert.Equal(t, "order-123", string(key))
		assert.Equal(t, map[string]string{HeaderEventType: "OrderConfirmed"}, headerMap(msg))
		assert.True(t, msg.Timestamp.Equal(sentAt))

		value, _ := msg.Value.Encode()
		assert.JSONEq(t, `{"status":"confirmed"}`, string(value))
		return nil
	})

	producer := NewProducerWithClient(client, nil)
	producer.now = func() time.Time { return sentAt }

	err := producer.PublishEvent(context.Background(), TopicOrderEvents, "order-123", "OrderConfirmed", map[string]string{"status": "confirmed"})
	require.NoError(t, err)
	require.NoError(t, client.Close())
}

func TestProducerPublishRawWithoutEventType(t *testing.T) {
	client := mocks.NewSyncProducer(t, nil)
	client.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if len(msg.Headers) != 0 {
			return errors.New("no headers expected")
		}
		return nil
	})

	producer := NewProducerWithClient(client, nil)
	require.NoError(t, producer.PublishRaw(context.Background(), TopicDeadLetterQueue, "k", "", []byte(`{}`)))
	require.NoError(t, client.Close())
}

func TestProducerPublishFailures(t *testing.T) {
	t.Run("broker error", func(t *testing.T) {
		client := mocks.NewSyncProducer(t, nil)
		client.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

		err := NewProducerWithClient(client, nil).PublishEvent(context.Background(), TopicOrderEvents, "order-123", "", nil)
		require.ErrorIs(t, err, sarama.ErrOutOfBrokers)
		require.NoError(t, client.Close())
	})

	t.Run("cancelled context", func(t *testing.T) {
		client := mocks.NewSyncProducer(t, nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewProducerWithClient(client, nil).PublishEvent(ctx, TopicOrderEvents, "k", "", struct{}{})
		require.ErrorIs(t, err, context.Canceled)
		require.NoError(t, client.Close())
	})

	t.Run("unencodable event", func(t *testing.T) {
		client := mocks.NewSyncProducer(t, nil)

		err := NewProducerWithClient(client, nil).PublishEvent(context.Background(), TopicOrderEvents, "k", "Broken", make(chan int))
		require.ErrorContains(t, err, "Broken")
		require.NoError(t, client.Close())
	})
}

func TestParseRestockResult(t *testing.T) {
	valid, err := json.Marshal(RestockResult{CommandID: "c-1", ReturnID: "ret-1", ProductRef: "p-1", Qty: 2, Status: RestockStatusFailed, Error: "warehouse closed"})
	require.NoError(t, err)

	result, err := ParseRestockResult(&sarama.ConsumerMessage{Value: valid})
	require.NoError(t, err)
	assert.Equal(t, "restock of 2 x p-1 rejected by inventory: warehouse closed", result.Warning())

	_, err = ParseRestockResult(&sarama.ConsumerMessage{Value: []byte("{")})
	require.Error(t, err)
	_, err = ParseRestockResult(&sarama.ConsumerMessage{Value: []byte(`{"command_id":"c-2"}`)})
	require.ErrorContains(t, err, "return_id")
}
