package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// RestockPublisher — склад через Kafka: намерение уходит командой в топик склада.
// Ошибка отправки возвращается вызывающему и превращается в предупреждение возврата.
// Резервы идут в тот же топик, различаются заголовком типа события.
type RestockPublisher struct {
	producer *Producer
	topic    string
	now      func() time.Time
}

// NewRestockPublisher создаёт InventoryService поверх Kafka producer.
func NewRestockPublisher(producer *Producer, topic string) *RestockPublisher {
	if topic == "" {
		topic = TopicInventoryRestock
	}
	return &RestockPublisher{producer: producer, topic: topic, now: func() time.Time { return time.Now().UTC() }}
}

// Restock отправляет команду с ключом по товару.
func (p *RestockPublisher) Restock(ctx context.Context, intent domain.RestockIntent) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka restock publisher is not initialized: %w", domain.ErrRestockFailed)
	}
	cmd := intentCommand(uuid.NewString(), intent, p.now())
	if err := p.producer.PublishEvent(ctx, p.topic, intent.ProductRef, "RestockRequested", cmd); err != nil {
		return errors.Join(domain.ErrRestockFailed, err)
	}
	return nil
}

// Reserve отправляет команду резерва с ключом по товару.
func (p *RestockPublisher) Reserve(ctx context.Context, reservation domain.Reservation) error {
	return p.publishReservation(ctx, "StockReservationRequested", reservation)
}

// Release отправляет команду снятия резерва.
func (p *RestockPublisher) Release(ctx context.Context, reservation domain.Reservation) error {
	return p.publishReservation(ctx, "StockReservationReleased", reservation)
}

func (p *RestockPublisher) publishReservation(ctx context.Context, eventType string, reservation domain.Reservation) error {
	if p == nil || p.producer == nil {
		return fmt.Errorf("kafka restock publisher is not initialized: %w", domain.ErrReservationFailed)
	}
	if reservation.RequestedAt.IsZero() {
		reservation.RequestedAt = p.now()
	}
	cmd := reservationCommand(uuid.NewString(), reservation)
	if err := p.producer.PublishEvent(ctx, p.topic, reservation.ProductRef, eventType, cmd); err != nil {
		return errors.Join(domain.ErrReservationFailed, err)
	}
	return nil
}

var _ domain.InventoryService = (*RestockPublisher)(nil)

// NewRestockResultHandler возвращает обработчик ответов склада:
// отказ дописывается предупреждением к возврату, успешные ответы только логируются.
func NewRestockResultHandler(returns domain.ReturnRepository, logger *log.Entry) MessageHandler {
	if logger == nil {
		logger = log.WithField("component", "restock-results")
	}
	return func(ctx context.Context, message *sarama.ConsumerMessage) error {
		result, err := ParseRestockResult(message)
		if err != nil {
			// Битое сообщение не станет валидным при повторе.
			logger.WithError(err).WithField("offset", message.Offset).Warn("skipping malformed restock result")
			return nil
		}

		entry := logger.WithFields(log.Fields{
			"return_id":   result.ReturnID,
			"product_ref": result.ProductRef,
			"qty":         result.Qty,
			"status":      result.Status,
		})
		if result.Status != RestockStatusFailed {
			entry.Debug("restock confirmed by inventory")
			return nil
		}

		if err := returns.AppendWarnings(ctx, result.ReturnID, []string{result.Warning()}); err != nil {
			if errors.Is(err, domain.ErrReturnNotFound) {
				entry.Warn("restock result for unknown return")
				return nil
			}
			return fmt.Errorf("append restock warning: %w", err)
		}
		entry.Warn("restock rejected by inventory, warning recorded")
		return nil
	}
}
