package lifecycle

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/metrics"
	"github.com/vladislavdragonenkov/oms/internal/service/statemachine"
)

// TransitionCommand — запрос на смену статуса.
type TransitionCommand struct {
	OrderID         string
	To              domain.OrderStatus
	Actor           domain.Actor
	Payload         statemachine.Payload
	ExpectedVersion int64
}

// RequestTransition проводит переход через конечный автомат и атомарно
// записывает заказ, изменения счётчиков промо-акций и событие.
// После фиксации подтверждение резервирует позиции на складе, а отмена
// подтверждённого или собираемого заказа снимает резерв. Отказ склада переход не откатывает.
func (c *Controller) RequestTransition(ctx context.Context, cmd TransitionCommand) (order domain.Order, err error) {
	ctx, finish := c.startSpan(ctx, "request_transition",
		attribute.String("oms.order_id", cmd.OrderID),
		attribute.String("oms.to", string(cmd.To)),
		attribute.String("oms.actor_role", string(cmd.Actor.Role)))
	defer func() { finish(err) }()

	current, err := c.GetOrder(ctx, cmd.OrderID)
	if err != nil {
		return domain.Order{}, err
	}
	defer func() {
		c.metrics.RecordTransition(string(current.Status), string(cmd.To), transitionResult(err))
	}()

	outcome, err := statemachine.Transition(statemachine.Request{
		Order:           current,
		To:              cmd.To,
		Actor:           cmd.Actor,
		Payload:         cmd.Payload,
		ExpectedVersion: cmd.ExpectedVersion,
		At:              c.now(),
	})
	if err != nil {
		return domain.Order{}, err
	}

	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := c.save(ctx, outcome.Order, current.Version); err != nil {
			return err
		}
		if err := c.applyUsage(ctx, outcome.Order.ID, outcome.Usage); err != nil {
			return err
		}
		return c.events.Emit(ctx, outcome.Event)
	})
	if err != nil {
		if errors.Is(err, domain.ErrPromotionNotEligible) {
			c.metrics.RecordPromotionConflict()
		}
		return domain.Order{}, err
	}

	c.logger.WithFields(log.Fields{
		"order_id": outcome.Order.ID,
		"from":     current.Status,
		"to":       outcome.Order.Status,
		"actor_id": cmd.Actor.ID,
		"role":     cmd.Actor.Role,
		"version":  outcome.Order.Version,
	}).Info("order transitioned")

	c.holdStock(ctx, current.Status, outcome.Order)
	return outcome.Order, nil
}

// holdStock передаёт складу резервы по позициям заказа, если переход их требует.
func (c *Controller) holdStock(ctx context.Context, from domain.OrderStatus, order domain.Order) {
	var (
		action domain.ReservationAction
		send   func(context.Context, domain.Reservation) error
	)
	switch {
	case from == domain.OrderStatusDraft && order.Status == domain.OrderStatusConfirmed:
		action, send = domain.ReservationReserve, c.inventory.Reserve
	case (from == domain.OrderStatusConfirmed || from == domain.OrderStatusPreparing) && order.Status == domain.OrderStatusCancelled:
		action, send = domain.ReservationRelease, c.inventory.Release
	default:
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.restockTimeout)
	defer cancel()

	for _, reservation := range domain.ReservationsFor(order, action, c.now()) {
		if err := send(ctx, reservation); err != nil {
			c.metrics.RecordReservationFailure(string(action))
			c.logger.WithError(err).WithFields(log.Fields{
				"order_id":    order.ID,
				"product_ref": reservation.ProductRef,
				"qty":         reservation.Qty,
				"action":      action,
			}).Warn("stock reservation failed, manual reconciliation required")
		}
	}
}

// applyUsage применяет изменения счётчиков внутри транзакции перехода.
func (c *Controller) applyUsage(ctx context.Context, orderID string, usage []statemachine.UsageDelta) error {
	for _, delta := range usage {
		switch {
		case delta.Delta > 0:
			err := c.promotions.IncrementUsage(ctx, delta.PromotionID)
			switch {
			case errors.Is(err, domain.ErrPromotionUsageExhausted):
				return &domain.PromotionNotEligibleError{OrderID: orderID, PromotionID: delta.PromotionID, Reason: "usage limit reached"}
			case errors.Is(err, domain.ErrPromotionNotFound):
				return &domain.PromotionNotEligibleError{OrderID: orderID, PromotionID: delta.PromotionID, Reason: "promotion no longer exists"}
			case err != nil:
				return fmt.Errorf("increment usage of %s: %w", delta.PromotionID, err)
			}
		case delta.Delta < 0:
			err := c.promotions.DecrementUsage(ctx, delta.PromotionID)
			if errors.Is(err, domain.ErrPromotionNotFound) {
				// Удалённую акцию компенсировать некуда.
				c.logger.WithFields(log.Fields{"order_id": orderID, "promotion_id": delta.PromotionID}).Warn("skip usage decrement of missing promotion")
				continue
			}
			if err != nil {
				return fmt.Errorf("decrement usage of %s: %w", delta.PromotionID, err)
			}
		}
	}
	return nil
}

func transitionResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, domain.ErrStaleOrder):
		return metrics.ResultStale
	case isDomainRejection(err):
		return metrics.ResultRejected
	default:
		return metrics.ResultError
	}
}
