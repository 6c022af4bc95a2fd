package lifecycle

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/service/returns"
)

// ReturnCommand — запрос на оформление возврата.
type ReturnCommand struct {
	OrderID string
	Reason  domain.ReturnReason
	Lines   []returns.Line
	Notes   string
	Actor   domain.Actor
}

// CreateReturn оформляет возврат. Проверка количества и запись идут в одной транзакции
// с чтением прежних возвратов. Склад вызывается после фиксации: отказ
// превращается в предупреждение на возврате и не откатывает его.
func (c *Controller) CreateReturn(ctx context.Context, cmd ReturnCommand) (ret domain.Return, err error) {
	ctx, finish := c.startSpan(ctx, "create_return",
		attribute.String("oms.order_id", cmd.OrderID),
		attribute.String("oms.actor_role", string(cmd.Actor.Role)))
	defer func() { finish(err) }()

	now := c.now()
	var result returns.Result
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		order, err := c.GetOrder(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		prior, err := c.returns.ListByOrder(ctx, order.ID)
		if err != nil {
			return fmt.Errorf("list returns of order %s: %w", order.ID, err)
		}

		result, err = returns.Process(returns.Request{
			Order:    order,
			Prior:    prior,
			ReturnID: c.newID(),
			Reason:   cmd.Reason,
			Lines:    cmd.Lines,
			Notes:    cmd.Notes,
			Actor:    cmd.Actor,
			At:       now,
		})
		if err != nil {
			return err
		}

		number, err := c.number(ctx, returnNumberPrefix, "returns", now)
		if err != nil {
			return err
		}
		result.Return.Number = number
		if err := c.returns.Create(ctx, result.Return); err != nil {
			return fmt.Errorf("create return: %w", err)
		}
		return c.events.Emit(ctx, result.Event)
	})
	if err != nil {
		return domain.Return{}, err
	}

	ret = result.Return
	c.metrics.RecordReturn(string(ret.Reason))
	ret.RestockWarnings = append(ret.RestockWarnings, c.restock(ctx, ret, result.Restock)...)

	c.logger.WithFields(log.Fields{
		"order_id":      ret.OrderID,
		"return_id":     ret.ID,
		"return_number": ret.Number,
		"lines":         len(ret.Lines),
		"warnings":      len(ret.RestockWarnings),
	}).Info("return created")
	return ret, nil
}

// restock передаёт намерения складу без повторов и возвращает предупреждения по отказам.
func (c *Controller) restock(ctx context.Context, ret domain.Return, intents []domain.RestockIntent) []string {
	if len(intents) == 0 {
		return nil
	}
	// Отмена клиентского запроса не должна обрывать уже оформленный возврат.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.restockTimeout)
	defer cancel()

	var warnings []string
	for _, intent := range intents {
		if err := c.inventory.Restock(ctx, intent); err != nil {
			c.metrics.RecordRestockFailure()
			c.logger.WithError(err).WithFields(log.Fields{
				"return_id":   ret.ID,
				"product_ref": intent.ProductRef,
				"qty":         intent.Qty,
			}).Warn("restock failed, manual reconciliation required")
			warnings = append(warnings, restockWarning(intent, err))
		}
	}
	if len(warnings) == 0 {
		return nil
	}
	if err := c.returns.AppendWarnings(ctx, ret.ID, warnings); err != nil {
		c.logger.WithError(err).WithField("return_id", ret.ID).Error("failed to record restock warnings")
	}
	return warnings
}

func restockWarning(intent domain.RestockIntent, err error) string {
	cause := err.Error()
	if errors.Is(err, context.DeadlineExceeded) {
		cause = "inventory did not respond in time"
	}
	return fmt.Sprintf("restock of %d x %s failed: %s", intent.Qty, intent.ProductRef, cause)
}
