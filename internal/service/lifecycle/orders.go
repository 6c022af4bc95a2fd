package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/service/pricing"
)

// ItemInput — позиция заказа со снимком каталога на момент создания.
type ItemInput struct {
	ProductRef     string
	CategoryRef    string
	Name           string
	SKU            string
	Qty            int32
	UnitPriceMinor int64
}

// CreateOrderCommand — запрос на создание черновика.
// Пустой PromotionIDs включает автоматический выбор лучшей акции.
type CreateOrderCommand struct {
	CustomerID           string
	CustomerKind         domain.CustomerKind
	Currency             string
	Items                []ItemInput
	BaseShippingFeeMinor int64
	PromotionIDs         []string
	Actor                domain.Actor
}

// RepriceCommand — явный пересчёт цены черновика.
type RepriceCommand struct {
	OrderID         string
	PromotionIDs    []string
	Actor           domain.Actor
	ExpectedVersion int64
}

// CreateOrder создаёт черновик с зафиксированной ценой и номером.
func (c *Controller) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (order domain.Order, err error) {
	ctx, finish := c.startSpan(ctx, "create_order",
		attribute.String("oms.customer_id", cmd.CustomerID),
		attribute.String("oms.actor_role", string(cmd.Actor.Role)))
	defer func() { finish(err) }()

	if !canCreate(cmd.Actor.Role) {
		return domain.Order{}, &domain.ForbiddenError{Action: "create_order", Role: cmd.Actor.Role}
	}

	now := c.now()
	order = domain.Order{
		ID:                   c.newID(),
		CustomerID:           strings.TrimSpace(cmd.CustomerID),
		CustomerKind:         cmd.CustomerKind,
		Status:               domain.OrderStatusDraft,
		Currency:             strings.ToUpper(strings.TrimSpace(cmd.Currency)),
		BaseShippingFeeMinor: cmd.BaseShippingFeeMinor,
		CreatedBy:            cmd.Actor.ID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	for _, in := range cmd.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:             c.newID(),
			ProductRef:     strings.TrimSpace(in.ProductRef),
			CategoryRef:    strings.TrimSpace(in.CategoryRef),
			NameSnapshot:   in.Name,
			SKUSnapshot:    in.SKU,
			Qty:            in.Qty,
			UnitPriceMinor: in.UnitPriceMinor,
		})
	}

	if err := c.price(ctx, &order, cmd.Actor.Role, cmd.PromotionIDs, now); err != nil {
		return domain.Order{}, err
	}
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, fmt.Errorf("%w: %w", domain.ErrInvalidPayload, errors.Join(errs...))
	}

	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		number, err := c.number(ctx, orderNumberPrefix, "orders", now)
		if err != nil {
			return err
		}
		order.Number = number
		if err := c.orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		return c.events.Emit(ctx, domain.DomainEvent{
			Type:        domain.EventOrderCreated,
			OrderID:     order.ID,
			OrderNumber: order.Number,
			To:          domain.OrderStatusDraft,
			ActorID:     cmd.Actor.ID,
			Role:        cmd.Actor.Role,
			Occurred:    now,
		})
	})
	if err != nil {
		return domain.Order{}, err
	}

	c.metrics.RecordOrderCreated(order.Pricing.DiscountMinor, len(order.AppliedPromotions))
	c.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"order_number": order.Number,
		"total_minor":  order.Pricing.TotalMinor,
		"promotions":   order.AppliedPromotions,
	}).Info("order created")
	return order, nil
}

// RepriceOrder пересчитывает цену черновика. Проверки: версия, статус, роль.
func (c *Controller) RepriceOrder(ctx context.Context, cmd RepriceCommand) (order domain.Order, err error) {
	ctx, finish := c.startSpan(ctx, "reprice_order", attribute.String("oms.order_id", cmd.OrderID))
	defer func() { finish(err) }()

	current, err := c.GetOrder(ctx, cmd.OrderID)
	if err != nil {
		return domain.Order{}, err
	}
	if cmd.ExpectedVersion != current.Version {
		return domain.Order{}, &domain.StaleOrderError{
			OrderID:         current.ID,
			ExpectedVersion: cmd.ExpectedVersion,
			ActualVersion:   current.Version,
		}
	}
	edge := domain.Edge{From: current.Status, To: current.Status}
	if current.Status != domain.OrderStatusDraft {
		return domain.Order{}, &domain.InvalidTransitionError{OrderID: current.ID, Edge: edge}
	}
	if cmd.Actor.Role != domain.RoleManager && cmd.Actor.Role != domain.RoleSalesperson {
		return domain.Order{}, &domain.ForbiddenError{OrderID: current.ID, Edge: edge, Action: "reprice_order", Role: cmd.Actor.Role}
	}

	now := c.now()
	next := current.Clone()
	if err := c.price(ctx, &next, cmd.Actor.Role, cmd.PromotionIDs, now); err != nil {
		return domain.Order{}, err
	}
	next.Version = current.Version + 1
	next.UpdatedAt = now
	next.ActorTrail = append(next.ActorTrail, domain.ActorTrailEntry{
		From:     current.Status,
		To:       current.Status,
		ActorID:  cmd.Actor.ID,
		Role:     cmd.Actor.Role,
		Note:     fmt.Sprintf("repriced: total %d -> %d", current.Pricing.TotalMinor, next.Pricing.TotalMinor),
		Occurred: now,
	})

	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := c.save(ctx, next, current.Version); err != nil {
			return err
		}
		return c.events.Emit(ctx, domain.DomainEvent{
			Type:        domain.EventOrderRepriced,
			OrderID:     next.ID,
			OrderNumber: next.Number,
			From:        current.Status,
			To:          next.Status,
			ActorID:     cmd.Actor.ID,
			Role:        cmd.Actor.Role,
			Occurred:    now,
		})
	})
	if err != nil {
		return domain.Order{}, err
	}
	c.metrics.RecordPricing(next.Pricing.DiscountMinor, len(next.AppliedPromotions))
	return next, nil
}

// price считает цену по активному каталогу и фиксирует её на заказе.
func (c *Controller) price(ctx context.Context, order *domain.Order, role domain.Role, promotionIDs []string, now time.Time) error {
	catalogue, err := c.promotions.LoadActive(ctx, now)
	if err != nil {
		return fmt.Errorf("load active promotions: %w", err)
	}
	cart, err := pricing.BuildCartContext(order.Items, order.CustomerKind, role)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err)
	}
	result, err := pricing.Quote(cart, catalogue, promotionIDs, order.BaseShippingFeeMinor, now)
	if errors.Is(err, domain.ErrAmountOverflow) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidPayload, err)
	}
	if err != nil {
		var notEligible *domain.PromotionNotEligibleError
		if errors.As(err, &notEligible) {
			notEligible.OrderID = order.ID
		}
		return err
	}
	order.Pricing = result.Pricing()
	order.AppliedPromotions = result.AppliedPromotionIDs
	return nil
}

// save переводит конфликт версий в StaleOrderError: заказ изменили между чтением и записью.
func (c *Controller) save(ctx context.Context, order domain.Order, expectedVersion int64) error {
	err := c.orders.Save(ctx, order, expectedVersion)
	if domain.IsVersionConflict(err) {
		return &domain.StaleOrderError{OrderID: order.ID, ExpectedVersion: expectedVersion, ActualVersion: -1}
	}
	if err != nil {
		return fmt.Errorf("save order %s: %w", order.ID, err)
	}
	return nil
}

func canCreate(role domain.Role) bool {
	return role == domain.RoleManager || role == domain.RoleSalesperson
}
