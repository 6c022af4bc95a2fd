// Package lifecycle — контроллер жизненного цикла заказа: фиксирует цену при создании,
// проводит переходы статусов и возвраты, атомарно пишет заказ, счётчики промо-акций и события.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/metrics"
)

const (
	orderNumberPrefix  = "ORD"
	returnNumberPrefix = "RET"

	defaultRestockTimeout = 5 * time.Second

	defaultListLimit = 50
	maxListLimit     = 200
)

// Dependencies — коллабораторы контроллера. Metrics, Logger, Tracer, Now и NewID необязательны.
type Dependencies struct {
	Orders     domain.OrderRepository
	Promotions domain.PromotionRepository
	Returns    domain.ReturnRepository
	Tx         domain.TxManager
	Sequence   domain.SequenceGenerator
	Events     domain.EventSink
	Inventory  domain.InventoryService

	Metrics        *metrics.Lifecycle
	Logger         *log.Entry
	Tracer         trace.Tracer
	Now            func() time.Time
	NewID          func() string
	RestockTimeout time.Duration
}

// Controller оркестрирует чистые компоненты поверх репозиториев.
type Controller struct {
	orders     domain.OrderRepository
	promotions domain.PromotionRepository
	returns    domain.ReturnRepository
	tx         domain.TxManager
	sequence   domain.SequenceGenerator
	events     domain.EventSink
	inventory  domain.InventoryService

	metrics        *metrics.Lifecycle
	logger         *log.Entry
	tracer         trace.Tracer
	now            func() time.Time
	newID          func() string
	restockTimeout time.Duration
}

// NewController проверяет зависимости и собирает контроллер.
func NewController(deps Dependencies) (*Controller, error) {
	var missing []string
	if deps.Orders == nil {
		missing = append(missing, "orders")
	}
	if deps.Promotions == nil {
		missing = append(missing, "promotions")
	}
	if deps.Returns == nil {
		missing = append(missing, "returns")
	}
	if deps.Tx == nil {
		missing = append(missing, "tx")
	}
	if deps.Sequence == nil {
		missing = append(missing, "sequence")
	}
	if deps.Events == nil {
		missing = append(missing, "events")
	}
	if deps.Inventory == nil {
		missing = append(missing, "inventory")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("lifecycle controller: missing dependencies %v", missing)
	}

	c := &Controller{
		orders:         deps.Orders,
		promotions:     deps.Promotions,
		returns:        deps.Returns,
		tx:             deps.Tx,
		sequence:       deps.Sequence,
		events:         deps.Events,
		inventory:      deps.Inventory,
		metrics:        deps.Metrics,
		logger:         deps.Logger,
		tracer:         deps.Tracer,
		now:            deps.Now,
		newID:          deps.NewID,
		restockTimeout: deps.RestockTimeout,
	}
	if c.logger == nil {
		c.logger = log.WithField("component", "order-lifecycle")
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("github.com/vladislavdragonenkov/oms/internal/service/lifecycle")
	}
	if c.now == nil {
		c.now = func() time.Time { return time.Now().UTC() }
	}
	if c.newID == nil {
		c.newID = uuid.NewString
	}
	if c.restockTimeout <= 0 {
		c.restockTimeout = defaultRestockTimeout
	}
	return c, nil
}

// GetOrder возвращает заказ по идентификатору.
func (c *Controller) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	if id == "" {
		return domain.Order{}, domain.ErrOrderIDRequired
	}
	order, err := c.orders.Get(ctx, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("load order %s: %w", id, err)
	}
	return order, nil
}

// ListOrders возвращает заказы клиента от новых к старым.
// Limit <= 0 заменяется значением по умолчанию, слишком большой Limit обрезается.
func (c *Controller) ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	filter.CustomerID = strings.TrimSpace(filter.CustomerID)
	if filter.CustomerID == "" {
		return nil, domain.ErrCustomerRequired
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrOrderStatusInvalid, filter.Status)
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultListLimit
	case filter.Limit > maxListLimit:
		filter.Limit = maxListLimit
	}

	orders, err := c.orders.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list orders of customer %s: %w", filter.CustomerID, err)
	}
	return orders, nil
}

// ListReturns возвращает возвраты заказа в порядке создания.
func (c *Controller) ListReturns(ctx context.Context, orderID string) ([]domain.Return, error) {
	if _, err := c.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	returns, err := c.returns.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list returns of order %s: %w", orderID, err)
	}
	return returns, nil
}

// startSpan открывает span операции; finish закрывает его и пишет длительность.
func (c *Controller) startSpan(ctx context.Context, operation string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	started := time.Now()
	ctx, span := c.tracer.Start(ctx, "lifecycle."+operation, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
		}
		span.End()
		c.metrics.RecordDuration(operation, time.Since(started))
	}
}

// number выдаёт следующий номер вида PREFIX-YYYY-NNNNNN; счётчик ведётся отдельно на каждый год.
func (c *Controller) number(ctx context.Context, prefix, scope string, at time.Time) (string, error) {
	year := at.Year()
	seq, err := c.sequence.Next(ctx, fmt.Sprintf("%s:%d", scope, year))
	if err != nil {
		return "", fmt.Errorf("allocate %s number: %w", scope, err)
	}
	return fmt.Sprintf("%s-%04d-%06d", prefix, year, seq), nil
}

// isDomainRejection — ошибка из таксономии, а не сбой ввода-вывода.
func isDomainRejection(err error) bool {
	return errors.Is(err, domain.ErrInvalidTransition) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrInvalidPayload) ||
		errors.Is(err, domain.ErrPromotionNotEligible) ||
		errors.Is(err, domain.ErrReturnPrecondition)
}
