package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/metrics"
	"github.com/vladislavdragonenkov/oms/internal/service/inventory"
	"github.com/vladislavdragonenkov/oms/internal/service/outbox"
	"github.com/vladislavdragonenkov/oms/internal/service/returns"
	"github.com/vladislavdragonenkov/oms/internal/service/statemachine"
	"github.com/vladislavdragonenkov/oms/internal/storage/memory"
)

var (
	manager     = domain.Actor{ID: "mgr-1", Role: domain.RoleManager}
	warehouse   = domain.Actor{ID: "wh-1", Role: domain.RoleWarehouse}
	salesperson = domain.Actor{ID: "sales-1", Role: domain.RoleSalesperson}
)

type ControllerSuite struct {
	suite.Suite

	ctx        context.Context
	now        time.Time
	promotions domain.PromotionRepository
	orders     domain.OrderRepository
	returns    domain.ReturnRepository
	outbox     *memory.OutboxRepository
	inventory  *inventory.MockService
	spans      *tracetest.SpanRecorder
	controller *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2026, 5, 12, 9, 30, 0, 0, time.UTC)
	s.promotions = memory.NewPromotionRepository(
		domain.Promotion{
			ID:        "ten-off-500k",
			Name:      "10% off from 500000",
			Type:      domain.PromotionTypePercentageDiscount,
			Value:     10,
			Active:    true,
			CreatedAt: s.now.Add(-48 * time.Hour),
			Rules: []domain.Rule{
				domain.ConditionRule{Field: domain.ConditionFieldCartTotal, Operator: domain.OperatorGTE, Amount: 500000},
			},
		},
		domain.Promotion{
			ID:        "free-ship-300k",
			Name:      "Free shipping from 300000",
			Type:      domain.PromotionTypeFreeShipping,
			Active:    true,
			CreatedAt: s.now.Add(-24 * time.Hour),
			Rules: []domain.Rule{
				domain.ConditionRule{Field: domain.ConditionFieldCartTotal, Operator: domain.OperatorGTE, Amount: 300000},
			},
		},
	)
	s.orders = memory.NewOrderRepository()
	s.returns = memory.NewReturnRepository()
	s.outbox = memory.NewOutboxRepository()
	s.inventory = inventory.NewMockService()
	s.spans = tracetest.NewSpanRecorder()

	s.controller = s.newController(outbox.NewSink(s.outbox))
}

func (s *ControllerSuite) newController(events domain.EventSink) *Controller {
	ids := 0
	controller, err := NewController(Dependencies{
		Orders:     s.orders,
		Promotions: s.promotions,
		Returns:    s.returns,
		Tx:         memory.NewTxManager(),
		Sequence:   memory.NewSequence(),
		Events:     events,
		Inventory:  s.inventory,
		Metrics:    metrics.NewLifecycleWithRegisterer(prometheus.NewRegistry()),
		Tracer:     sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(s.spans)).Tracer("test"),
		Now:        func() time.Time { return s.now },
		NewID: func() string {
			ids++
			return fmt.Sprintf("id-%03d", ids)
		},
	})
	s.Require().NoError(err)
	return controller
}

func (s *ControllerSuite) createOrder(actor domain.Actor, qty int32, unitPrice int64, promotionIDs ...string) domain.Order {
	order, err := s.controller.CreateOrder(s.ctx, CreateOrderCommand{
		CustomerID:           "cust-1",
		CustomerKind:         domain.CustomerKindRetail,
		Currency:             "vnd",
		BaseShippingFeeMinor: 30000,
		PromotionIDs:         promotionIDs,
		Actor:                actor,
		Items: []ItemInput{{
			ProductRef:     "sku-keyboard",
			CategoryRef:    "peripherals",
			Name:           "Keyboard",
			SKU:            "KB-01",
			Qty:            qty,
			UnitPriceMinor: unitPrice,
		}},
	})
	s.Require().NoError(err)
	return order
}

func (s *ControllerSuite) transition(order domain.Order, to domain.OrderStatus, actor domain.Actor, payload statemachine.Payload) (domain.Order, error) {
	return s.controller.RequestTransition(s.ctx, TransitionCommand{
		OrderID:         order.ID,
		To:              to,
		Actor:           actor,
		Payload:         payload,
		ExpectedVersion: order.Version,
	})
}

func (s *ControllerSuite) mustTransition(order domain.Order, to domain.OrderStatus, actor domain.Actor, payload statemachine.Payload) domain.Order {
	next, err := s.transition(order, to, actor, payload)
	s.Require().NoError(err)
	return next
}

func shipment() statemachine.Payload {
	return statemachine.Payload{Shipment: &statemachine.ShipmentPayload{TrackingCode: "TRK-1", Carrier: "GHN", ShippingFeeMinor: 0, Notes: "fragile"}}
}

func (s *ControllerSuite) usage(id string) int64 {
	promo, err := s.promotions.Get(s.ctx, id)
	s.Require().NoError(err)
	return promo.UsageCount
}

func (s *ControllerSuite) eventTypes() []string {
	var types []string
	for _, msg := range s.outbox.Queued() {
		types = append(types, msg.EventType)
	}
	return types
}

func (s *ControllerSuite) TestCreateOrderFreezesAutoSelectedPricing() {
	order := s.createOrder(salesperson, 3, 100000)

	s.Equal(domain.OrderStatusDraft, order.Status)
	s.Equal("ORD-2026-000001", order.Number)
	s.Equal("VND", order.Currency)
	s.Equal(domain.Pricing{SubtotalMinor: 300000, DiscountMinor: 0, ShippingFeeMinor: 0, TotalMinor: 300000, FreeShipping: true}, order.Pricing)
	s.Equal([]string{"free-ship-300k"}, order.AppliedPromotions)
	s.Zero(s.usage("free-ship-300k"), "draft must not count usage")

	stored, err := s.controller.GetOrder(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(order.Pricing, stored.Pricing)
	s.Equal([]string{"OrderCreated"}, s.eventTypes())

	second := s.createOrder(manager, 1, 100)
	s.Equal("ORD-2026-000002", second.Number)
	s.Empty(second.AppliedPromotions)
	s.Equal(int64(30100), second.Pricing.TotalMinor)
}

func (s *ControllerSuite) TestCreateOrderExplicitStack() {
	order := s.createOrder(manager, 6, 100000, "ten-off-500k", "free-ship-300k")
	s.Equal(int64(60000), order.Pricing.DiscountMinor)
	s.Equal(int64(540000), order.Pricing.TotalMinor)
	s.ElementsMatch([]string{"ten-off-500k", "free-ship-300k"}, order.AppliedPromotions)

	_, err := s.controller.CreateOrder(s.ctx, CreateOrderCommand{
		CustomerID:   "cust-1",
		CustomerKind: domain.CustomerKindRetail,
		Currency:     "VND",
		Actor:        manager,
		PromotionIDs: []string{"ten-off-500k"},
		Items:        []ItemInput{{ProductRef: "sku-1", Qty: 1, UnitPriceMinor: 1000}},
	})
	var notEligible *domain.PromotionNotEligibleError
	s.Require().ErrorAs(err, &notEligible)
	s.Equal("ten-off-500k", notEligible.PromotionID)
	s.Contains(notEligible.Reason, "cart_total")
}

func (s *ControllerSuite) TestCreateOrderRejections() {
	_, err := s.controller.CreateOrder(s.ctx, CreateOrderCommand{
		CustomerID: "cust-1", CustomerKind: domain.CustomerKindRetail, Currency: "VND", Actor: warehouse,
		Items: []ItemInput{{ProductRef: "sku-1", Qty: 1, UnitPriceMinor: 10}},
	})
	var forbidden *domain.ForbiddenError
	s.Require().ErrorAs(err, &forbidden)
	s.Equal("create_order", forbidden.Action)

	_, err = s.controller.CreateOrder(s.ctx, CreateOrderCommand{CustomerKind: domain.CustomerKindRetail, Actor: manager})
	s.Require().ErrorIs(err, domain.ErrInvalidPayload)
	s.ErrorIs(err, domain.ErrCustomerRequired)
	s.ErrorIs(err, domain.ErrItemsRequired)
	s.Empty(s.eventTypes())
}

func (s *ControllerSuite) TestCreateOrderRejectsAmountOverflow() {
	cases := map[string]CreateOrderCommand{
		"line total": {
			CustomerID: "cust-1", CustomerKind: domain.CustomerKindRetail, Currency: "VND", Actor: manager,
			Items: []ItemInput{{ProductRef: "sku-1", Qty: 4, UnitPriceMinor: 1<<62 + 1}},
		},
		"running subtotal": {
			CustomerID: "cust-1", CustomerKind: domain.CustomerKindRetail, Currency: "VND", Actor: manager,
			Items: []ItemInput{
				{ProductRef: "sku-1", Qty: 1, UnitPriceMinor: math.MaxInt64 - 10},
				{ProductRef: "sku-2", Qty: 1, UnitPriceMinor: 11},
			},
		},
		"shipping on top of subtotal": {
			CustomerID: "cust-1", CustomerKind: domain.CustomerKindRetail, Currency: "VND", Actor: manager,
			Items:                []ItemInput{{ProductRef: "sku-1", Qty: 1, UnitPriceMinor: math.MaxInt64 - 10}},
			BaseShippingFeeMinor: 11,
		},
	}
	for name, cmd := range cases {
		_, err := s.controller.CreateOrder(s.ctx, cmd)
		s.Require().ErrorIs(err, domain.ErrInvalidPayload, name)
		s.ErrorIs(err, domain.ErrAmountOverflow, name)
	}
	s.Empty(s.eventTypes())
}

func (s *ControllerSuite) TestWarehouseCannotConfirm() {
	order := s.createOrder(salesperson, 3, 100000)

	_, err := s.transition(order, domain.OrderStatusConfirmed, warehouse, statemachine.Payload{})
	var forbidden *domain.ForbiddenError
	s.Require().ErrorAs(err, &forbidden)
	s.Equal(domain.Edge{From: domain.OrderStatusDraft, To: domain.OrderStatusConfirmed}, forbidden.Edge)
	s.Equal(domain.RoleWarehouse, forbidden.Role)
	s.Equal(order.ID, forbidden.OrderID)
}

func (s *ControllerSuite) TestFullLifecycleWithEvents() {
	order := s.createOrder(salesperson, 3, 100000)
	order = s.mustTransition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
	order = s.mustTransition(order, domain.OrderStatusPreparing, manager, statemachine.Payload{})
	order = s.mustTransition(order, domain.OrderStatusShipped, warehouse, shipment())
	order = s.mustTransition(order, domain.OrderStatusDelivered, warehouse, statemachine.Payload{})

	s.Equal(int64(4), order.Version)
	s.Require().Len(order.ActorTrail, 4)
	s.Contains(order.ActorTrail[2].Note, "tracking: TRK-1")
	s.Require().NotNil(order.Shipment)
	s.Equal("GHN", order.Shipment.Carrier)
	s.Equal([]string{"OrderCreated", "OrderConfirmed", "OrderPreparing", "OrderShipped", "OrderDelivered"}, s.eventTypes())

	_, err := s.transition(order, domain.OrderStatusCancelled, manager, statemachine.Payload{Reason: "late"})
	s.ErrorIs(err, domain.ErrInvalidTransition)
}

func (s *ControllerSuite) TestShippingWithoutTrackingIsRejected() {
	order := s.createOrder(salesperson, 1, 1000)
	order = s.mustTransition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
	order = s.mustTransition(order, domain.OrderStatusPreparing, warehouse, statemachine.Payload{})

	_, err := s.transition(order, domain.OrderStatusShipped, warehouse, statemachine.Payload{Shipment: &statemachine.ShipmentPayload{Carrier: "GHN"}})
	s.Require().ErrorIs(err, domain.ErrInvalidPayload)

	stored, err := s.controller.GetOrder(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusPreparing, stored.Status)
}

func (s *ControllerSuite) TestUsageRoundTrip() {
	order := s.createOrder(salesperson, 3, 100000)

	order = s.mustTransition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
	s.Equal(int64(1), s.usage("free-ship-300k"))

	order = s.mustTransition(order, domain.OrderStatusCancelled, manager, statemachine.Payload{Reason: "customer request"})
	s.Zero(s.usage("free-ship-300k"))
	s.Equal("customer request", order.CancelReason)

	draft := s.createOrder(salesperson, 3, 100000)
	s.mustTransition(draft, domain.OrderStatusCancelled, manager, statemachine.Payload{Reason: "abandoned"})
	s.Zero(s.usage("free-ship-300k"))
}

func (s *ControllerSuite) TestUsageLimitReachedAtConfirmation() {
	limit := int64(1)
	s.Require().NoError(s.promotions.Upsert(s.ctx, domain.Promotion{
		ID: "one-shot", Type: domain.PromotionTypeFixedAmountDiscount, Value: 5000, Active: true,
		UsageLimit: &limit, CreatedAt: s.now,
	}))

	first := s.createOrder(salesperson, 1, 100000, "one-shot")
	second := s.createOrder(salesperson, 1, 100000, "one-shot")

	s.mustTransition(first, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
	_, err := s.transition(second, domain.OrderStatusConfirmed, manager, statemachine.Payload{})

	var notEligible *domain.PromotionNotEligibleError
	s.Require().ErrorAs(err, &notEligible)
	s.Equal("one-shot", notEligible.PromotionID)
	s.Equal(int64(1), s.usage("one-shot"))

	stored, err := s.controller.GetOrder(s.ctx, second.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusDraft, stored.Status)
	s.Zero(stored.Version)
	s.Empty(stored.ActorTrail)
}

func (s *ControllerSuite) TestFailedEventRollsBackOrderAndUsage() {
	order := s.createOrder(salesperson, 3, 100000)

	failing := s.newController(failingSink{})
	_, err := failing.RequestTransition(s.ctx, TransitionCommand{
		OrderID: order.ID, To: domain.OrderStatusConfirmed, Actor: manager, ExpectedVersion: order.Version,
	})
	s.Require().Error(err)

	stored, err := s.controller.GetOrder(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusDraft, stored.Status)
	s.Zero(stored.Version)
	s.Zero(s.usage("free-ship-300k"))
}

func (s *ControllerSuite) TestConcurrentTransitionsOnSameVersion() {
	order := s.createOrder(salesperson, 3, 100000)
	order = s.mustTransition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})

	const workers = 8
	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make(chan error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := s.transition(order, domain.OrderStatusPreparing, warehouse, statemachine.Payload{})
			results <- err
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	succeeded, stale := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrStaleOrder):
			stale++
		default:
			s.Failf("unexpected error", "%v", err)
		}
	}
	s.Equal(1, succeeded)
	s.Equal(workers-1, stale)

	stored, err := s.controller.GetOrder(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(int64(2), stored.Version)
	s.Len(stored.ActorTrail, 2)
}

func (s *ControllerSuite) TestStaleExpectedVersion() {
	order := s.createOrder(salesperson, 1, 1000)
	s.mustTransition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})

	_, err := s.transition(order, domain.OrderStatusCancelled, manager, statemachine.Payload{Reason: "dup"})
	var stale *domain.StaleOrderError
	s.Require().ErrorAs(err, &stale)
	s.Equal(int64(0), stale.ExpectedVersion)
	s.Equal(int64(1), stale.ActualVersion)
}

func (s *ControllerSuite) TestReturnRequiresShippedOrDelivered() {
	for _, status := range []domain.OrderStatus{domain.OrderStatusDraft, domain.OrderStatusConfirmed} {
		order := s.createOrder(salesperson, 2, 1000)
		if status == domain.OrderStatusConfirmed {
			order = s.mustTransition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
		}
		_, err := s.controller.CreateReturn(s.ctx, ReturnCommand{
			OrderID: order.ID,
			Reason:  domain.ReturnReasonDamaged,
			Lines:   []returns.Line{{ItemID: order.Items[0].ID, Qty: 1, Condition: domain.ItemConditionDamaged}},
			Actor:   manager,
		})
		var precondition *domain.ReturnPreconditionError
		s.Require().ErrorAs(err, &precondition, string(status))
		s.Equal(status, precondition.Status)
	}
}

func (s *ControllerSuite) deliveredOrder(qty int32) domain.Order {
	order := s.createOrder(salesperson, qty, 100000)
	order = s.mustTransition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
	order = s.mustTransition(order, domain.OrderStatusPreparing, warehouse, statemachine.Payload{})
	order = s.mustTransition(order, domain.OrderStatusShipped, warehouse, shipment())
	return s.mustTransition(order, domain.OrderStatusDelivered, warehouse, statemachine.Payload{})
}

func (s *ControllerSuite) TestPartialReturnsAreCumulative() {
	order := s.deliveredOrder(3)
	itemID := order.Items[0].ID

	ret, err := s.controller.CreateReturn(s.ctx, ReturnCommand{
		OrderID: order.ID,
		Reason:  domain.ReturnReasonCustomerChangedMind,
		Lines:   []returns.Line{{ItemID: itemID, Qty: 2, Condition: domain.ItemConditionNew, Restock: true}},
		Notes:   "unopened",
		Actor:   warehouse,
	})
	s.Require().NoError(err)
	s.Equal("RET-2026-000001", ret.Number)
	s.Empty(ret.RestockWarnings)
	s.Equal([]domain.RestockIntent{{ReturnID: ret.ID, OrderID: order.ID, ProductRef: "sku-keyboard", Qty: 2}}, s.inventory.Accepted())

	_, err = s.controller.CreateReturn(s.ctx, ReturnCommand{
		OrderID: order.ID,
		Reason:  domain.ReturnReasonDamaged,
		Lines:   []returns.Line{{ItemID: itemID, Qty: 2, Condition: domain.ItemConditionDamaged}},
		Actor:   manager,
	})
	s.Require().ErrorIs(err, domain.ErrReturnPrecondition)

	_, err = s.controller.CreateReturn(s.ctx, ReturnCommand{
		OrderID: order.ID,
		Reason:  domain.ReturnReasonDamaged,
		Lines:   []returns.Line{{ItemID: itemID, Qty: 1, Condition: domain.ItemConditionDamaged}},
		Actor:   manager,
	})
	s.Require().NoError(err)

	list, err := s.controller.ListReturns(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Len(list, 2)

	stored, err := s.controller.GetOrder(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusDelivered, stored.Status, "returns do not change order status")
	s.Equal(order.Version, stored.Version)
	s.Equal("OrderReturned", s.eventTypes()[len(s.eventTypes())-1])
}

func (s *ControllerSuite) TestRestockFailureBecomesWarning() {
	order := s.deliveredOrder(2)
	s.inventory.FailFor["sku-keyboard"] = errors.New("warehouse offline")
	before := s.inventory.Calls()

	ret, err := s.controller.CreateReturn(s.ctx, ReturnCommand{
		OrderID: order.ID,
		Reason:  domain.ReturnReasonWrongItem,
		Lines:   []returns.Line{{ItemID: order.Items[0].ID, Qty: 1, Condition: domain.ItemConditionNew, Restock: true}},
		Actor:   manager,
	})
	s.Require().NoError(err)
	s.Require().Len(ret.RestockWarnings, 1)
	s.Contains(ret.RestockWarnings[0], "warehouse offline")

	stored, err := s.returns.Get(s.ctx, ret.ID)
	s.Require().NoError(err)
	s.Equal(ret.RestockWarnings, stored.RestockWarnings)
	s.Equal(before+1, s.inventory.Calls(), "restock is never retried")
}

func (s *ControllerSuite) TestConfirmReservesAndCancelReleasesStock() {
	order := s.createOrder(salesperson, 2, 100000)
	s.Empty(s.inventory.Reservations(), "draft holds no stock")

	order = s.mustTransition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
	s.Equal([]domain.Reservation{{
		ID:          order.Items[0].ID,
		OrderID:     order.ID,
		ProductRef:  "sku-keyboard",
		Qty:         2,
		Action:      domain.ReservationReserve,
		RequestedAt: s.now,
	}}, s.inventory.Reservations())

	_ = s.mustTransition(order, domain.OrderStatusCancelled, manager, statemachine.Payload{Reason: "customer request"})
	got := s.inventory.Reservations()
	s.Require().Len(got, 2)
	s.Equal(domain.ReservationRelease, got[1].Action)
	s.Equal(got[0].ID, got[1].ID)
	s.Equal(int32(2), got[1].Qty)
	s.Empty(s.inventory.Accepted(), "reservations are not restocks")
}

func (s *ControllerSuite) TestCancellingPreparingOrderReleasesStock() {
	order := s.createOrder(salesperson, 3, 100000)
	order = s.mustTransition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
	order = s.mustTransition(order, domain.OrderStatusPreparing, warehouse, statemachine.Payload{})
	s.Len(s.inventory.Reservations(), 1, "preparing keeps the reservation")

	_ = s.mustTransition(order, domain.OrderStatusCancelled, manager, statemachine.Payload{Reason: "payment failed"})
	got := s.inventory.Reservations()
	s.Require().Len(got, 2)
	s.Equal(domain.ReservationRelease, got[1].Action)
	s.Equal(int32(3), got[1].Qty)
}

func (s *ControllerSuite) TestCancellingDraftDoesNotTouchStock() {
	order := s.createOrder(salesperson, 1, 100000)
	_ = s.mustTransition(order, domain.OrderStatusCancelled, manager, statemachine.Payload{Reason: "duplicate"})

	s.Empty(s.inventory.Reservations())
	s.Zero(s.inventory.Calls())
}

func (s *ControllerSuite) TestLaterTransitionsDoNotTouchStock() {
	s.deliveredOrder(1)
	got := s.inventory.Reservations()
	s.Require().Len(got, 1, "only confirmation reserves")
	s.Equal(domain.ReservationReserve, got[0].Action)
}

func (s *ControllerSuite) TestReservationFailureDoesNotFailTransition() {
	order := s.createOrder(salesperson, 1, 100000)
	s.inventory.FailFor["sku-keyboard"] = errors.New("out of stock")

	confirmed, err := s.transition(order, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusConfirmed, confirmed.Status)
	s.Equal(1, s.inventory.Calls())
	s.Empty(s.inventory.Reservations())

	stored, err := s.controller.GetOrder(s.ctx, order.ID)
	s.Require().NoError(err)
	s.Equal(domain.OrderStatusConfirmed, stored.Status)

	s.inventory.Err = errors.New("inventory down")
	_, err = s.transition(confirmed, domain.OrderStatusCancelled, manager, statemachine.Payload{Reason: "no stock"})
	s.Require().NoError(err)
	s.Equal(2, s.inventory.Calls())
}

func (s *ControllerSuite) TestReservationSurvivesCancelledRequest() {
	order := s.createOrder(salesperson, 1, 100000)
	ctx, cancel := context.WithCancel(s.ctx)

	events := &cancelOnEmit{next: outbox.NewSink(s.outbox), cancel: cancel}
	controller := s.newController(events)
	_, err := controller.RequestTransition(ctx, TransitionCommand{
		OrderID: order.ID, To: domain.OrderStatusConfirmed, Actor: manager, ExpectedVersion: order.Version,
	})
	s.Require().NoError(err)
	s.Len(s.inventory.Reservations(), 1, "client cancellation after commit must not drop the reservation")
}

// cancelOnEmit отменяет клиентский контекст сразу после записи события.
type cancelOnEmit struct {
	next   domain.EventSink
	cancel context.CancelFunc
}

func (e *cancelOnEmit) Emit(ctx context.Context, event domain.DomainEvent) error {
	err := e.next.Emit(ctx, event)
	e.cancel()
	return err
}

func (s *ControllerSuite) TestSalespersonCannotCreateReturn() {
	order := s.deliveredOrder(1)
	_, err := s.controller.CreateReturn(s.ctx, ReturnCommand{
		OrderID: order.ID,
		Reason:  domain.ReturnReasonOther,
		Lines:   []returns.Line{{ItemID: order.Items[0].ID, Qty: 1, Condition: domain.ItemConditionUsed}},
		Actor:   salesperson,
	})
	s.Require().ErrorIs(err, domain.ErrForbidden)
}

func (s *ControllerSuite) TestRepriceDraft() {
	order := s.createOrder(salesperson, 6, 100000)
	s.Equal([]string{"ten-off-500k"}, order.AppliedPromotions)

	repriced, err := s.controller.RepriceOrder(s.ctx, RepriceCommand{
		OrderID: order.ID, PromotionIDs: []string{"free-ship-300k"}, Actor: manager, ExpectedVersion: order.Version,
	})
	s.Require().NoError(err)
	s.Equal([]string{"free-ship-300k"}, repriced.AppliedPromotions)
	s.Equal(int64(600000), repriced.Pricing.TotalMinor)
	s.Equal(int64(1), repriced.Version)
	s.Require().Len(repriced.ActorTrail, 1)
	s.Equal(domain.OrderStatusDraft, repriced.ActorTrail[0].To)

	_, err = s.controller.RepriceOrder(s.ctx, RepriceCommand{OrderID: order.ID, Actor: manager, ExpectedVersion: order.Version})
	s.ErrorIs(err, domain.ErrStaleOrder)

	_, err = s.controller.RepriceOrder(s.ctx, RepriceCommand{OrderID: order.ID, Actor: warehouse, ExpectedVersion: repriced.Version})
	s.ErrorIs(err, domain.ErrForbidden)

	confirmed := s.mustTransition(repriced, domain.OrderStatusConfirmed, manager, statemachine.Payload{})
	_, err = s.controller.RepriceOrder(s.ctx, RepriceCommand{OrderID: order.ID, Actor: manager, ExpectedVersion: confirmed.Version})
	s.ErrorIs(err, domain.ErrInvalidTransition)
}

func (s *ControllerSuite) TestOperationsAreTraced() {
	order := s.createOrder(salesperson, 1, 1000)
	_, _ = s.transition(order, domain.OrderStatusConfirmed, warehouse, statemachine.Payload{})

	ended := s.spans.Ended()
	s.Require().Len(ended, 2)
	s.Equal("lifecycle.create_order", ended[0].Name())
	s.Equal("lifecycle.request_transition", ended[1].Name())
	s.NotEmpty(ended[1].Events(), "rejection is recorded on the span")
}

func (s *ControllerSuite) TestGetOrderErrors() {
	_, err := s.controller.GetOrder(s.ctx, "")
	s.ErrorIs(err, domain.ErrOrderIDRequired)
	_, err = s.controller.GetOrder(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrOrderNotFound)
	_, err = s.controller.ListReturns(s.ctx, "missing")
	s.ErrorIs(err, domain.ErrOrderNotFound)
}

func (s *ControllerSuite) TestListOrders() {
	draft := s.createOrder(salesperson, 1, 100000)
	confirmed := s.mustTransition(s.createOrder(salesperson, 2, 100000), domain.OrderStatusConfirmed, manager, statemachine.Payload{})

	all, err := s.controller.ListOrders(s.ctx, domain.OrderFilter{CustomerID: " cust-1 "})
	s.Require().NoError(err)
	s.Len(all, 2)

	onlyConfirmed, err := s.controller.ListOrders(s.ctx, domain.OrderFilter{CustomerID: "cust-1", Status: domain.OrderStatusConfirmed})
	s.Require().NoError(err)
	s.Require().Len(onlyConfirmed, 1)
	s.Equal(confirmed.ID, onlyConfirmed[0].ID)

	drafts, err := s.controller.ListOrders(s.ctx, domain.OrderFilter{CustomerID: "cust-1", Status: domain.OrderStatusDraft, Limit: 1000})
	s.Require().NoError(err)
	s.Require().Len(drafts, 1)
	s.Equal(draft.ID, drafts[0].ID)

	_, err = s.controller.ListOrders(s.ctx, domain.OrderFilter{})
	s.ErrorIs(err, domain.ErrCustomerRequired)
	_, err = s.controller.ListOrders(s.ctx, domain.OrderFilter{CustomerID: "cust-1", Status: "paid"})
	s.ErrorIs(err, domain.ErrOrderStatusInvalid)
}

func TestNewControllerRequiresDependencies(t *testing.T) {
	_, err := NewController(Dependencies{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "orders")
}

type failingSink struct{}

func (failingSink) Emit(context.Context, domain.DomainEvent) error {
	return errors.New("outbox unavailable")
}
