package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	omsv1 "github.com/vladislavdragonenkov/oms/proto/oms/v1"
)

const idempotencyHeader = "idempotency-key"

type scenarioMode string

const (
	// modeCreate — только создание заказа продавцом.
	modeCreate scenarioMode = "create"
	// modeConfirmCancel — создание, подтверждение и отмена менеджером.
	modeConfirmCancel scenarioMode = "confirm-cancel"
	// modeFulfil — полный путь до delivered, часть заказов завершается возвратом.
	modeFulfil scenarioMode = "fulfil"
)

func parseMode(value string) (scenarioMode, error) {
	switch mode := scenarioMode(strings.TrimSpace(value)); mode {
	case modeCreate, modeConfirmCancel, modeFulfil:
		return mode, nil
	default:
		return "", fmt.Errorf("unsupported mode: %s", value)
	}
}

var (
	salesperson = &omsv1.Actor{Id: "loadtest-sales", Role: "salesperson"}
	manager     = &omsv1.Actor{Id: "loadtest-manager", Role: "manager"}
	warehouse   = &omsv1.Actor{Id: "loadtest-warehouse", Role: "warehouse"}
)

type scenario struct {
	client omsv1.OrderServiceClient
	cfg    config
	runID  string
	col    *collector
}

// run проводит один заказ по сценарию. Каждый переход передаёт версию,
// полученную в предыдущем ответе.
func (s scenario) run(ctx context.Context, index int) (err error) {
	started := time.Now()
	defer func() {
		s.col.record(scenarioMethod, time.Since(started), grpcCode(err))
	}()

	order, err := s.create(ctx, index)
	if err != nil {
		return err
	}
	if s.cfg.mode == modeCreate {
		return nil
	}

	if order, err = s.transition(ctx, index, order, manager, "confirmed", nil); err != nil {
		return err
	}
	if s.cfg.mode == modeConfirmCancel {
		_, err = s.transition(ctx, index, order, manager, "cancelled", nil)
		return err
	}

	shipment := &omsv1.ShipmentInput{
		TrackingCode: fmt.Sprintf("LT-%s-%d", s.runID, index),
		Carrier:      "loadtest",
	}
	for _, step := range []struct {
		to       string
		shipment *omsv1.ShipmentInput
	}{
		{to: "preparing"},
		{to: "shipped", shipment: shipment},
		{to: "delivered"},
	} {
		if order, err = s.transition(ctx, index, order, warehouse, step.to, step.shipment); err != nil {
			return err
		}
	}

	if shouldReturn(index, s.cfg.returnRate) {
		return s.createReturn(ctx, index, order)
	}
	return nil
}

func (s scenario) create(ctx context.Context, index int) (*omsv1.Order, error) {
	req := &omsv1.CreateOrderRequest{
		Actor:        salesperson,
		CustomerId:   fmt.Sprintf("load-%s-%d", s.runID, index),
		CustomerKind: "retail",
		Currency:     s.cfg.currency,
		Items: []*omsv1.OrderItemInput{{
			ProductRef:     s.cfg.product,
			Qty:            1,
			UnitPriceMinor: s.cfg.priceMinor,
		}},
		PromotionIds: s.cfg.promotions,
	}

	var resp *omsv1.CreateOrderResponse
	err := s.call(ctx, "CreateOrder", s.key("create", index, 0), func(callCtx context.Context) (err error) {
		resp, err = s.client.CreateOrder(callCtx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	if resp.GetOrder().GetId() == "" {
		return nil, status.Error(codes.Internal, "create response returned empty order id")
	}
	return resp.GetOrder(), nil
}

func (s scenario) transition(ctx context.Context, index int, order *omsv1.Order, actor *omsv1.Actor, to string, shipment *omsv1.ShipmentInput) (*omsv1.Order, error) {
	req := &omsv1.RequestTransitionRequest{
		Actor:           actor,
		OrderId:         order.GetId(),
		To:              to,
		ExpectedVersion: order.GetVersion(),
		Shipment:        shipment,
	}
	if to == "cancelled" {
		req.Reason = "loadtest"
	}

	var resp *omsv1.RequestTransitionResponse
	err := s.call(ctx, "RequestTransition", s.key(to, index, order.GetVersion()), func(callCtx context.Context) (err error) {
		resp, err = s.client.RequestTransition(callCtx, req)
		return err
	})
	if err != nil {
		return nil, err
	}
	if got := resp.GetOrder().GetStatus(); got != to {
		return nil, status.Errorf(codes.Internal, "order %s is %q after transition to %q", order.GetId(), got, to)
	}
	return resp.GetOrder(), nil
}

func (s scenario) createReturn(ctx context.Context, index int, order *omsv1.Order) error {
	if len(order.Items) == 0 {
		return status.Error(codes.Internal, "delivered order has no items")
	}
	req := &omsv1.CreateReturnRequest{
		Actor:   warehouse,
		OrderId: order.GetId(),
		Reason:  "customer_changed_mind",
		Lines: []*omsv1.ReturnLineInput{{
			ItemId:    order.Items[0].Id,
			Qty:       1,
			Condition: "new",
			Restock:   true,
		}},
	}
	return s.call(ctx, "CreateReturn", s.key("return", index, order.GetVersion()), func(callCtx context.Context) error {
		_, err := s.client.CreateReturn(callCtx, req)
		return err
	})
}

// call выполняет RPC с таймаутом и ключом идемпотентности и записывает задержку.
func (s scenario) call(ctx context.Context, method, key string, fn func(context.Context) error) error {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()
	callCtx = metadata.AppendToOutgoingContext(callCtx, idempotencyHeader, key)

	started := time.Now()
	err := fn(callCtx)
	s.col.record(method, time.Since(started), grpcCode(err))
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

func (s scenario) key(step string, index int, version int64) string {
	return fmt.Sprintf("lt-%s-%s-%d-v%d", step, s.runID, index, version)
}

func grpcCode(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	// status.Code разворачивает обёрнутые ошибки
	return status.Code(err)
}

func shouldReturn(index, rate int) bool {
	return rate > 0 && index%100 < rate
}
