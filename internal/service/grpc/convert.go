package grpcsvc

import (
	"strings"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/service/lifecycle"
	"github.com/vladislavdragonenkov/oms/internal/service/returns"
	"github.com/vladislavdragonenkov/oms/internal/service/statemachine"
	omsv1 "github.com/vladislavdragonenkov/oms/proto/oms/v1"
)

func toDomainActor(actor *omsv1.Actor) (domain.Actor, error) {
	if actor == nil || strings.TrimSpace(actor.GetId()) == "" {
		return domain.Actor{}, invalidArgument("actor.id is required")
	}
	role, ok := domain.ParseRole(actor.GetRole())
	if !ok {
		return domain.Actor{}, invalidArgument("actor.role must be one of manager, warehouse, salesperson")
	}
	return domain.Actor{ID: strings.TrimSpace(actor.GetId()), Role: role}, nil
}

func toCreateOrderCommand(req *omsv1.CreateOrderRequest, actor domain.Actor) lifecycle.CreateOrderCommand {
	items := make([]lifecycle.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		if item == nil {
			continue
		}
		items = append(items, lifecycle.ItemInput{
			ProductRef:     item.ProductRef,
			CategoryRef:    item.CategoryRef,
			Name:           item.Name,
			SKU:            item.Sku,
			Qty:            item.Qty,
			UnitPriceMinor: item.UnitPriceMinor,
		})
	}
	kind := domain.CustomerKind(strings.ToLower(strings.TrimSpace(req.CustomerKind)))
	if kind == "" {
		kind = domain.CustomerKindRetail
	}
	return lifecycle.CreateOrderCommand{
		CustomerID:           req.CustomerId,
		CustomerKind:         kind,
		Currency:             req.Currency,
		Items:                items,
		BaseShippingFeeMinor: req.BaseShippingFeeMinor,
		PromotionIDs:         req.PromotionIds,
		Actor:                actor,
	}
}

func toTransitionCommand(req *omsv1.RequestTransitionRequest, actor domain.Actor) (lifecycle.TransitionCommand, error) {
	to, ok := domain.ParseOrderStatus(req.To)
	if !ok {
		return lifecycle.TransitionCommand{}, invalidArgument("unknown target status " + req.To)
	}
	payload := statemachine.Payload{Reason: req.Reason, Note: req.Note}
	if req.Shipment != nil {
		payload.Shipment = &statemachine.ShipmentPayload{
			TrackingCode:     req.Shipment.TrackingCode,
			Carrier:          req.Shipment.Carrier,
			ShippingFeeMinor: req.Shipment.ShippingFeeMinor,
			Notes:            req.Shipment.Notes,
		}
	}
	return lifecycle.TransitionCommand{
		OrderID:         req.OrderId,
		To:              to,
		Actor:           actor,
		Payload:         payload,
		ExpectedVersion: req.ExpectedVersion,
	}, nil
}

func toReturnCommand(req *omsv1.CreateReturnRequest, actor domain.Actor) lifecycle.ReturnCommand {
	lines := make([]returns.Line, 0, len(req.Lines))
	for _, line := range req.Lines {
		if line == nil {
			continue
		}
		lines = append(lines, returns.Line{
			ItemID:    line.ItemId,
			Qty:       line.Qty,
			Condition: domain.ItemCondition(strings.ToLower(strings.TrimSpace(line.Condition))),
			Restock:   line.Restock,
		})
	}
	return lifecycle.ReturnCommand{
		OrderID: req.OrderId,
		Reason:  domain.ReturnReason(strings.ToLower(strings.TrimSpace(req.Reason))),
		Lines:   lines,
		Notes:   req.Notes,
		Actor:   actor,
	}
}

func toProtoOrder(order domain.Order) *omsv1.Order {
	items := make([]*omsv1.OrderItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, &omsv1.OrderItem{
			Id:             item.ID,
			ProductRef:     item.ProductRef,
			CategoryRef:    item.CategoryRef,
			Name:           item.NameSnapshot,
			Sku:            item.SKUSnapshot,
			Qty:            item.Qty,
			UnitPriceMinor: item.UnitPriceMinor,
		})
	}

	trail := make([]*omsv1.ActorTrailEntry, 0, len(order.ActorTrail))
	for _, entry := range order.ActorTrail {
		trail = append(trail, &omsv1.ActorTrailEntry{
			From:         string(entry.From),
			To:           string(entry.To),
			ActorId:      entry.ActorID,
			Role:         string(entry.Role),
			Note:         entry.Note,
			OccurredUnix: unix(entry.Occurred),
		})
	}

	out := &omsv1.Order{
		Id:                   order.ID,
		Number:               order.Number,
		CustomerId:           order.CustomerID,
		CustomerKind:         string(order.CustomerKind),
		Status:               string(order.Status),
		Currency:             order.Currency,
		Items:                items,
		BaseShippingFeeMinor: order.BaseShippingFeeMinor,
		Pricing: &omsv1.Pricing{
			SubtotalMinor:    order.Pricing.SubtotalMinor,
			DiscountMinor:    order.Pricing.DiscountMinor,
			ShippingFeeMinor: order.Pricing.ShippingFeeMinor,
			TotalMinor:       order.Pricing.TotalMinor,
			FreeShipping:     order.Pricing.FreeShipping,
		},
		AppliedPromotions: append([]string(nil), order.AppliedPromotions...),
		CancelReason:      order.CancelReason,
		ActorTrail:        trail,
		CreatedBy:         order.CreatedBy,
		Version:           order.Version,
		CreatedAtUnix:     unix(order.CreatedAt),
		UpdatedAtUnix:     unix(order.UpdatedAt),
	}
	if order.Shipment != nil {
		out.Shipment = &omsv1.Shipment{
			TrackingCode:     order.Shipment.TrackingCode,
			Carrier:          order.Shipment.Carrier,
			ShippingFeeMinor: order.Shipment.ShippingFeeMinor,
			Notes:            order.Shipment.Notes,
			ShippedAtUnix:    unix(order.Shipment.ShippedAt),
		}
	}
	return out
}

func toProtoReturn(ret domain.Return) *omsv1.Return {
	lines := make([]*omsv1.ReturnLine, 0, len(ret.Lines))
	for _, line := range ret.Lines {
		lines = append(lines, &omsv1.ReturnLine{
			ItemId:     line.ItemID,
			ProductRef: line.ProductRef,
			Qty:        line.Qty,
			Condition:  string(line.Condition),
			Restock:    line.Restock,
		})
	}
	return &omsv1.Return{
		Id:              ret.ID,
		Number:          ret.Number,
		OrderId:         ret.OrderID,
		Reason:          string(ret.Reason),
		Lines:           lines,
		Notes:           ret.Notes,
		ProcessedBy:     ret.ProcessedBy,
		ProcessedRole:   string(ret.ProcessedRole),
		RestockWarnings: append([]string(nil), ret.RestockWarnings...),
		CreatedAtUnix:   unix(ret.CreatedAt),
	}
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
