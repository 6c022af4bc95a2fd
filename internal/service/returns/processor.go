// Package returns проверяет запрос на возврат и формирует запись возврата
// вместе с намерениями вернуть товар на склад. Статус заказа не меняется.
package returns

import (
	"fmt"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

var permittedRoles = map[domain.Role]struct{}{
	domain.RoleManager:   {},
	domain.RoleWarehouse: {},
}

// Line — позиция в запросе на возврат.
type Line struct {
	ItemID    string
	Qty       int32
	Condition domain.ItemCondition
	Restock   bool
}

// Request — запрос на возврат по заказу.
type Request struct {
	Order domain.Order
	// Prior — уже оформленные возвраты по заказу, учитываются при проверке количества.
	Prior    []domain.Return
	ReturnID string
	Number   string
	Reason   domain.ReturnReason
	Lines    []Line
	Notes    string
	Actor    domain.Actor
	At       time.Time
}

// Result — созданный возврат и намерения для склада.
type Result struct {
	Return  domain.Return
	Restock []domain.RestockIntent
	Event   domain.DomainEvent
}

// Process проверяет предусловия и строит возврат.
func Process(req Request) (Result, error) {
	order := req.Order

	if _, ok := permittedRoles[req.Actor.Role]; !ok {
		return Result{}, &domain.ForbiddenError{OrderID: order.ID, Action: "create_return", Role: req.Actor.Role}
	}
	if order.Status != domain.OrderStatusShipped && order.Status != domain.OrderStatusDelivered {
		return Result{}, &domain.ReturnPreconditionError{
			OrderID: order.ID,
			Status:  order.Status,
			Reason:  "order must be shipped or delivered",
		}
	}
	if !req.Reason.Valid() {
		return Result{}, &domain.ReturnPreconditionError{OrderID: order.ID, Status: order.Status, Reason: "unknown return reason"}
	}
	if len(req.Lines) == 0 {
		return Result{}, &domain.ReturnPreconditionError{OrderID: order.ID, Status: order.Status, Reason: "return must contain at least one line"}
	}

	requested := make(map[string]int64, len(req.Lines))
	dispositions := make([]domain.LineDisposition, 0, len(req.Lines))
	for _, line := range req.Lines {
		item, ok := order.Item(line.ItemID)
		if !ok {
			return Result{}, lineError(order, line.ItemID, "line is not part of the order")
		}
		if line.Qty <= 0 {
			return Result{}, lineError(order, line.ItemID, "quantity must be greater than zero")
		}
		if !line.Condition.Valid() {
			return Result{}, lineError(order, line.ItemID, "unknown item condition")
		}

		requested[line.ItemID] += int64(line.Qty)
		already := domain.ReturnedQty(req.Prior, line.ItemID)
		if already+requested[line.ItemID] > int64(item.Qty) {
			return Result{}, lineError(order, line.ItemID,
				fmt.Sprintf("quantity %d exceeds remaining %d", requested[line.ItemID], int64(item.Qty)-already))
		}

		dispositions = append(dispositions, domain.LineDisposition{
			ItemID:     line.ItemID,
			ProductRef: item.ProductRef,
			Qty:        line.Qty,
			Condition:  line.Condition,
			Restock:    line.Restock,
		})
	}

	at := req.At.UTC()
	ret := domain.Return{
		ID:            req.ReturnID,
		Number:        req.Number,
		OrderID:       order.ID,
		Reason:        req.Reason,
		Lines:         dispositions,
		Notes:         strings.TrimSpace(req.Notes),
		ProcessedBy:   req.Actor.ID,
		ProcessedRole: req.Actor.Role,
		CreatedAt:     at,
	}

	var intents []domain.RestockIntent
	for _, d := range dispositions {
		if !d.Restock {
			continue
		}
		intents = append(intents, domain.RestockIntent{
			ReturnID:   ret.ID,
			OrderID:    order.ID,
			ProductRef: d.ProductRef,
			Qty:        d.Qty,
		})
	}

	return Result{
		Return:  ret,
		Restock: intents,
		Event: domain.DomainEvent{
			Type:        domain.EventOrderReturned,
			OrderID:     order.ID,
			OrderNumber: order.Number,
			From:        order.Status,
			To:          order.Status,
			ActorID:     req.Actor.ID,
			Role:        req.Actor.Role,
			Reason:      string(req.Reason),
			ReturnID:    ret.ID,
			Occurred:    at,
		},
	}, nil
}

func lineError(order domain.Order, itemID, reason string) error {
	return &domain.ReturnPreconditionError{OrderID: order.ID, Status: order.Status, ItemID: itemID, Reason: reason}
}
