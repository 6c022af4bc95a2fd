// Package statemachine — чистая машина состояний заказа: таблица переходов,
// матрица ролей и проверка данных перехода.
package statemachine

import "github.com/vladislavdragonenkov/oms/internal/domain"

var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.OrderStatusDraft:     {domain.OrderStatusConfirmed, domain.OrderStatusCancelled},
	domain.OrderStatusConfirmed: {domain.OrderStatusPreparing, domain.OrderStatusCancelled},
	domain.OrderStatusPreparing: {domain.OrderStatusShipped, domain.OrderStatusCancelled},
	domain.OrderStatusShipped:   {domain.OrderStatusDelivered},
	domain.OrderStatusDelivered: {},
	domain.OrderStatusCancelled: {},
}

var permissions = map[domain.Edge][]domain.Role{
	{From: domain.OrderStatusDraft, To: domain.OrderStatusConfirmed}:     {domain.RoleManager},
	{From: domain.OrderStatusDraft, To: domain.OrderStatusCancelled}:     {domain.RoleManager},
	{From: domain.OrderStatusConfirmed, To: domain.OrderStatusCancelled}: {domain.RoleManager},
	{From: domain.OrderStatusPreparing, To: domain.OrderStatusCancelled}: {domain.RoleManager},
	{From: domain.OrderStatusConfirmed, To: domain.OrderStatusPreparing}: {domain.RoleWarehouse, domain.RoleManager},
	{From: domain.OrderStatusPreparing, To: domain.OrderStatusShipped}:   {domain.RoleWarehouse, domain.RoleManager},
	{From: domain.OrderStatusShipped, To: domain.OrderStatusDelivered}:   {domain.RoleWarehouse, domain.RoleManager},
}

// CanTransition сообщает, есть ли ребро from → to в таблице.
func CanTransition(from, to domain.OrderStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Allowed возвращает статусы, достижимые из from.
func Allowed(from domain.OrderStatus) []domain.OrderStatus {
	return append([]domain.OrderStatus(nil), transitions[from]...)
}

// Permitted сообщает, может ли роль пройти ребро.
func Permitted(edge domain.Edge, role domain.Role) bool {
	for _, r := range permissions[edge] {
		if r == role {
			return true
		}
	}
	return false
}

// Edges перечисляет все легальные рёбра.
func Edges() []domain.Edge {
	edges := make([]domain.Edge, 0, len(permissions))
	for _, from := range []domain.OrderStatus{
		domain.OrderStatusDraft, domain.OrderStatusConfirmed, domain.OrderStatusPreparing,
		domain.OrderStatusShipped, domain.OrderStatusDelivered, domain.OrderStatusCancelled,
	} {
		for _, to := range transitions[from] {
			edges = append(edges, domain.Edge{From: from, To: to})
		}
	}
	return edges
}
