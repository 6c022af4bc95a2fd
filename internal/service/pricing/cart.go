// Package pricing строит контекст корзины, оценивает промо-акции и выбирает итоговую цену.
// Все функции чистые: без I/O и без глобального состояния.
package pricing

import (
	"fmt"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// BuildCartContext проецирует позиции заказа в контекст корзины.
// Категории перечисляются в порядке первого появления, без повторов.
// Если стоимость позиции или subtotal не помещается в int64, возвращается domain.ErrAmountOverflow.
func BuildCartContext(items []domain.OrderItem, kind domain.CustomerKind, role domain.Role) (domain.CartContext, error) {
	cart := domain.CartContext{
		CustomerKind: kind,
		ActorRole:    role,
		Lines:        make([]domain.CartLine, 0, len(items)),
	}

	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		line, err := item.LineTotalMinor()
		if err != nil {
			return domain.CartContext{}, fmt.Errorf("item %s: %w", item.ID, err)
		}
		subtotal, ok := domain.AddMinor(cart.SubtotalMinor, line)
		if !ok {
			return domain.CartContext{}, fmt.Errorf("cart subtotal: %w", domain.ErrAmountOverflow)
		}
		cart.SubtotalMinor = subtotal
		cart.ItemCount += int64(item.Qty)
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductRef:     item.ProductRef,
			CategoryRef:    item.CategoryRef,
			Qty:            item.Qty,
			UnitPriceMinor: item.UnitPriceMinor,
		})

		if item.CategoryRef == "" {
			continue
		}
		if _, ok := seen[item.CategoryRef]; ok {
			continue
		}
		seen[item.CategoryRef] = struct{}{}
		cart.CategoryIDs = append(cart.CategoryIDs, item.CategoryRef)
	}

	return cart, nil
}
