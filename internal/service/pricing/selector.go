package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// AutoSelect выбирает одну акцию с наибольшей скидкой.
// При равенстве побеждает созданная раньше, затем меньший ID.
// Акция без скидки и без бесплатной доставки не применяется.
func AutoSelect(cart domain.CartContext, eligible []EligiblePromotion, baseShippingFeeMinor int64) domain.PricingResult {
	var best *EligiblePromotion
	for i := range eligible {
		candidate := &eligible[i]
		if candidate.DiscountMinor == 0 && !candidate.FreeShipping {
			continue
		}
		if best == nil || better(candidate, best) {
			best = candidate
		}
	}

	if best == nil {
		return result(cart.SubtotalMinor, 0, false, baseShippingFeeMinor, nil)
	}
	return result(cart.SubtotalMinor, best.DiscountMinor, best.FreeShipping, baseShippingFeeMinor,
		[]string{best.Promotion.ID})
}

func better(a, b *EligiblePromotion) bool {
	if a.DiscountMinor != b.DiscountMinor {
		return a.DiscountMinor > b.DiscountMinor
	}
	if !a.Promotion.CreatedAt.Equal(b.Promotion.CreatedAt) {
		return a.Promotion.CreatedAt.Before(b.Promotion.CreatedAt)
	}
	return a.Promotion.ID < b.Promotion.ID
}

// Stack применяет явно выбранный набор акций. Каждая должна оставаться в eligible,
// иначе PromotionNotEligibleError. Повторы ID игнорируются.
func Stack(cart domain.CartContext, eligible []EligiblePromotion, promotionIDs []string, baseShippingFeeMinor int64) (domain.PricingResult, error) {
	index := make(map[string]EligiblePromotion, len(eligible))
	for _, e := range eligible {
		index[e.Promotion.ID] = e
	}

	var (
		sum          int64
		freeShipping bool
		applied      = make([]string, 0, len(promotionIDs))
		seen         = make(map[string]struct{}, len(promotionIDs))
	)
	for _, id := range promotionIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		e, ok := index[id]
		if !ok {
			return domain.PricingResult{}, &domain.PromotionNotEligibleError{
				PromotionID: id,
				Reason:      "not in eligible set",
			}
		}
		sum = addCapped(sum, clamp(e.DiscountMinor, cart.SubtotalMinor), cart.SubtotalMinor)
		freeShipping = freeShipping || e.FreeShipping
		applied = append(applied, id)
	}

	return result(cart.SubtotalMinor, sum, freeShipping, baseShippingFeeMinor, applied), nil
}

func result(subtotal, discount int64, freeShipping bool, baseShippingFee int64, applied []string) domain.PricingResult {
	discount = clamp(discount, subtotal)
	shipping := baseShippingFee
	if freeShipping || shipping < 0 {
		shipping = 0
	}
	return domain.PricingResult{
		SubtotalMinor:       subtotal,
		DiscountMinor:       discount,
		ShippingFeeMinor:    shipping,
		TotalMinor:          subtotal - discount + shipping,
		FreeShipping:        freeShipping,
		AppliedPromotionIDs: applied,
	}
}

// Quote — полный путь ценообразования: оценка каталога и выбор.
// Пустой promotionIDs означает автоматический выбор.
func Quote(cart domain.CartContext, promotions []domain.Promotion, promotionIDs []string, baseShippingFeeMinor int64, now time.Time) (domain.PricingResult, error) {
	// total = subtotal - discount + shipping не больше subtotal + shipping.
	if baseShippingFeeMinor > 0 {
		if _, ok := domain.AddMinor(cart.SubtotalMinor, baseShippingFeeMinor); !ok {
			return domain.PricingResult{}, fmt.Errorf("order total: %w", domain.ErrAmountOverflow)
		}
	}

	eligible := Evaluate(promotions, cart, now)
	if len(promotionIDs) == 0 {
		return AutoSelect(cart, eligible, baseShippingFeeMinor), nil
	}

	res, err := Stack(cart, eligible, promotionIDs, baseShippingFeeMinor)
	if err != nil {
		var notEligible *domain.PromotionNotEligibleError
		if errors.As(err, &notEligible) {
			notEligible.Reason = explain(promotions, notEligible.PromotionID, cart, now)
		}
		return domain.PricingResult{}, err
	}
	return res, nil
}

func explain(promotions []domain.Promotion, id string, cart domain.CartContext, now time.Time) string {
	for _, promo := range promotions {
		if promo.ID == id {
			if reason := Ineligibility(promo, cart, now); reason != "" {
				return reason
			}
			return "not in eligible set"
		}
	}
	return "promotion is not active or does not exist"
}
