package pricing_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/service/pricing"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func minTotal(amount int64, rules ...domain.Rule) []domain.Rule {
	return append([]domain.Rule{domain.ConditionRule{
		Field:    domain.ConditionFieldCartTotal,
		Operator: domain.OperatorGTE,
		Amount:   amount,
	}}, rules...)
}

func TestBuildCartContext(t *testing.T) {
	items := []domain.OrderItem{
		{ProductRef: "p-1", CategoryRef: "audio", Qty: 2, UnitPriceMinor: 150},
		{ProductRef: "p-2", CategoryRef: "video", Qty: 1, UnitPriceMinor: 1000},
		{ProductRef: "p-3", CategoryRef: "audio", Qty: 3, UnitPriceMinor: 10},
	}

	cart, err := pricing.BuildCartContext(items, domain.CustomerKindWholesale, domain.RoleSalesperson)
	require.NoError(t, err)

	require.Equal(t, int64(1330), cart.SubtotalMinor)
	require.Equal(t, int64(6), cart.ItemCount)
	require.Equal(t, []string{"audio", "video"}, cart.CategoryIDs)
	require.Equal(t, domain.CustomerKindWholesale, cart.CustomerKind)
	require.Len(t, cart.Lines, 3)
}

func TestBuildCartContext_RejectsOverflow(t *testing.T) {
	_, err := pricing.BuildCartContext([]domain.OrderItem{
		{ID: "item-1", ProductRef: "p-1", Qty: 4, UnitPriceMinor: 1<<62 + 1},
	}, domain.CustomerKindRetail, domain.RoleSalesperson)
	require.ErrorIs(t, err, domain.ErrAmountOverflow)

	_, err = pricing.BuildCartContext([]domain.OrderItem{
		{ID: "item-1", ProductRef: "p-1", Qty: 1, UnitPriceMinor: math.MaxInt64 - 10},
		{ID: "item-2", ProductRef: "p-2", Qty: 1, UnitPriceMinor: 11},
	}, domain.CustomerKindRetail, domain.RoleSalesperson)
	require.ErrorIs(t, err, domain.ErrAmountOverflow)
}

func TestDiscount_LargeAmountsDoNotOverflow(t *testing.T) {
	const subtotal = int64(200_000_000_000_000_000)
	cart := domain.CartContext{
		SubtotalMinor: subtotal,
		Lines: []domain.CartLine{
			{ProductRef: "a", Qty: 1, UnitPriceMinor: subtotal / 2},
			{ProductRef: "b", Qty: 1, UnitPriceMinor: subtotal / 2},
		},
	}

	half := domain.Promotion{ID: "half", Type: domain.PromotionTypePercentageDiscount, Value: 50, Active: true}
	discount, _ := pricing.Discount(half, cart)
	require.Equal(t, int64(100_000_000_000_000_000), discount)

	bundle := domain.Promotion{ID: "bundle", Type: domain.PromotionTypeBundleDiscount, Active: true, Rules: []domain.Rule{
		domain.ActionRule{Kind: domain.ActionBundleDiscount, Percent: 50, ProductRefs: []string{"a", "b"}},
	}}
	discount, _ = pricing.Discount(bundle, cart)
	require.Equal(t, int64(100_000_000_000_000_000), discount)

	// повторы товара в комплекте выводят его цену за int64, скидка всё равно равна subtotal
	refs := []string{"b"}
	for i := 0; i < 100; i++ {
		refs = append(refs, "a")
	}
	doubled := domain.Promotion{ID: "doubled", Type: domain.PromotionTypeBundleDiscount, Active: true, Rules: []domain.Rule{
		domain.ActionRule{Kind: domain.ActionBundleDiscount, Percent: 100, ProductRefs: refs},
	}}
	discount, _ = pricing.Discount(doubled, cart)
	require.Equal(t, subtotal, discount)

	stacked := domain.Promotion{ID: "stacked", Type: domain.PromotionTypeFixedAmountDiscount, Active: true, Rules: []domain.Rule{
		domain.ActionRule{Kind: domain.ActionDiscountPercentage, Percent: 100, Priority: 1},
		domain.ActionRule{Kind: domain.ActionDiscountPercentage, Percent: 100, Priority: 2},
	}}
	discount, _ = pricing.Discount(stacked, cart)
	require.Equal(t, subtotal, discount)
}

func TestQuote_RejectsTotalOverflow(t *testing.T) {
	cart := domain.CartContext{SubtotalMinor: math.MaxInt64 - 5}
	_, err := pricing.Quote(cart, nil, nil, 10, testNow)
	require.ErrorIs(t, err, domain.ErrAmountOverflow)

	res, err := pricing.Quote(cart, nil, nil, 5, testNow)
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), res.TotalMinor)
}

func TestQuote_FreeShippingScenario(t *testing.T) {
	cart, err := pricing.BuildCartContext([]domain.OrderItem{
		{ProductRef: "p-1", Qty: 3, UnitPriceMinor: 100000},
	}, domain.CustomerKindRetail, domain.RoleSalesperson)
	require.NoError(t, err)

	promotions := []domain.Promotion{
		{
			ID: "ten-off", Type: domain.PromotionTypePercentageDiscount, Active: true,
			Rules: minTotal(500000, domain.ActionRule{Kind: domain.ActionDiscountPercentage, Percent: 10}),
		},
		{
			ID: "free-ship", Type: domain.PromotionTypeFreeShipping, Active: true,
			Rules: minTotal(300000, domain.ActionRule{Kind: domain.ActionFreeShipping}),
		},
	}

	eligible := pricing.Evaluate(promotions, cart, testNow)
	require.Len(t, eligible, 1)
	require.Equal(t, "free-ship", eligible[0].Promotion.ID)

	res, err := pricing.Quote(cart, promotions, nil, 30000, testNow)
	require.NoError(t, err)
	require.Equal(t, int64(300000), res.SubtotalMinor)
	require.Equal(t, int64(0), res.DiscountMinor)
	require.Equal(t, int64(0), res.ShippingFeeMinor)
	require.Equal(t, int64(300000), res.TotalMinor)
	require.Equal(t, []string{"free-ship"}, res.AppliedPromotionIDs)
}

func TestEvaluate_Eligibility(t *testing.T) {
	cart := domain.CartContext{SubtotalMinor: 1000, ItemCount: 2, CustomerKind: domain.CustomerKindRetail}
	past := testNow.Add(-time.Hour)
	future := testNow.Add(time.Hour)
	limit := int64(3)

	tests := []struct {
		name  string
		promo domain.Promotion
		want  string
	}{
		{name: "inactive", promo: domain.Promotion{Active: false}, want: "promotion is inactive"},
		{name: "not started", promo: domain.Promotion{Active: true, StartAt: &future}, want: "outside of promotion window"},
		{name: "ended", promo: domain.Promotion{Active: true, EndAt: &past}, want: "outside of promotion window"},
		{name: "limit", promo: domain.Promotion{Active: true, UsageLimit: &limit, UsageCount: 3}, want: "usage limit reached"},
		{
			name: "all conditions must hold",
			promo: domain.Promotion{Active: true, Rules: []domain.Rule{
				domain.ConditionRule{Field: domain.ConditionFieldCartTotal, Operator: domain.OperatorGTE, Amount: 500},
				domain.ConditionRule{Field: domain.ConditionFieldCustomerKind, Operator: domain.OperatorEQ, Values: []string{"wholesale"}},
			}},
			want: "condition customer_kind eq not met",
		},
		{name: "eligible", promo: domain.Promotion{Active: true, StartAt: &past, EndAt: &future, UsageLimit: &limit, UsageCount: 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, pricing.Ineligibility(tc.promo, cart, testNow))
		})
	}
}

func TestConditionHolds(t *testing.T) {
	cart := domain.CartContext{
		SubtotalMinor: 1000,
		ItemCount:     4,
		CustomerKind:  domain.CustomerKindWholesale,
		ActorRole:     domain.RoleManager,
		CategoryIDs:   []string{"audio", "cables"},
	}

	tests := []struct {
		name string
		cond domain.ConditionRule
		want bool
	}{
		{"total gt", domain.ConditionRule{Field: domain.ConditionFieldCartTotal, Operator: domain.OperatorGT, Amount: 999}, true},
		{"total lt", domain.ConditionRule{Field: domain.ConditionFieldCartTotal, Operator: domain.OperatorLT, Amount: 1000}, false},
		{"count lte", domain.ConditionRule{Field: domain.ConditionFieldItemCount, Operator: domain.OperatorLTE, Amount: 4}, true},
		{"count neq", domain.ConditionRule{Field: domain.ConditionFieldItemCount, Operator: domain.OperatorNEQ, Amount: 4}, false},
		{"numeric in is never true", domain.ConditionRule{Field: domain.ConditionFieldCartTotal, Operator: domain.OperatorIn, Amount: 1000}, false},
		{"kind in", domain.ConditionRule{Field: domain.ConditionFieldCustomerKind, Operator: domain.OperatorIn, Values: []string{"retail", "wholesale"}}, true},
		{"kind not in", domain.ConditionRule{Field: domain.ConditionFieldCustomerKind, Operator: domain.OperatorNotIn, Values: []string{"wholesale"}}, false},
		{"role eq", domain.ConditionRule{Field: domain.ConditionFieldActorRole, Operator: domain.OperatorEQ, Values: []string{"manager"}}, true},
		{"category in", domain.ConditionRule{Field: domain.ConditionFieldProductCategory, Operator: domain.OperatorIn, Values: []string{"video", "audio"}}, true},
		{"category not in", domain.ConditionRule{Field: domain.ConditionFieldProductCategory, Operator: domain.OperatorNotIn, Values: []string{"audio"}}, false},
		{"category gte is never true", domain.ConditionRule{Field: domain.ConditionFieldProductCategory, Operator: domain.OperatorGTE, Values: []string{"audio"}}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, pricing.ConditionHolds(tc.cond, cart))
		})
	}
}

func TestDiscount_Actions(t *testing.T) {
	lines := []domain.CartLine{
		{ProductRef: "mouse", Qty: 3, UnitPriceMinor: 200},
		{ProductRef: "pad", Qty: 2, UnitPriceMinor: 50},
		{ProductRef: "cable", Qty: 1, UnitPriceMinor: 999},
	}
	cart := domain.CartContext{SubtotalMinor: 600 + 100 + 999, ItemCount: 6, Lines: lines}

	tests := []struct {
		name     string
		action   domain.ActionRule
		want     int64
		freeShip bool
	}{
		{name: "percentage floors", action: domain.ActionRule{Kind: domain.ActionDiscountPercentage, Percent: 15}, want: 254},
		{name: "fixed", action: domain.ActionRule{Kind: domain.ActionDiscountFixed, AmountMinor: 300}, want: 300},
		{name: "fixed clamped to subtotal", action: domain.ActionRule{Kind: domain.ActionDiscountFixed, AmountMinor: 100000}, want: 1699},
		{name: "free shipping", action: domain.ActionRule{Kind: domain.ActionFreeShipping}, want: 0, freeShip: true},
		{
			name:   "buy 2 get 1 on mouse",
			action: domain.ActionRule{Kind: domain.ActionBuyXGetY, BuyQty: 2, GetQty: 1, ProductRefs: []string{"mouse"}},
			want:   200,
		},
		{
			name:   "buy 1 get 1 across all lines takes cheapest units",
			action: domain.ActionRule{Kind: domain.ActionBuyXGetY, BuyQty: 1, GetQty: 1},
			want:   50 + 50 + 200,
		},
		{
			name:   "bundle percent",
			action: domain.ActionRule{Kind: domain.ActionBundleDiscount, Percent: 10, ProductRefs: []string{"mouse", "pad"}},
			want:   (2 * 250) * 10 / 100,
		},
		{
			name:   "bundle fixed capped by bundle value",
			action: domain.ActionRule{Kind: domain.ActionBundleDiscount, AmountMinor: 5000, ProductRefs: []string{"pad", "cable"}},
			want:   50 + 999,
		},
		{
			name:   "bundle missing product",
			action: domain.ActionRule{Kind: domain.ActionBundleDiscount, Percent: 50, ProductRefs: []string{"mouse", "monitor"}},
			want:   0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			promo := domain.Promotion{Active: true, Rules: []domain.Rule{tc.action}}
			discount, freeShip := pricing.Discount(promo, cart)
			require.Equal(t, tc.want, discount)
			require.Equal(t, tc.freeShip, freeShip)
		})
	}
}

func TestDiscount_MultipleActionsClampedTogether(t *testing.T) {
	cart := domain.CartContext{SubtotalMinor: 1000}
	promo := domain.Promotion{Active: true, Rules: []domain.Rule{
		domain.ActionRule{Kind: domain.ActionDiscountPercentage, Percent: 80, Priority: 2},
		domain.ActionRule{Kind: domain.ActionDiscountFixed, AmountMinor: 500, Priority: 1},
		domain.ActionRule{Kind: domain.ActionFreeShipping},
	}}

	discount, freeShip := pricing.Discount(promo, cart)
	require.Equal(t, int64(1000), discount)
	require.True(t, freeShip)
}

func TestAutoSelect(t *testing.T) {
	cart := domain.CartContext{SubtotalMinor: 10000}
	older := testNow.Add(-48 * time.Hour)
	newer := testNow.Add(-time.Hour)

	t.Run("largest discount wins", func(t *testing.T) {
		res := pricing.AutoSelect(cart, []pricing.EligiblePromotion{
			{Promotion: domain.Promotion{ID: "small", CreatedAt: older}, DiscountMinor: 100},
			{Promotion: domain.Promotion{ID: "big", CreatedAt: newer}, DiscountMinor: 900},
		}, 500)
		require.Equal(t, []string{"big"}, res.AppliedPromotionIDs)
		require.Equal(t, int64(10000-900+500), res.TotalMinor)
	})

	t.Run("tie goes to earliest created", func(t *testing.T) {
		res := pricing.AutoSelect(cart, []pricing.EligiblePromotion{
			{Promotion: domain.Promotion{ID: "newer", CreatedAt: newer}, DiscountMinor: 300},
			{Promotion: domain.Promotion{ID: "older", CreatedAt: older}, DiscountMinor: 300},
		}, 0)
		require.Equal(t, []string{"older"}, res.AppliedPromotionIDs)
	})

	t.Run("zero-value promotion is not applied", func(t *testing.T) {
		res := pricing.AutoSelect(cart, []pricing.EligiblePromotion{
			{Promotion: domain.Promotion{ID: "empty", CreatedAt: older}},
		}, 500)
		require.Empty(t, res.AppliedPromotionIDs)
		require.Equal(t, int64(10500), res.TotalMinor)
	})

	t.Run("free shipping alone still applies", func(t *testing.T) {
		res := pricing.AutoSelect(cart, []pricing.EligiblePromotion{
			{Promotion: domain.Promotion{ID: "empty", CreatedAt: older}},
			{Promotion: domain.Promotion{ID: "ship", CreatedAt: newer}, FreeShipping: true},
		}, 500)
		require.Equal(t, []string{"ship"}, res.AppliedPromotionIDs)
		require.Zero(t, res.ShippingFeeMinor)
	})

	t.Run("nothing eligible", func(t *testing.T) {
		res := pricing.AutoSelect(cart, nil, 700)
		require.Empty(t, res.AppliedPromotionIDs)
		require.Equal(t, int64(0), res.DiscountMinor)
		require.Equal(t, int64(700), res.ShippingFeeMinor)
		require.Equal(t, int64(10700), res.TotalMinor)
	})
}

func TestStack(t *testing.T) {
	cart := domain.CartContext{SubtotalMinor: 1000}
	eligible := []pricing.EligiblePromotion{
		{Promotion: domain.Promotion{ID: "a"}, DiscountMinor: 600},
		{Promotion: domain.Promotion{ID: "b"}, DiscountMinor: 700, FreeShipping: true},
		{Promotion: domain.Promotion{ID: "c"}, DiscountMinor: 10},
	}

	res, err := pricing.Stack(cart, eligible, []string{"a", "b", "a"}, 250)
	require.NoError(t, err)
	require.Equal(t, int64(1000), res.DiscountMinor)
	require.Equal(t, int64(0), res.ShippingFeeMinor)
	require.Equal(t, int64(0), res.TotalMinor)
	require.True(t, res.FreeShipping)
	require.Equal(t, []string{"a", "b"}, res.AppliedPromotionIDs)

	_, err = pricing.Stack(cart, eligible, []string{"c", "gone"}, 250)
	var notEligible *domain.PromotionNotEligibleError
	require.True(t, errors.As(err, &notEligible))
	require.Equal(t, "gone", notEligible.PromotionID)
}

func TestQuote_ExplainsIneligibleExplicitPromotion(t *testing.T) {
	cart := domain.CartContext{SubtotalMinor: 1000}
	promotions := []domain.Promotion{{
		ID: "big-spender", Type: domain.PromotionTypeFixedAmountDiscount, Value: 100, Active: true,
		Rules: minTotal(5000),
	}}

	_, err := pricing.Quote(cart, promotions, []string{"big-spender"}, 0, testNow)
	require.ErrorIs(t, err, domain.ErrPromotionNotEligible)

	var notEligible *domain.PromotionNotEligibleError
	require.True(t, errors.As(err, &notEligible))
	require.Equal(t, "condition cart_total gte not met", notEligible.Reason)
}
