package pricing

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

// EligiblePromotion — акция, прошедшая проверку, и её стоимость для корзины.
type EligiblePromotion struct {
	Promotion     domain.Promotion
	DiscountMinor int64
	FreeShipping  bool
}

// Evaluate возвращает подходящие акции в исходном порядке каталога.
func Evaluate(promotions []domain.Promotion, cart domain.CartContext, now time.Time) []EligiblePromotion {
	eligible := make([]EligiblePromotion, 0, len(promotions))
	for _, promo := range promotions {
		if Ineligibility(promo, cart, now) != "" {
			continue
		}
		discount, freeShipping := Discount(promo, cart)
		eligible = append(eligible, EligiblePromotion{
			Promotion:     promo,
			DiscountMinor: discount,
			FreeShipping:  freeShipping,
		})
	}
	return eligible
}

// Ineligibility возвращает причину, по которой акция не подходит корзине, или пустую строку.
// Условия объединяются через AND.
func Ineligibility(promo domain.Promotion, cart domain.CartContext, now time.Time) string {
	switch {
	case !promo.Active:
		return "promotion is inactive"
	case !promo.InWindow(now):
		return "outside of promotion window"
	case !promo.UnderUsageLimit():
		return "usage limit reached"
	}
	for _, cond := range promo.Conditions() {
		if !ConditionHolds(cond, cart) {
			return fmt.Sprintf("condition %s %s not met", cond.Field, cond.Operator)
		}
	}
	return ""
}

// ConditionHolds проверяет одно условие. Неподходящая пара поле/оператор считается невыполненной.
func ConditionHolds(cond domain.ConditionRule, cart domain.CartContext) bool {
	switch cond.Field {
	case domain.ConditionFieldCartTotal:
		return compareNumeric(cart.SubtotalMinor, cond.Operator, cond.Amount)
	case domain.ConditionFieldItemCount:
		return compareNumeric(cart.ItemCount, cond.Operator, cond.Amount)
	case domain.ConditionFieldCustomerKind:
		return compareScalar(string(cart.CustomerKind), cond.Operator, cond.Values)
	case domain.ConditionFieldActorRole:
		return compareScalar(string(cart.ActorRole), cond.Operator, cond.Values)
	case domain.ConditionFieldProductCategory:
		touched := false
		for _, v := range cond.Values {
			if cart.HasCategory(v) {
				touched = true
				break
			}
		}
		switch cond.Operator {
		case domain.OperatorEQ, domain.OperatorIn:
			return touched
		case domain.OperatorNEQ, domain.OperatorNotIn:
			return !touched
		}
	}
	return false
}

func compareNumeric(value int64, op domain.ConditionOperator, target int64) bool {
	switch op {
	case domain.OperatorGTE:
		return value >= target
	case domain.OperatorGT:
		return value > target
	case domain.OperatorLTE:
		return value <= target
	case domain.OperatorLT:
		return value < target
	case domain.OperatorEQ:
		return value == target
	case domain.OperatorNEQ:
		return value != target
	default:
		return false
	}
}

func compareScalar(value string, op domain.ConditionOperator, targets []string) bool {
	contains := false
	for _, t := range targets {
		if t == value {
			contains = true
			break
		}
	}
	switch op {
	case domain.OperatorEQ:
		return len(targets) > 0 && targets[0] == value
	case domain.OperatorNEQ:
		return len(targets) > 0 && targets[0] != value
	case domain.OperatorIn:
		return contains
	case domain.OperatorNotIn:
		return !contains
	default:
		return false
	}
}

// Discount применяет действия акции в порядке приоритета.
// Каждая скидка и их сумма ограничены диапазоном [0, subtotal].
func Discount(promo domain.Promotion, cart domain.CartContext) (int64, bool) {
	var (
		total        int64
		freeShipping bool
	)
	for _, action := range promo.Actions() {
		if action.Kind == domain.ActionFreeShipping {
			freeShipping = true
			continue
		}
		total = addCapped(total, clamp(actionValue(action, cart), cart.SubtotalMinor), cart.SubtotalMinor)
	}
	return clamp(total, cart.SubtotalMinor), freeShipping
}

func actionValue(action domain.ActionRule, cart domain.CartContext) int64 {
	switch action.Kind {
	case domain.ActionDiscountPercentage:
		return domain.PercentOfMinor(cart.SubtotalMinor, action.Percent)
	case domain.ActionDiscountFixed:
		return action.AmountMinor
	case domain.ActionBuyXGetY:
		return buyXGetYValue(action, cart.Lines)
	case domain.ActionBundleDiscount:
		return bundleValue(action, cart.Lines)
	default:
		return 0
	}
}

// buyXGetYValue: на каждые BuyQty+GetQty подходящих единиц самые дешёвые GetQty бесплатны.
func buyXGetYValue(action domain.ActionRule, lines []domain.CartLine) int64 {
	if action.BuyQty <= 0 || action.GetQty <= 0 {
		return 0
	}

	matched := matchLines(lines, action.ProductRefs)
	var units int64
	for _, line := range matched {
		units += int64(line.Qty)
	}
	group := int64(action.BuyQty) + int64(action.GetQty)
	free := units / group * int64(action.GetQty)
	if free == 0 {
		return 0
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].UnitPriceMinor < matched[j].UnitPriceMinor
	})
	var value int64
	for _, line := range matched {
		if free == 0 {
			break
		}
		take := int64(line.Qty)
		if take > free {
			take = free
		}
		value = saturatingAdd(value, saturatingMul(take, line.UnitPriceMinor))
		free -= take
	}
	return value
}

// bundleValue: комплект — по одной единице каждого товара из ProductRefs.
// Скидка Percent от стоимости комплектов либо AmountMinor за комплект, не больше их стоимости.
func bundleValue(action domain.ActionRule, lines []domain.CartLine) int64 {
	if len(action.ProductRefs) == 0 {
		return 0
	}

	bundles := int64(-1)
	var unitSum int64
	for _, ref := range action.ProductRefs {
		var qty int64
		cheapest := int64(-1)
		for _, line := range lines {
			if line.ProductRef != ref {
				continue
			}
			qty += int64(line.Qty)
			if cheapest < 0 || line.UnitPriceMinor < cheapest {
				cheapest = line.UnitPriceMinor
			}
		}
		if qty == 0 {
			return 0
		}
		if bundles < 0 || qty < bundles {
			bundles = qty
		}
		unitSum = saturatingAdd(unitSum, cheapest)
	}

	matchedValue := saturatingMul(bundles, unitSum)
	var value int64
	if action.Percent > 0 {
		value = domain.PercentOfMinor(matchedValue, action.Percent)
	} else {
		value = saturatingMul(bundles, action.AmountMinor)
	}
	if value > matchedValue {
		value = matchedValue
	}
	return value
}

func matchLines(lines []domain.CartLine, refs []string) []domain.CartLine {
	if len(refs) == 0 {
		return append([]domain.CartLine(nil), lines...)
	}
	allowed := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		allowed[ref] = struct{}{}
	}
	out := make([]domain.CartLine, 0, len(lines))
	for _, line := range lines {
		if _, ok := allowed[line.ProductRef]; ok {
			out = append(out, line)
		}
	}
	return out
}

// saturatingAdd и saturatingMul упираются в MaxInt64: результат всё равно
// ограничивается subtotal через clamp.
func saturatingAdd(a, b int64) int64 {
	if sum, ok := domain.AddMinor(a, b); ok {
		return sum
	}
	if a < 0 || b < 0 {
		return 0
	}
	return math.MaxInt64
}

func saturatingMul(a, b int64) int64 {
	if product, ok := domain.MulMinor(a, b); ok {
		return product
	}
	if a < 0 || b < 0 {
		return 0
	}
	return math.MaxInt64
}

// addCapped складывает неотрицательные скидки, не выходя за upper.
func addCapped(total, value, upper int64) int64 {
	if value > upper-total {
		return upper
	}
	return total + value
}

func clamp(value, upper int64) int64 {
	if value < 0 || upper <= 0 {
		return 0
	}
	if value > upper {
		return upper
	}
	return value
}
