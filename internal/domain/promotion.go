package domain

import (
	"sort"
	"time"
)

// PromotionType — вид промо-акции.
type PromotionType string

const (
	PromotionTypePercentageDiscount  PromotionType = "percentage_discount"
	PromotionTypeFixedAmountDiscount PromotionType = "fixed_amount_discount"
	PromotionTypeFreeShipping        PromotionType = "free_shipping"
	PromotionTypeBuyXGetY            PromotionType = "buy_x_get_y"
	PromotionTypeBundleDiscount      PromotionType = "bundle_discount"
)

// Valid проверяет тип промо-акции.
func (t PromotionType) Valid() bool {
	switch t {
	case PromotionTypePercentageDiscount, PromotionTypeFixedAmountDiscount, PromotionTypeFreeShipping,
		PromotionTypeBuyXGetY, PromotionTypeBundleDiscount:
		return true
	default:
		return false
	}
}

// ConditionField — поле корзины, которое проверяет условие.
type ConditionField string

const (
	ConditionFieldCartTotal       ConditionField = "cart_total"
	ConditionFieldItemCount       ConditionField = "item_count"
	ConditionFieldCustomerKind    ConditionField = "customer_kind"
	ConditionFieldProductCategory ConditionField = "product_category"
	ConditionFieldActorRole       ConditionField = "actor_role"
)

// Numeric сообщает, сравнивается ли поле как число.
func (f ConditionField) Numeric() bool {
	return f == ConditionFieldCartTotal || f == ConditionFieldItemCount
}

// Valid проверяет поле условия.
func (f ConditionField) Valid() bool {
	switch f {
	case ConditionFieldCartTotal, ConditionFieldItemCount, ConditionFieldCustomerKind,
		ConditionFieldProductCategory, ConditionFieldActorRole:
		return true
	default:
		return false
	}
}

// ConditionOperator — оператор сравнения.
type ConditionOperator string

const (
	OperatorGTE   ConditionOperator = "gte"
	OperatorGT    ConditionOperator = "gt"
	OperatorLTE   ConditionOperator = "lte"
	OperatorLT    ConditionOperator = "lt"
	OperatorEQ    ConditionOperator = "eq"
	OperatorNEQ   ConditionOperator = "neq"
	OperatorIn    ConditionOperator = "in"
	OperatorNotIn ConditionOperator = "not_in"
)

// Valid проверяет оператор.
func (op ConditionOperator) Valid() bool {
	switch op {
	case OperatorGTE, OperatorGT, OperatorLTE, OperatorLT, OperatorEQ, OperatorNEQ, OperatorIn, OperatorNotIn:
		return true
	default:
		return false
	}
}

// ActionKind — вид действия промо-акции.
type ActionKind string

const (
	ActionDiscountPercentage ActionKind = "discount_percentage"
	ActionDiscountFixed      ActionKind = "discount_fixed"
	ActionFreeShipping       ActionKind = "free_shipping"
	ActionBuyXGetY           ActionKind = "buy_x_get_y"
	ActionBundleDiscount     ActionKind = "bundle_discount"
)

// Valid проверяет вид действия.
func (k ActionKind) Valid() bool {
	switch k {
	case ActionDiscountPercentage, ActionDiscountFixed, ActionFreeShipping, ActionBuyXGetY, ActionBundleDiscount:
		return true
	default:
		return false
	}
}

// Rule — правило промо-акции: либо условие, либо действие.
// Других реализаций нет: интерфейс закрыт неэкспортируемым методом.
type Rule interface {
	RulePriority() int
	isRule()
}

// ConditionRule проверяет поле корзины.
// Для числовых полей используется Amount, для множественных — Values.
type ConditionRule struct {
	Field    ConditionField
	Operator ConditionOperator
	Amount   int64
	Values   []string
	Priority int
}

func (c ConditionRule) RulePriority() int { return c.Priority }
func (ConditionRule) isRule()             {}

// ActionRule описывает, как считается скидка.
//
//   - discount_percentage: Percent (0..100) от subtotal, с округлением вниз;
//   - discount_fixed: AmountMinor;
//   - free_shipping: без параметров;
//   - buy_x_get_y: BuyQty + GetQty, ProductRefs ограничивает подходящие позиции (пусто = все);
//   - bundle_discount: ProductRefs — состав комплекта, скидка Percent или AmountMinor за комплект.
type ActionRule struct {
	Kind        ActionKind
	Percent     int64
	AmountMinor int64
	BuyQty      int32
	GetQty      int32
	ProductRefs []string
	Priority    int
}

func (a ActionRule) RulePriority() int { return a.Priority }
func (ActionRule) isRule()             {}

// Promotion — промо-акция из каталога.
type Promotion struct {
	ID   string
	Name string
	Type PromotionType
	// Value используется, если у акции нет ни одного ActionRule: действие выводится из Type.
	Value      int64
	Rules      []Rule
	Active     bool
	StartAt    *time.Time
	EndAt      *time.Time
	UsageLimit *int64
	UsageCount int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InWindow проверяет окно действия, границы включительно.
func (p Promotion) InWindow(now time.Time) bool {
	if p.StartAt != nil && now.Before(*p.StartAt) {
		return false
	}
	if p.EndAt != nil && now.After(*p.EndAt) {
		return false
	}
	return true
}

// UnderUsageLimit сообщает, остались ли применения.
func (p Promotion) UnderUsageLimit() bool {
	return p.UsageLimit == nil || p.UsageCount < *p.UsageLimit
}

// Conditions возвращает условия в порядке приоритета.
func (p Promotion) Conditions() []ConditionRule {
	var out []ConditionRule
	for _, rule := range p.sortedRules() {
		if c, ok := rule.(ConditionRule); ok {
			out = append(out, c)
		}
	}
	return out
}

// Actions возвращает действия в порядке приоритета (больший приоритет раньше).
// Без явных действий подставляется действие по умолчанию для типа акции.
func (p Promotion) Actions() []ActionRule {
	var out []ActionRule
	for _, rule := range p.sortedRules() {
		if a, ok := rule.(ActionRule); ok {
			out = append(out, a)
		}
	}
	if len(out) > 0 {
		return out
	}
	switch p.Type {
	case PromotionTypePercentageDiscount:
		return []ActionRule{{Kind: ActionDiscountPercentage, Percent: p.Value}}
	case PromotionTypeFixedAmountDiscount:
		return []ActionRule{{Kind: ActionDiscountFixed, AmountMinor: p.Value}}
	case PromotionTypeFreeShipping:
		return []ActionRule{{Kind: ActionFreeShipping}}
	default:
		return nil
	}
}

func (p Promotion) sortedRules() []Rule {
	rules := append([]Rule(nil), p.Rules...)
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].RulePriority() > rules[j].RulePriority()
	})
	return rules
}

// Validate проверяет форму правил. Правила с неизвестными полями не сохраняются.
func (p Promotion) Validate() error {
	if p.ID == "" {
		return ErrPromotionIDRequired
	}
	if !p.Type.Valid() {
		return ErrPromotionTypeInvalid
	}
	if p.UsageLimit != nil && *p.UsageLimit < 0 {
		return ErrPromotionRuleInvalid
	}
	for _, rule := range p.Rules {
		switch r := rule.(type) {
		case ConditionRule:
			if !r.Field.Valid() || !r.Operator.Valid() {
				return ErrPromotionRuleInvalid
			}
			if r.Field.Numeric() && (r.Operator == OperatorIn || r.Operator == OperatorNotIn) {
				return ErrPromotionRuleInvalid
			}
		case ActionRule:
			if !r.Kind.Valid() {
				return ErrPromotionRuleInvalid
			}
			if r.Percent < 0 || r.Percent > 100 || r.AmountMinor < 0 {
				return ErrPromotionRuleInvalid
			}
			if r.Kind == ActionBuyXGetY && (r.BuyQty <= 0 || r.GetQty <= 0) {
				return ErrPromotionRuleInvalid
			}
			if r.Kind == ActionBundleDiscount && len(r.ProductRefs) == 0 {
				return ErrPromotionRuleInvalid
			}
		default:
			return ErrPromotionRuleInvalid
		}
	}
	return nil
}
