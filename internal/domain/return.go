package domain

import "time"

// ReturnReason — причина возврата.
type ReturnReason string

const (
	ReturnReasonDamaged             ReturnReason = "damaged"
	ReturnReasonWrongItem           ReturnReason = "wrong_item"
	ReturnReasonCustomerChangedMind ReturnReason = "customer_changed_mind"
	ReturnReasonQualityIssue        ReturnReason = "quality_issue"
	ReturnReasonOther               ReturnReason = "other"
)

// Valid проверяет причину возврата.
func (r ReturnReason) Valid() bool {
	switch r {
	case ReturnReasonDamaged, ReturnReasonWrongItem, ReturnReasonCustomerChangedMind,
		ReturnReasonQualityIssue, ReturnReasonOther:
		return true
	default:
		return false
	}
}

// ItemCondition — состояние возвращённого товара.
type ItemCondition string

const (
	ItemConditionNew     ItemCondition = "new"
	ItemConditionUsed    ItemCondition = "used"
	ItemConditionDamaged ItemCondition = "damaged"
)

// Valid проверяет состояние товара.
func (c ItemCondition) Valid() bool {
	return c == ItemConditionNew || c == ItemConditionUsed || c == ItemConditionDamaged
}

// LineDisposition — решение по одной возвращаемой позиции.
type LineDisposition struct {
	ItemID     string
	ProductRef string
	Qty        int32
	Condition  ItemCondition
	Restock    bool
}

// Return — возврат по заказу. После создания не меняется,
// кроме предупреждений о неудачном возврате на склад.
type Return struct {
	ID              string
	Number          string
	OrderID         string
	Reason          ReturnReason
	Lines           []LineDisposition
	Notes           string
	ProcessedBy     string
	ProcessedRole   Role
	RestockWarnings []string
	CreatedAt       time.Time
}

// ReturnedQty суммирует количество, уже возвращённое по позиции.
func ReturnedQty(returns []Return, itemID string) int64 {
	var total int64
	for _, ret := range returns {
		for _, line := range ret.Lines {
			if line.ItemID == itemID {
				total += int64(line.Qty)
			}
		}
	}
	return total
}

// RestockIntent — запрос на возврат количества на склад.
type RestockIntent struct {
	ReturnID   string
	OrderID    string
	ProductRef string
	Qty        int32
}
