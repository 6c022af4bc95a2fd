package domain

// CartLine — позиция корзины, по которой считаются buy_x_get_y и комплекты.
type CartLine struct {
	ProductRef     string
	CategoryRef    string
	Qty            int32
	UnitPriceMinor int64
}

// CartContext — производная сводка позиций заказа для оценки промо-акций. Не хранится.
type CartContext struct {
	SubtotalMinor int64
	ItemCount     int64
	CustomerKind  CustomerKind
	ActorRole     Role
	CategoryIDs   []string
	Lines         []CartLine
}

// HasCategory сообщает, затронута ли категория корзиной.
func (c CartContext) HasCategory(id string) bool {
	for _, category := range c.CategoryIDs {
		if category == id {
			return true
		}
	}
	return false
}

// PricingResult — итог выбора промо-акций.
type PricingResult struct {
	SubtotalMinor       int64
	DiscountMinor       int64
	ShippingFeeMinor    int64
	TotalMinor          int64
	FreeShipping        bool
	AppliedPromotionIDs []string
}

// Pricing переводит результат в замороженную цену заказа.
func (r PricingResult) Pricing() Pricing {
	return Pricing{
		SubtotalMinor:    r.SubtotalMinor,
		DiscountMinor:    r.DiscountMinor,
		ShippingFeeMinor: r.ShippingFeeMinor,
		TotalMinor:       r.TotalMinor,
		FreeShipping:     r.FreeShipping,
	}
}
