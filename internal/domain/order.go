package domain

import (
	"strings"
	"time"
)

// OrderStatus описывает жизненный цикл заказа в OMS.
type OrderStatus string

const (
	// OrderStatusDraft — заказ создан продавцом, цена зафиксирована, но заказ ещё не подтверждён.
	OrderStatusDraft OrderStatus = "draft"
	// OrderStatusConfirmed — заказ подтверждён менеджером, промо-акции учтены в счётчиках.
	OrderStatusConfirmed OrderStatus = "confirmed"
	// OrderStatusPreparing — склад собирает заказ.
	OrderStatusPreparing OrderStatus = "preparing"
	// OrderStatusShipped — заказ передан перевозчику.
	OrderStatusShipped OrderStatus = "shipped"
	// OrderStatusDelivered — заказ доставлен клиенту (терминальный статус для прямых переходов).
	OrderStatusDelivered OrderStatus = "delivered"
	// OrderStatusCancelled — заказ отменён (терминальный статус).
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid проверяет, что статус относится к поддерживаемым значениям.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// Terminal сообщает, что из статуса нет прямых переходов.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// ParseOrderStatus нормализует строковое представление статуса.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	status := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	return status, status.Valid()
}

// CustomerKind — тип клиента, участвует в условиях промо-акций.
type CustomerKind string

const (
	CustomerKindRetail    CustomerKind = "retail"
	CustomerKindWholesale CustomerKind = "wholesale"
)

// Valid проверяет тип клиента.
func (k CustomerKind) Valid() bool {
	return k == CustomerKindRetail || k == CustomerKindWholesale
}

// OrderItem представляет одну позицию заказа.
// Название, SKU, категория и цена снимаются с каталога при создании и больше не перечитываются.
type OrderItem struct {
	// ID позиции нужен для ссылок из возвратов и аудита.
	ID             string
	ProductRef     string
	CategoryRef    string
	NameSnapshot   string
	SKUSnapshot    string
	Qty            int32
	UnitPriceMinor int64
}

// LineTotalMinor возвращает стоимость позиции или ErrAmountOverflow.
func (i OrderItem) LineTotalMinor() (int64, error) {
	total, ok := MulMinor(int64(i.Qty), i.UnitPriceMinor)
	if !ok {
		return 0, ErrAmountOverflow
	}
	return total, nil
}

// Pricing — замороженный результат ценообразования заказа.
type Pricing struct {
	SubtotalMinor    int64
	DiscountMinor    int64
	ShippingFeeMinor int64
	TotalMinor       int64
	FreeShipping     bool
}

// Shipment хранит данные отгрузки, заполняется при переходе preparing → shipped.
type Shipment struct {
	TrackingCode     string
	Carrier          string
	ShippingFeeMinor int64
	Notes            string
	ShippedAt        time.Time
}

// ActorTrailEntry — запись журнала действий над заказом. Журнал только дополняется.
type ActorTrailEntry struct {
	From     OrderStatus
	To       OrderStatus
	ActorID  string
	Role     Role
	Note     string
	Occurred time.Time
}

// Order агрегирует состояние заказа, его позиции и зафиксированную цену.
type Order struct {
	ID                   string
	Number               string
	CustomerID           string
	CustomerKind         CustomerKind
	Status               OrderStatus
	Currency             string
	Items                []OrderItem
	BaseShippingFeeMinor int64
	Pricing              Pricing
	AppliedPromotions    []string
	Shipment             *Shipment
	CancelReason         string
	ActorTrail           []ActorTrailEntry
	CreatedBy            string
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Item ищет позицию по идентификатору.
func (o *Order) Item(id string) (OrderItem, bool) {
	for _, item := range o.Items {
		if item.ID == id {
			return item, true
		}
	}
	return OrderItem{}, false
}

// ItemsSubtotalMinor пересчитывает сумму позиций.
// Переполнение строки или накопленной суммы возвращает ErrAmountOverflow.
func (o *Order) ItemsSubtotalMinor() (int64, error) {
	var total int64
	for _, item := range o.Items {
		line, err := item.LineTotalMinor()
		if err != nil {
			return 0, err
		}
		next, ok := AddMinor(total, line)
		if !ok {
			return 0, ErrAmountOverflow
		}
		total = next
	}
	return total, nil
}

// Clone возвращает глубокую копию заказа, чтобы переходы не разделяли срезы с исходным снимком.
func (o Order) Clone() Order {
	out := o
	out.Items = append([]OrderItem(nil), o.Items...)
	out.AppliedPromotions = append([]string(nil), o.AppliedPromotions...)
	out.ActorTrail = append([]ActorTrailEntry(nil), o.ActorTrail...)
	if o.Shipment != nil {
		shipment := *o.Shipment
		out.Shipment = &shipment
	}
	return out
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if strings.TrimSpace(o.CustomerID) == "" {
		errs = append(errs, ErrCustomerRequired)
	}
	if !o.CustomerKind.Valid() {
		errs = append(errs, ErrCustomerKindInvalid)
	}
	if strings.TrimSpace(o.Currency) == "" {
		errs = append(errs, ErrCurrencyRequired)
	}
	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}
	if o.BaseShippingFeeMinor < 0 {
		errs = append(errs, ErrShippingFeeNegative)
	}

	for _, item := range o.Items {
		if strings.TrimSpace(item.ProductRef) == "" {
			errs = append(errs, ErrItemProductRequired)
		}
		if item.Qty <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.UnitPriceMinor < 0 {
			errs = append(errs, ErrItemPriceInvalid)
		}
	}

	// Цену проверяем только у корректно заполненного заказа.
	if len(errs) > 0 {
		return errs
	}
	subtotal, err := o.ItemsSubtotalMinor()
	if err != nil {
		return append(errs, err)
	}

	// Цена должна воспроизводиться из позиций: subtotal - discount + shipping = total.
	p := o.Pricing
	total, ok := AddMinor(p.SubtotalMinor-p.DiscountMinor, p.ShippingFeeMinor)
	if p.SubtotalMinor != subtotal ||
		p.DiscountMinor < 0 || p.DiscountMinor > p.SubtotalMinor ||
		!ok || p.TotalMinor != total {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
