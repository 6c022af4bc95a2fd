package domain

import (
	"errors"
	"fmt"
)

var (
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerRequired = errors.New("customer_id is required")
	// Ошибка неизвестного типа клиента.
	ErrCustomerKindInvalid = errors.New("customer kind is invalid")
	// Ошибка отсутствующего кода валюты.
	ErrCurrencyRequired = errors.New("currency is required")
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отсутствующей ссылки на товар.
	ErrItemProductRequired = errors.New("item product_ref is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrItemQtyInvalid = errors.New("item qty must be greater than zero")
	// Ошибка, если цена позиции отрицательная.
	ErrItemPriceInvalid = errors.New("item price must be non-negative")
	// Ошибка отрицательной базовой стоимости доставки.
	ErrShippingFeeNegative = errors.New("shipping fee must be non-negative")
	// Ошибка несоответствия цены заказа и сумм позиций.
	ErrAmountMismatch = errors.New("order pricing does not match items")
	// ErrAmountOverflow — сумма не помещается в int64 минорных единиц.
	ErrAmountOverflow = errors.New("amount overflows int64 minor units")
	// Ошибка неизвестного статуса в фильтре выборки.
	ErrOrderStatusInvalid = errors.New("order status is invalid")
	// Ошибка отсутствующего идентификатора заказа.
	ErrOrderIDRequired = errors.New("order_id is required")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists возвращается при повторном создании заказа с тем же ID.
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrOrderVersionConflict сигнализирует о конфликте версий при сохранении.
	ErrOrderVersionConflict = errors.New("order version conflict")
	// ErrActorTrailRewrite — попытка сохранить журнал короче уже записанного.
	ErrActorTrailRewrite = errors.New("actor trail is append-only")

	ErrPromotionIDRequired  = errors.New("promotion id is required")
	ErrPromotionTypeInvalid = errors.New("promotion type is invalid")
	ErrPromotionRuleInvalid = errors.New("promotion rule is invalid")
	// ErrPromotionNotFound возвращается, если промо-акции нет в каталоге.
	ErrPromotionNotFound = errors.New("promotion not found")
	// ErrPromotionUsageExhausted — лимит применений исчерпан к моменту инкремента.
	ErrPromotionUsageExhausted = errors.New("promotion usage limit reached")

	// ErrReturnNotFound возвращается, если возврат не найден.
	ErrReturnNotFound = errors.New("return not found")
	// ErrReturnAlreadyExists возвращается при повторном создании возврата с тем же ID.
	ErrReturnAlreadyExists = errors.New("return already exists")

	// Ошибки переходов и возвратов; типизированные ошибки ниже разворачиваются в них.
	ErrInvalidTransition    = errors.New("invalid transition")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidPayload       = errors.New("invalid payload")
	ErrStaleOrder           = errors.New("stale order")
	ErrPromotionNotEligible = errors.New("promotion not eligible")
	ErrReturnPrecondition   = errors.New("return precondition failed")

	// ErrIdempotencyKeyRequired — пустой ключ идемпотентности.
	ErrIdempotencyKeyRequired = errors.New("idempotency key is required")
	// ErrIdempotencyRequestHashRequired — пустой хеш запроса.
	ErrIdempotencyRequestHashRequired = errors.New("idempotency request hash is required")
	// ErrIdempotencyKeyAlreadyExists — ключ уже зарегистрирован.
	ErrIdempotencyKeyAlreadyExists = errors.New("idempotency key already exists")
	// ErrIdempotencyKeyNotFound — ключ не найден.
	ErrIdempotencyKeyNotFound = errors.New("idempotency key not found")
	// ErrIdempotencyHashMismatch — тот же ключ пришёл с другим телом запроса.
	ErrIdempotencyHashMismatch = errors.New("idempotency key reused with different request")
	// ErrIdempotencyInProgress — запрос с тем же ключом ещё выполняется.
	ErrIdempotencyInProgress = errors.New("request with the same idempotency key is already processing")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
	// ErrRestockFailed — склад не принял запрос на возврат товара.
	ErrRestockFailed = errors.New("restock failed")
	// ErrReservationFailed — склад не принял резерв или его снятие.
	ErrReservationFailed = errors.New("reservation failed")

	ErrReservationProductRequired = errors.New("reservation product_ref is required")
	ErrReservationQtyInvalid      = errors.New("reservation qty must be greater than zero")
	ErrReservationActionInvalid   = errors.New("reservation action is invalid")
)

// IsVersionConflict проверяет, является ли ошибка конфликтом версий.
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrOrderVersionConflict)
}

// IsIdempotencyConflict проверяет конфликт по ключу идемпотентности.
func IsIdempotencyConflict(err error) bool {
	return errors.Is(err, ErrIdempotencyKeyAlreadyExists) || errors.Is(err, ErrIdempotencyHashMismatch)
}

// Edge — ребро графа статусов.
type Edge struct {
	From OrderStatus
	To   OrderStatus
}

func (e Edge) String() string {
	return string(e.From) + "->" + string(e.To)
}

// InvalidTransitionError — ребра нет в таблице переходов.
type InvalidTransitionError struct {
	OrderID string
	Edge    Edge
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s for order %s", e.Edge, e.OrderID)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }

// ForbiddenError — роль не допущена к ребру (или к операции).
type ForbiddenError struct {
	OrderID string
	Edge    Edge
	Action  string
	Role    Role
}

func (e *ForbiddenError) Error() string {
	action := e.Action
	if action == "" {
		action = e.Edge.String()
	}
	return fmt.Sprintf("role %q is not permitted to perform %s on order %s", e.Role, action, e.OrderID)
}

func (e *ForbiddenError) Unwrap() error { return ErrForbidden }

// InvalidPayloadError — не хватает данных для перехода.
type InvalidPayloadError struct {
	OrderID string
	Edge    Edge
	Field   string
	Reason  string
}

func (e *InvalidPayloadError) Error() string {
	return fmt.Sprintf("invalid payload for %s on order %s: %s %s", e.Edge, e.OrderID, e.Field, e.Reason)
}

func (e *InvalidPayloadError) Unwrap() error { return ErrInvalidPayload }

// StaleOrderError — версия вызывающего отстала от сохранённой.
type StaleOrderError struct {
	OrderID         string
	ExpectedVersion int64
	ActualVersion   int64
}

func (e *StaleOrderError) Error() string {
	if e.ActualVersion < 0 {
		return fmt.Sprintf("order %s changed concurrently (expected version %d)", e.OrderID, e.ExpectedVersion)
	}
	return fmt.Sprintf("order %s is stale: expected version %d, actual %d", e.OrderID, e.ExpectedVersion, e.ActualVersion)
}

func (e *StaleOrderError) Unwrap() error { return ErrStaleOrder }

// PromotionNotEligibleError — промо-акция из явного набора не проходит проверку.
type PromotionNotEligibleError struct {
	OrderID     string
	PromotionID string
	Reason      string
}

func (e *PromotionNotEligibleError) Error() string {
	msg := fmt.Sprintf("promotion %s is not eligible", e.PromotionID)
	if e.OrderID != "" {
		msg += " for order " + e.OrderID
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *PromotionNotEligibleError) Unwrap() error { return ErrPromotionNotEligible }

// ReturnPreconditionError — неверный статус заказа или превышение количества.
type ReturnPreconditionError struct {
	OrderID string
	Status  OrderStatus
	ItemID  string
	Reason  string
}

func (e *ReturnPreconditionError) Error() string {
	if e.ItemID != "" {
		return fmt.Sprintf("return rejected for order %s item %s: %s", e.OrderID, e.ItemID, e.Reason)
	}
	return fmt.Sprintf("return rejected for order %s in status %s: %s", e.OrderID, e.Status, e.Reason)
}

func (e *ReturnPreconditionError) Unwrap() error { return ErrReturnPrecondition }
