package domain

import "time"

// ReservationAction — что просим у склада: удержать остаток или снять удержание.
type ReservationAction string

const (
	// ReservationReserve — удержание под подтверждённый заказ.
	ReservationReserve ReservationAction = "reserve"
	// ReservationRelease — снятие удержания при отмене подтверждённого заказа.
	ReservationRelease ReservationAction = "release"
)

// Reservation описывает резерв одной позиции заказа на складе.
type Reservation struct {
	// ID совпадает с ID позиции: повтор команды склад сводит по нему.
	ID          string
	OrderID     string
	ProductRef  string
	Qty         int32
	Action      ReservationAction
	RequestedAt time.Time
}

// Validate проверяет, корректно ли заполнены ключевые поля резервирования.
func (r *Reservation) Validate() []error {
	var errs []error

	if r.OrderID == "" {
		errs = append(errs, ErrOrderIDRequired)
	}
	if r.ProductRef == "" {
		errs = append(errs, ErrReservationProductRequired)
	}
	if r.Qty <= 0 {
		errs = append(errs, ErrReservationQtyInvalid)
	}
	if r.Action != ReservationReserve && r.Action != ReservationRelease {
		errs = append(errs, ErrReservationActionInvalid)
	}

	return errs
}

// ReservationsFor строит по резерву на каждую позицию заказа.
func ReservationsFor(order Order, action ReservationAction, at time.Time) []Reservation {
	out := make([]Reservation, 0, len(order.Items))
	for _, item := range order.Items {
		out = append(out, Reservation{
			ID:          item.ID,
			OrderID:     order.ID,
			ProductRef:  item.ProductRef,
			Qty:         item.Qty,
			Action:      action,
			RequestedAt: at,
		})
	}
	return out
}
