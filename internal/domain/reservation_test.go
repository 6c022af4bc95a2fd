package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservation_Validate(t *testing.T) {
	tests := []struct {
		name        string
		reservation Reservation
		want        []error
	}{
		{
			name:        "valid reserve",
			reservation: Reservation{ID: "item-1", OrderID: "order-1", ProductRef: "sku-1", Qty: 5, Action: ReservationReserve},
		},
		{
			name:        "valid release",
			reservation: Reservation{ID: "item-1", OrderID: "order-1", ProductRef: "sku-1", Qty: 1, Action: ReservationRelease},
		},
		{
			name:        "missing order ID",
			reservation: Reservation{ProductRef: "sku-1", Qty: 5, Action: ReservationReserve},
			want:        []error{ErrOrderIDRequired},
		},
		{
			name:        "missing product",
			reservation: Reservation{OrderID: "order-1", Qty: 5, Action: ReservationReserve},
			want:        []error{ErrReservationProductRequired},
		},
		{
			name:        "negative quantity",
			reservation: Reservation{OrderID: "order-1", ProductRef: "sku-1", Qty: -1, Action: ReservationReserve},
			want:        []error{ErrReservationQtyInvalid},
		},
		{
			name:        "unknown action",
			reservation: Reservation{OrderID: "order-1", ProductRef: "sku-1", Qty: 1, Action: "hold"},
			want:        []error{ErrReservationActionInvalid},
		},
		{
			name:        "everything missing",
			reservation: Reservation{},
			want:        []error{ErrOrderIDRequired, ErrReservationProductRequired, ErrReservationQtyInvalid, ErrReservationActionInvalid},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reservation.Validate())
		})
	}
}

func TestReservationsFor(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	order := Order{
		ID: "order-1",
		Items: []OrderItem{
			{ID: "item-1", ProductRef: "sku-1", Qty: 2, UnitPriceMinor: 100},
			{ID: "item-2", ProductRef: "sku-2", Qty: 1, UnitPriceMinor: 50},
		},
	}

	got := ReservationsFor(order, ReservationReserve, at)
	require.Len(t, got, 2)
	assert.Equal(t, Reservation{ID: "item-1", OrderID: "order-1", ProductRef: "sku-1", Qty: 2, Action: ReservationReserve, RequestedAt: at}, got[0])
	assert.Equal(t, "item-2", got[1].ID)
	for _, r := range got {
		assert.Empty(t, r.Validate())
	}

	assert.Empty(t, ReservationsFor(Order{ID: "order-2"}, ReservationRelease, at))
}
