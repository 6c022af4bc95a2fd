package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

func TestMockService(t *testing.T) {
	mock := NewMockService()
	ctx := context.Background()

	intent := domain.RestockIntent{ReturnID: "ret-1", OrderID: "o-1", ProductRef: "sku-1", Qty: 2}
	if err := mock.Restock(ctx, intent); err != nil {
		t.Fatalf("unexpected restock error: %v", err)
	}

	mock.FailFor["sku-2"] = errors.New("bin full")
	if err := mock.Restock(ctx, domain.RestockIntent{ProductRef: "sku-2", Qty: 1}); err == nil {
		t.Fatal("expected per-product failure")
	}

	mock.Err = errors.New("inventory down")
	if err := mock.Restock(ctx, intent); err == nil {
		t.Fatal("expected global failure")
	}

	if mock.Calls() != 3 {
		t.Fatalf("unexpected call counter: %d", mock.Calls())
	}
	accepted := mock.Accepted()
	if len(accepted) != 1 || accepted[0] != intent {
		t.Fatalf("unexpected accepted intents: %+v", accepted)
	}
}

func TestMockServiceCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMockService().Restock(ctx, domain.RestockIntent{ProductRef: "sku-1"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMockServiceReservations(t *testing.T) {
	mock := NewMockService()
	ctx := context.Background()

	reserve := domain.Reservation{ID: "item-1", OrderID: "o-1", ProductRef: "sku-1", Qty: 2, Action: domain.ReservationReserve}
	release := reserve
	release.Action = domain.ReservationRelease
	if err := mock.Reserve(ctx, reserve); err != nil {
		t.Fatalf("unexpected reserve error: %v", err)
	}
	if err := mock.Release(ctx, release); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}

	mock.FailFor["sku-2"] = errors.New("out of stock")
	if err := mock.Reserve(ctx, domain.Reservation{OrderID: "o-1", ProductRef: "sku-2", Qty: 1}); err == nil {
		t.Fatal("expected per-product failure")
	}

	got := mock.Reservations()
	if len(got) != 2 || got[0] != reserve || got[1] != release {
		t.Fatalf("unexpected reservations: %+v", got)
	}
	if mock.Calls() != 3 {
		t.Fatalf("unexpected call counter: %d", mock.Calls())
	}
	if len(mock.Accepted()) != 0 {
		t.Fatal("reservations must not be reported as restocks")
	}
}
