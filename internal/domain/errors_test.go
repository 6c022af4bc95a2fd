package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/oms/internal/domain"
)

func TestConflictClassifiers(t *testing.T) {
	extra := errors.New("extra context")

	assert.True(t, domain.IsVersionConflict(domain.ErrOrderVersionConflict))
	assert.True(t, domain.IsVersionConflict(errors.Join(domain.ErrOrderVersionConflict, extra)))
	assert.False(t, domain.IsVersionConflict(domain.ErrOrderNotFound))
	assert.False(t, domain.IsVersionConflict(nil))

	assert.True(t, domain.IsIdempotencyConflict(domain.ErrIdempotencyKeyAlreadyExists))
	assert.True(t, domain.IsIdempotencyConflict(fmt.Errorf("reserve: %w", domain.ErrIdempotencyHashMismatch)))
	assert.False(t, domain.IsIdempotencyConflict(domain.ErrIdempotencyInProgress))
	assert.False(t, domain.IsIdempotencyConflict(nil))
}

func TestTypedErrors(t *testing.T) {
	confirm := domain.Edge{From: domain.OrderStatusDraft, To: domain.OrderStatusConfirmed}

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "invalid transition",
			err:      &domain.InvalidTransitionError{OrderID: "o-1", Edge: domain.Edge{From: domain.OrderStatusDelivered, To: domain.OrderStatusDraft}},
			sentinel: domain.ErrInvalidTransition,
			message:  "invalid transition delivered->draft for order o-1",
		},
		{
			name:     "forbidden edge",
			err:      &domain.ForbiddenError{OrderID: "o-7", Edge: confirm, Role: domain.RoleWarehouse},
			sentinel: domain.ErrForbidden,
			message:  `role "warehouse" is not permitted to perform draft->confirmed on order o-7`,
		},
		{
			name:     "forbidden action",
			err:      &domain.ForbiddenError{OrderID: "o-7", Action: "create_return", Role: domain.RoleSalesperson},
			sentinel: domain.ErrForbidden,
			message:  `role "salesperson" is not permitted to perform create_return on order o-7`,
		},
		{
			name:     "invalid payload",
			err:      &domain.InvalidPayloadError{OrderID: "o-1", Edge: confirm, Field: "reason", Reason: "is required"},
			sentinel: domain.ErrInvalidPayload,
			message:  "invalid payload for draft->confirmed on order o-1: reason is required",
		},
		{
			name:     "stale with known version",
			err:      &domain.StaleOrderError{OrderID: "o-1", ExpectedVersion: 1, ActualVersion: 2},
			sentinel: domain.ErrStaleOrder,
			message:  "order o-1 is stale: expected version 1, actual 2",
		},
		{
			name:     "stale after concurrent write",
			err:      &domain.StaleOrderError{OrderID: "o-1", ExpectedVersion: 3, ActualVersion: -1},
			sentinel: domain.ErrStaleOrder,
			message:  "order o-1 changed concurrently (expected version 3)",
		},
		{
			name:     "promotion",
			err:      &domain.PromotionNotEligibleError{OrderID: "o-2", PromotionID: "p-1", Reason: "outside window"},
			sentinel: domain.ErrPromotionNotEligible,
			message:  "promotion p-1 is not eligible for order o-2: outside window",
		},
		{
			name:     "promotion without order",
			err:      &domain.PromotionNotEligibleError{PromotionID: "p-1"},
			sentinel: domain.ErrPromotionNotEligible,
			message:  "promotion p-1 is not eligible",
		},
		{
			name:     "return status",
			err:      &domain.ReturnPreconditionError{OrderID: "o-1", Status: domain.OrderStatusDraft, Reason: "order is not delivered"},
			sentinel: domain.ErrReturnPrecondition,
			message:  "return rejected for order o-1 in status draft: order is not delivered",
		},
		{
			name:     "return item",
			err:      &domain.ReturnPreconditionError{OrderID: "o-1", ItemID: "item-2", Reason: "qty exceeds remaining"},
			sentinel: domain.ErrReturnPrecondition,
			message:  "return rejected for order o-1 item item-2: qty exceeds remaining",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.EqualError(t, tc.err, tc.message)
			require.ErrorIs(t, fmt.Errorf("controller: %w", tc.err), tc.sentinel)
		})
	}
}

func TestForbiddenErrorIsRecoverable(t *testing.T) {
	err := fmt.Errorf("transition: %w", &domain.ForbiddenError{
		OrderID: "o-7",
		Edge:    domain.Edge{From: domain.OrderStatusDraft, To: domain.OrderStatusConfirmed},
		Role:    domain.RoleWarehouse,
	})

	var forbidden *domain.ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Equal(t, "draft->confirmed", forbidden.Edge.String())
	assert.Equal(t, domain.RoleWarehouse, forbidden.Role)
}
