package statemachine_test

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/service/statemachine"
)

func TestTransitionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	statusGen := gen.IntRange(0, len(allStatuses)-1)
	roleGen := gen.IntRange(0, len(allRoles)-1)

	properties.Property("result is decided by table, then matrix", prop.ForAll(
		func(fromIdx, toIdx, roleIdx int) bool {
			from, to, role := allStatuses[fromIdx], allStatuses[toIdx], allRoles[roleIdx]
			out, err := statemachine.Transition(request(orderIn(from), to, role, validPayload(to)))

			edge := domain.Edge{From: from, To: to}
			switch {
			case !statemachine.CanTransition(from, to):
				return errors.Is(err, domain.ErrInvalidTransition)
			case !statemachine.Permitted(edge, role):
				return errors.Is(err, domain.ErrForbidden)
			default:
				return err == nil && out.Order.Status == to && len(out.Order.ActorTrail) == 1
			}
		},
		statusGen, statusGen, roleGen,
	))

	properties.Property("confirm then cancel restores usage counters", prop.ForAll(
		func(promotions []string) bool {
			order := orderIn(domain.OrderStatusDraft)
			order.AppliedPromotions = promotions

			confirmed, err := statemachine.Transition(request(order, domain.OrderStatusConfirmed, domain.RoleManager, statemachine.Payload{}))
			if err != nil {
				return false
			}
			cancelled, err := statemachine.Transition(request(confirmed.Order, domain.OrderStatusCancelled, domain.RoleManager, validPayload(domain.OrderStatusCancelled)))
			if err != nil {
				return false
			}

			counts := map[string]int{}
			for _, d := range append(confirmed.Usage, cancelled.Usage...) {
				counts[d.PromotionID] += d.Delta
			}
			for _, c := range counts {
				if c != 0 {
					return false
				}
			}
			return len(confirmed.Usage) == len(promotions)
		},
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}
