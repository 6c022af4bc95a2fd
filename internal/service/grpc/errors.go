package grpcsvc

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/service/statemachine"
)

// errorDomain — значение ErrorInfo.Domain во всех ответах сервиса.
const errorDomain = "oms.v1"

// Стабильные коды причин в ErrorInfo.Reason.
const (
	reasonInvalidTransition     = "INVALID_TRANSITION"
	reasonForbidden             = "FORBIDDEN"
	reasonInvalidPayload        = "INVALID_PAYLOAD"
	reasonStaleOrder            = "STALE_ORDER"
	reasonPromotionNotEligible  = "PROMOTION_NOT_ELIGIBLE"
	reasonReturnPrecondition    = "RETURN_PRECONDITION"
	reasonNotFound              = "NOT_FOUND"
	reasonInvalidArgument       = "INVALID_ARGUMENT"
	reasonIdempotencyInProgress = "IDEMPOTENCY_IN_PROGRESS"
	reasonIdempotencyMismatch   = "IDEMPOTENCY_KEY_REUSED"
	reasonInternal              = "INTERNAL"
)

// toStatus переводит ошибку контроллера в gRPC-статус с ErrorInfo.
func toStatus(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if st, ok := status.FromError(err); ok {
		return st
	}

	code, reason, meta := classify(err)
	msg := err.Error()
	if code == codes.Internal {
		msg = "internal error"
	}
	st := status.New(code, msg)
	withInfo, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   errorDomain,
		Metadata: meta,
	})
	if detailErr != nil {
		return st
	}
	return withInfo
}

func classify(err error) (codes.Code, string, map[string]string) {
	var (
		invalidTransition *domain.InvalidTransitionError
		forbidden         *domain.ForbiddenError
		invalidPayload    *domain.InvalidPayloadError
		stale             *domain.StaleOrderError
		notEligible       *domain.PromotionNotEligibleError
		precondition      *domain.ReturnPreconditionError
	)

	switch {
	case errors.As(err, &invalidTransition):
		return codes.FailedPrecondition, reasonInvalidTransition, map[string]string{
			"order_id": invalidTransition.OrderID,
			"from":     string(invalidTransition.Edge.From),
			"to":       string(invalidTransition.Edge.To),
			"allowed":  allowedTargets(invalidTransition.Edge.From),
		}
	case errors.As(err, &forbidden):
		meta := map[string]string{"role": string(forbidden.Role)}
		if forbidden.OrderID != "" {
			meta["order_id"] = forbidden.OrderID
		}
		if forbidden.Action != "" {
			meta["action"] = forbidden.Action
		} else {
			meta["from"] = string(forbidden.Edge.From)
			meta["to"] = string(forbidden.Edge.To)
		}
		return codes.PermissionDenied, reasonForbidden, meta
	case errors.As(err, &invalidPayload):
		return codes.InvalidArgument, reasonInvalidPayload, map[string]string{
			"order_id": invalidPayload.OrderID,
			"field":    invalidPayload.Field,
		}
	case errors.As(err, &stale):
		return codes.Aborted, reasonStaleOrder, map[string]string{
			"order_id":         stale.OrderID,
			"expected_version": strconv.FormatInt(stale.ExpectedVersion, 10),
			"actual_version":   strconv.FormatInt(stale.ActualVersion, 10),
		}
	case errors.As(err, &notEligible):
		return codes.FailedPrecondition, reasonPromotionNotEligible, map[string]string{
			"promotion_id": notEligible.PromotionID,
			"reason":       notEligible.Reason,
		}
	case errors.As(err, &precondition):
		meta := map[string]string{"order_id": precondition.OrderID, "status": string(precondition.Status)}
		if precondition.ItemID != "" {
			meta["item_id"] = precondition.ItemID
		}
		return codes.FailedPrecondition, reasonReturnPrecondition, meta
	case errors.Is(err, domain.ErrInvalidPayload):
		return codes.InvalidArgument, reasonInvalidPayload, nil
	case errors.Is(err, domain.ErrOrderNotFound), errors.Is(err, domain.ErrReturnNotFound), errors.Is(err, domain.ErrPromotionNotFound):
		return codes.NotFound, reasonNotFound, nil
	case errors.Is(err, domain.ErrOrderIDRequired), errors.Is(err, domain.ErrIdempotencyKeyRequired),
		errors.Is(err, domain.ErrCustomerRequired), errors.Is(err, domain.ErrOrderStatusInvalid):
		return codes.InvalidArgument, reasonInvalidArgument, nil
	case errors.Is(err, domain.ErrIdempotencyInProgress):
		return codes.Aborted, reasonIdempotencyInProgress, nil
	case errors.Is(err, domain.ErrIdempotencyHashMismatch):
		return codes.AlreadyExists, reasonIdempotencyMismatch, nil
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded, reasonInternal, nil
	case errors.Is(err, context.Canceled):
		return codes.Canceled, reasonInternal, nil
	default:
		return codes.Internal, reasonInternal, nil
	}
}

// allowedTargets перечисляет через запятую статусы, куда можно перейти из from.
func allowedTargets(from domain.OrderStatus) string {
	next := statemachine.Allowed(from)
	out := make([]string, len(next))
	for i, to := range next {
		out[i] = string(to)
	}
	return strings.Join(out, ",")
}

// invalidArgument — ошибка разбора запроса до вызова контроллера.
func invalidArgument(msg string) error {
	st := status.New(codes.InvalidArgument, msg)
	if withInfo, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reasonInvalidArgument, Domain: errorDomain}); err == nil {
		st = withInfo
	}
	return st.Err()
}

// errorInfo достаёт ErrorInfo из статуса, если он есть.
func errorInfo(st *status.Status) *errdetails.ErrorInfo {
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			return info
		}
	}
	return nil
}

func errorInfoFrom(payload idempotencyErrorPayload) *errdetails.ErrorInfo {
	return &errdetails.ErrorInfo{Reason: payload.Reason, Domain: errorDomain, Metadata: payload.Metadata}
}
