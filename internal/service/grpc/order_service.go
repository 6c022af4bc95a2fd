// Package grpcsvc реализует oms.v1.OrderService поверх контроллера жизненного цикла.
package grpcsvc

import (
	"context"
	"encoding/json"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/proto"

	"github.com/vladislavdragonenkov/oms/internal/domain"
	"github.com/vladislavdragonenkov/oms/internal/service/idempotency"
	"github.com/vladislavdragonenkov/oms/internal/service/lifecycle"
	omsv1 "github.com/vladislavdragonenkov/oms/proto/oms/v1"
)

// Lifecycle — операции контроллера, которые публикует сервис.
type Lifecycle interface {
	CreateOrder(ctx context.Context, cmd lifecycle.CreateOrderCommand) (domain.Order, error)
	RequestTransition(ctx context.Context, cmd lifecycle.TransitionCommand) (domain.Order, error)
	RepriceOrder(ctx context.Context, cmd lifecycle.RepriceCommand) (domain.Order, error)
	CreateReturn(ctx context.Context, cmd lifecycle.ReturnCommand) (domain.Return, error)
	GetOrder(ctx context.Context, id string) (domain.Order, error)
	ListReturns(ctx context.Context, orderID string) ([]domain.Return, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
}

var _ Lifecycle = (*lifecycle.Controller)(nil)

// OrderService реализует gRPC API заказов.
type OrderService struct {
	omsv1.UnimplementedOrderServiceServer

	lifecycle Lifecycle
	guard     *idempotency.Guard
	logger    *log.Entry
}

const idempotencyKeyHeader = "idempotency-key"

// NewOrderService конструирует сервис. При nil guard ключи идемпотентности игнорируются.
func NewOrderService(controller Lifecycle, guard *idempotency.Guard, logger *log.Entry) *OrderService {
	if logger == nil {
		logger = log.New().WithField("component", "order-service")
	}
	return &OrderService{
		lifecycle: controller,
		guard:     guard,
		logger:    logger,
	}
}

// CreateOrder создаёт черновик заказа. Требует idempotency-key, если включена защита от повторов.
func (s *OrderService) CreateOrder(ctx context.Context, req *omsv1.CreateOrderRequest) (*omsv1.CreateOrderResponse, error) {
	if req == nil {
		return nil, invalidArgument("request is required")
	}
	return withIdempotency(s, ctx, omsv1.OrderService_CreateOrder_FullMethodName, req, true,
		func() *omsv1.CreateOrderResponse { return &omsv1.CreateOrderResponse{} },
		func(ctx context.Context) (*omsv1.CreateOrderResponse, error) {
			actor, err := toDomainActor(req.GetActor())
			if err != nil {
				return nil, err
			}
			order, err := s.lifecycle.CreateOrder(ctx, toCreateOrderCommand(req, actor))
			if err != nil {
				return nil, s.fail("create_order", req.GetCustomerId(), err)
			}
			return &omsv1.CreateOrderResponse{Order: toProtoOrder(order)}, nil
		})
}

// RequestTransition переводит заказ в новый статус.
func (s *OrderService) RequestTransition(ctx context.Context, req *omsv1.RequestTransitionRequest) (*omsv1.RequestTransitionResponse, error) {
	if req == nil {
		return nil, invalidArgument("request is required")
	}
	return withIdempotency(s, ctx, omsv1.OrderService_RequestTransition_FullMethodName, req, false,
		func() *omsv1.RequestTransitionResponse { return &omsv1.RequestTransitionResponse{} },
		func(ctx context.Context) (*omsv1.RequestTransitionResponse, error) {
			actor, err := toDomainActor(req.GetActor())
			if err != nil {
				return nil, err
			}
			cmd, err := toTransitionCommand(req, actor)
			if err != nil {
				return nil, err
			}
			order, err := s.lifecycle.RequestTransition(ctx, cmd)
			if err != nil {
				return nil, s.fail("request_transition", req.GetOrderId(), err)
			}
			return &omsv1.RequestTransitionResponse{Order: toProtoOrder(order)}, nil
		})
}

// RepriceOrder пересчитывает цену черновика.
func (s *OrderService) RepriceOrder(ctx context.Context, req *omsv1.RepriceOrderRequest) (*omsv1.RepriceOrderResponse, error) {
	if req == nil {
		return nil, invalidArgument("request is required")
	}
	return withIdempotency(s, ctx, omsv1.OrderService_RepriceOrder_FullMethodName, req, false,
		func() *omsv1.RepriceOrderResponse { return &omsv1.RepriceOrderResponse{} },
		func(ctx context.Context) (*omsv1.RepriceOrderResponse, error) {
			actor, err := toDomainActor(req.GetActor())
			if err != nil {
				return nil, err
			}
			order, err := s.lifecycle.RepriceOrder(ctx, lifecycle.RepriceCommand{
				OrderID:         req.GetOrderId(),
				PromotionIDs:    req.PromotionIds,
				Actor:           actor,
				ExpectedVersion: req.ExpectedVersion,
			})
			if err != nil {
				return nil, s.fail("reprice_order", req.GetOrderId(), err)
			}
			return &omsv1.RepriceOrderResponse{Order: toProtoOrder(order)}, nil
		})
}

// CreateReturn оформляет возврат. Требует idempotency-key, если включена защита от повторов.
func (s *OrderService) CreateReturn(ctx context.Context, req *omsv1.CreateReturnRequest) (*omsv1.CreateReturnResponse, error) {
	if req == nil {
		return nil, invalidArgument("request is required")
	}
	return withIdempotency(s, ctx, omsv1.OrderService_CreateReturn_FullMethodName, req, true,
		func() *omsv1.CreateReturnResponse { return &omsv1.CreateReturnResponse{} },
		func(ctx context.Context) (*omsv1.CreateReturnResponse, error) {
			actor, err := toDomainActor(req.GetActor())
			if err != nil {
				return nil, err
			}
			ret, err := s.lifecycle.CreateReturn(ctx, toReturnCommand(req, actor))
			if err != nil {
				return nil, s.fail("create_return", req.GetOrderId(), err)
			}
			return &omsv1.CreateReturnResponse{Return: toProtoReturn(ret)}, nil
		})
}

// GetOrder возвращает заказ с журналом действий.
func (s *OrderService) GetOrder(ctx context.Context, req *omsv1.GetOrderRequest) (*omsv1.GetOrderResponse, error) {
	if req.GetOrderId() == "" {
		return nil, invalidArgument("order_id is required")
	}
	order, err := s.lifecycle.GetOrder(ctx, req.GetOrderId())
	if err != nil {
		return nil, s.fail("get_order", req.GetOrderId(), err)
	}
	return &omsv1.GetOrderResponse{Order: toProtoOrder(order)}, nil
}

// ListReturns возвращает возвраты заказа.
func (s *OrderService) ListReturns(ctx context.Context, req *omsv1.ListReturnsRequest) (*omsv1.ListReturnsResponse, error) {
	if req.GetOrderId() == "" {
		return nil, invalidArgument("order_id is required")
	}
	list, err := s.lifecycle.ListReturns(ctx, req.GetOrderId())
	if err != nil {
		return nil, s.fail("list_returns", req.GetOrderId(), err)
	}
	out := make([]*omsv1.Return, 0, len(list))
	for _, ret := range list {
		out = append(out, toProtoReturn(ret))
	}
	return &omsv1.ListReturnsResponse{Returns: out}, nil
}

// ListOrders возвращает заказы клиента, опционально в одном статусе.
func (s *OrderService) ListOrders(ctx context.Context, req *omsv1.ListOrdersRequest) (*omsv1.ListOrdersResponse, error) {
	if strings.TrimSpace(req.GetCustomerId()) == "" {
		return nil, invalidArgument("customer_id is required")
	}
	if req.GetLimit() < 0 {
		return nil, invalidArgument("limit must be non-negative")
	}
	list, err := s.lifecycle.ListOrders(ctx, domain.OrderFilter{
		CustomerID: req.GetCustomerId(),
		Status:     domain.OrderStatus(strings.ToLower(strings.TrimSpace(req.GetStatus()))),
		Limit:      int(req.GetLimit()),
	})
	if err != nil {
		return nil, s.fail("list_orders", req.GetCustomerId(), err)
	}
	out := make([]*omsv1.Order, 0, len(list))
	for _, order := range list {
		out = append(out, toProtoOrder(order))
	}
	return &omsv1.ListOrdersResponse{Orders: out}, nil
}

// fail логирует ошибку контроллера и превращает её в статус.
// Отказы домена пишутся на уровне Info, сбои ввода-вывода на уровне Error.
func (s *OrderService) fail(operation, subject string, err error) error {
	st := toStatus(err)
	entry := s.logger.WithError(err).WithFields(log.Fields{
		"operation": operation,
		"subject":   subject,
		"code":      st.Code().String(),
	})
	if st.Code() == codes.Internal {
		entry.Error("order operation failed")
	} else {
		entry.Info("order operation rejected")
	}
	return st.Err()
}

// idempotencyErrorPayload — сохранённый ответ об ошибке для повтора.
type idempotencyErrorPayload struct {
	Code     int32             `json:"code"`
	Message  string            `json:"message"`
	Reason   string            `json:"reason,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// hashMarshal даёт стабильные байты запроса для хеша идемпотентности.
var hashMarshal = proto.MarshalOptions{Deterministic: true}

func withIdempotency[T proto.Message](
	s *OrderService,
	ctx context.Context,
	method string,
	req proto.Message,
	required bool,
	newResp func() T,
	handler func(context.Context) (T, error),
) (T, error) {
	var zero T

	if s.guard == nil {
		return handler(ctx)
	}

	key := readIdempotencyKey(ctx)
	if key == "" {
		if required {
			return zero, invalidArgument("idempotency-key metadata is required")
		}
		return handler(ctx)
	}

	body, err := hashMarshal.Marshal(req)
	if err != nil {
		s.logger.WithError(err).WithField("method", method).Warn("failed to build idempotency request hash")
		return zero, status.Error(codes.Internal, "failed to initialize idempotency request")
	}

	var resp T
	out, err := s.guard.Do(ctx, key, idempotency.RequestHash(method, body), func(ctx context.Context) (idempotency.Outcome, error) {
		r, runErr := handler(ctx)
		if runErr != nil {
			return encodeFailure(runErr), runErr
		}
		resp = r
		data, marshalErr := proto.Marshal(r)
		if marshalErr != nil {
			s.logger.WithError(marshalErr).WithField("idempotency_key", key).Warn("failed to encode idempotent response")
		}
		return idempotency.Outcome{Body: data, Code: int(codes.OK)}, nil
	})
	if err != nil {
		if _, ok := status.FromError(err); ok {
			return zero, err
		}
		return zero, s.fail("idempotency", key, err)
	}
	if !out.Replayed {
		return resp, nil
	}

	if out.Failed {
		return zero, decodeFailure(out)
	}
	if len(out.Body) == 0 {
		return zero, status.Error(codes.Internal, "idempotency cache is empty")
	}
	cached := newResp()
	if err := proto.Unmarshal(out.Body, cached); err != nil {
		s.logger.WithError(err).WithField("idempotency_key", key).Warn("failed to decode cached idempotency response")
		return zero, status.Error(codes.Internal, "failed to decode cached idempotency response")
	}
	return cached, nil
}

func encodeFailure(runErr error) idempotency.Outcome {
	st := status.Convert(runErr)
	code := st.Code()
	if code == codes.OK {
		code = codes.Internal
	}
	payload := idempotencyErrorPayload{
		Code:    int32(code), //nolint:gosec // codes.Code is a bounded enum value.
		Message: st.Message(),
	}
	if info := errorInfo(st); info != nil {
		payload.Reason = info.GetReason()
		payload.Metadata = info.GetMetadata()
	}
	data, err := json.Marshal(payload)
	if err != nil {
		data = nil
	}
	return idempotency.Outcome{Body: data, Code: int(code), Failed: true}
}

func decodeFailure(out idempotency.Outcome) error {
	var payload idempotencyErrorPayload
	if len(out.Body) > 0 && json.Unmarshal(out.Body, &payload) == nil {
		code, ok := grpcCode(int(payload.Code))
		if !ok || code == codes.OK {
			code = codes.Internal
		}
		if payload.Message == "" {
			payload.Message = "previous request with the same idempotency key failed"
		}
		st := status.New(code, payload.Message)
		if payload.Reason != "" {
			if withInfo, err := st.WithDetails(errorInfoFrom(payload)); err == nil {
				st = withInfo
			}
		}
		return st.Err()
	}

	if code, ok := grpcCode(out.Code); ok && code != codes.OK {
		return status.Error(code, "previous request with the same idempotency key failed")
	}
	return status.Error(codes.Internal, "previous request with the same idempotency key failed")
}

func grpcCode(value int) (codes.Code, bool) {
	if value < int(codes.OK) || value > int(codes.Unauthenticated) {
		return codes.Internal, false
	}
	return codes.Code(uint32(value)), true //nolint:gosec // range checked above.
}

func readIdempotencyKey(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		values := md.Get(idempotencyKeyHeader)
		if len(values) > 0 && strings.TrimSpace(values[0]) != "" {
			return strings.TrimSpace(values[0])
		}
	}

	if md, ok := metadata.FromOutgoingContext(ctx); ok {
		values := md.Get(idempotencyKeyHeader)
		if len(values) > 0 && strings.TrimSpace(values[0]) != "" {
			return strings.TrimSpace(values[0])
		}
	}

	return ""
}
