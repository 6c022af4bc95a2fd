package omsv1

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type recordingConn struct {
	calls map[string]int
	reply func(method string, out any) error
}

func (c *recordingConn) Invoke(_ context.Context, method string, _ any, reply any, opts ...grpc.CallOption) error {
	if c.calls == nil {
		c.calls = map[string]int{}
	}
	c.calls[method]++
	if len(opts) == 0 {
		return errors.New("call options are missing")
	}
	if _, ok := opts[0].(grpc.StaticMethodCallOption); !ok {
		return errors.New("first call option must mark the method as static")
	}
	return c.reply(method, reply)
}

func (c *recordingConn) NewStream(context.Context, *grpc.StreamDesc, string, ...grpc.CallOption) (grpc.ClientStream, error) {
	return nil, errors.New("streams are not used by oms.v1")
}

// echoServer отвечает заказом с ID из запроса.
type echoServer struct {
	UnimplementedOrderServiceServer
}

func (echoServer) CreateOrder(_ context.Context, req *CreateOrderRequest) (*CreateOrderResponse, error) {
	return &CreateOrderResponse{Order: &Order{Id: "order-" + req.GetCustomerId(), CustomerId: req.GetCustomerId()}}, nil
}

func (echoServer) RequestTransition(_ context.Context, req *RequestTransitionRequest) (*RequestTransitionResponse, error) {
	return &RequestTransitionResponse{Order: &Order{Id: req.GetOrderId(), Status: req.To}}, nil
}

func (echoServer) RepriceOrder(_ context.Context, req *RepriceOrderRequest) (*RepriceOrderResponse, error) {
	return &RepriceOrderResponse{Order: &Order{Id: req.GetOrderId()}}, nil
}

func (echoServer) CreateReturn(_ context.Context, req *CreateReturnRequest) (*CreateReturnResponse, error) {
	return &CreateReturnResponse{Return: &Return{Id: "ret-1", OrderId: req.GetOrderId()}}, nil
}

func (echoServer) GetOrder(_ context.Context, req *GetOrderRequest) (*GetOrderResponse, error) {
	return &GetOrderResponse{Order: &Order{Id: req.GetOrderId()}}, nil
}

func (echoServer) ListOrders(_ context.Context, req *ListOrdersRequest) (*ListOrdersResponse, error) {
	return &ListOrdersResponse{Orders: []*Order{{Id: "order-1", CustomerId: req.GetCustomerId()}}}, nil
}

func (echoServer) ListReturns(_ context.Context, req *ListReturnsRequest) (*ListReturnsResponse, error) {
	return &ListReturnsResponse{Returns: []*Return{{Id: "ret-1", OrderId: req.GetOrderId()}}}, nil
}

type unaryHandler func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error)

// rpc описывает один метод: вызов клиента, серверный handler и заполнение запроса.
type rpc struct {
	name    string
	method  string
	client  func(context.Context, OrderServiceClient) error
	server  func(context.Context, OrderServiceServer) error
	handler unaryHandler
	decode  func(any) bool
}

func rpcs() []rpc {
	return []rpc{
		{
			name:   "CreateOrder",
			method: OrderService_CreateOrder_FullMethodName,
			client: func(ctx context.Context, c OrderServiceClient) error {
				_, err := c.CreateOrder(ctx, &CreateOrderRequest{})
				return err
			},
			server: func(ctx context.Context, s OrderServiceServer) error {
				_, err := s.CreateOrder(ctx, &CreateOrderRequest{})
				return err
			},
			handler: _OrderService_CreateOrder_Handler,
			decode: func(v any) bool {
				req, ok := v.(*CreateOrderRequest)
				if ok {
					req.CustomerId, req.Currency = "cust-1", "VND"
				}
				return ok
			},
		},
		{
			name:   "RequestTransition",
			method: OrderService_RequestTransition_FullMethodName,
			client: func(ctx context.Context, c OrderServiceClient) error {
				_, err := c.RequestTransition(ctx, &RequestTransitionRequest{})
				return err
			},
			server: func(ctx context.Context, s OrderServiceServer) error {
				_, err := s.RequestTransition(ctx, &RequestTransitionRequest{})
				return err
			},
			handler: _OrderService_RequestTransition_Handler,
			decode: func(v any) bool {
				req, ok := v.(*RequestTransitionRequest)
				if ok {
					req.OrderId, req.To = "order-1", "confirmed"
				}
				return ok
			},
		},
		{
			name:   "RepriceOrder",
			method: OrderService_RepriceOrder_FullMethodName,
			client: func(ctx context.Context, c OrderServiceClient) error {
				_, err := c.RepriceOrder(ctx, &RepriceOrderRequest{})
				return err
			},
			server: func(ctx context.Context, s OrderServiceServer) error {
				_, err := s.RepriceOrder(ctx, &RepriceOrderRequest{})
				return err
			},
			handler: _OrderService_RepriceOrder_Handler,
			decode: func(v any) bool {
				req, ok := v.(*RepriceOrderRequest)
				if ok {
					req.OrderId = "order-1"
				}
				return ok
			},
		},
		{
			name:   "CreateReturn",
			method: OrderService_CreateReturn_FullMethodName,
			client: func(ctx context.Context, c OrderServiceClient) error {
				_, err := c.CreateReturn(ctx, &CreateReturnRequest{})
				return err
			},
			server: func(ctx context.Context, s OrderServiceServer) error {
				_, err := s.CreateReturn(ctx, &CreateReturnRequest{})
				return err
			},
			handler: _OrderService_CreateReturn_Handler,
			decode: func(v any) bool {
				req, ok := v.(*CreateReturnRequest)
				if ok {
					req.OrderId, req.Reason = "order-1", "damaged"
				}
				return ok
			},
		},
		{
			name:   "GetOrder",
			method: OrderService_GetOrder_FullMethodName,
			client: func(ctx context.Context, c OrderServiceClient) error {
				_, err := c.GetOrder(ctx, &GetOrderRequest{})
				return err
			},
			server: func(ctx context.Context, s OrderServiceServer) error {
				_, err := s.GetOrder(ctx, &GetOrderRequest{})
				return err
			},
			handler: _OrderService_GetOrder_Handler,
			decode: func(v any) bool {
				req, ok := v.(*GetOrderRequest)
				if ok {
					req.OrderId = "order-1"
				}
				return ok
			},
		},
		{
			name:   "ListOrders",
			method: OrderService_ListOrders_FullMethodName,
			client: func(ctx context.Context, c OrderServiceClient) error {
				_, err := c.ListOrders(ctx, &ListOrdersRequest{})
				return err
			},
			server: func(ctx context.Context, s OrderServiceServer) error {
				_, err := s.ListOrders(ctx, &ListOrdersRequest{})
				return err
			},
			handler: _OrderService_ListOrders_Handler,
			decode: func(v any) bool {
				req, ok := v.(*ListOrdersRequest)
				if ok {
					req.CustomerId, req.Limit = "cust-1", 10
				}
				return ok
			},
		},
		{
			name:   "ListReturns",
			method: OrderService_ListReturns_FullMethodName,
			client: func(ctx context.Context, c OrderServiceClient) error {
				_, err := c.ListReturns(ctx, &ListReturnsRequest{})
				return err
			},
			server: func(ctx context.Context, s OrderServiceServer) error {
				_, err := s.ListReturns(ctx, &ListReturnsRequest{})
				return err
			},
			handler: _OrderService_ListReturns_Handler,
			decode: func(v any) bool {
				req, ok := v.(*ListReturnsRequest)
				if ok {
					req.OrderId = "order-1"
				}
				return ok
			},
		},
	}
}

func TestClientInvokesEveryMethod(t *testing.T) {
	conn := &recordingConn{reply: func(string, any) error { return nil }}
	client := NewOrderServiceClient(conn)

	for _, call := range rpcs() {
		require.NoError(t, call.client(context.Background(), client), call.name)
		assert.Equal(t, 1, conn.calls[call.method], call.name)
	}
}

func TestClientReturnsDecodedReply(t *testing.T) {
	conn := &recordingConn{reply: func(_ string, out any) error {
		switch reply := out.(type) {
		case *RequestTransitionResponse:
			reply.Order = &Order{Id: "order-1", Status: "confirmed"}
		case *ListOrdersResponse:
			reply.Orders = []*Order{{Id: "order-1"}, {Id: "order-2"}}
		}
		return nil
	}}
	client := NewOrderServiceClient(conn)
	ctx := context.Background()

	moved, err := client.RequestTransition(ctx, &RequestTransitionRequest{OrderId: "order-1", To: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", moved.GetOrder().GetStatus())

	page, err := client.ListOrders(ctx, &ListOrdersRequest{CustomerId: "cust-1"})
	require.NoError(t, err)
	assert.Len(t, page.GetOrders(), 2)
}

func TestClientPropagatesStatusErrors(t *testing.T) {
	conn := &recordingConn{reply: func(string, any) error { return status.Error(codes.Unavailable, "broker down") }}
	client := NewOrderServiceClient(conn)

	for _, call := range rpcs() {
		err := call.client(context.Background(), client)
		assert.Equal(t, codes.Unavailable, status.Code(err), call.name)
	}
}

func TestUnimplementedServerRejectsEveryMethod(t *testing.T) {
	var srv UnimplementedOrderServiceServer
	for _, call := range rpcs() {
		err := call.server(context.Background(), srv)
		assert.Equal(t, codes.Unimplemented, status.Code(err), call.name)
	}
	srv.mustEmbedUnimplementedOrderServiceServer()
}

func TestServerHandlers(t *testing.T) {
	for _, call := range rpcs() {
		t.Run(call.name, func(t *testing.T) {
			ctx := context.Background()
			decode := func(v any) error {
				if !call.decode(v) {
					return status.Errorf(codes.Internal, "unexpected request %T", v)
				}
				return nil
			}

			_, err := call.handler(echoServer{}, ctx, func(any) error { return errors.New("decode failed") }, nil)
			require.Error(t, err)

			resp, err := call.handler(echoServer{}, ctx, decode, nil)
			require.NoError(t, err)
			require.NotNil(t, resp)

			var seen string
			intercept := func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
				seen = info.FullMethod
				return next(ctx, req)
			}
			resp, err = call.handler(echoServer{}, ctx, decode, intercept)
			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, call.method, seen)
		})
	}
}

func TestServiceDescriptorMatchesMethodTable(t *testing.T) {
	srv := grpc.NewServer()
	RegisterOrderServiceServer(srv, echoServer{})

	assert.Equal(t, "oms.v1.OrderService", OrderService_ServiceDesc.ServiceName)
	assert.NotEmpty(t, OrderService_ServiceDesc.Metadata)
	assert.Len(t, OrderService_ServiceDesc.Methods, len(rpcs()))

	info, ok := srv.GetServiceInfo()["oms.v1.OrderService"]
	require.True(t, ok)
	names := make([]string, 0, len(info.Methods))
	for _, m := range info.Methods {
		names = append(names, m.Name)
	}
	assert.Contains(t, names, "ListOrders")
}
