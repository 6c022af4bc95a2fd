package omsv1

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
)

func TestGeneratedMessageHelpers(t *testing.T) {
	actor := &Actor{Id: "mgr-1", Role: "manager"}
	order := &Order{
		Id:         "order-1",
		Number:     "ORD-2026-000001",
		CustomerId: "cust-1",
		Status:     "draft",
		Currency:   "VND",
		Items:      []*OrderItem{{Id: "item-1", ProductRef: "kb-1", Qty: 1, UnitPriceMinor: 90000}},
		Pricing:    &Pricing{SubtotalMinor: 90000, TotalMinor: 90000},
		Shipment:   &Shipment{TrackingCode: "TRK", Carrier: "ghn"},
		ActorTrail: []*ActorTrailEntry{{To: "draft", ActorId: "mgr-1", Role: "manager"}},
		Version:    1,
	}
	ret := &Return{Id: "ret-1", OrderId: "order-1", Lines: []*ReturnLine{{ItemId: "item-1", Qty: 1, Restock: true}}}
	messages := []proto.Message{
		actor,
		&OrderItemInput{ProductRef: "kb-1", Qty: 1, UnitPriceMinor: 90000},
		&ShipmentInput{TrackingCode: "TRK", Carrier: "ghn", ShippingFeeMinor: 25000},
		order,
		ret,
		&CreateOrderRequest{Actor: actor, CustomerId: "cust-1", Items: []*OrderItemInput{{ProductRef: "kb-1", Qty: 1}}, PromotionIds: []string{"promo-1"}},
		&CreateOrderResponse{Order: order},
		&RequestTransitionRequest{Actor: actor, OrderId: "order-1", To: "confirmed", Shipment: &ShipmentInput{}},
		&RequestTransitionResponse{Order: order},
		&RepriceOrderRequest{Actor: actor, OrderId: "order-1", PromotionIds: []string{"promo-1"}},
		&RepriceOrderResponse{Order: order},
		&CreateReturnRequest{Actor: actor, OrderId: "order-1", Lines: []*ReturnLineInput{{ItemId: "item-1", Qty: 1}}},
		&CreateReturnResponse{Return: ret},
		&GetOrderRequest{OrderId: "order-1"},
		&GetOrderResponse{Order: order},
		&ListOrdersRequest{CustomerId: "cust-1", Status: "draft", Limit: 10},
		&ListOrdersResponse{Orders: []*Order{order}},
		&ListReturnsRequest{OrderId: "order-1"},
		&ListReturnsResponse{Returns: []*Return{ret}},
	}

	assert.Len(t, messages, File_proto_oms_v1_order_service_proto.Messages().Len()-6, "every top-level request, response and aggregate is listed")
	for _, msg := range messages {
		t.Run(reflect.TypeOf(msg).Elem().Name(), func(t *testing.T) {
			exerciseGeneratedMessage(t, proto.Clone(msg))
		})
	}
}

func TestFileDescriptor(t *testing.T) {
	fd := File_proto_oms_v1_order_service_proto
	require.NotNil(t, fd)
	assert.Equal(t, "proto/oms/v1/order_service.proto", fd.Path())
	assert.Equal(t, protoreflect.FullName("oms.v1"), fd.Package())
	assert.Equal(t, OrderService_ServiceDesc.Metadata, fd.Path())

	require.Equal(t, 1, fd.Services().Len())
	svc := fd.Services().Get(0)
	assert.Equal(t, protoreflect.FullName(OrderService_ServiceDesc.ServiceName), svc.FullName())
	require.Equal(t, len(rpcs()), svc.Methods().Len())
	for _, call := range rpcs() {
		m := svc.Methods().ByName(protoreflect.Name(call.name))
		require.NotNil(t, m, call.name)
		assert.Equal(t, "/"+string(svc.FullName())+"/"+call.name, call.method)
		assert.Equal(t, protoreflect.FullName("oms.v1."+call.name+"Request"), m.Input().FullName())
		assert.Equal(t, protoreflect.FullName("oms.v1."+call.name+"Response"), m.Output().FullName())
	}

	raw, path := (&Order{}).Descriptor()
	require.NotEmpty(t, raw)
	require.Len(t, path, 1)
	assert.Equal(t, protoreflect.FullName("oms.v1.Order"), fd.Messages().Get(path[0]).FullName())

	fields := (&Order{}).ProtoReflect().Descriptor().Fields()
	assert.Equal(t, "customerId", fields.ByName("customer_id").JSONName())
	assert.Equal(t, protoreflect.Int64Kind, fields.ByName("version").Kind())
	assert.True(t, fields.ByName("items").IsList())
}

func TestWireRoundTrip(t *testing.T) {
	req := &RequestTransitionRequest{
		Actor:           &Actor{Id: "wh-1", Role: "warehouse"},
		OrderId:         "o-1",
		To:              "shipped",
		ExpectedVersion: 3,
		Shipment:        &ShipmentInput{TrackingCode: "TRK", Carrier: "ghn", ShippingFeeMinor: 25000},
	}
	data, err := proto.Marshal(req)
	require.NoError(t, err)

	var got RequestTransitionRequest
	require.NoError(t, proto.Unmarshal(data, &got))
	assert.True(t, proto.Equal(req, &got), got.String())
	assert.Equal(t, int64(25000), got.GetShipment().GetShippingFeeMinor())
}

func TestProtoJSON(t *testing.T) {
	req := &RequestTransitionRequest{}
	body := []byte(`{"order_id":"o-1","to":"shipped","expected_version":3,"shipment":{"tracking_code":"TRK","carrier":"ghn","shipping_fee_minor":25000}}`)
	require.NoError(t, protojson.Unmarshal(body, req))
	assert.Equal(t, "o-1", req.GetOrderId())
	assert.Equal(t, int64(3), req.GetExpectedVersion())
	assert.Equal(t, int64(25000), req.GetShipment().GetShippingFeeMinor())

	list := &ListOrdersRequest{}
	require.NoError(t, protojson.Unmarshal([]byte(`{"customerId":"c-1","status":"confirmed","limit":20}`), list))
	assert.Equal(t, "c-1", list.GetCustomerId())
	assert.Equal(t, int32(20), list.GetLimit())

	assert.Error(t, protojson.Unmarshal([]byte(`{"order_id":"o-1","unknown":1}`), req))
	assert.Error(t, protojson.Unmarshal([]byte("{"), req))

	out, err := protojson.MarshalOptions{UseProtoNames: true}.Marshal(&Pricing{SubtotalMinor: 300000, FreeShipping: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"subtotal_minor"`)
	assert.Contains(t, string(out), `"300000"`)
}

func TestNilGettersReturnZeroValues(t *testing.T) {
	var order *Order
	var get *GetOrderResponse
	var create *CreateOrderRequest
	var list *ListOrdersRequest

	assert.Empty(t, order.GetId())
	assert.Zero(t, order.GetVersion())
	assert.Zero(t, order.GetPricing().GetTotalMinor())
	assert.Nil(t, get.GetOrder())
	assert.Empty(t, create.GetActor().GetRole())
	assert.Empty(t, list.GetCustomerId())
	assert.Zero(t, list.GetLimit())
}

func exerciseGeneratedMessage(t *testing.T, msg proto.Message) {
	t.Helper()

	v := reflect.ValueOf(msg)

	callNoArg(t, v, "String")
	callNoArg(t, v, "ProtoReflect")
	callNoArg(t, v, "Descriptor")
	callGetterMethods(t, v)
	callNoArg(t, v, "Reset")
	assert.Zero(t, proto.Size(msg), "Reset clears every field")

	nilReceiver := reflect.Zero(v.Type())
	callNoArg(t, nilReceiver, "ProtoReflect")
	callNoArg(t, nilReceiver, "Descriptor")
	callGetterMethods(t, nilReceiver)
}

func callGetterMethods(t *testing.T, v reflect.Value) {
	t.Helper()

	typ := v.Type()
	for i := 0; i < typ.NumMethod(); i++ {
		m := typ.Method(i)
		if !strings.HasPrefix(m.Name, "Get") {
			continue
		}
		if m.Type.NumIn() != 1 || m.Type.NumOut() != 1 {
			continue
		}
		callNoArg(t, v, m.Name)
	}
}

func callNoArg(t *testing.T, v reflect.Value, method string) {
	t.Helper()

	mv := v.MethodByName(method)
	if !mv.IsValid() || mv.Type().NumIn() != 0 {
		return
	}
	require.NotPanics(t, func() { _ = mv.Call(nil) }, method)
}
