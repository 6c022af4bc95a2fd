// Package httpapi — HTTP/JSON шлюз к oms.v1.OrderService.
// Запросы разбираются в те же сообщения omsv1 и передаются gRPC-реализации в процессе,
// поэтому правила идемпотентности и коды ошибок совпадают с gRPC API.
package httpapi

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	omsv1 "github.com/vladislavdragonenkov/oms/proto/oms/v1"
)

// Заголовки запроса. Актор аутентифицирован на периметре и передаётся заголовками.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderActorID        = "X-Actor-ID"
	HeaderActorRole      = "X-Actor-Role"

	maxBodyBytes = 1 << 20
)

// Тела запросов и ответов в protojson с именами полей из .proto (snake_case).
// int64 в ответах приходят строками, на входе принимаются и числа, и строки.
var (
	requestJSON  = protojson.UnmarshalOptions{}
	responseJSON = protojson.MarshalOptions{UseProtoNames: true, EmitUnpopulated: true}
)

// Handler обслуживает REST-маршруты заказов.
type Handler struct {
	orders omsv1.OrderServiceServer
	logger *log.Entry
}

// NewHandler создаёт шлюз поверх реализации сервиса.
func NewHandler(orders omsv1.OrderServiceServer, logger *log.Entry) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http-gateway")
	}
	return &Handler{orders: orders, logger: logger}
}

// Router собирает chi-роутер с middleware.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1/orders", func(r chi.Router) {
		r.Post("/", h.createOrder)
		r.Get("/", h.listOrders)
		r.Route("/{orderID}", func(r chi.Router) {
			r.Get("/", h.getOrder)
			r.Post("/transitions", h.requestTransition)
			r.Post("/reprice", h.repriceOrder)
			r.Post("/returns", h.createReturn)
			r.Get("/returns", h.listReturns)
		})
	})
	return r
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req omsv1.CreateOrderRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.Actor = actorFrom(r, req.Actor)

	resp, err := h.orders.CreateOrder(gatewayContext(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, resp)
}

// listOrders: GET /v1/orders?customer_id=...&status=...&limit=...
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &omsv1.ListOrdersRequest{
		CustomerId: query.Get("customer_id"),
		Status:     query.Get("status"),
	}
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			writeEnvelope(w, r, http.StatusBadRequest, envelope{Code: "invalid_query", Message: "limit must be an integer"})
			return
		}
		req.Limit = int32(limit)
	}

	resp, err := h.orders.ListOrders(gatewayContext(r), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, resp)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	resp, err := h.orders.GetOrder(gatewayContext(r), &omsv1.GetOrderRequest{OrderId: chi.URLParam(r, "orderID")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, resp)
}

func (h *Handler) requestTransition(w http.ResponseWriter, r *http.Request) {
	var req omsv1.RequestTransitionRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.OrderId = chi.URLParam(r, "orderID")
	req.Actor = actorFrom(r, req.Actor)

	resp, err := h.orders.RequestTransition(gatewayContext(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, resp)
}

func (h *Handler) repriceOrder(w http.ResponseWriter, r *http.Request) {
	var req omsv1.RepriceOrderRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.OrderId = chi.URLParam(r, "orderID")
	req.Actor = actorFrom(r, req.Actor)

	resp, err := h.orders.RepriceOrder(gatewayContext(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, resp)
}

func (h *Handler) createReturn(w http.ResponseWriter, r *http.Request) {
	var req omsv1.CreateReturnRequest
	if !h.decode(w, r, &req) {
		return
	}
	req.OrderId = chi.URLParam(r, "orderID")
	req.Actor = actorFrom(r, req.Actor)

	resp, err := h.orders.CreateReturn(gatewayContext(r), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusCreated, resp)
}

func (h *Handler) listReturns(w http.ResponseWriter, r *http.Request) {
	resp, err := h.orders.ListReturns(gatewayContext(r), &omsv1.ListReturnsRequest{OrderId: chi.URLParam(r, "orderID")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeMessage(w, http.StatusOK, resp)
}

// decode читает JSON-тело. Пустое тело допустимо: поля придут из пути и заголовков.
// Неизвестные поля отклоняются.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst proto.Message) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeEnvelope(w, r, http.StatusBadRequest, envelope{Code: "invalid_json", Message: err.Error()})
		return false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return true
	}
	if err := requestJSON.Unmarshal(body, dst); err != nil {
		writeEnvelope(w, r, http.StatusBadRequest, envelope{Code: "invalid_json", Message: err.Error()})
		return false
	}
	return true
}

// writeMessage отдаёт ответ сервиса в protojson.
func writeMessage(w http.ResponseWriter, code int, msg proto.Message) {
	body, err := responseJSON.Marshal(msg)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, envelope{Code: "internal", Message: "failed to encode response"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// actorFrom берёт актора из заголовков; тело запроса используется, только если их нет.
func actorFrom(r *http.Request, fromBody *omsv1.Actor) *omsv1.Actor {
	id := strings.TrimSpace(r.Header.Get(HeaderActorID))
	role := strings.TrimSpace(r.Header.Get(HeaderActorRole))
	if id == "" && role == "" {
		return fromBody
	}
	return &omsv1.Actor{Id: id, Role: role}
}

// gatewayContext переносит Idempotency-Key во входящие метаданные gRPC.
func gatewayContext(r *http.Request) context.Context {
	ctx := r.Context()
	key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
	if key == "" {
		return ctx
	}
	md, _ := metadata.FromIncomingContext(ctx)
	md = md.Copy()
	md.Set("idempotency-key", key)
	return metadata.NewIncomingContext(ctx, md)
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		entry := h.logger.WithFields(log.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"request_id":  middleware.GetReqID(r.Context()),
			"actor_id":    r.Header.Get(HeaderActorID),
		})
		if ww.Status() >= http.StatusInternalServerError {
			entry.Warn("http request failed")
			return
		}
		entry.Debug("http request")
	})
}
