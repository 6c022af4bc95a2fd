package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// envelope — тело ответа об ошибке. Code стабилен и пригоден для ветвления на клиенте.
type envelope struct {
	Code      string            `json:"error"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// httpStatus сопоставляет gRPC-код и HTTP-статус.
func httpStatus(code codes.Code, reason string) int {
	switch code {
	case codes.OK:
		return http.StatusOK
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.AlreadyExists:
		return http.StatusUnprocessableEntity
	case codes.Aborted:
		return http.StatusConflict
	case codes.FailedPrecondition:
		if reason == "INVALID_TRANSITION" {
			return http.StatusConflict
		}
		return http.StatusUnprocessableEntity
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Canceled:
		return 499
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	case codes.Unimplemented:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	st := status.Convert(err)
	env := envelope{Code: "internal", Message: st.Message()}

	reason := ""
	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok {
			reason = info.GetReason()
			env.Code = strings.ToLower(reason)
			env.Details = info.GetMetadata()
			break
		}
	}
	if reason == "" {
		env.Code = strings.ToLower(st.Code().String())
	}
	writeEnvelope(w, r, httpStatus(st.Code(), reason), env)
}

func writeEnvelope(w http.ResponseWriter, r *http.Request, code int, env envelope) {
	env.RequestID = middleware.GetReqID(r.Context())
	writeJSON(w, code, env)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
