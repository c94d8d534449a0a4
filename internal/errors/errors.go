// errors приводит ошибки сервисного слоя к HTTP-ответам админ-API:
//   - корректный HTTP-статус;
//   - короткий стабильный code и безопасное message без деталей.
//
// Сопоставление идёт по sentinel-ошибкам через errors.Is.
package errors

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/newsbot/internal/service"
	"github.com/pribylovaa/newsbot/internal/storage"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат ошибки.
// RequestID прокидывается из X-Request-Id, если он есть.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
//
// Таблица:
//   - ErrInvalidArgument -> 400
//   - ErrNotFound (сервис или хранилище) -> 404
//   - ErrAlreadyPublished -> 409
//   - ErrDelivery -> 502
//   - storage.ErrUnavailable -> 503
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504
//   - прочее и nil -> 500/internal
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{Error: APIError{Code: code, Message: msg}}
}

func classify(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, service.ErrAlreadyPublished):
		return http.StatusConflict, "already_published", "news already published"
	case errors.Is(err, service.ErrDelivery):
		return http.StatusBadGateway, "delivery_failed", "failed to deliver message"
	case errors.Is(err, storage.ErrUnavailable):
		return http.StatusServiceUnavailable, "unavailable", "storage unavailable"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}

// WriteError пишет статус и тело, добавляя request_id из заголовка запроса.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// BadRequest — ответ 400 с собственным сообщением (ошибки разбора запроса).
func BadRequest(w http.ResponseWriter, r *http.Request, msg string) {
	resp := ErrorResponse{Error: APIError{Code: "invalid_argument", Message: msg}}
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(resp)
}
