package chi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/kailas-cloud/socialsearch/internal/domain"
	"github.com/kailas-cloud/socialsearch/internal/logger"
)

// Error response codes.
const (
	codeBadRequest         = "bad_request"
	codeValidationFailed   = "validation_failed"
	codeUnauthorized       = "unauthorized"
	codeNotFound           = "not_found"
	codeTenantNotFound     = "tenant_not_found"
	codeRequestTooLarge    = "request_too_large"
	codeFeatureUnavailable = "feature_unavailable"
	codeInternalError      = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

func defaultErrorHandlers() []errorHandler {
	return []errorHandler{
		shardLimitHandler,
		sentinelHandler(domain.ErrTenantNotFound, http.StatusNotFound, codeTenantNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrInvalidQuery, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrInvalidRequestPath, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrFeatureUnavailable, http.StatusServiceUnavailable, codeFeatureUnavailable),
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrTenantNotFound,
		domain.ErrNotFound,
		domain.ErrInvalidQuery,
		domain.ErrInvalidRequestPath,
		domain.ErrRequestTooLarge,
		domain.ErrFeatureUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// shardLimitHandler maps the shard ceiling to 413 with the arithmetic that tripped it.
func shardLimitHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrRequestTooLarge) {
		return false
	}
	var sle *domain.ShardLimitError
	if errors.As(err, &sle) {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]any{
			"code":    codeRequestTooLarge,
			"message": msg,
			"indices": sle.Indices,
			"shards":  sle.Shards,
			"limit":   sle.Limit,
		})
		return true
	}
	writeError(w, http.StatusRequestEntityTooLarge, codeRequestTooLarge, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	log.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	log.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}
