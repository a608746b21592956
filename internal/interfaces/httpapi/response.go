package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/matchboard/matchboard/internal/prefs"
	"github.com/matchboard/matchboard/internal/usecase"
)

type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Reason  string `json:"reason"`
}

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
	_ = ctx
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	status, reason := mapError(err)
	writeJSON(ctx, w, status, errorEnvelope{Error: errorBody{
		Code:    status,
		Message: err.Error(),
		Reason:  reason,
	}})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	ctx, span := startSpan(ctx, "httpapi.writeInternalError")
	defer span.End()

	writeJSON(ctx, w, http.StatusInternalServerError, errorEnvelope{Error: errorBody{
		Code:    http.StatusInternalServerError,
		Message: "internal server error",
		Reason:  "internalError",
	}})
}

func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return http.StatusBadRequest, "invalidInput"
	case errors.Is(err, usecase.ErrNotFound), errors.Is(err, prefs.ErrNotFound):
		return http.StatusNotFound, "notFound"
	case errors.Is(err, usecase.ErrUnsupportedSport):
		return http.StatusNotFound, "unsupportedSport"
	case errors.Is(err, usecase.ErrProviderUnavailable), errors.Is(err, usecase.ErrAdapterMismatch):
		return http.StatusServiceUnavailable, "providerUnavailable"
	default:
		return http.StatusInternalServerError, "internalError"
	}
}
