package httpapi

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/matchboard/matchboard/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{name: "invalid input", err: usecase.ErrInvalidInput, status: http.StatusBadRequest, reason: "invalidInput"},
		{name: "not found", err: usecase.ErrNotFound, status: http.StatusNotFound, reason: "notFound"},
		{name: "unsupported sport", err: fmt.Errorf("wrap: %w", usecase.ErrUnsupportedSport), status: http.StatusNotFound, reason: "unsupportedSport"},
		{name: "provider down", err: usecase.ErrProviderUnavailable, status: http.StatusServiceUnavailable, reason: "providerUnavailable"},
		{name: "adapter mismatch", err: usecase.ErrAdapterMismatch, status: http.StatusServiceUnavailable, reason: "providerUnavailable"},
		{name: "unknown", err: fmt.Errorf("boom"), status: http.StatusInternalServerError, reason: "internalError"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			status, reason := mapError(tc.err)
			if status != tc.status || reason != tc.reason {
				t.Fatalf("expected %d/%s, got %d/%s", tc.status, tc.reason, status, reason)
			}
		})
	}
}
