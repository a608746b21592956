package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/usecase"
)

type standingsRequest struct {
	SportKey string `json:"sport_key" validate:"required,max=32"`
}

// Standings always answers 200 with an array-of-one standings document.
// Sports nobody tracks tables for still get the placeholder document so
// the standings modal never breaks.
func (h *Handler) Standings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Standings")
	defer span.End()

	var req standingsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sportKey := strings.ToLower(strings.TrimSpace(req.SportKey))
	doc, err := h.resolver.Standings(ctx, sportKey)
	if errors.Is(err, usecase.ErrUnsupportedSport) {
		writeJSON(ctx, w, http.StatusOK, standings.Wrap(h.fallback.Standings(sportKey)))
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "standings failed", "sport", sportKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, standings.Wrap(doc))
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Suggestions")
	defer span.End()

	sportKey, ok := h.sports.Parse(r.PathValue("sport"))
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: sport=%s", usecase.ErrUnsupportedSport, r.PathValue("sport")))
		return
	}

	suggestions, err := h.suggestions.Suggestions(ctx, string(sportKey), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.WarnContext(ctx, "suggestions failed", "sport", string(sportKey), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, suggestionsResponse{Suggestions: suggestions})
}
