package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/matchboard/matchboard/internal/prefs"
	"github.com/matchboard/matchboard/internal/usecase"
)

type putPreferencesRequest struct {
	SelectedSports []string `json:"selected_sports" validate:"omitempty,max=16,dive,required,max=32"`
	Favorites      []string `json:"favorites" validate:"omitempty,max=64,dive,required,max=120"`
}

// GetPreferences returns the stored profile, or the default one for a
// profile nobody has saved yet.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPreferences")
	defer span.End()

	profileID := r.PathValue("profileID")
	profile, err := h.prefsStore.Load(ctx, profileID)
	if errors.Is(err, prefs.ErrNotFound) {
		writeJSON(ctx, w, http.StatusOK, prefs.DefaultProfile())
		return
	}
	if err != nil {
		h.logger.WarnContext(ctx, "load preferences failed", "profile", profileID, "error", err)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, profile)
}

func (h *Handler) PutPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PutPreferences")
	defer span.End()

	var req putPreferencesRequest
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

	selected := make([]string, 0, len(req.SelectedSports))
	for _, raw := range req.SelectedSports {
		key, ok := h.sports.Parse(raw)
		if !ok {
			writeError(ctx, w, fmt.Errorf("%w: unknown sport %q", usecase.ErrInvalidInput, raw))
			return
		}
		selected = append(selected, string(key))
	}

	profileID := r.PathValue("profileID")
	profile, err := h.prefsStore.Update(ctx, profileID, func(p *prefs.Profile) {
		p.SelectedSports = selected
		p.Favorites = trimAll(req.Favorites)
	})
	if err != nil {
		h.logger.WarnContext(ctx, "save preferences failed", "profile", profileID, "error", err)
		writeError(ctx, w, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, profile)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
