package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/usecase"
)

type heroDataRequest struct {
	Event     event.Event `json:"event"`
	Favorites []string    `json:"favorites" validate:"omitempty,max=64,dive,required,max=120"`
}

func (h *Handler) HeroData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HeroData")
	defer span.End()

	var req heroDataRequest
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

	bundle, err := h.heroService.Bundle(ctx, req.Event, req.Favorites)
	if err != nil {
		h.logger.WarnContext(ctx, "hero data failed", "event_id", req.Event.ID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, bundle)
}

type resolveImageRequest struct {
	Event event.Event `json:"event"`
}

type resolveImageResponse struct {
	ImageURL *string `json:"image_url"`
}

func (h *Handler) ResolveImage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveImage")
	defer span.End()

	var req resolveImageRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}

	query := imageQuery(req.Event)
	if query == "" {
		writeJSON(ctx, w, http.StatusOK, resolveImageResponse{})
		return
	}

	var resp resolveImageResponse
	if url := h.images.Resolve(ctx, query); url != "" {
		resp.ImageURL = &url
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

func imageQuery(ev event.Event) string {
	info := strings.TrimSpace(ev.SportKey)
	if ev.League.Name != "" {
		info = ev.League.Name
	}
	if ev.Home != nil && ev.Away != nil {
		return fmt.Sprintf("%s vs %s %s", ev.Away.Name, ev.Home.Name, info)
	}
	if ev.Venue.Name != "" {
		return fmt.Sprintf("%s %s", ev.Venue.Name, info)
	}
	return info
}
