package httpapi

import (
	"net/http"

	"github.com/matchboard/matchboard/internal/platform/cache"
)

type cacheInfoResponse struct {
	Entries []cache.EntryInfo `json:"entries"`
	Count   int               `json:"count"`
}

func (h *Handler) CacheInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CacheInfo")
	defer span.End()

	entries := h.cache.Info(ctx)
	writeJSON(ctx, w, http.StatusOK, cacheInfoResponse{Entries: entries, Count: len(entries)})
}

type clearCacheResponse struct {
	Removed int `json:"removed"`
}

func (h *Handler) ClearCache(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearCache")
	defer span.End()

	pattern := r.URL.Query().Get("pattern")
	removed := h.cache.Clear(ctx, pattern)
	h.logger.InfoContext(ctx, "cache cleared", "pattern", pattern, "removed", removed)
	writeJSON(ctx, w, http.StatusOK, clearCacheResponse{Removed: removed})
}
