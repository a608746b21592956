package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/matchboard/matchboard/internal/domain/sport"
	"github.com/matchboard/matchboard/internal/fallback"
	"github.com/matchboard/matchboard/internal/platform/cache"
	"github.com/matchboard/matchboard/internal/platform/logging"
	"github.com/matchboard/matchboard/internal/prefs"
	"github.com/matchboard/matchboard/internal/usecase"
)

// ImageResolver finds a representative image URL for a search query.
// Implementations return "" when nothing usable is available.
type ImageResolver interface {
	Resolve(ctx context.Context, query string) string
}

type Handler struct {
	resolver    *usecase.Resolver
	heroService *usecase.HeroService
	timeline    *usecase.TimelineService
	suggestions *usecase.SuggestionService
	prefsStore  *prefs.Store
	images      ImageResolver
	cache       *cache.Store
	sports      *sport.Registry
	fallback    *fallback.Dataset
	pages       *pageRenderer
	static      http.Handler
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(
	resolver *usecase.Resolver,
	heroService *usecase.HeroService,
	timeline *usecase.TimelineService,
	suggestions *usecase.SuggestionService,
	prefsStore *prefs.Store,
	images ImageResolver,
	store *cache.Store,
	sports *sport.Registry,
	dataset *fallback.Dataset,
	logger *logging.Logger,
) (*Handler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	pages, err := newPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	static, err := staticAssetHandler()
	if err != nil {
		return nil, fmt.Errorf("static assets: %w", err)
	}

	return &Handler{
		resolver:    resolver,
		heroService: heroService,
		timeline:    timeline,
		suggestions: suggestions,
		prefsStore:  prefsStore,
		images:      images,
		cache:       store,
		sports:      sports,
		fallback:    dataset,
		pages:       pages,
		static:      static,
		logger:      logger,
		validator:   validator.New(),
	}, nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) StaticAssets() http.Handler {
	return h.static
}
