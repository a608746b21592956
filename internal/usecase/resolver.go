package usecase

import (
	"context"
	"fmt"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/matchboard/matchboard/internal/config"
	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/sport"
	"github.com/matchboard/matchboard/internal/domain/standings"
	"github.com/matchboard/matchboard/internal/fallback"
	"github.com/matchboard/matchboard/internal/platform/cache"
	"github.com/matchboard/matchboard/internal/platform/logging"
)

// EventSource serves canonical events for one sport and query kind.
// Sources that only cover some kinds return ErrUnsupportedSport for the
// rest so the resolver can move down the chain.
type EventSource interface {
	Events(ctx context.Context, sportKey string, kind event.QueryKind) ([]event.Event, error)
}

// StandingsSource serves a canonical standings document for one sport.
type StandingsSource interface {
	Standings(ctx context.Context, sportKey string) (standings.Doc, error)
}

// ProviderRegistry maps each sport to its upstream sources. A sport may
// chain several event sources; the first that can answer a kind wins.
type ProviderRegistry struct {
	events    map[string][]EventSource
	standings map[string]StandingsSource
}

func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		events:    make(map[string][]EventSource),
		standings: make(map[string]StandingsSource),
	}
}

func (r *ProviderRegistry) AddEvents(sportKey string, sources ...EventSource) {
	sportKey = strings.ToLower(strings.TrimSpace(sportKey))
	r.events[sportKey] = append(r.events[sportKey], sources...)
}

func (r *ProviderRegistry) SetStandings(sportKey string, source StandingsSource) {
	sportKey = strings.ToLower(strings.TrimSpace(sportKey))
	r.standings[sportKey] = source
}

// Resolver answers dashboard reads cache-first, then from the sport's
// providers, then from the placeholder dataset. Placeholder answers are
// never written to the cache, so the next call retries the upstream.
type Resolver struct {
	providers *ProviderRegistry
	sports    *sport.Registry
	cache     *cache.Store
	ttl       config.TTLTable
	fallback  *fallback.Dataset
	logger    *logging.Logger
}

func NewResolver(
	providers *ProviderRegistry,
	sports *sport.Registry,
	store *cache.Store,
	ttl config.TTLTable,
	dataset *fallback.Dataset,
	logger *logging.Logger,
) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{
		providers: providers,
		sports:    sports,
		cache:     store,
		ttl:       ttl,
		fallback:  dataset,
		logger:    logger,
	}
}

// Events returns the events for a sport and kind. A known sport always
// gets an answer; only unknown sport keys error.
func (r *Resolver) Events(ctx context.Context, sportKey string, kind event.QueryKind) ([]event.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Resolver.Events")
	defer span.End()

	key, ok := r.sports.Parse(sportKey)
	if !ok {
		return nil, fmt.Errorf("%w: sport=%s", ErrUnsupportedSport, sportKey)
	}
	sportKey = string(key)

	cacheKey := cache.Key("events", sportKey, string(kind))
	payload, err := r.cache.GetOrLoad(ctx, cacheKey, r.ttl.For(sportKey, kind), func(ctx context.Context) ([]byte, error) {
		events, loadErr := r.loadEvents(ctx, sportKey, kind)
		if loadErr != nil {
			return nil, loadErr
		}
		return sonic.Marshal(events)
	})
	if err != nil {
		r.logger.WarnContext(ctx, "serving placeholder events",
			"sport", sportKey, "kind", string(kind), "error", err)
		return r.fallback.Events(sportKey, kind), nil
	}

	var events []event.Event
	if err := sonic.Unmarshal(payload, &events); err != nil {
		r.cache.Delete(ctx, cacheKey)
		r.logger.WarnContext(ctx, "dropped undecodable cache entry",
			"key", cacheKey, "error", err)
		return r.fallback.Events(sportKey, kind), nil
	}
	return events, nil
}

func (r *Resolver) loadEvents(ctx context.Context, sportKey string, kind event.QueryKind) ([]event.Event, error) {
	sources := r.providers.events[sportKey]
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no event source for %s", ErrProviderUnavailable, sportKey)
	}

	var lastErr error
	for _, source := range sources {
		events, err := source.Events(ctx, sportKey, kind)
		if err == nil {
			return events, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("load %s %s events: %w", sportKey, kind, lastErr)
}

// Standings returns the standings document for a sport, placeholder when
// no provider can answer. The HTTP layer wraps it into the array-of-one
// response shape.
func (r *Resolver) Standings(ctx context.Context, sportKey string) (standings.Doc, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.Resolver.Standings")
	defer span.End()

	key, ok := r.sports.Parse(sportKey)
	if !ok {
		return standings.Doc{}, fmt.Errorf("%w: sport=%s", ErrUnsupportedSport, sportKey)
	}
	sportKey = string(key)

	cacheKey := cache.Key("standings", sportKey)
	payload, err := r.cache.GetOrLoad(ctx, cacheKey, r.ttl.For(sportKey, event.QueryStandings), func(ctx context.Context) ([]byte, error) {
		source := r.providers.standings[sportKey]
		if source == nil {
			return nil, fmt.Errorf("%w: no standings source for %s", ErrUnsupportedSport, sportKey)
		}
		doc, loadErr := source.Standings(ctx, sportKey)
		if loadErr != nil {
			return nil, loadErr
		}
		return sonic.Marshal(doc)
	})
	if err != nil {
		r.logger.WarnContext(ctx, "serving placeholder standings",
			"sport", sportKey, "error", err)
		return r.fallback.Standings(sportKey), nil
	}

	var doc standings.Doc
	if err := sonic.Unmarshal(payload, &doc); err != nil {
		r.cache.Delete(ctx, cacheKey)
		return r.fallback.Standings(sportKey), nil
	}
	return doc, nil
}
