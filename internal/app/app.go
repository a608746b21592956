// Package app wires configuration, providers, services, and the HTTP
// router into a runnable server.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/matchboard/matchboard/external/cricsheet"
	"github.com/matchboard/matchboard/external/espn"
	"github.com/matchboard/matchboard/external/fastf1"
	"github.com/matchboard/matchboard/external/httpx"
	"github.com/matchboard/matchboard/external/iccal"
	"github.com/matchboard/matchboard/external/imagesearch"
	"github.com/matchboard/matchboard/external/mlb"
	"github.com/matchboard/matchboard/internal/config"
	"github.com/matchboard/matchboard/internal/domain/sport"
	"github.com/matchboard/matchboard/internal/fallback"
	"github.com/matchboard/matchboard/internal/interfaces/httpapi"
	"github.com/matchboard/matchboard/internal/platform/cache"
	"github.com/matchboard/matchboard/internal/platform/logging"
	"github.com/matchboard/matchboard/internal/prefs"
	"github.com/matchboard/matchboard/internal/usecase"
)

// espnSports maps which sports ESPN serves, and whether it can also
// serve their standings tables.
var espnSports = []struct {
	key       sport.Key
	standings bool
}{
	{key: sport.NBA, standings: true},
	{key: sport.NFL, standings: true},
	{key: sport.NHL, standings: true},
	{key: sport.Tennis, standings: false},
	{key: sport.Golf, standings: false},
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, *usecase.WarmupService, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store, err := cache.NewStore(cfg.CacheDir, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("cache store: %w", err)
	}
	prefsStore, err := prefs.NewStore(cfg.PrefsDir, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("prefs store: %w", err)
	}

	sports := sport.DefaultRegistry()
	dataset := fallback.NewDataset(time.Now)
	providers := buildProviders(cfg, logger)

	resolver := usecase.NewResolver(providers, sports, store, cfg.TTL, dataset, logger)
	heroService := usecase.NewHeroService(resolver, dataset)
	timeline := usecase.NewTimelineService(resolver, logger)
	suggestions := usecase.NewSuggestionService(resolver, dataset)

	handler, err := httpapi.NewHandler(
		resolver,
		heroService,
		timeline,
		suggestions,
		prefsStore,
		buildImageResolver(cfg, logger),
		store,
		sports,
		dataset,
		logger,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("build handler: %w", err)
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	var warmup *usecase.WarmupService
	if cfg.WarmupEnabled {
		warmup = usecase.NewWarmupService(resolver, sports, cfg.WarmupWorkers, logger)
	}
	return server, warmup, nil
}

func buildProviders(cfg config.Config, logger *logging.Logger) *usecase.ProviderRegistry {
	providers := usecase.NewProviderRegistry()

	if cfg.ESPN.Enabled {
		client := espn.NewClient(fetcherConfig("espn", cfg.ESPN, logger))
		for _, s := range espnSports {
			providers.AddEvents(string(s.key), client)
			if s.standings {
				providers.SetStandings(string(s.key), client)
			}
		}
	}
	if cfg.MLB.Enabled {
		client := mlb.NewClient(fetcherConfig("mlb", cfg.MLB, logger))
		providers.AddEvents(string(sport.MLB), client)
		providers.SetStandings(string(sport.MLB), client)
	}
	// Cricket chains two sources: the ICC calendar answers upcoming,
	// the Cricsheet archive answers recent.
	if cfg.ICCCalendar.Enabled {
		providers.AddEvents(string(sport.Cricket), iccal.NewClient(fetcherConfig("iccal", cfg.ICCCalendar, logger)))
	}
	if cfg.Cricsheet.Enabled {
		providers.AddEvents(string(sport.Cricket), cricsheet.NewClient(fetcherConfig("cricsheet", cfg.Cricsheet, logger)))
	}
	if cfg.FastF1.Enabled {
		client := fastf1.NewClient(fetcherConfig("fastf1", cfg.FastF1, logger))
		providers.AddEvents(string(sport.Formula1), client)
		providers.SetStandings(string(sport.Formula1), client)
	}

	return providers
}

func fetcherConfig(name string, provider config.ProviderConfig, logger *logging.Logger) httpx.Config {
	return httpx.Config{
		Name:           name,
		BaseURL:        provider.BaseURL,
		Timeout:        provider.Timeout,
		MaxRetries:     provider.MaxRetries,
		Logger:         logger,
		CircuitBreaker: provider.CircuitBreaker,
	}
}

func buildImageResolver(cfg config.Config, logger *logging.Logger) httpapi.ImageResolver {
	if !cfg.ImageSearchEnabled {
		return noopImageResolver{}
	}
	return imagesearch.NewClient(httpx.Config{
		Timeout: cfg.ImageSearchTimeout,
		Logger:  logger,
	}, cfg.ImageSearchAPIKey, cfg.ImageSearchCX)
}

type noopImageResolver struct{}

func (noopImageResolver) Resolve(context.Context, string) string { return "" }
