package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/domain/sport"
	"github.com/matchboard/matchboard/internal/platform/logging"
)

type WarmupService struct {
	resolver *Resolver
	sports   *sport.Registry
	workers  int
	logger   *logging.Logger
}

func NewWarmupService(resolver *Resolver, sports *sport.Registry, workers int, logger *logging.Logger) *WarmupService {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &WarmupService{
		resolver: resolver,
		sports:   sports,
		workers:  workers,
		logger:   logger,
	}
}

// Warm primes the cache with every (sport, kind) read the dashboard will
// issue, plus standings. Best effort: failures are logged and the
// placeholder path covers them at request time.
func (s *WarmupService) Warm(ctx context.Context) {
	started := time.Now()
	p, err := ants.NewPool(s.workers)
	if err != nil {
		s.logger.WarnContext(ctx, "cache warmup skipped", "error", err)
		return
	}
	defer p.Release()

	kinds := []event.QueryKind{event.QueryLive, event.QueryUpcoming, event.QueryRecent}

	var wg sync.WaitGroup
	submit := func(task func()) {
		wg.Add(1)
		if err := p.Submit(func() {
			defer wg.Done()
			task()
		}); err != nil {
			wg.Done()
			s.logger.WarnContext(ctx, "warmup task rejected", "error", err)
		}
	}

	for _, key := range s.sports.Keys() {
		sportKey := string(key)
		for _, kind := range kinds {
			kind := kind
			submit(func() {
				if _, err := s.resolver.Events(ctx, sportKey, kind); err != nil {
					s.logger.WarnContext(ctx, "warmup fetch failed",
						"sport", sportKey, "kind", string(kind), "error", err)
				}
			})
		}
		submit(func() {
			if _, err := s.resolver.Standings(ctx, sportKey); err != nil {
				s.logger.WarnContext(ctx, "warmup fetch failed",
					"sport", sportKey, "kind", "standings", "error", err)
			}
		})
	}
	wg.Wait()

	s.logger.InfoContext(ctx, "cache warmup finished",
		"sports", len(s.sports.Keys()), "took", time.Since(started).String())
}
