package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/matchboard/matchboard/internal/domain/event"
	"github.com/matchboard/matchboard/internal/platform/logging"
)

// timelineFanOut bounds concurrent per-sport fetches.
const timelineFanOut = 4

// Timeline is the merged cross-sport dashboard feed.
type Timeline struct {
	Upcoming []event.Event `json:"upcoming"`
	Recent   []event.Event `json:"recent"`
}

type TimelineService struct {
	resolver *Resolver
	logger   *logging.Logger
}

func NewTimelineService(resolver *Resolver, logger *logging.Logger) *TimelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TimelineService{resolver: resolver, logger: logger}
}

// Build fetches every selected sport concurrently and merges the rows
// into one ordered timeline. Ordering is part of the contract:
// upcoming puts live games first, then favorite-team games, then date
// ascending; recent puts favorite-team games first, then date
// descending. Ties break on event ID so output is stable.
func (s *TimelineService) Build(ctx context.Context, sports []string, favorites []string) (Timeline, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TimelineService.Build")
	defer span.End()

	type sportRows struct {
		upcoming []event.Event
		recent   []event.Event
	}

	var mu sync.Mutex
	rows := make(map[string]sportRows, len(sports))

	p := pool.New().WithMaxGoroutines(timelineFanOut)
	for _, sportKey := range sports {
		sportKey := sportKey
		p.Go(func() {
			var r sportRows
			live, err := s.resolver.Events(ctx, sportKey, event.QueryLive)
			if err != nil {
				s.logger.WarnContext(ctx, "timeline skipped sport", "sport", sportKey, "error", err)
				return
			}
			upcoming, err := s.resolver.Events(ctx, sportKey, event.QueryUpcoming)
			if err != nil {
				s.logger.WarnContext(ctx, "timeline skipped sport", "sport", sportKey, "error", err)
				return
			}
			recent, err := s.resolver.Events(ctx, sportKey, event.QueryRecent)
			if err != nil {
				s.logger.WarnContext(ctx, "timeline skipped sport", "sport", sportKey, "error", err)
				return
			}
			r.upcoming = append(r.upcoming, live...)
			r.upcoming = append(r.upcoming, upcoming...)
			r.recent = recent

			mu.Lock()
			rows[sportKey] = r
			mu.Unlock()
		})
	}
	p.Wait()

	// Merge in the caller's sport order so concurrency never reorders
	// equal elements.
	var timeline Timeline
	for _, sportKey := range sports {
		r, ok := rows[sportKey]
		if !ok {
			continue
		}
		timeline.Upcoming = append(timeline.Upcoming, r.upcoming...)
		timeline.Recent = append(timeline.Recent, r.recent...)
	}

	sortUpcoming(timeline.Upcoming, favorites)
	sortRecent(timeline.Recent, favorites)
	return timeline, nil
}

func sortUpcoming(events []event.Event, favorites []string) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if a.IsLive() != b.IsLive() {
			return a.IsLive()
		}
		af, bf := involvesFavorite(a, favorites), involvesFavorite(b, favorites)
		if af != bf {
			return af
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.ID < b.ID
	})
}

func sortRecent(events []event.Event, favorites []string) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		af, bf := involvesFavorite(a, favorites), involvesFavorite(b, favorites)
		if af != bf {
			return af
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.ID < b.ID
	})
}

func involvesFavorite(ev event.Event, favorites []string) bool {
	for _, favorite := range favorites {
		if strings.TrimSpace(favorite) == "" {
			continue
		}
		if ev.Involves(favorite) {
			return true
		}
	}
	return false
}
