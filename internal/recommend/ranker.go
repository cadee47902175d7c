package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/hungrypeople/feast/internal/model"
	"github.com/hungrypeople/feast/internal/service"
)

// Engine answers recommendation queries against the venue and event catalog.
type Engine struct {
	store service.Storage
}

// NewEngine creates a recommendation engine over the given storage.
func NewEngine(store service.Storage) *Engine {
	return &Engine{store: store}
}

// RankByLocation extracts keywords from a free-text location and ranks
// venues whose address contains them. Venues matched by a broader keyword
// class carry a higher weight; a venue matched more than once keeps its
// highest weight. Results are sorted by weight descending then name
// ascending and truncated to limit. No extracted keywords means an empty
// result, never an unfiltered scan.
func (e *Engine) RankByLocation(ctx context.Context, location string, limit int) ([]model.RankedVenue, error) {
	keywords := ExtractKeywords(location)
	if len(keywords) == 0 {
		slog.Debug("no location keywords extracted", "location", location)
		return nil, nil
	}

	best := make(map[int64]model.RankedVenue)
	for _, kw := range keywords {
		venues, err := e.store.GetVenuesByAddressKeyword(ctx, kw.Token, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venues for keyword %q: %w", kw.Token, err)
		}
		weight := kw.Class.Weight()
		for _, v := range venues {
			if existing, ok := best[v.ID]; ok && existing.Weight >= weight {
				continue
			}
			best[v.ID] = model.RankedVenue{Venue: v, Weight: weight}
		}
	}

	ranked := make([]model.RankedVenue, 0, len(best))
	for _, rv := range best {
		ranked = append(ranked, rv)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Weight != ranked[j].Weight {
			return ranked[i].Weight > ranked[j].Weight
		}
		return ranked[i].Venue.Name < ranked[j].Venue.Name
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// RankByEvent ranks venues near the location of a specific event.
func (e *Engine) RankByEvent(ctx context.Context, eventID int64, limit int) (*model.Event, []model.RankedVenue, error) {
	event, err := e.store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, nil, err
	}

	ranked, err := e.RankByLocation(ctx, event.Location, limit)
	if err != nil {
		return nil, nil, err
	}
	return event, ranked, nil
}

// ByRegion lists venues in a region, ordered by name.
func (e *Engine) ByRegion(ctx context.Context, region string, limit int) ([]model.Venue, error) {
	return e.store.GetVenuesByRegion(ctx, region, limit)
}
