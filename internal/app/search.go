package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// Explainer produces a human-readable justification for a scored offer.
// Total: implementations must always return usable text.
type Explainer interface {
	Explain(ctx context.Context, offer domain.Offer, weights domain.PriorityWeights, score int) string
}

// SearchResponse is the full outbound payload for one search.
type SearchResponse struct {
	Page
	Facets   domain.Facets           `json:"facets"`
	Statuses []domain.ProviderStatus `json:"providers"`
}

// SearchService runs the whole pipeline: fan-out, dedup, card build,
// scoring, rank, facets, pagination. Everything past the fan-out is a
// synchronous in-memory transformation.
type SearchService struct {
	coord     *Coordinator
	builder   *CardBuilder
	profiles  domain.ProfileStore
	searches  domain.SearchStore
	cache     domain.Cache
	explainer Explainer
	cacheTTL  time.Duration
	pageSize  int
}

func NewSearchService(coord *Coordinator, builder *CardBuilder, profiles domain.ProfileStore, searches domain.SearchStore, cache domain.Cache, explainer Explainer, cacheTTL time.Duration, pageSize int) *SearchService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &SearchService{
		coord:     coord,
		builder:   builder,
		profiles:  profiles,
		searches:  searches,
		cache:     cache,
		explainer: explainer,
		cacheTTL:  cacheTTL,
		pageSize:  pageSize,
	}
}

// Search validates the spec and runs the pipeline for userID. Provider
// and backend failures degrade the result; the only error surfaced is
// an invalid spec.
func (s *SearchService) Search(ctx context.Context, userID int64, spec domain.SearchSpec, explain bool) (*SearchResponse, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if spec.Page == 0 {
		spec.Page = 1
	}
	if spec.PageSize == 0 {
		spec.PageSize = s.pageSize
	}

	weights := s.lookupWeights(ctx, userID)

	key := cacheKey(spec, weights, explain)
	if s.cache != nil {
		var cached SearchResponse
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			return &cached, nil
		}
	}

	// Best-effort request journaling for the watcher; never blocks the search.
	if s.searches != nil && userID != 0 {
		if _, err := s.searches.SaveSearch(ctx, userID, spec); err != nil {
			log.Warn().Err(err).Int64("user", userID).Msg("persist search request failed")
		}
	}

	offers, statuses := s.coord.FanOut(ctx, spec)
	groups := GroupOffers(offers)
	cards := s.builder.BuildAll(groups, weights, spec)
	Rank(cards, spec.SortBy)

	facets := domain.Facets{}
	if len(cards) > 0 {
		facets = BuildFacets(cards)
	}
	page := Paginate(cards, spec.Page, spec.PageSize)

	if explain && s.explainer != nil {
		s.explainPage(ctx, page.Cards, weights)
	}

	resp := &SearchResponse{Page: page, Facets: facets, Statuses: statuses}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, resp, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Msg("cache search response failed")
		}
	}
	return resp, nil
}

// explainPage attaches explanations to the visible page's recommended
// options. The explainer is total, so this can only enrich, never fail.
func (s *SearchService) explainPage(ctx context.Context, cards []domain.TourCard, weights domain.PriorityWeights) {
	for i := range cards {
		rec := cards[i].Recommended
		if rec == nil || rec.Match == nil || rec.Match.Explanation != "" {
			continue
		}
		rec.Match.Explanation = s.explainer.Explain(ctx, rec.Offer, weights, rec.Match.Score)
	}
}

func (s *SearchService) lookupWeights(ctx context.Context, userID int64) domain.PriorityWeights {
	if s.profiles == nil || userID == 0 {
		return domain.DefaultWeights()
	}
	w, err := s.profiles.Weights(ctx, userID)
	if err != nil || len(w) == 0 {
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			log.Warn().Err(err).Int64("user", userID).Msg("profile weights lookup failed")
		}
		return domain.DefaultWeights()
	}
	return w
}

func cacheKey(spec domain.SearchSpec, weights domain.PriorityWeights, explain bool) string {
	b, _ := json.Marshal(struct {
		Spec    domain.SearchSpec      `json:"spec"`
		Weights domain.PriorityWeights `json:"weights"`
		Explain bool                   `json:"explain"`
	}{spec, weights, explain})
	sum := sha1.Sum(b)
	return "search:" + hex.EncodeToString(sum[:])
}
