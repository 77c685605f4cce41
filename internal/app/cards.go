package app

import (
	"sort"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// BadgeConfig holds the fixed thresholds badges are derived from.
// Badge derivation only reads already-computed scores.
type BadgeConfig struct {
	HighMatchScore int     // recommended.score at or above earns "high-match"
	TopRatedRating float64 // hotel rating at or above earns "top-rated"
}

func (c BadgeConfig) withDefaults() BadgeConfig {
	if c.HighMatchScore <= 0 {
		c.HighMatchScore = 85
	}
	if c.TopRatedRating <= 0 {
		c.TopRatedRating = 9.0
	}
	return c
}

// CardBuilder turns HotelKey groups into TourCards.
type CardBuilder struct {
	scorer *Scorer
	badges BadgeConfig
}

func NewCardBuilder(scorer *Scorer, badges BadgeConfig) *CardBuilder {
	return &CardBuilder{scorer: scorer, badges: badges.withDefaults()}
}

// BuildAll builds one card per group, then applies the set-level
// "best-price" badge to the card holding the globally lowest minimum.
// Cards come back sorted by key so downstream stable sorts see a
// deterministic input order regardless of map iteration.
func (b *CardBuilder) BuildAll(groups map[domain.HotelKey][]domain.Offer, weights domain.PriorityWeights, spec domain.SearchSpec) []domain.TourCard {
	cards := make([]domain.TourCard, 0, len(groups))
	for key, group := range groups {
		c := b.build(key, group, weights, spec)
		cards = append(cards, c)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].Key < cards[j].Key })

	if len(cards) > 0 {
		best := 0
		for i := 1; i < len(cards); i++ {
			if cards[i].PriceRange.Min < cards[best].PriceRange.Min {
				best = i
			}
		}
		cards[best].Badges = append(cards[best].Badges, domain.BadgeBestPrice)
	}
	return cards
}

func (b *CardBuilder) build(key domain.HotelKey, group []domain.Offer, weights domain.PriorityWeights, spec domain.SearchSpec) domain.TourCard {
	options := make([]domain.ScoredOffer, 0, len(group))
	for _, o := range group {
		so := domain.ScoredOffer{Offer: o}
		if weights != nil {
			m := b.scorer.Score(o, weights, spec)
			so.Match = &m
		}
		options = append(options, so)
	}

	// Deterministic option order: price, then startDate, then provider id.
	sort.SliceStable(options, func(i, j int) bool {
		a, c := options[i].Offer, options[j].Offer
		if a.Price != c.Price {
			return a.Price < c.Price
		}
		if !a.StartDate.Equal(c.StartDate) {
			return a.StartDate.Before(c.StartDate)
		}
		return a.Provider < c.Provider
	})

	card := domain.TourCard{
		Key:     key,
		Hotel:   summarize(group),
		Options: options,
	}
	card.PriceRange = priceRange(options)
	card.BestPrice = &options[0] // options are ordered by the bestPrice tie-break

	card.Recommended = pickRecommended(options)
	if card.Recommended == nil {
		card.Recommended = card.BestPrice
	}

	if card.Recommended.Match != nil && card.Recommended.Match.Score >= b.badges.HighMatchScore {
		card.Badges = append(card.Badges, domain.BadgeHighMatch)
	}
	if card.Hotel.Rating >= b.badges.TopRatedRating && card.Hotel.Rating > 0 {
		card.Badges = append(card.Badges, domain.BadgeTopRated)
	}
	return card
}

// pickRecommended returns the highest-scoring option, ties broken by
// lowest price. Nil when no option carries a score.
func pickRecommended(options []domain.ScoredOffer) *domain.ScoredOffer {
	var best *domain.ScoredOffer
	for i := range options {
		if options[i].Match == nil {
			continue
		}
		if best == nil ||
			options[i].Match.Score > best.Match.Score ||
			(options[i].Match.Score == best.Match.Score && options[i].Offer.Price < best.Offer.Price) {
			best = &options[i]
		}
	}
	return best
}

func priceRange(options []domain.ScoredOffer) domain.PriceRange {
	pr := domain.PriceRange{Min: options[0].Offer.Price, Max: options[0].Offer.Price}
	for _, o := range options[1:] {
		if o.Offer.Price < pr.Min {
			pr.Min = o.Offer.Price
		}
		if o.Offer.Price > pr.Max {
			pr.Max = o.Offer.Price
		}
	}
	return pr
}

// summarize picks the richest hotel descriptor across the group:
// providers disagree on completeness, so take the first non-zero value
// per field.
func summarize(group []domain.Offer) domain.HotelSummary {
	h := domain.HotelSummary{}
	for _, o := range group {
		if h.Name == "" {
			h.Name = o.HotelName
		}
		if h.Country == "" {
			h.Country = o.Country
		}
		if h.Resort == "" {
			h.Resort = o.Resort
		}
		if h.Stars == 0 {
			h.Stars = o.Stars
		}
		if h.BeachLine == 0 {
			h.BeachLine = o.BeachLine
		}
		if o.Rating > h.Rating {
			h.Rating = o.Rating
		}
		if o.ReviewCount > h.ReviewCount {
			h.ReviewCount = o.ReviewCount
		}
		if len(h.Images) == 0 {
			h.Images = o.Images
		}
	}
	return h
}
