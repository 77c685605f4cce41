package app

import (
	"math"
	"strings"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// neutral is the sub-score used when an offer carries no data for a
// criterion. Missing inputs never fail a score.
const neutral = 50

// ScoreConfig holds the tunable normalization constants.
type ScoreConfig struct {
	BeachLineStep    int // points lost per beach line past the first
	LocationMismatch int // sub-score when the country is outside the requested list
}

func (c ScoreConfig) withDefaults() ScoreConfig {
	if c.BeachLineStep <= 0 {
		c.BeachLineStep = 25
	}
	if c.LocationMismatch <= 0 {
		c.LocationMismatch = 40
	}
	return c
}

// Scorer computes 0..100 match scores. Stateless; safe for concurrent use.
type Scorer struct {
	cfg ScoreConfig
}

func NewScorer(cfg ScoreConfig) *Scorer {
	return &Scorer{cfg: cfg.withDefaults()}
}

// Score computes the offer's match against the weight vector. The spec
// supplies context for the price (budget ceiling) and location
// (requested destinations) criteria.
func (s *Scorer) Score(offer domain.Offer, weights domain.PriorityWeights, spec domain.SearchSpec) domain.MatchResult {
	sub := map[string]int{
		domain.CritPrice:      s.priceScore(offer.Price, spec.Budget),
		domain.CritStars:      starsScore(offer.Stars),
		domain.CritBeachLine:  s.beachScore(offer.BeachLine),
		domain.CritMeal:       mealScore(offer.Meal),
		domain.CritLocation:   s.locationScore(offer, spec.Destinations),
		domain.CritReviews:    ratingScore(offer.Rating),
		domain.CritFamily:     featureScore(offer.Extras, "family"),
		domain.CritActivities: featureScore(offer.Extras, "activities"),
		domain.CritQuietness:  featureScore(offer.Extras, "quietness"),
		domain.CritRoom:       featureScore(offer.Extras, "room"),
	}

	var sum, sumW float64
	for _, c := range domain.Criteria {
		w := float64(weights[c])
		sum += w * float64(sub[c])
		sumW += w
	}

	var overall float64
	if sumW > 0 {
		overall = sum / sumW
	} else {
		// all-zero weights: plain average over the criterion set
		for _, c := range domain.Criteria {
			overall += float64(sub[c])
		}
		overall /= float64(len(domain.Criteria))
	}

	return domain.MatchResult{
		Score:     clampScore(int(math.Round(overall))),
		Breakdown: sub,
	}
}

// priceScore inversely scales price against the budget ceiling: free=100,
// at budget=60, decaying linearly to 0 at twice the budget. Without a
// budget the criterion is neutral.
func (s *Scorer) priceScore(price, budget int64) int {
	if budget <= 0 || price <= 0 {
		return neutral
	}
	ratio := float64(price) / float64(budget)
	var v float64
	if ratio <= 1 {
		v = 100 - 40*ratio
	} else {
		v = 60 * (2 - ratio)
	}
	return clampScore(int(math.Round(v)))
}

func starsScore(stars int) int {
	if stars <= 0 {
		return neutral
	}
	return clampScore(stars * 20)
}

func (s *Scorer) beachScore(line int) int {
	if line <= 0 {
		return neutral
	}
	return clampScore(100 - (line-1)*s.cfg.BeachLineStep)
}

func mealScore(m domain.MealPlan) int {
	if m == "" {
		return neutral
	}
	return domain.MealRank(m) * 20
}

func (s *Scorer) locationScore(o domain.Offer, destinations []string) int {
	if len(destinations) == 0 {
		return neutral
	}
	for _, d := range destinations {
		if equalPlace(d, o.Country) || equalPlace(d, o.Resort) {
			return 100
		}
	}
	return s.cfg.LocationMismatch
}

func ratingScore(rating float64) int {
	if rating <= 0 {
		return neutral
	}
	return clampScore(int(math.Round(rating * 10)))
}

// featureScore reads an optional provider feature flag from the offer's
// metadata bag: a 0..1 float scales to 0..100, a bool maps to 100/0,
// anything absent stays neutral.
func featureScore(extras map[string]any, key string) int {
	if extras == nil {
		return neutral
	}
	switch v := extras[key].(type) {
	case float64:
		return clampScore(int(math.Round(v * 100)))
	case bool:
		if v {
			return 100
		}
		return 0
	}
	return neutral
}

func equalPlace(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
