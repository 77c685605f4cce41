package app

import (
	"sort"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// Sort criteria accepted by Rank.
const (
	SortMatch  = "match"
	SortPrice  = "price"
	SortStars  = "stars"
	SortRating = "rating"
)

// Rank sorts cards in place by the requested criterion. The sort is
// stable: ties keep their relative input order. Unknown criteria fall
// back to match order.
func Rank(cards []domain.TourCard, sortBy string) []domain.TourCard {
	switch sortBy {
	case SortPrice:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].PriceRange.Min < cards[j].PriceRange.Min
		})
	case SortStars:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Hotel.Stars > cards[j].Hotel.Stars
		})
	case SortRating:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Hotel.Rating > cards[j].Hotel.Rating
		})
	default: // SortMatch
		sort.SliceStable(cards, func(i, j int) bool {
			return recommendedScore(cards[i]) > recommendedScore(cards[j])
		})
	}
	return cards
}

func recommendedScore(c domain.TourCard) int {
	if c.Recommended == nil || c.Recommended.Match == nil {
		return 0
	}
	return c.Recommended.Match.Score
}

// Page is one pagination slice plus totals.
type Page struct {
	Cards      []domain.TourCard `json:"cards"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"pageSize"`
	TotalPages int               `json:"totalPages"`
}

// Paginate slices [(page-1)*size, page*size). A page past the end
// yields an empty slice, never an error.
func Paginate(cards []domain.TourCard, page, size int) Page {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 1
	}
	total := len(cards)
	totalPages := (total + size - 1) / size

	lo := (page - 1) * size
	if lo > total {
		lo = total
	}
	hi := lo + size
	if hi > total {
		hi = total
	}
	return Page{
		Cards:      cards[lo:hi],
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
	}
}

// BuildFacets summarizes the full (pre-pagination) card set for
// filter UIs: price coverage plus the star, meal and provider values
// actually present.
func BuildFacets(cards []domain.TourCard) domain.Facets {
	f := domain.Facets{}
	stars := map[int]struct{}{}
	meals := map[domain.MealPlan]struct{}{}
	providers := map[string]struct{}{}

	for i, c := range cards {
		if i == 0 || c.PriceRange.Min < f.PriceRange.Min {
			f.PriceRange.Min = c.PriceRange.Min
		}
		if c.PriceRange.Max > f.PriceRange.Max {
			f.PriceRange.Max = c.PriceRange.Max
		}
		if c.Hotel.Stars > 0 {
			stars[c.Hotel.Stars] = struct{}{}
		}
		for _, o := range c.Options {
			if o.Offer.Meal != "" {
				meals[o.Offer.Meal] = struct{}{}
			}
			providers[o.Offer.Provider] = struct{}{}
		}
	}

	for s := range stars {
		f.Stars = append(f.Stars, s)
	}
	sort.Ints(f.Stars)
	for m := range meals {
		f.Meals = append(f.Meals, m)
	}
	sort.Slice(f.Meals, func(i, j int) bool {
		return domain.MealRank(f.Meals[i]) < domain.MealRank(f.Meals[j])
	})
	for p := range providers {
		f.Providers = append(f.Providers, p)
	}
	sort.Strings(f.Providers)
	return f
}
