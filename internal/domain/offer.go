package domain

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// MealPlan is the canonical board code shared by all providers.
type MealPlan string

const (
	MealNone         MealPlan = "none"
	MealBreakfast    MealPlan = "breakfast"
	MealHalfBoard    MealPlan = "half-board"
	MealFullBoard    MealPlan = "full-board"
	MealAllInclusive MealPlan = "all-inclusive"
	MealUltraAI      MealPlan = "ultra-all-inclusive"
)

// MealRank returns the ordinal position of m among the known plans,
// none=0 .. ultra-all-inclusive=5. Unknown codes rank as none.
func MealRank(m MealPlan) int {
	switch m {
	case MealBreakfast:
		return 1
	case MealHalfBoard:
		return 2
	case MealFullBoard:
		return 3
	case MealAllInclusive:
		return 4
	case MealUltraAI:
		return 5
	}
	return 0
}

// Offer is one provider's normalized bookable package: one hotel,
// one date range, one room/meal combination. Immutable after the
// provider adapter builds it.
type Offer struct {
	Provider   string
	ProviderID string

	HotelName string
	Country   string
	Resort    string
	Stars     int // 0..5, 0 = unknown
	BeachLine int // 1 = first line, 0 = unknown

	Meal     MealPlan
	Price    int64 // minor currency units
	OldPrice *int64
	Currency string

	StartDate time.Time
	EndDate   time.Time
	Nights    int

	Rating      float64 // 0..10, 0 = unknown
	ReviewCount int

	Images     []string
	BookingURL string
	Extras     map[string]any
}

// HotelKey is the derived dedup identity: two offers with an equal key
// are treated as the same physical hotel.
type HotelKey string

// Key computes the offer's HotelKey. Pure function of the offer's
// name/location/stars; insensitive to casing, punctuation and arrival
// order. Offers with an empty name or unknown stars still get a key so
// grouping stays total over the input.
func (o Offer) Key() HotelKey {
	name := normalizeName(o.HotelName)
	loc := normalizeName(o.Country)
	if o.Resort != "" {
		loc += "/" + normalizeName(o.Resort)
	}
	if name == "" || o.Stars == 0 {
		return HotelKey(name + "|" + loc)
	}
	return HotelKey(name + "|" + loc + "|" + strconv.Itoa(o.Stars))
}

// normalizeName lower-cases and collapses whitespace/punctuation runs
// to single spaces, so "Sunrise  Resort" == "sunrise-resort".
func normalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
			continue
		}
		space = true
	}
	return b.String()
}

// PriceRange is min/max price across a card's member offers.
type PriceRange struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// HotelSummary is a card's hotel descriptor.
type HotelSummary struct {
	Name        string   `json:"name"`
	Country     string   `json:"country"`
	Resort      string   `json:"resort,omitempty"`
	Stars       int      `json:"stars"`
	BeachLine   int      `json:"beachLine,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	ReviewCount int      `json:"reviewCount,omitempty"`
	Images      []string `json:"images,omitempty"`
}

// Card badges, derived from fixed thresholds after scoring.
const (
	BadgeBestPrice = "best-price"
	BadgeHighMatch = "high-match"
	BadgeTopRated  = "top-rated"
)

// ScoredOffer pairs a member offer with its match result.
type ScoredOffer struct {
	Offer Offer        `json:"offer"`
	Match *MatchResult `json:"match,omitempty"`
}

// TourCard aggregates all offers sharing one HotelKey. Built fresh per
// search request, never persisted.
type TourCard struct {
	Key         HotelKey      `json:"-"`
	Hotel       HotelSummary  `json:"hotel"`
	PriceRange  PriceRange    `json:"priceRange"`
	Options     []ScoredOffer `json:"options"`
	BestPrice   *ScoredOffer  `json:"bestPrice"`
	Recommended *ScoredOffer  `json:"recommended"`
	Badges      []string      `json:"badges,omitempty"`
}

// ProviderStatus reports one provider's fate during a fan-out.
type ProviderStatus struct {
	Provider  string `json:"providerId"`
	Succeeded bool   `json:"succeeded"`
	ErrorKind string `json:"errorKind,omitempty"`
	Offers    int    `json:"offers"`
}

// Facets summarize the aggregated result set for filter UIs.
type Facets struct {
	PriceRange PriceRange `json:"priceRange"`
	Stars      []int      `json:"stars"`
	Meals      []MealPlan `json:"meals"`
	Providers  []string   `json:"providers"`
}

// SearchSpec is the structured inbound search request.
type SearchSpec struct {
	Destinations []string   `json:"destination"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
	FlexMonth    string     `json:"flexMonth,omitempty"` // YYYY-MM when dates are flexible
	Nights       int        `json:"nights,omitempty"`
	Budget       int64      `json:"budget,omitempty"` // minor units, 0 = none
	Adults       int        `json:"adults"`
	Children     int        `json:"children"`
	ChildrenAges []int      `json:"childrenAges,omitempty"`
	Meal         MealPlan   `json:"mealType,omitempty"`
	Stars        int        `json:"hotelStars,omitempty"`
	SortBy       string     `json:"sortBy,omitempty"`
	Page         int        `json:"page,omitempty"`
	PageSize     int        `json:"pageSize,omitempty"`
}

// Validate reports the caller errors the engine refuses to absorb.
func (s SearchSpec) Validate() error {
	if len(s.Destinations) == 0 && s.FlexMonth == "" && s.StartDate == nil {
		return ErrInvalidSearch
	}
	if s.Adults < 1 {
		return ErrInvalidSearch
	}
	if s.Page < 0 || s.PageSize < 0 {
		return ErrInvalidSearch
	}
	return nil
}
