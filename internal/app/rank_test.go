package app_test

import (
	"testing"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/app"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

func card(name string, minPrice int64, stars int, rating float64, score int) domain.TourCard {
	c := domain.TourCard{
		Hotel:      domain.HotelSummary{Name: name, Stars: stars, Rating: rating},
		PriceRange: domain.PriceRange{Min: minPrice, Max: minPrice},
	}
	so := domain.ScoredOffer{
		Offer: domain.Offer{HotelName: name, Price: minPrice},
		Match: &domain.MatchResult{Score: score},
	}
	c.Options = []domain.ScoredOffer{so}
	c.BestPrice = &c.Options[0]
	c.Recommended = &c.Options[0]
	return c
}

func names(cards []domain.TourCard) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.Hotel.Name
	}
	return out
}

func TestRank_PriceAscending(t *testing.T) {
	cards := []domain.TourCard{
		card("three", 300, 3, 7, 50),
		card("one", 100, 4, 8, 60),
		card("two", 200, 5, 9, 70),
	}
	app.Rank(cards, app.SortPrice)
	got := names(cards)
	want := []string{"one", "two", "three"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("price order: want %v got %v", want, got)
		}
	}
}

func TestRank_StableOnTies(t *testing.T) {
	cards := []domain.TourCard{
		card("first", 100, 3, 7, 50),
		card("second", 100, 4, 8, 60),
		card("third", 100, 5, 9, 70),
	}
	app.Rank(cards, app.SortPrice)
	got := names(cards)
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("tie order not preserved: want %v got %v", want, got)
		}
	}
}

func TestRank_MatchDefaultDescending(t *testing.T) {
	cards := []domain.TourCard{
		card("low", 100, 3, 7, 40),
		card("high", 200, 4, 8, 90),
		card("mid", 300, 5, 9, 60),
	}
	app.Rank(cards, "") // default = match
	got := names(cards)
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("match order: want %v got %v", want, got)
		}
	}
}

func TestRank_StarsAndRatingDescending(t *testing.T) {
	cards := []domain.TourCard{
		card("a", 100, 3, 9.5, 50),
		card("b", 200, 5, 7.0, 50),
	}
	app.Rank(cards, app.SortStars)
	if cards[0].Hotel.Name != "b" {
		t.Fatalf("stars order wrong: %v", names(cards))
	}
	app.Rank(cards, app.SortRating)
	if cards[0].Hotel.Name != "a" {
		t.Fatalf("rating order wrong: %v", names(cards))
	}
}

func TestPaginate_Invariants(t *testing.T) {
	var cards []domain.TourCard
	for i := 0; i < 7; i++ {
		cards = append(cards, card(string(rune('a'+i)), int64(100*(i+1)), 3, 7, 50))
	}

	p := app.Paginate(cards, 1, 7)
	if len(p.Cards) != 7 || p.TotalPages != 1 {
		t.Fatalf("full page: %d cards, %d pages", len(p.Cards), p.TotalPages)
	}

	p = app.Paginate(cards, 2, 3)
	if len(p.Cards) != 3 || p.Cards[0].Hotel.Name != "d" {
		t.Fatalf("page 2 of 3: %+v", names(p.Cards))
	}
	if p.TotalPages != 3 {
		t.Fatalf("totalPages: want 3 got %d", p.TotalPages)
	}

	// last partial page
	p = app.Paginate(cards, 3, 3)
	if len(p.Cards) != 1 {
		t.Fatalf("last page: want 1 card, got %d", len(p.Cards))
	}

	// beyond the end: empty slice, not an error
	p = app.Paginate(cards, 9, 3)
	if len(p.Cards) != 0 || p.TotalPages != 3 {
		t.Fatalf("beyond-last page: %d cards, %d pages", len(p.Cards), p.TotalPages)
	}
}

func TestBuildFacets(t *testing.T) {
	c1 := card("a", 100, 3, 7, 50)
	c1.Options[0].Offer.Meal = domain.MealAllInclusive
	c1.Options[0].Offer.Provider = "sunline"
	c2 := card("b", 300, 5, 9, 70)
	c2.Options[0].Offer.Meal = domain.MealBreakfast
	c2.Options[0].Offer.Provider = "tourlux"
	c2.PriceRange.Max = 400

	f := app.BuildFacets([]domain.TourCard{c1, c2})
	if f.PriceRange.Min != 100 || f.PriceRange.Max != 400 {
		t.Fatalf("facet price range: %+v", f.PriceRange)
	}
	if len(f.Stars) != 2 || f.Stars[0] != 3 || f.Stars[1] != 5 {
		t.Fatalf("facet stars: %v", f.Stars)
	}
	if len(f.Meals) != 2 || f.Meals[0] != domain.MealBreakfast {
		t.Fatalf("facet meals (ordered by rank): %v", f.Meals)
	}
	if len(f.Providers) != 2 || f.Providers[0] != "sunline" {
		t.Fatalf("facet providers: %v", f.Providers)
	}
}
