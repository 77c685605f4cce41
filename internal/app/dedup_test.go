package app_test

import (
	"math/rand"
	"testing"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/app"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

func offer(provider, hotel, country string, stars int, price int64) domain.Offer {
	return domain.Offer{
		Provider:  provider,
		HotelName: hotel,
		Country:   country,
		Stars:     stars,
		Price:     price,
		Currency:  "RUB",
	}
}

func TestGroupOffers_SameHotelDifferentCasing(t *testing.T) {
	a := offer("providerA", "Sunrise Resort", "turkey", 5, 89500)
	b := offer("providerB", "sunrise resort", "turkey", 5, 91200)

	groups := app.GroupOffers([]domain.Offer{a, b})
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	for _, g := range groups {
		if len(g) != 2 {
			t.Fatalf("expected both offers in one group, got %d", len(g))
		}
	}
}

func TestGroupOffers_PunctuationAndWhitespaceInsensitive(t *testing.T) {
	a := offer("a", "Grand  Hotel - Palace", "egypt", 4, 50000)
	b := offer("b", "grand hotel palace", "Egypt", 4, 52000)
	c := offer("c", "Grand Hotel Palace", "egypt", 5, 51000) // different stars

	groups := app.GroupOffers([]domain.Offer{a, b, c})
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups (stars differ), got %d", len(groups))
	}
}

func TestGroupOffers_OrderIndependent(t *testing.T) {
	offers := []domain.Offer{
		offer("a", "Sunrise Resort", "turkey", 5, 89500),
		offer("b", "sunrise resort", "turkey", 5, 91200),
		offer("a", "Blue Bay", "turkey", 4, 60000),
		offer("c", "Blue Bay", "Turkey", 4, 61000),
		offer("b", "Palm Paradise", "egypt", 5, 70000),
	}

	want := app.GroupOffers(offers)

	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]domain.Offer(nil), offers...)
		rnd.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := app.GroupOffers(shuffled)
		if len(got) != len(want) {
			t.Fatalf("permutation changed group count: want %d got %d", len(want), len(got))
		}
		for k, g := range want {
			if len(got[k]) != len(g) {
				t.Fatalf("permutation changed membership for %q: want %d got %d", k, len(g), len(got[k]))
			}
		}
	}
}

func TestGroupOffers_TotalOverDegradedKeys(t *testing.T) {
	offers := []domain.Offer{
		offer("a", "", "turkey", 0, 30000),    // no name, no stars
		offer("b", "Nameless", "egypt", 0, 0), // no stars
		offer("c", "", "turkey", 0, 31000),
	}
	groups := app.GroupOffers(offers)

	total := 0
	for _, g := range groups {
		total += len(g)
	}
	if total != len(offers) {
		t.Fatalf("grouping dropped offers: %d in, %d out", len(offers), total)
	}
	// the two empty-name turkey offers degrade to the same key
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
}
