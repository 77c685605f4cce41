package assist

import (
	"testing"
	"time"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

func fixedHeuristic(now time.Time) *Heuristic {
	h := NewHeuristic()
	h.now = func() time.Time { return now }
	return h
}

func TestParseText_English(t *testing.T) {
	h := fixedHeuristic(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	pr := h.ParseText("Turkey in May, 2 adults and 1 child, 7 nights, budget 150k, sea view please")

	if len(pr.Destinations) != 1 || pr.Destinations[0] != "turkey" {
		t.Fatalf("destinations: %v", pr.Destinations)
	}
	if pr.Adults != 2 || pr.Children != 1 {
		t.Fatalf("travellers: %d adults %d children", pr.Adults, pr.Children)
	}
	if pr.Dates.Mode != domain.DatesFlexible || pr.Dates.Month != "2026-05" {
		t.Fatalf("dates: %+v", pr.Dates)
	}
	if pr.Dates.Nights != 7 {
		t.Fatalf("nights: %d", pr.Dates.Nights)
	}
	if pr.Budget != 150000*100 {
		t.Fatalf("budget: %d", pr.Budget)
	}
	if len(pr.RoomPrefs) != 1 || pr.RoomPrefs[0] != "sea-view" {
		t.Fatalf("room prefs: %v", pr.RoomPrefs)
	}
	if pr.Confidence != 0.3 {
		t.Fatalf("confidence: %v", pr.Confidence)
	}
}

func TestParseText_Russian(t *testing.T) {
	h := fixedHeuristic(time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC))
	pr := h.ParseText("Хотим в Турцию в мае вдвоём на 10 ночей, бюджет 120 тыс руб")

	if len(pr.Destinations) != 1 || pr.Destinations[0] != "turkey" {
		t.Fatalf("destinations: %v", pr.Destinations)
	}
	if pr.Adults != 2 {
		t.Fatalf("adults: %d", pr.Adults)
	}
	// May has already passed relative to the clock, so next year.
	if pr.Dates.Month != "2027-05" {
		t.Fatalf("month rollover: %q", pr.Dates.Month)
	}
	if pr.Dates.Nights != 10 {
		t.Fatalf("nights: %d", pr.Dates.Nights)
	}
	if pr.Budget != 120000*100 {
		t.Fatalf("budget: %d", pr.Budget)
	}
}

func TestParseText_EarliestMonthWins(t *testing.T) {
	h := fixedHeuristic(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))

	// Several months in one sentence must always resolve to the one
	// mentioned first, independent of map iteration order.
	for i := 0; i < 100; i++ {
		pr := h.ParseText("turkey in may or june, 2 adults")
		if pr.Dates.Month != "2026-05" {
			t.Fatalf("run %d: month = %q, want 2026-05", i, pr.Dates.Month)
		}
	}
	for i := 0; i < 100; i++ {
		pr := h.ParseText("turkey in june or may, 2 adults")
		if pr.Dates.Month != "2026-06" {
			t.Fatalf("run %d: month = %q, want 2026-06", i, pr.Dates.Month)
		}
	}
}

func TestParseText_MultipleDestinationsSorted(t *testing.T) {
	h := fixedHeuristic(time.Now())
	pr := h.ParseText("can't decide between egypt and turkey")
	if len(pr.Destinations) != 2 || pr.Destinations[0] != "egypt" || pr.Destinations[1] != "turkey" {
		t.Fatalf("destinations: %v", pr.Destinations)
	}
}

func TestParseText_EmptyTextStillTotal(t *testing.T) {
	h := fixedHeuristic(time.Now())
	pr := h.ParseText("hello")

	if pr == nil {
		t.Fatal("nil result")
	}
	if pr.Confidence != 0.1 {
		t.Fatalf("confidence for empty extraction: %v", pr.Confidence)
	}
	want := map[string]bool{"destination": true, "dates": true, "budget": true, "adults": true}
	if len(pr.Missing) != len(want) {
		t.Fatalf("missing fields: %v", pr.Missing)
	}
	for _, m := range pr.Missing {
		if !want[m] {
			t.Fatalf("unexpected missing field %q", m)
		}
	}
	if len(pr.Questions) == 0 {
		t.Fatal("expected clarification questions")
	}
}

func TestExtractBudget(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"budget 150k", 150000 * 100},
		{"до 120 тыс", 120000 * 100},
		{"за 90000 руб", 90000 * 100},
		{"under 2000$", 2000 * 100},
		{"2 adults", 0}, // small bare number is not money
		{"7 nights", 0},
		{"85000", 85000 * 100},
		{"no numbers here", 0},
	}
	for _, tc := range cases {
		if got := extractBudget(tc.in); got != tc.want {
			t.Errorf("extractBudget(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
