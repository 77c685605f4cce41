package providers

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

/********** alias registries (single source of truth) **********/

var offerAliases = map[string][]string{
	"id":       {"id", "offer_id", "offerId", "tour_id"},
	"hotel":    {"hotel_name", "hotelName", "hotel.name", "name", "title"},
	"country":  {"country", "destination.country", "location.country", "country_name"},
	"resort":   {"resort", "city", "destination.resort", "location.city", "region"},
	"meal":     {"meal", "meal_type", "mealType", "board", "board_type", "pansion"},
	"currency": {"currency", "currency_code", "price.currency"},
	"start":    {"start_date", "startDate", "check_in", "checkIn", "date_from", "departure_date"},
	"end":      {"end_date", "endDate", "check_out", "checkOut", "date_to", "return_date"},
	"url":      {"booking_url", "bookingUrl", "link", "url", "deep_link"},
}

var mealAliases = map[domain.MealPlan][]string{
	domain.MealNone:      {"none", "ro", "room only", "без питания"},
	domain.MealBreakfast: {"breakfast", "bb", "завтрак", "завтраки"},
	domain.MealHalfBoard: {"half-board", "half board", "hb", "полупансион"},
	domain.MealFullBoard: {"full-board", "full board", "fb", "полный пансион"},
	domain.MealAllInclusive: {"all-inclusive", "all inclusive", "ai", "всё включено",
		"все включено"},
	domain.MealUltraAI: {"ultra-all-inclusive", "ultra all inclusive", "uai", "ультра"},
}

/********** offer mapper **********/

// mapOffer normalizes one provider row. Tolerant by design: absent or
// odd-shaped fields leave zero values, never abort the row.
func mapOffer(provider string, m map[string]any) domain.Offer {
	o := domain.Offer{
		Provider:   provider,
		ProviderID: lookupStr(m, offerAliases["id"]...),
		HotelName:  lookupStr(m, offerAliases["hotel"]...),
		Country:    lookupStr(m, offerAliases["country"]...),
		Resort:     lookupStr(m, offerAliases["resort"]...),
		Currency:   strings.ToUpper(lookupStr(m, offerAliases["currency"]...)),
		BookingURL: lookupStr(m, offerAliases["url"]...),
		Meal:       normalizeMeal(lookupStr(m, offerAliases["meal"]...)),
	}

	if f := lookupFloat(m, "stars", "hotel_stars", "hotel.stars", "category"); f != nil {
		o.Stars = clampInt(int(*f), 0, 5)
	}
	if f := lookupFloat(m, "beach_line", "beachLine", "line"); f != nil {
		o.BeachLine = int(*f)
	}
	if f := lookupFloat(m, "rating", "hotel_rating", "hotel.rating", "review_score"); f != nil {
		o.Rating = *f
	}
	if f := lookupFloat(m, "review_count", "reviewCount", "reviews", "reviews_count"); f != nil {
		o.ReviewCount = int(*f)
	}
	if f := lookupFloat(m, "nights", "night_count", "duration"); f != nil {
		o.Nights = int(*f)
	}

	o.Price = moneyMinor(m, "price_minor", "priceMinor", "price")
	if old := moneyMinor(m, "old_price_minor", "oldPriceMinor", "old_price", "price_before_discount"); old > 0 {
		o.OldPrice = &old
	}

	o.StartDate = lookupDate(m, offerAliases["start"]...)
	o.EndDate = lookupDate(m, offerAliases["end"]...)
	if o.Nights == 0 {
		o.Nights = nightsBetween(o.StartDate, o.EndDate)
	}

	o.Images = lookupStrings(m, "images", "photos", "image_urls")

	// Feature flags the scoring engine reads as optional extras.
	extras := map[string]any{}
	for _, k := range []string{"family", "activities", "quietness", "room"} {
		if v, ok := lookupAny(m, "features."+k).(float64); ok {
			extras[k] = v
		} else if v, ok := lookupAny(m, k).(bool); ok {
			extras[k] = v
		}
	}
	if len(extras) > 0 {
		o.Extras = extras
	}
	return o
}

// normalizeMeal folds a provider's board code onto the canonical enum.
// Unknown codes come back empty so scoring treats them as absent.
func normalizeMeal(s string) domain.MealPlan {
	low := strings.ToLower(strings.TrimSpace(s))
	if low == "" {
		return ""
	}
	for plan, aliases := range mealAliases {
		for _, a := range aliases {
			if low == a {
				return plan
			}
		}
	}
	// Loose contains-match as a second pass, ultra before plain AI.
	if strings.Contains(low, "ultra") || strings.Contains(low, "ультра") {
		return domain.MealUltraAI
	}
	if strings.Contains(low, "inclusive") || strings.Contains(low, "включено") {
		return domain.MealAllInclusive
	}
	return ""
}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the first non-empty string among paths.
func lookupStr(m map[string]any, paths ...string) string {
	for _, p := range paths {
		if s, ok := lookupAny(m, p).(string); ok {
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		}
	}
	return ""
}

// lookupFloat accepts float64/int/string forms ("4", "8,7").
func lookupFloat(m map[string]any, paths ...string) *float64 {
	for _, p := range paths {
		switch v := lookupAny(m, p).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// moneyMinor reads a price. *_minor paths are taken as-is; a bare
// "price" is treated as major units and scaled by 100.
func moneyMinor(m map[string]any, paths ...string) int64 {
	for _, p := range paths {
		f := lookupFloat(m, p)
		if f == nil || *f <= 0 {
			continue
		}
		if strings.Contains(p, "minor") || strings.Contains(p, "Minor") {
			return int64(math.Round(*f))
		}
		return int64(math.Round(*f * 100))
	}
	return 0
}

// lookupDate parses RFC3339 or YYYY-MM-DD.
func lookupDate(m map[string]any, paths ...string) time.Time {
	s := lookupStr(m, paths...)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}

// lookupStrings accepts []any holding strings or {url|src} objects.
func lookupStrings(m map[string]any, paths ...string) []string {
	for _, p := range paths {
		raw, ok := lookupAny(m, p).([]any)
		if !ok {
			continue
		}
		out := make([]string, 0, len(raw))
		for _, it := range raw {
			switch t := it.(type) {
			case string:
				if t != "" {
					out = append(out, t)
				}
			case map[string]any:
				if u, ok := t["url"].(string); ok && u != "" {
					out = append(out, u)
				} else if u, ok := t["src"].(string); ok && u != "" {
					out = append(out, u)
				}
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
