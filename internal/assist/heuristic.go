package assist

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

/********** keyword registries (single source of truth) **********/

// countryAliases maps a canonical destination to the spellings the
// audience actually types, English and Russian alike.
var countryAliases = map[string][]string{
	"turkey":   {"turkey", "турция", "турцию", "турции", "анталия", "antalya"},
	"egypt":    {"egypt", "египет", "египте", "хургада", "hurghada", "sharm"},
	"thailand": {"thailand", "таиланд", "тайланд", "пхукет", "phuket"},
	"uae":      {"uae", "emirates", "dubai", "оаэ", "эмираты", "дубай"},
	"greece":   {"greece", "греция", "грецию", "крит", "crete"},
	"spain":    {"spain", "испания", "испанию"},
	"cyprus":   {"cyprus", "кипр"},
	"maldives": {"maldives", "мальдивы"},
	"vietnam":  {"vietnam", "вьетнам"},
	"georgia":  {"georgia", "грузия", "грузию", "батуми", "batumi"},
}

var monthAliases = map[time.Month][]string{
	time.January:   {"january", "январ"},
	time.February:  {"february", "феврал"},
	time.March:     {"march", "март"},
	time.April:     {"april", "апрел"},
	time.May:       {"may", "мае", "май"},
	time.June:      {"june", "июн"},
	time.July:      {"july", "июл"},
	time.August:    {"august", "август"},
	time.September: {"september", "сентябр"},
	time.October:   {"october", "октябр"},
	time.November:  {"november", "ноябр"},
	time.December:  {"december", "декабр"},
}

var roomAliases = map[string][]string{
	"sea-view":    {"sea view", "вид на море", "видом на море"},
	"family-room": {"family room", "семейный номер"},
	"suite":       {"suite", "люкс"},
}

var (
	budgetRe   = regexp.MustCompile(`(\d+[\d\s]*)\s*(k|к|тыс)?\s*(₽|руб|рублей|\$|usd|€|eur)?`)
	adultsRe   = regexp.MustCompile(`(\d+)\s*(adult|взросл)`)
	childrenRe = regexp.MustCompile(`(\d+)\s*(child|kid|реб[её]н|дет)`)
	nightsRe   = regexp.MustCompile(`(\d+)\s*(night|ноч)`)
)

// Static clarification questions returned with a heuristic parse.
var clarifications = []string{
	"Which country or resort would you like to visit?",
	"What dates or month are you considering, and for how many nights?",
	"What budget should offers stay within?",
	"How many adults and children are travelling?",
}

// Heuristic is the final, deterministic link of the language chain:
// keyword and regex extraction that always returns a ParsedRequest.
type Heuristic struct {
	now func() time.Time
}

func NewHeuristic() *Heuristic {
	return &Heuristic{now: time.Now}
}

func (h *Heuristic) Name() string { return "heuristic" }

// ParseText extracts destinations, a budget, traveler counts, nights
// and a month from free text. Confidence is deliberately low so callers
// can tell a heuristic result from an LLM one.
func (h *Heuristic) ParseText(text string) *domain.ParsedRequest {
	low := strings.ToLower(text)

	pr := &domain.ParsedRequest{
		Dates:      domain.DateSpec{Mode: domain.DatesAnytime},
		Confidence: 0.1,
	}

	for canonical, aliases := range countryAliases {
		for _, a := range aliases {
			if strings.Contains(low, a) {
				pr.Destinations = append(pr.Destinations, canonical)
				break
			}
		}
	}
	sort.Strings(pr.Destinations)

	if m := adultsRe.FindStringSubmatch(low); m != nil {
		pr.Adults, _ = strconv.Atoi(m[1])
	} else if strings.Contains(low, "вдво") || strings.Contains(low, "for two") || strings.Contains(low, "two of us") {
		pr.Adults = 2
	}
	if m := childrenRe.FindStringSubmatch(low); m != nil {
		pr.Children, _ = strconv.Atoi(m[1])
	}
	if m := nightsRe.FindStringSubmatch(low); m != nil {
		pr.Dates.Nights, _ = strconv.Atoi(m[1])
	}

	if month, ok := h.findMonth(low); ok {
		pr.Dates.Mode = domain.DatesFlexible
		pr.Dates.Month = month
	}

	pr.Budget = extractBudget(low)

	for canonical, aliases := range roomAliases {
		for _, a := range aliases {
			if strings.Contains(low, a) {
				pr.RoomPrefs = append(pr.RoomPrefs, canonical)
				break
			}
		}
	}
	sort.Strings(pr.RoomPrefs)

	pr.Missing = missingFields(pr)
	pr.Questions = clarifications
	if len(pr.Destinations) > 0 || pr.Budget > 0 || pr.Adults > 0 {
		pr.Confidence = 0.3
	}
	return pr
}

// findMonth returns the next occurrence of the earliest-mentioned month
// as YYYY-MM. Months are scanned in fixed calendar order and the pick is
// by text position, so a sentence naming several months always resolves
// the same way.
func (h *Heuristic) findMonth(low string) (string, bool) {
	first := -1
	var picked time.Month
	for m := time.January; m <= time.December; m++ {
		for _, a := range monthAliases[m] {
			if i := strings.Index(low, a); i >= 0 && (first < 0 || i < first) {
				first = i
				picked = m
			}
		}
	}
	if first < 0 {
		return "", false
	}
	now := h.now()
	year := now.Year()
	if picked < now.Month() {
		year++
	}
	return time.Date(year, picked, 1, 0, 0, 0, 0, time.UTC).Format("2006-01"), true
}

// extractBudget finds the largest plausible money figure in the text
// and returns it in minor units. "150k"/"150 тыс" multiplies by 1000.
func extractBudget(low string) int64 {
	var best int64
	for _, m := range budgetRe.FindAllStringSubmatch(low, -1) {
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, m[1])
		if digits == "" {
			continue
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			continue
		}
		if m[2] != "" {
			n *= 1000
		}
		// Money mentions are either suffixed, currency-marked, or large.
		if m[2] == "" && m[3] == "" && n < 5000 {
			continue
		}
		if n > best {
			best = n
		}
	}
	return best * 100 // minor units
}

func missingFields(pr *domain.ParsedRequest) []string {
	var missing []string
	if len(pr.Destinations) == 0 {
		missing = append(missing, "destination")
	}
	if pr.Dates.Mode == domain.DatesAnytime && pr.Dates.Nights == 0 {
		missing = append(missing, "dates")
	}
	if pr.Budget == 0 {
		missing = append(missing, "budget")
	}
	if pr.Adults == 0 {
		missing = append(missing, "adults")
	}
	return missing
}
