package domain

// Scoring criteria. Fixed set; PriorityWeights is keyed by these.
const (
	CritPrice      = "price"
	CritStars      = "stars"
	CritBeachLine  = "beachLine"
	CritMeal       = "meal"
	CritLocation   = "location"
	CritReviews    = "reviews"
	CritFamily     = "family"
	CritActivities = "activities"
	CritQuietness  = "quietness"
	CritRoom       = "room"
)

// Criteria lists every scoring criterion in a stable order.
var Criteria = []string{
	CritPrice, CritStars, CritBeachLine, CritMeal, CritLocation,
	CritReviews, CritFamily, CritActivities, CritQuietness, CritRoom,
}

// PriorityWeights is the caller's 0..10 importance per criterion.
// Read-only input to the scoring engine.
type PriorityWeights map[string]int

// DefaultWeights is the neutral vector used when a profile has none.
func DefaultWeights() PriorityWeights {
	w := make(PriorityWeights, len(Criteria))
	for _, c := range Criteria {
		w[c] = 5
	}
	return w
}

// MatchResult is one offer's computed score against one weight vector.
type MatchResult struct {
	Score       int            `json:"score"` // 0..100
	Breakdown   map[string]int `json:"breakdown"`
	Explanation string         `json:"explanation,omitempty"`
}
