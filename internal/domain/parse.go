package domain

// DateMode tells how strictly the traveler pinned dates.
type DateMode string

const (
	DatesFixed    DateMode = "fixed"
	DatesFlexible DateMode = "flexible"
	DatesAnytime  DateMode = "anytime"
)

// DateSpec is the extracted date intent.
type DateSpec struct {
	Mode   DateMode `json:"mode"`
	Start  string   `json:"start,omitempty"` // YYYY-MM-DD
	End    string   `json:"end,omitempty"`
	Month  string   `json:"month,omitempty"` // YYYY-MM for flexible
	Nights int      `json:"nights,omitempty"`
}

// ParsedRequest is the structured output of the language chain's parse
// mode. Produced wholesale by exactly one chain link; never merged
// across links.
type ParsedRequest struct {
	Destinations []string `json:"destinations"`
	Dates        DateSpec `json:"dates"`
	Budget       int64    `json:"budget,omitempty"` // minor units
	Adults       int      `json:"adults,omitempty"`
	Children     int      `json:"children,omitempty"`
	RoomPrefs    []string `json:"roomPrefs,omitempty"`

	Missing    []string `json:"missing,omitempty"`
	Questions  []string `json:"questions,omitempty"`
	Confidence float64  `json:"confidence"` // [0,1]
}
