package providers

import (
	"context"
	"fmt"
	"time"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// Adapter turns one provider's loosely-typed search response into
// canonical offers. It is the only layer that sees provider-specific
// shapes; everything downstream works on domain.Offer.
type Adapter struct {
	name   string
	path   string
	client *Client
}

func NewAdapter(name, path string, client *Client) *Adapter {
	if path == "" {
		path = "/search"
	}
	return &Adapter{name: name, path: path, client: client}
}

func (a *Adapter) Name() string { return a.name }

// searchPayload is the wire request most tour APIs accept. Providers
// that need different field names tolerate extras and ignore them.
type searchPayload struct {
	Destinations []string `json:"destinations"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	Month        string   `json:"month,omitempty"`
	Nights       int      `json:"nights,omitempty"`
	Adults       int      `json:"adults"`
	Children     int      `json:"children,omitempty"`
	BudgetMinor  int64    `json:"budget_minor,omitempty"`
	Meal         string   `json:"meal,omitempty"`
	Stars        int      `json:"stars,omitempty"`
}

// searchEnvelope accepts both enveloped and bare-array responses.
type searchEnvelope struct {
	Offers  []map[string]any `json:"offers"`
	Results []map[string]any `json:"results"`
	Items   []map[string]any `json:"items"`
}

// Search implements domain.TourProvider.
func (a *Adapter) Search(ctx context.Context, spec domain.SearchSpec) ([]domain.Offer, error) {
	payload := searchPayload{
		Destinations: spec.Destinations,
		Month:        spec.FlexMonth,
		Nights:       spec.Nights,
		Adults:       spec.Adults,
		Children:     spec.Children,
		BudgetMinor:  spec.Budget,
		Meal:         string(spec.Meal),
		Stars:        spec.Stars,
	}
	if spec.StartDate != nil {
		payload.StartDate = spec.StartDate.Format("2006-01-02")
	}
	if spec.EndDate != nil {
		payload.EndDate = spec.EndDate.Format("2006-01-02")
	}

	var env searchEnvelope
	if err := a.client.PostSearch(ctx, a.path, payload, &env); err != nil {
		return nil, err
	}

	raw := env.Offers
	if raw == nil {
		raw = env.Results
	}
	if raw == nil {
		raw = env.Items
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: no offer list in response", domain.ErrProviderMalformed)
	}

	offers := make([]domain.Offer, 0, len(raw))
	for _, m := range raw {
		o := mapOffer(a.name, m)
		if o.HotelName == "" && o.Price == 0 {
			continue // unusable row, skip rather than poison the card set
		}
		offers = append(offers, o)
	}
	return offers, nil
}

// nightsBetween derives a night count when the provider omits one.
func nightsBetween(start, end time.Time) int {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return 0
	}
	return int(end.Sub(start).Hours() / 24)
}
