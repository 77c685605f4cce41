package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

func valInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func valJSON(v any) any {
	b, err := json.Marshal(v)
	if err != nil || v == nil {
		return nil
	}
	return string(b)
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// SaveOffers bulk-upserts a fan-out's normalized offers.
func (r *Repo) SaveOffers(ctx context.Context, offers []domain.Offer) error {
	if len(offers) == 0 {
		return nil
	}
	values := make([]string, 0, len(offers))
	args := make([]any, 0, len(offers)*19)
	for _, o := range offers {
		values = append(values, "(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)")
		var start, end any
		if !o.StartDate.IsZero() {
			start = o.StartDate
		}
		if !o.EndDate.IsZero() {
			end = o.EndDate
		}
		args = append(args,
			o.Provider,
			o.ProviderID,
			o.HotelName,
			o.Country,
			o.Resort,
			o.Stars,
			o.BeachLine,
			string(o.Meal),
			o.Price,
			valInt64(o.OldPrice),
			o.Currency,
			start,
			end,
			o.Nights,
			o.Rating,
			o.ReviewCount,
			o.BookingURL,
			valJSON(o.Images),
			valJSON(o.Extras),
		)
	}
	sqlStr := insertOffersPrefix + strings.Join(values, ",") + insertOffersOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// Weights reads a user's priority vector. ErrNotFound when the user
// has no stored profile; callers fall back to default weights.
func (r *Repo) Weights(ctx context.Context, userID int64) (domain.PriorityWeights, error) {
	rows, err := r.db.QueryContext(ctx, selectWeightsSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	w := domain.PriorityWeights{}
	for rows.Next() {
		var criterion string
		var weight int
		if err := rows.Scan(&criterion, &weight); err != nil {
			return nil, err
		}
		w[criterion] = weight
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(w) == 0 {
		return nil, domain.ErrNotFound
	}
	return w, nil
}

// SaveSearch journals a search request for the watcher to re-run.
func (r *Repo) SaveSearch(ctx context.Context, userID int64, spec domain.SearchSpec) (int64, error) {
	b, err := json.Marshal(spec)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, upsertSearchSQL, userID, string(b))
	if err != nil {
		return 0, err
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r *Repo) ListSavedSearches(ctx context.Context, limit int) ([]domain.SavedSearch, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, listSearchesSQL, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SavedSearch
	for rows.Next() {
		var s domain.SavedSearch
		var raw []byte
		if err := rows.Scan(&s.ID, &s.UserID, &raw); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &s.Spec); err != nil {
			continue // skip corrupt rows rather than failing the batch
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
