package domain

import (
	"context"
	"errors"
)

// Provider-side failures. All recovered inside the coordinator and
// surfaced only through ProviderStatus.ErrorKind.
var (
	ErrProviderTimeout     = errors.New("provider: timeout")
	ErrProviderUnavailable = errors.New("provider: unavailable")
	ErrProviderMalformed   = errors.New("provider: malformed response")
)

// Language-backend failures. All recovered by chain advancement.
var (
	ErrBackendUnavailable   = errors.New("assist: backend unavailable")
	ErrBackendMalformed     = errors.New("assist: malformed output")
	ErrBackendLowConfidence = errors.New("assist: low confidence")
)

// ErrInvalidSearch is the one caller error the engine surfaces directly.
var ErrInvalidSearch = errors.New("invalid search specification")

// ErrNotFound marks absent persisted records (profiles, saved searches).
var ErrNotFound = errors.New("not found")

// ErrorKind maps a failure to the label recorded in ProviderStatus.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProviderTimeout) || errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, ErrProviderMalformed):
		return "malformed"
	default:
		return "unavailable"
	}
}

// TourProvider is one external tour source. Search returns the
// provider's already-normalized offers for the spec.
type TourProvider interface {
	Name() string
	Search(ctx context.Context, spec SearchSpec) ([]Offer, error)
}

// LanguageBackend is one link of the language-assist chain. A backend
// either fully produces a result or fails; partial output is an error.
type LanguageBackend interface {
	Name() string
	Parse(ctx context.Context, text string, prev *ParsedRequest) (*ParsedRequest, error)
	Explain(ctx context.Context, offer Offer, weights PriorityWeights, score int) (string, error)
}

// OfferStore is the external bulk-persistence collaborator for fan-out
// results. Failures are logged by the caller, never propagated.
type OfferStore interface {
	SaveOffers(ctx context.Context, offers []Offer) error
}

// ProfileStore reads a user's priority weights from the external
// profile system.
type ProfileStore interface {
	Weights(ctx context.Context, userID int64) (PriorityWeights, error)
}

// SavedSearch is a persisted search request re-run by the watcher.
type SavedSearch struct {
	ID     int64
	UserID int64
	Spec   SearchSpec
}

// SearchStore persists and lists search requests.
type SearchStore interface {
	SaveSearch(ctx context.Context, userID int64, spec SearchSpec) (int64, error)
	ListSavedSearches(ctx context.Context, limit int) ([]SavedSearch, error)
}

// Cache is the finished-response cache collaborator. Entries are only
// ever aged out by TTL, so the port carries no explicit invalidation.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
}
