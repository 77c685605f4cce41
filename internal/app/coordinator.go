package app

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/observability"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// Coordinator fans one search out to every configured provider in
// parallel. A provider that times out, errors or panics is recorded as
// failed without touching its siblings; the fan-out itself never fails.
type Coordinator struct {
	providers []domain.TourProvider
	timeout   time.Duration
	store     domain.OfferStore // optional bulk persistence, best-effort
}

func NewCoordinator(providers []domain.TourProvider, timeout time.Duration, store domain.OfferStore) *Coordinator {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Coordinator{providers: providers, timeout: timeout, store: store}
}

// FanOut returns every successful provider's offers plus one status
// per provider. Zero successes means an empty list with all statuses
// failed, not an error.
func (c *Coordinator) FanOut(ctx context.Context, spec domain.SearchSpec) ([]domain.Offer, []domain.ProviderStatus) {
	type result struct {
		provider string
		offers   []domain.Offer
		err      error
	}

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]result, 0, len(c.providers))
	)

	for _, p := range c.providers {
		wg.Add(1)
		go func(p domain.TourProvider) {
			defer wg.Done()
			// Per-provider sub-deadline, independent of siblings.
			pctx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			start := time.Now()
			offers, err := searchGuarded(pctx, p, spec)
			dur := time.Since(start)

			if err != nil {
				kind := domain.ErrorKind(err)
				observability.ObserveProvider(p.Name(), kind, 0, dur)
				log.Warn().Str("provider", p.Name()).Str("kind", kind).Err(err).Msg("provider search failed")
			} else {
				observability.ObserveProvider(p.Name(), "ok", len(offers), dur)
			}

			mu.Lock()
			results = append(results, result{provider: p.Name(), offers: offers, err: err})
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	// Stable status order regardless of completion order.
	sort.Slice(results, func(i, j int) bool { return results[i].provider < results[j].provider })

	var all []domain.Offer
	statuses := make([]domain.ProviderStatus, 0, len(results))
	for _, r := range results {
		st := domain.ProviderStatus{Provider: r.provider, Succeeded: r.err == nil, Offers: len(r.offers)}
		if r.err != nil {
			st.ErrorKind = domain.ErrorKind(r.err)
		}
		statuses = append(statuses, st)
		all = append(all, r.offers...)
	}

	if c.store != nil && len(all) > 0 {
		if err := c.store.SaveOffers(ctx, all); err != nil {
			log.Warn().Err(err).Int("offers", len(all)).Msg("bulk offer save failed")
		}
	}
	return all, statuses
}

// searchGuarded shields the fan-out from a panicking adapter.
func searchGuarded(ctx context.Context, p domain.TourProvider, spec domain.SearchSpec) (offers []domain.Offer, err error) {
	defer func() {
		if r := recover(); r != nil {
			offers = nil
			err = fmt.Errorf("%w: panic: %v", domain.ErrProviderUnavailable, r)
		}
	}()
	offers, err = p.Search(ctx, spec)
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		err = fmt.Errorf("%w: %v", domain.ErrProviderTimeout, err)
	}
	return offers, err
}
