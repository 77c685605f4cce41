package main

import (
	"context"
	"database/sql"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/observability"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/providers"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/app"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/shared"
	mysqlrepo "github.com/AlexeyPevz/Travel-bot-sub002/internal/storage/mysql"
)

// The watcher re-runs persisted search requests through the fan-out so
// stored offers stay fresh for watchlist notifications. It needs no
// scoring or language chain; it only feeds the offer store.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("db ping ok")

	repo := mysqlrepo.New(db)
	coord := app.NewCoordinator(buildProviders(cfg), cfg.ProviderTimeout, repo)

	searches, err := repo.ListSavedSearches(ctx, cfg.WatcherBatch)
	if err != nil {
		log.Fatal().Err(err).Msg("list saved searches failed")
	}
	log.Info().Int("searches", len(searches)).Int("workers", cfg.WatcherWorkers).Msg("watcher starting")

	sem := semaphore.NewWeighted(int64(cfg.WatcherWorkers))
	var wg sync.WaitGroup

	for _, s := range searches {
		s := s

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(saved domain.SavedSearch) {
			defer wg.Done()
			defer sem.Release(1)

			offers, statuses := coord.FanOut(ctx, saved.Spec)
			failed := 0
			for _, st := range statuses {
				if !st.Succeeded {
					failed++
				}
			}
			log.Info().
				Int64("search", saved.ID).
				Int64("user", saved.UserID).
				Int("offers", len(offers)).
				Int("providers_failed", failed).
				Msg("search refreshed")
		}(s)
	}

	wg.Wait()
	log.Info().Msg("watcher completed")
}

func buildProviders(cfg shared.Config) []domain.TourProvider {
	specs := []struct{ name, baseEnv, keyEnv string }{
		{"sunline", "SUNLINE_BASE_URL", "SUNLINE_API_KEY"},
		{"tourlux", "TOURLUX_BASE_URL", "TOURLUX_API_KEY"},
		{"bluewave", "BLUEWAVE_BASE_URL", "BLUEWAVE_API_KEY"},
	}
	var out []domain.TourProvider
	for _, s := range specs {
		base := shared.Env(s.baseEnv, "")
		if base == "" {
			continue
		}
		client, err := providers.NewClient(base, shared.Env(s.keyEnv, ""), cfg.ProviderRPS)
		if err != nil {
			log.Warn().Str("provider", s.name).Err(err).Msg("provider client init failed, skipping")
			continue
		}
		out = append(out, providers.NewAdapter(s.name, "/search", client))
	}
	return out
}
