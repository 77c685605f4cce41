package main

import (
	"database/sql"
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	server "github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/http_server"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/llm"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/observability"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/providers"
	redisad "github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/redis"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/app"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/assist"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/shared"
	mysqlrepo "github.com/AlexeyPevz/Travel-bot-sub002/internal/storage/mysql"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	// db
	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")

	repo := mysqlrepo.New(db)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// provider fan-out
	tourProviders := buildProviders(cfg)
	coord := app.NewCoordinator(tourProviders, cfg.ProviderTimeout, repo)

	// language chain
	chain := assist.NewChain(buildBackends(cfg), assist.NewHeuristic(), cfg.LLMTimeout, cfg.ParseMinConfidence)

	scorer := app.NewScorer(app.ScoreConfig{
		BeachLineStep:    cfg.BeachLineStep,
		LocationMismatch: cfg.LocationMismatch,
	})
	builder := app.NewCardBuilder(scorer, app.BadgeConfig{
		HighMatchScore: cfg.HighMatchBadge,
		TopRatedRating: cfg.TopRatedBadge,
	})
	svc := app.NewSearchService(coord, builder, repo, repo, cache, chain, cfg.CacheTTL, cfg.DefaultPageSize)

	// http
	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Search: svc, Parser: chain, Explainer: chain})

	log.Info().Str("addr", cfg.HTTPAddr).Int("providers", len(tourProviders)).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

// buildProviders wires every tour provider that has a base URL
// configured. Names double as status/metric labels.
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
	if len(out) == 0 {
		log.Warn().Msg("no tour providers configured; searches will return empty results")
	}
	return out
}

func buildBackends(cfg shared.Config) []domain.LanguageBackend {
	var out []domain.LanguageBackend
	if cfg.LLMPrimaryKey != "" {
		if b, err := llm.New("primary", cfg.LLMPrimaryBase, cfg.LLMPrimaryModel, cfg.LLMPrimaryKey, 3); err == nil {
			out = append(out, b)
		} else {
			log.Warn().Err(err).Msg("primary LLM init failed")
		}
	}
	if cfg.LLMSecondaryBase != "" && cfg.LLMSecondaryKey != "" {
		if b, err := llm.New("secondary", cfg.LLMSecondaryBase, cfg.LLMSecondaryModel, cfg.LLMSecondaryKey, 3); err == nil {
			out = append(out, b)
		} else {
			log.Warn().Err(err).Msg("secondary LLM init failed")
		}
	}
	return out
}
