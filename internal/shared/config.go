package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// Provider fan-out
	ProviderTimeout time.Duration
	ProviderRPS     int

	// Language-assist chain
	LLMPrimaryBase     string
	LLMPrimaryModel    string
	LLMPrimaryKey      string
	LLMSecondaryBase   string
	LLMSecondaryModel  string
	LLMSecondaryKey    string
	LLMTimeout         time.Duration
	ParseMinConfidence float64

	// Scoring tunables
	BeachLineStep    int
	LocationMismatch int
	HighMatchBadge   int
	TopRatedBadge    float64

	CacheTTL        time.Duration
	DefaultPageSize int
	WatcherWorkers  int
	WatcherBatch    int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/travelbot?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),

		ProviderTimeout: time.Duration(atoi("PROVIDER_TIMEOUT_SECONDS", 20)) * time.Second,
		ProviderRPS:     atoi("PROVIDER_RPS", 5),

		LLMPrimaryBase:     env("LLM_PRIMARY_BASE_URL", "https://api.openai.com/v1"),
		LLMPrimaryModel:    env("LLM_PRIMARY_MODEL", "gpt-4o-mini"),
		LLMPrimaryKey:      env("LLM_PRIMARY_API_KEY", ""),
		LLMSecondaryBase:   env("LLM_SECONDARY_BASE_URL", ""),
		LLMSecondaryModel:  env("LLM_SECONDARY_MODEL", ""),
		LLMSecondaryKey:    env("LLM_SECONDARY_API_KEY", ""),
		LLMTimeout:         time.Duration(atoi("LLM_TIMEOUT_SECONDS", 12)) * time.Second,
		ParseMinConfidence: atof("PARSE_MIN_CONFIDENCE", 0.5),

		BeachLineStep:    atoi("SCORE_BEACH_LINE_STEP", 25),
		LocationMismatch: atoi("SCORE_LOCATION_MISMATCH", 40),
		HighMatchBadge:   atoi("BADGE_HIGH_MATCH_SCORE", 85),
		TopRatedBadge:    atof("BADGE_TOP_RATED_RATING", 9.0),

		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 300)) * time.Second,
		DefaultPageSize: atoi("DEFAULT_PAGE_SIZE", 10),
		WatcherWorkers:  atoi("WATCHER_WORKERS", 8),
		WatcherBatch:    atoi("WATCHER_BATCH", 100),
	}
	if c.LLMPrimaryKey == "" {
		log.Warn().Msg("LLM_PRIMARY_API_KEY is empty; language chain will rely on the heuristic fallback")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Env exposes the same lookup to the mains that wire optional
// per-provider endpoints.
func Env(k, def string) string { return env(k, def) }
