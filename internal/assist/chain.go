package assist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/observability"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// Chain walks an ordered list of language backends and falls through
// to the deterministic heuristic when every backend fails. Stateless
// across invocations; conversational continuity travels in `prev`.
type Chain struct {
	backends       []domain.LanguageBackend
	heuristic      *Heuristic
	attemptTimeout time.Duration
	minConfidence  float64
}

func NewChain(backends []domain.LanguageBackend, heuristic *Heuristic, attemptTimeout time.Duration, minConfidence float64) *Chain {
	if attemptTimeout <= 0 {
		attemptTimeout = 12 * time.Second
	}
	if minConfidence <= 0 {
		minConfidence = 0.5
	}
	if heuristic == nil {
		heuristic = NewHeuristic()
	}
	return &Chain{
		backends:       backends,
		heuristic:      heuristic,
		attemptTimeout: attemptTimeout,
		minConfidence:  minConfidence,
	}
}

// Parse turns free text into a ParsedRequest. Total: when every remote
// backend fails or under-delivers, the heuristic result is returned
// with its explicitly low confidence. A result is taken wholesale from
// exactly one link, never merged across links.
func (c *Chain) Parse(ctx context.Context, text string, prev *domain.ParsedRequest) *domain.ParsedRequest {
	for _, b := range c.backends {
		pr, err := c.attemptParse(ctx, b, text, prev)
		if err != nil {
			outcome := "error"
			if errors.Is(err, domain.ErrBackendLowConfidence) {
				outcome = "low_confidence"
			}
			observability.ObserveAssist(b.Name(), "parse", outcome)
			log.Debug().Str("backend", b.Name()).Err(err).Msg("parse backend failed, advancing chain")
			continue
		}
		observability.ObserveAssist(b.Name(), "parse", "ok")
		return pr
	}
	observability.ObserveAssist(c.heuristic.Name(), "parse", "ok")
	return c.heuristic.ParseText(text)
}

func (c *Chain) attemptParse(ctx context.Context, b domain.LanguageBackend, text string, prev *domain.ParsedRequest) (*domain.ParsedRequest, error) {
	actx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	pr, err := b.Parse(actx, text, prev)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		return nil, domain.ErrBackendMalformed
	}
	if pr.Confidence < c.minConfidence {
		return nil, fmt.Errorf("%w: %.2f", domain.ErrBackendLowConfidence, pr.Confidence)
	}
	return pr, nil
}

// Explain produces a short justification for a scored offer. Total:
// falls back to the deterministic template when no backend delivers.
func (c *Chain) Explain(ctx context.Context, offer domain.Offer, weights domain.PriorityWeights, score int) string {
	for _, b := range c.backends {
		actx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
		text, err := b.Explain(actx, offer, weights, score)
		cancel()
		if err != nil || text == "" {
			observability.ObserveAssist(b.Name(), "explain", "error")
			log.Debug().Str("backend", b.Name()).Err(err).Msg("explain backend failed, advancing chain")
			continue
		}
		observability.ObserveAssist(b.Name(), "explain", "ok")
		return text
	}
	observability.ObserveAssist(c.heuristic.Name(), "explain", "ok")
	return TemplateExplanation(score)
}

// TemplateExplanation is the deterministic explain fallback.
func TemplateExplanation(score int) string {
	return fmt.Sprintf("Offer matches %d%% of your criteria", score)
}
