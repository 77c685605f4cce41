package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// Client is one chat-completions backend (OpenAI-compatible wire
// format). The primary and secondary links of the language chain are
// two instances pointed at different base URLs/models.
type Client struct {
	name  string
	base  string
	model string
	key   string
	hc    *http.Client
	rl    *rate.Limiter
}

func New(name, base, model, key string, rps int) (*Client, error) {
	if base == "" || model == "" {
		return nil, fmt.Errorf("base URL and model are required")
	}
	if rps <= 0 {
		rps = 3
	}
	return &Client{
		name:  name,
		base:  strings.TrimRight(base, "/"),
		model: model,
		key:   key,
		hc:    &http.Client{Timeout: 30 * time.Second},
		rl:    rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

func (c *Client) Name() string { return c.name }

const parseSystemPrompt = `You turn free-form travel requests into JSON. Reply with ONLY a JSON object, no prose, matching:
{"destinations":["country"],"dates":{"mode":"fixed|flexible|anytime","start":"YYYY-MM-DD","end":"YYYY-MM-DD","month":"YYYY-MM","nights":0},"budget":0,"adults":0,"children":0,"roomPrefs":[],"missing":[],"questions":[],"confidence":0.0}
budget is in minor currency units. List every field you could not extract in "missing" and ask one short question per missing field. Set confidence in [0,1].`

// Parse implements the chain's parse mode: one completion call, JSON
// out, fully parsed or an error — never a partial result.
func (c *Client) Parse(ctx context.Context, text string, prev *domain.ParsedRequest) (*domain.ParsedRequest, error) {
	user := "Request: " + text
	if prev != nil {
		b, _ := json.Marshal(prev)
		user += "\nEarlier extracted context: " + string(b)
	}

	content, err := c.complete(ctx, parseSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	var pr domain.ParsedRequest
	if err := json.Unmarshal([]byte(trimJSONBlock(content)), &pr); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBackendMalformed, err)
	}
	if pr.Confidence < 0 || pr.Confidence > 1 {
		return nil, fmt.Errorf("%w: confidence %v out of range", domain.ErrBackendMalformed, pr.Confidence)
	}
	return &pr, nil
}

const explainSystemPrompt = `You write one short sentence telling a traveler why a tour offer fits their priorities. Plain text, no markdown, at most 160 characters.`

// Explain implements the chain's explain mode.
func (c *Client) Explain(ctx context.Context, offer domain.Offer, weights domain.PriorityWeights, score int) (string, error) {
	payload, _ := json.Marshal(struct {
		Offer   domain.Offer           `json:"offer"`
		Weights domain.PriorityWeights `json:"weights"`
		Score   int                    `json:"score"`
	}{offer, weights, score})

	content, err := c.complete(ctx, explainSystemPrompt, string(payload))
	if err != nil {
		return "", err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.ErrBackendMalformed
	}
	return content, nil
}

// ---- wire types ----

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// complete performs one rate-limited POST to /chat/completions and
// returns the first choice's content. 429 and transient 5xx map to
// ErrBackendUnavailable so the chain advances.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}

	body, _ := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		req.Header.Set("Authorization", "Bearer "+c.key)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, ctx.Err())
		}
		return "", fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrBackendUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrBackendMalformed, err)
	}
	if len(out.Choices) == 0 || out.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrBackendMalformed)
	}
	return out.Choices[0].Message.Content, nil
}

// trimJSONBlock strips a ```json fenced block when the model wraps its
// answer despite instructions.
func trimJSONBlock(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
