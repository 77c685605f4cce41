package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/app"
	"github.com/AlexeyPevz/Travel-bot-sub002/internal/domain"
)

// Parser is the language chain's parse mode as seen by the HTTP layer.
type Parser interface {
	Parse(ctx context.Context, text string, prev *domain.ParsedRequest) *domain.ParsedRequest
}

type Handlers struct {
	Search    *app.SearchService
	Parser    Parser
	Explainer app.Explainer
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/search", h.search)
	s.mux.Post("/v1/parse", h.parse)
	s.mux.Post("/v1/explain", h.explain)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

type searchRequest struct {
	UserID int64             `json:"userId,omitempty"`
	Spec   domain.SearchSpec `json:"spec"`
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return
	}
	explain := r.URL.Query().Get("explain") == "true"

	resp, err := h.Search.Search(r.Context(), req.UserID, req.Spec, explain)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidSearch) {
			writeProblem(w, http.StatusUnprocessableEntity, "Invalid search", err.Error())
			return
		}
		// should not happen: provider failures degrade, they don't error
		writeProblem(w, http.StatusInternalServerError, "Search failed", "")
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

type parseRequest struct {
	Text    string                `json:"text"`
	Context *domain.ParsedRequest `json:"previousContext,omitempty"`
}

func (h *Handlers) parse(w http.ResponseWriter, r *http.Request) {
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "text is required")
		return
	}
	writeJSON(w, http.StatusOK, h.Parser.Parse(r.Context(), req.Text, req.Context))
}

type explainRequest struct {
	Offer   domain.Offer           `json:"offer"`
	Weights domain.PriorityWeights `json:"weights"`
	Score   int                    `json:"score"`
}

func (h *Handlers) explain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return
	}
	if req.Score < 0 || req.Score > 100 {
		writeProblem(w, http.StatusBadRequest, "Invalid score", "score must be 0..100, got "+strconv.Itoa(req.Score))
		return
	}
	text := h.Explainer.Explain(r.Context(), req.Offer, req.Weights, req.Score)
	writeJSON(w, http.StatusOK, map[string]string{"explanation": text})
}
