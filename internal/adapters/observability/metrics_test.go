package observability_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AlexeyPevz/Travel-bot-sub002/internal/adapters/observability"
)

func TestMetricsRegistryAndHandler(t *testing.T) {
	reg := observability.InitRegistry()

	// record one sample so counters are non-zero
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveProvider("sunline", "ok", 3, 80*time.Millisecond)
	observability.ObserveAssist("heuristic", "parse", "ok")

	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	out := string(body)
	if !strings.Contains(out, "travelbot_http_requests_total") {
		t.Fatalf("expected travelbot_http_requests_total in output")
	}
	if !strings.Contains(out, "travelbot_provider_requests_total") {
		t.Fatalf("expected travelbot_provider_requests_total in output")
	}
	if !strings.Contains(out, "travelbot_assist_attempts_total") {
		t.Fatalf("expected travelbot_assist_attempts_total in output")
	}
}
