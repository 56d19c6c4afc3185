package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kayz/google-search/internal/ratelimit"
	"github.com/kayz/google-search/internal/search"
	"github.com/mark3labs/mcp-go/mcp"
)

type fakeProvider struct {
	srv      *httptest.Server
	hits     atomic.Int32
	lastURL  atomic.Value
	status   int
	response string
}

func newFakeProvider(t *testing.T, status int, response string) *fakeProvider {
	t.Helper()
	p := &fakeProvider{status: status, response: response}
	p.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.hits.Add(1)
		p.lastURL.Store(r.URL.RawQuery)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(p.status)
		_, _ = w.Write([]byte(p.response))
	}))
	t.Cleanup(p.srv.Close)
	return p
}

func newService(t *testing.T, baseURL string, perMinute int) *search.Service {
	t.Helper()
	engine, err := search.NewGoogleEngine(search.GoogleConfig{
		APIKey:   "test-key",
		EngineID: "test-cx",
		BaseURL:  baseURL,
		Timeout:  2 * time.Second,
	})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	gate := ratelimit.New(perMinute, ratelimit.WithClock(func() time.Time { return now }))
	return search.NewService(engine, gate)
}

func callTool(t *testing.T, svc *search.Service, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Name = GoogleSearchName
	req.Params.Arguments = args

	result, err := GoogleSearchHandler(svc)(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned unexpected error: %v", err)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatalf("expected non-empty tool result")
	}
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestGoogleSearchEndToEnd(t *testing.T) {
	p := newFakeProvider(t, http.StatusOK,
		`{"items":[{"title":"Giacomo's","link":"https://a.example","snippet":"North End"},{"title":"Carmelina's","link":"https://b.example","snippet":"Hanover St"}]}`)
	svc := newService(t, p.srv.URL, 10)

	result := callTool(t, svc, map[string]any{"query": "Italian restaurants Boston"})
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	text := resultText(t, result)
	if !strings.HasPrefix(text, "Found 2 results:") {
		t.Fatalf("unexpected text: %q", text)
	}

	query, _ := p.lastURL.Load().(string)
	if !strings.Contains(query, "q=Italian+restaurants+Boston&num=10") {
		t.Fatalf("unexpected outbound query: %q", query)
	}
	for _, param := range []string{"dateRestrict=", "lr=", "gl=", "safe="} {
		if strings.Contains(query, param) {
			t.Fatalf("unexpected %s in %q", param, query)
		}
	}
}

func TestGoogleSearchLanguageFilter(t *testing.T) {
	p := newFakeProvider(t, http.StatusOK, `{}`)
	svc := newService(t, p.srv.URL, 10)

	result := callTool(t, svc, map[string]any{"query": "fromage", "language": "fr"})
	if got := resultText(t, result); got != search.NoResultsText {
		t.Fatalf("expected %q, got %q", search.NoResultsText, got)
	}
	query, _ := p.lastURL.Load().(string)
	if !strings.Contains(query, "lr=lang_fr") {
		t.Fatalf("expected lr=lang_fr in %q", query)
	}
}

func TestGoogleSearchInvalidArgumentsMakeNoRequest(t *testing.T) {
	p := newFakeProvider(t, http.StatusOK, `{}`)
	svc := newService(t, p.srv.URL, 10)

	for _, args := range []map[string]any{nil, {}, {"query": float64(1)}} {
		result := callTool(t, svc, args)
		if !result.IsError {
			t.Fatalf("expected error result for %#v", args)
		}
		if text := resultText(t, result); !strings.HasPrefix(text, "Error: invalid arguments") {
			t.Fatalf("unexpected text: %q", text)
		}
	}
	if p.hits.Load() != 0 {
		t.Fatalf("expected no provider calls, got %d", p.hits.Load())
	}
}

func TestGoogleSearchRateLimited(t *testing.T) {
	p := newFakeProvider(t, http.StatusOK, `{"items":[{"title":"A","link":"u1","snippet":"s1"}]}`)
	svc := newService(t, p.srv.URL, 1)

	first := callTool(t, svc, map[string]any{"query": "go"})
	if first.IsError {
		t.Fatalf("first call should succeed: %s", resultText(t, first))
	}
	if got := resultText(t, first); got != "Found 1 results:\n\nTitle: A\nURL: u1\nDescription: s1" {
		t.Fatalf("unexpected text: %q", got)
	}

	second := callTool(t, svc, map[string]any{"query": "go"})
	if !second.IsError {
		t.Fatalf("second call should be rate limited")
	}
	if text := resultText(t, second); !strings.HasPrefix(text, "Error: rate limit exceeded") {
		t.Fatalf("unexpected text: %q", text)
	}
	if p.hits.Load() != 1 {
		t.Fatalf("expected one provider call, got %d", p.hits.Load())
	}
}

func TestGoogleSearchProviderError(t *testing.T) {
	p := newFakeProvider(t, http.StatusTooManyRequests, `{"error":{"code":429,"message":"Quota exceeded"}}`)
	svc := newService(t, p.srv.URL, 10)

	result := callTool(t, svc, map[string]any{"query": "go"})
	if !result.IsError {
		t.Fatalf("expected error result")
	}
	text := resultText(t, result)
	if text != "Error: Google API error: 429 Too Many Requests: Quota exceeded" {
		t.Fatalf("unexpected text: %q", text)
	}
	if strings.Contains(text, "Found") {
		t.Fatalf("no items should be rendered: %q", text)
	}
}

func TestGoogleSearchToolSchema(t *testing.T) {
	tool := GoogleSearchTool()
	if tool.Name != GoogleSearchName {
		t.Fatalf("unexpected name %q", tool.Name)
	}
	if len(tool.InputSchema.Required) != 1 || tool.InputSchema.Required[0] != search.ArgQuery {
		t.Fatalf("unexpected required fields: %#v", tool.InputSchema.Required)
	}
	for _, arg := range []string{search.ArgNumResults, search.ArgDateRestrict, search.ArgLanguage, search.ArgCountry, search.ArgSafeSearch} {
		if _, ok := tool.InputSchema.Properties[arg]; !ok {
			t.Fatalf("missing property %q", arg)
		}
	}
}
