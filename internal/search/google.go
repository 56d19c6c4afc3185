package search

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultGoogleEndpoint = "https://www.googleapis.com/customsearch/v1"
	DefaultTimeout        = 30 * time.Second

	maxResponseBytes = 2 << 20
)

// GoogleConfig holds the process-wide credentials for the Custom Search API.
type GoogleConfig struct {
	APIKey   string
	EngineID string
	// BaseURL overrides DefaultGoogleEndpoint.
	BaseURL string
	Timeout time.Duration
	// Client overrides the default HTTP client; Timeout is ignored when set.
	Client *http.Client
}

// GoogleEngine queries the Google Custom Search JSON API.
type GoogleEngine struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
}

func NewGoogleEngine(cfg GoogleConfig) (*GoogleEngine, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("google api key is required")
	}
	if cfg.EngineID == "" {
		return nil, errors.New("google search engine id is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultGoogleEndpoint
	}

	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &GoogleEngine{
		apiKey:   cfg.APIKey,
		engineID: cfg.EngineID,
		baseURL:  baseURL,
		client:   client,
	}, nil
}

func (e *GoogleEngine) Name() string {
	return "google"
}

// BuildURL renders the outbound GET URL. Parameters keep a fixed order:
// key, cx, q, num, then the optional filters that are set.
func (e *GoogleEngine) BuildURL(req Request) string {
	var params []string
	add := func(key, value string) {
		params = append(params, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	add("key", e.apiKey)
	add("cx", e.engineID)
	add("q", req.Query)
	add("num", strconv.Itoa(req.ResultCount))
	if req.DateRestrict != "" {
		add("dateRestrict", req.DateRestrict)
	}
	if req.Language != "" {
		add("lr", "lang_"+req.Language)
	}
	if req.Country != "" {
		add("gl", req.Country)
	}
	if req.SafeSearch != "" {
		add("safe", req.SafeSearch)
	}

	sep := "?"
	if strings.Contains(e.baseURL, "?") {
		sep = "&"
	}
	return e.baseURL + sep + strings.Join(params, "&")
}

type googleResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

type googleErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (e *GoogleEngine) Search(ctx context.Context, req Request) (*ResultSet, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, e.BuildURL(req), nil)
	if err != nil {
		return nil, providerError("failed to build Google API request", e.redact(err))
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", "google-search-mcp/1.0")

	resp, err := e.client.Do(httpReq)
	if err != nil {
		return nil, providerError("Google API request failed", e.redact(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, providerError("failed to read Google API response", err)
	}
	if len(body) > maxResponseBytes {
		return nil, providerError(fmt.Sprintf("Google API response too large (over %d bytes)", maxResponseBytes), nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("Google API error: %s", statusText(resp))
		var apiErr googleErrorBody
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			msg += ": " + apiErr.Error.Message
		}
		return nil, providerError(msg, nil)
	}

	var payload googleResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, providerError("failed to parse Google API response", err)
	}

	rs := &ResultSet{Items: make([]Result, 0, len(payload.Items))}
	for _, item := range payload.Items {
		rs.Items = append(rs.Items, Result{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
		})
	}
	return rs, nil
}

func statusText(resp *http.Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
}

// redact drops the query string, which carries the API key, from URL errors.
func (e *GoogleEngine) redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: e.baseURL, Err: urlErr.Err}
	}
	return err
}
