package search

import (
	"errors"
	"math"
	"testing"
)

func TestParseRequestRejectsMissingOrNonStringQuery(t *testing.T) {
	cases := map[string]map[string]any{
		"nil args":      nil,
		"missing":       {"num_results": float64(3)},
		"null":          {"query": nil},
		"number":        {"query": float64(42)},
		"bool":          {"query": true},
		"list":          {"query": []any{"a"}},
		"blank":         {"query": "   "},
		"wrong type":    {"query": "go", "language": float64(1)},
		"count string":  {"query": "go", "num_results": "5"},
		"count NaN":     {"query": "go", "num_results": math.NaN()},
		"bad safe mode": {"query": "go", "safe_search": "strict"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseRequest(args)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
}

func TestParseRequestDefaultsAndClamps(t *testing.T) {
	req, err := ParseRequest(map[string]any{"query": "Italian restaurants Boston"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.ResultCount != DefaultResultCount {
		t.Fatalf("expected default count %d, got %d", DefaultResultCount, req.ResultCount)
	}
	if req.DateRestrict != "" || req.Language != "" || req.Country != "" || req.SafeSearch != "" {
		t.Fatalf("expected no optional fields, got %#v", req)
	}

	for in, want := range map[any]int{
		float64(3):           3,
		float64(0):           MinResultCount,
		float64(-4):          MinResultCount,
		float64(25):          MaxResultCount,
		int(7):               7,
		float64(4.9):         4,
		float64(10.9):        MaxResultCount,
		float64(1e20):        MaxResultCount,
		float64(3.7e19):      MaxResultCount,
		math.Inf(1):          MaxResultCount,
		math.Inf(-1):         MinResultCount,
		int64(math.MaxInt64): MaxResultCount,
	} {
		req, err := ParseRequest(map[string]any{"query": "go", "num_results": in})
		if err != nil {
			t.Fatalf("parse %v: %v", in, err)
		}
		if req.ResultCount != want {
			t.Fatalf("num_results %v: expected %d, got %d", in, want, req.ResultCount)
		}
	}
}

func TestParseRequestOptionalFields(t *testing.T) {
	req, err := ParseRequest(map[string]any{
		"query":         "go",
		"date_restrict": "w2",
		"language":      "fr",
		"country":       "",
		"safe_search":   "high",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.DateRestrict != "w2" || req.Language != "fr" || req.SafeSearch != "high" {
		t.Fatalf("unexpected request: %#v", req)
	}
	if req.Country != "" {
		t.Fatalf("empty country should stay empty, got %q", req.Country)
	}
}
