package search

import (
	"math"
	"strings"

	"github.com/spf13/cast"
)

// Argument names of the google_search tool.
const (
	ArgQuery        = "query"
	ArgNumResults   = "num_results"
	ArgDateRestrict = "date_restrict"
	ArgLanguage     = "language"
	ArgCountry      = "country"
	ArgSafeSearch   = "safe_search"
)

// ParseRequest turns raw tool arguments into a Request. The result count is
// clamped to [MinResultCount, MaxResultCount]; date, language and country
// tokens are passed through as given.
func ParseRequest(args map[string]any) (Request, error) {
	if args == nil {
		return Request{}, invalidArgument("%s is required", ArgQuery)
	}

	raw, ok := args[ArgQuery]
	if !ok || raw == nil {
		return Request{}, invalidArgument("%s is required", ArgQuery)
	}
	query, ok := raw.(string)
	if !ok {
		return Request{}, invalidArgument("%s must be a string, got %T", ArgQuery, raw)
	}
	if strings.TrimSpace(query) == "" {
		return Request{}, invalidArgument("%s must not be empty", ArgQuery)
	}

	req := Request{
		Query:       query,
		ResultCount: DefaultResultCount,
	}

	if v, ok := args[ArgNumResults]; ok && v != nil {
		n, err := parseCount(v)
		if err != nil {
			return Request{}, err
		}
		req.ResultCount = n
	}

	var err error
	if req.DateRestrict, err = optionalString(args, ArgDateRestrict); err != nil {
		return Request{}, err
	}
	if req.Language, err = optionalString(args, ArgLanguage); err != nil {
		return Request{}, err
	}
	if req.Country, err = optionalString(args, ArgCountry); err != nil {
		return Request{}, err
	}
	if req.SafeSearch, err = optionalString(args, ArgSafeSearch); err != nil {
		return Request{}, err
	}

	switch req.SafeSearch {
	case "", SafeSearchOff, SafeSearchMedium, SafeSearchHigh:
	default:
		return Request{}, invalidArgument("%s must be one of %s, %s or %s, got %q",
			ArgSafeSearch, SafeSearchOff, SafeSearchMedium, SafeSearchHigh, req.SafeSearch)
	}

	return req, nil
}

// parseCount converts num_results and clamps it. The clamp happens before the
// int conversion so values past the int range still land on MaxResultCount.
func parseCount(v any) (int, error) {
	switch v.(type) {
	case string, bool:
		return 0, invalidArgument("%s must be a number, got %T", ArgNumResults, v)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0, invalidArgument("%s must be a number, got %T", ArgNumResults, v)
	}
	switch {
	case f >= MaxResultCount:
		return MaxResultCount, nil
	case f < MinResultCount:
		return MinResultCount, nil
	}
	return int(f), nil
}

func optionalString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalidArgument("%s must be a string, got %T", key, v)
	}
	return strings.TrimSpace(s), nil
}
