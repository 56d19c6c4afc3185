package search

import "context"

// Engine runs one validated request against a search provider.
type Engine interface {
	Name() string
	Search(ctx context.Context, req Request) (*ResultSet, error)
}
