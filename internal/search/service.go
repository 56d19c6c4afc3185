package search

import (
	"context"

	"github.com/kayz/google-search/internal/logger"
	"github.com/kayz/google-search/internal/ratelimit"
)

// Gate admits or denies a search before any network call is made.
type Gate interface {
	Acquire() ratelimit.Decision
}

// Service validates tool arguments, applies the rate gate and hands the
// request to its engine.
type Service struct {
	engine Engine
	gate   Gate
}

// NewService wires an engine to a gate. A nil gate gets the default ceiling.
func NewService(engine Engine, gate Gate) *Service {
	if gate == nil {
		gate = ratelimit.New(ratelimit.DefaultPerMinute)
	}
	return &Service{
		engine: engine,
		gate:   gate,
	}
}

// Search parses raw arguments and runs the request.
func (s *Service) Search(ctx context.Context, args map[string]any) (*ResultSet, error) {
	req, err := ParseRequest(args)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx, req)
}

// Run executes an already validated request.
func (s *Service) Run(ctx context.Context, req Request) (*ResultSet, error) {
	decision := s.gate.Acquire()
	if !decision.Granted {
		logger.Warn("[Search] rate limit reached, rejecting query")
		return nil, rateLimited()
	}
	logger.Debug("[Search] admitted, %d searches left in window", decision.Remaining)

	rs, err := s.engine.Search(ctx, req)
	if err != nil {
		if KindOf(err) == KindUnknown {
			err = providerError(s.engine.Name()+" search failed", err)
		}
		return nil, err
	}
	if rs == nil {
		rs = &ResultSet{}
	}
	logger.Debug("[Search] %s returned %d results", s.engine.Name(), len(rs.Items))
	return rs, nil
}
