package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/student-spending/spendboard/internal/backend"
)

//go:generate mockgen -source=service.go -destination=backend_mock.go -package=stats

const dateLayout = "2006-01-02"

var ErrInvalidQuery = errors.New("invalid stats query")

// Backend is the part of the remote service that computes statistics.
type Backend interface {
	Aggregate(ctx context.Context, start, end string, rng backend.Range) (*backend.AggregateResult, error)
	Classify(ctx context.Context, useLLM bool) (*backend.ClassifyResult, error)
}

// Query selects an inclusive date window and its bucket size.
type Query struct {
	Start string
	End   string
	Range backend.Range
}

// DefaultQuery covers the last 30 days in monthly buckets.
func DefaultQuery(now time.Time) Query {
	return Query{
		Start: now.AddDate(0, 0, -30).Format(dateLayout),
		End:   now.Format(dateLayout),
		Range: backend.RangeMonth,
	}
}

func (q Query) Validate() error {
	start, err := time.Parse(dateLayout, q.Start)
	if err != nil {
		return fmt.Errorf("%w: start must be a date in YYYY-MM-DD format", ErrInvalidQuery)
	}

	end, err := time.Parse(dateLayout, q.End)
	if err != nil {
		return fmt.Errorf("%w: end must be a date in YYYY-MM-DD format", ErrInvalidQuery)
	}

	if start.After(end) {
		return fmt.Errorf("%w: start must not be after end", ErrInvalidQuery)
	}

	switch q.Range {
	case backend.RangeDay, backend.RangeWeek, backend.RangeMonth:
	default:
		return fmt.Errorf("%w: range must be one of day, week, month", ErrInvalidQuery)
	}

	return nil
}

// Service serves aggregates from a short-lived cache scoped per caller token.
type Service struct {
	newBackend func(token string) Backend
	cache      *cache.Cache
}

func NewService(newBackend func(token string) Backend, ttl time.Duration) *Service {
	return &Service{
		newBackend: newBackend,
		cache:      cache.New(ttl, 2*ttl),
	}
}

func (s *Service) Aggregate(ctx context.Context, token string, q Query) (*backend.AggregateResult, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	key := cacheKey(token, q)

	if cached, ok := s.cache.Get(key); ok {
		return cached.(*backend.AggregateResult), nil
	}

	result, err := s.newBackend(token).Aggregate(ctx, q.Start, q.End, q.Range)
	if err != nil {
		return nil, fmt.Errorf("fetching aggregate: %w", err)
	}

	s.cache.Set(key, result, cache.DefaultExpiration)

	return result, nil
}

// Classify runs categorization remotely and drops the caller's cached aggregates,
// which it may have changed.
func (s *Service) Classify(ctx context.Context, token string, useLLM bool) (*backend.ClassifyResult, error) {
	result, err := s.newBackend(token).Classify(ctx, useLLM)
	if err != nil {
		return nil, fmt.Errorf("classifying transactions: %w", err)
	}

	s.Invalidate(token)

	return result, nil
}

// Invalidate drops every cached aggregate of token, for example after an upload.
func (s *Service) Invalidate(token string) {
	prefix := token + "|"

	for key := range s.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			s.cache.Delete(key)
		}
	}
}

func cacheKey(token string, q Query) string {
	return strings.Join([]string{token, q.Start, q.End, string(q.Range)}, "|")
}
