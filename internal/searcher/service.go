// Package searcher answers menu searches against the loaded people, adding
// result caching, metrics and analytics around the in-memory query engine.
package searcher

import (
	"context"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/people-search/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/people"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/searcher/parser"
	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/metrics"
)

type Option func(*Service)

// WithCache serves repeated queries from c.
func WithCache(c *cache.QueryCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithCollector tracks every search on c.
func WithCollector(c *analytics.Collector) Option {
	return func(s *Service) { s.collector = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

type Service struct {
	people    *people.People
	cache     *cache.QueryCache
	collector *analytics.Collector
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func New(p *people.People, opts ...Option) *Service {
	s := &Service{
		people: p,
		logger: slog.Default().With("component", "searcher"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics != nil {
		s.metrics.RecordsLoaded.Set(float64(p.Len()))
		s.metrics.IndexTerms.Set(float64(p.Index().Terms()))
	}
	return s
}

// People returns the full collection.
func (s *Service) People() *people.People {
	return s.people
}

// Find returns the records matching key under strategy. Results are the
// same with or without the cache.
func (s *Service) Find(ctx context.Context, key string, strategy string) *people.People {
	start := time.Now()
	compute := func() []int { return s.people.Match(key, strategy) }

	var positions []int
	cacheHit := false
	strat := parser.ParseStrategy(strategy)
	if s.cache != nil && strat != parser.StrategyUnknown {
		positions, cacheHit = s.cache.GetOrCompute(ctx, strategy, key, compute)
	} else {
		positions = compute()
	}
	result := s.people.Subset(positions)
	elapsed := time.Since(start)

	s.observe(strat, result.Len(), cacheHit, elapsed)
	if s.collector != nil {
		eventType := analytics.EventSearch
		if result.Len() == 0 {
			eventType = analytics.EventZeroResult
		}
		s.collector.Track(analytics.SearchEvent{
			Type:      eventType,
			Key:       key,
			Strategy:  strategy,
			SubKeys:   len(tokenizer.Split(key)),
			Matches:   result.Len(),
			Total:     s.people.Len(),
			LatencyUs: elapsed.Microseconds(),
			CacheHit:  cacheHit,
			Timestamp: time.Now(),
		})
	}
	s.logger.Info("search",
		"key", key,
		"strategy", strategy,
		"matches", result.Len(),
		"cache_hit", cacheHit,
		"latency", elapsed,
	)
	return result
}

func (s *Service) observe(strat parser.Strategy, matches int, cacheHit bool, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	resultType := "match"
	if matches == 0 {
		resultType = "zero_result"
	}
	cacheStatus := "none"
	if s.cache != nil && strat != parser.StrategyUnknown {
		cacheStatus = "miss"
		if cacheHit {
			cacheStatus = "hit"
			s.metrics.CacheHitsTotal.Inc()
		} else {
			s.metrics.CacheMissesTotal.Inc()
		}
	}
	s.metrics.SearchQueriesTotal.WithLabelValues(strat.String(), resultType).Inc()
	s.metrics.SearchLatency.WithLabelValues(cacheStatus).Observe(elapsed.Seconds())
	s.metrics.SearchResultsCount.WithLabelValues(strat.String()).Observe(float64(matches))
}
