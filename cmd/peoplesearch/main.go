package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Adithya-Monish-Kumar-K/people-search/internal/analytics"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/menu"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/people"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/searcher"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/searcher/cache"
	"github.com/Adithya-Monish-Kumar-K/people-search/internal/source"
	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/config"
	apperrors "github.com/Adithya-Monish-Kumar-K/people-search/pkg/errors"
	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/health"
	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/kafka"
	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/metrics"
	"github.com/Adithya-Monish-Kumar-K/people-search/pkg/postgres"
	pkgredis "github.com/Adithya-Monish-Kumar-K/people-search/pkg/redis"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "people-search: %v\n", err)
		os.Exit(apperrors.ExitCode(err))
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	dataPath := flag.String("data", "", "path to the people file, one record per line")
	flushCache := flag.Bool("flush-cache", false, "drop all cached search results on startup")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return apperrors.New(apperrors.ErrInvalidConfig, apperrors.ExitConfig, err.Error())
	}
	switch {
	case *dataPath != "":
		cfg.Input.Path = *dataPath
	case flag.NArg() > 0 && cfg.Input.Path == "":
		cfg.Input.Path = flag.Arg(0)
	}
	if err := cfg.Validate(); err != nil {
		return apperrors.New(apperrors.ErrInvalidConfig, apperrors.ExitConfig, err.Error())
	}

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loader, closeLoader, err := newLoader(ctx, cfg)
	if err != nil {
		return err
	}
	loadStart := time.Now()
	lines, err := loader.Load(ctx)
	closeLoader()
	if err != nil {
		return err
	}
	all := people.New(lines)
	loadEvent := analytics.LoadEvent{
		Type:      analytics.EventLoad,
		Source:    loader.Name(),
		Records:   all.Len(),
		Terms:     all.Index().Terms(),
		LatencyMs: time.Since(loadStart).Milliseconds(),
		Timestamp: time.Now(),
	}
	slog.Info("people loaded", "source", loadEvent.Source, "records", loadEvent.Records, "terms", loadEvent.Terms)

	var opts []searcher.Option
	checker := health.NewChecker()
	checker.Register("people_index", func(context.Context) health.ComponentHealth {
		return health.ComponentHealth{Status: health.StatusUp, Message: fmt.Sprintf("%d records", all.Len())}
	})

	var queryCache *cache.QueryCache
	if cfg.Redis.Enabled {
		redisClient, err := pkgredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			slog.Warn("redis unavailable, search caching disabled", "error", err)
		} else {
			defer redisClient.Close()
			queryCache = cache.New(redisClient, cfg.Redis.CacheTTL, cache.Fingerprint(all.Lines()))
			opts = append(opts, searcher.WithCache(queryCache))
			if *flushCache {
				if err := queryCache.Invalidate(ctx); err != nil {
					slog.Warn("cache flush failed", "error", err)
				}
			}
			checker.Register("redis", func(ctx context.Context) health.ComponentHealth {
				if err := redisClient.Ping(ctx); err != nil {
					return health.ComponentHealth{Status: health.StatusDegraded, Message: err.Error()}
				}
				return health.ComponentHealth{Status: health.StatusUp}
			})
			slog.Info("search cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.CacheTTL)
		}
	}

	if cfg.Analytics.Enabled {
		producer := kafka.NewProducer(cfg.Kafka, cfg.Kafka.Topics.SearchEvents)
		defer producer.Close()
		collector := analytics.NewCollector(producer, cfg.Analytics.BufferSize)
		collector.Start(ctx)
		defer collector.Close()
		collector.Track(loadEvent)
		opts = append(opts, searcher.WithCollector(collector))
		slog.Info("analytics enabled", "topic", cfg.Kafka.Topics.SearchEvents)
	}

	if cfg.Metrics.Enabled {
		m := metrics.New(nil)
		opts = append(opts, searcher.WithMetrics(m))
		shutdown := metrics.StartServer(cfg.Metrics.Port, m, map[string]http.Handler{
			"/health/ready": checker.ReadyHandler(),
		})
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("metrics server shutdown error", "error", err)
			}
		}()
	}

	svc := searcher.New(all, opts...)

	// The menu blocks on stdin, so it runs aside and a signal ends the
	// process without waiting for the next line.
	errCh := make(chan error, 1)
	go func() {
		errCh <- menu.New(svc, os.Stdin, os.Stdout).Run(ctx)
	}()
	select {
	case err = <-errCh:
	case <-ctx.Done():
		err = nil
		slog.Info("shutdown signal received")
	}

	if queryCache != nil {
		hits, misses := queryCache.Stats()
		slog.Info("search cache stats", "hits", hits, "misses", misses)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return apperrors.New(apperrors.ErrInternal, apperrors.ExitFailure, err.Error())
	}
	return nil
}

// newLoader picks the configured record source. The returned close function
// releases whatever the source holds open and is safe to call once.
func newLoader(ctx context.Context, cfg *config.Config) (source.Loader, func(), error) {
	switch cfg.Input.Source {
	case config.SourcePostgres:
		client, err := postgres.New(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, apperrors.New(apperrors.ErrSourceUnavailable, apperrors.ExitUnavailable, err.Error())
		}
		loader := source.Postgres{
			DB:    client.DB,
			Query: cfg.Input.Query,
			Retry: cfg.Input.Retry,
		}
		return loader, func() { client.Close() }, nil
	default:
		return source.File{Path: cfg.Input.Path}, func() {}, nil
	}
}
