package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/flowlayout/internal/server"
	"github.com/matzehuels/flowlayout/pkg/cache"
	"github.com/matzehuels/flowlayout/pkg/observability"
	"github.com/matzehuels/flowlayout/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
		redis   cache.RedisConfig
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API over HTTP.

Endpoints:
  GET  /healthz
  POST /v1/layout          {"document": {...}, "options": {...}}
  POST /v1/compress        {"boxes": [...], "budget": 800}
  POST /v1/align           {"boxes": [...], "budget": 800}
  POST /v1/compress-align  {"boxes": [...], "budget": 800}
  POST /v1/truncate        {"boxes": [...], "lines": 2, "line_counts": [...]}
  GET  /v1/stats           layout, cache and request totals since start

Results are cached in the local cache directory, or in Redis when
--redis-addr is set. The Redis password is read from FLOWLAYOUT_REDIS_PASSWORD.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			redis.Password = os.Getenv("FLOWLAYOUT_REDIS_PASSWORD")
			return c.runServe(cmd.Context(), addr, noCache, redis)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&redis.Addr, "redis-addr", "", "Redis address for a shared cache (host:port)")
	cmd.Flags().IntVar(&redis.DB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&redis.Prefix, "redis-prefix", appName+":", "key prefix in Redis")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, redis cache.RedisConfig) error {
	var (
		store cache.Cache
		err   error
	)
	switch {
	case redis.Addr != "" && !noCache:
		store, err = cache.NewRedisCache(ctx, redis)
		if err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", redis.Addr, "db", redis.DB)
	default:
		store, err = newCache(noCache)
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}
	}

	runner := pipeline.NewRunner(store, newKeyer(), c.Logger)
	defer runner.Close()

	counters := observability.NewCounters()
	observability.Register(counters)

	return server.New(runner, c.Logger, server.WithCounters(counters)).ListenAndServe(ctx, addr)
}
