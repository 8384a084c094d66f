// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"idcheck/internal/identity/domainpolicy"
	"idcheck/internal/identity/handler"
	"idcheck/internal/identity/lookup"
	"idcheck/internal/identity/lookup/directory"
	"idcheck/internal/identity/lookup/record"
	identitymetrics "idcheck/internal/identity/metrics"
	"idcheck/internal/identity/service"
	"idcheck/internal/platform/config"
	"idcheck/internal/platform/httpserver"
	"idcheck/internal/platform/logger"
	platformmetrics "idcheck/internal/platform/metrics"
	"idcheck/internal/platform/middleware"
	platformredis "idcheck/internal/platform/redis"
	ratelimitmw "idcheck/internal/ratelimit/middleware"
	"idcheck/internal/ratelimit/store/bucket"
	"idcheck/pkg/audit"
	auditkafka "idcheck/pkg/audit/kafka"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Audit sink: Kafka when brokers are configured, otherwise discarded.
	var sink audit.Sink = audit.Discard{}
	if len(cfg.Kafka.Brokers) > 0 {
		publisher, err := auditkafka.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic, auditkafka.WithLogger(log))
		if err != nil {
			log.Error("failed to connect audit publisher", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		sink = publisher
	}

	// Fallback tier: committed records in Postgres, or the in-memory store
	// for local development.
	var records lookup.Tier
	if cfg.Postgres.DSN != "" {
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN)
		if err != nil {
			log.Error("failed to create postgres pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		records = record.NewPostgres(pool)
	} else {
		log.Warn("no postgres DSN configured, using in-memory record store")
		records = record.NewMemoryStore()
	}

	dir := directory.New(
		cfg.Directory.BaseURL,
		cfg.Directory.SigningKey,
		cfg.Directory.Issuer,
		cfg.Directory.Timeout,
	)

	checkMetrics := identitymetrics.New()
	tiered := lookup.NewTiered(dir, records,
		lookup.WithTimeout(cfg.Directory.Timeout),
		lookup.WithLogger(log),
		lookup.WithMetrics(checkMetrics),
		lookup.WithAuditSink(sink),
	)

	svc, err := service.New(tiered, dir,
		domainpolicy.New(cfg.AllowedDomains, cfg.DeniedDomains),
		cfg.DefaultRegion,
		service.WithLogger(log),
		service.WithMetrics(checkMetrics),
		service.WithAuditSink(sink),
	)
	if err != nil {
		log.Error("failed to build verification service", "error", err)
		os.Exit(1)
	}

	// Resend throttle: shared counters in Redis when configured.
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	var throttleStore ratelimitmw.BucketStore = bucket.NewMemoryStore()
	if redisClient != nil {
		defer redisClient.Close()
		throttleStore = bucket.NewRedisStore(redisClient.Client)
	}
	throttle := ratelimitmw.NewThrottle(throttleStore, cfg.Resend.Limit, cfg.Resend.Window, log)

	httpMetrics := platformmetrics.New()
	router := chi.NewRouter()
	router.Use(middleware.RequestMetadata)
	router.Use(httpMetrics.Middleware)
	handler.New(svc, log, handler.WithResendMiddleware(throttle.Limit)).Register(router)
	router.Get("/healthz", healthz(redisClient))
	router.Method(http.MethodGet, "/metrics", platformmetrics.Handler())

	srv := httpserver.New(cfg.Addr, router)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting idcheck", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}

func healthz(redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}
