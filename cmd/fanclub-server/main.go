// cmd/fanclub-server/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	"fanclub/internal/api"
	"fanclub/internal/catalog"
	"fanclub/internal/common/aws"
	"fanclub/internal/common/cache"
	"fanclub/internal/common/camunda"
	"fanclub/internal/common/config"
	"fanclub/internal/common/database"
	"fanclub/internal/common/logger"
	"fanclub/internal/common/observability"
	"fanclub/internal/notify"
	"fanclub/internal/search"
	"fanclub/internal/store"

	// Artist Workers (3)
	aca "fanclub/internal/workers/artist/artist-compute-analytics"
	acc "fanclub/internal/workers/artist/artist-create-content"
	amt "fanclub/internal/workers/artist/artist-manage-tier"

	// Listener Workers (5)
	fcs "fanclub/internal/workers/listener/fan-cancel-subscription"
	fct "fanclub/internal/workers/listener/fan-change-tier"
	fca "fanclub/internal/workers/listener/fan-check-content-access"
	fsa "fanclub/internal/workers/listener/fan-search-artists"
	fsu "fanclub/internal/workers/listener/fan-subscribe"

	// Communication Workers (1)
	fns "fanclub/internal/workers/communication/fan-notify-subscription"
)

var connectRetry = &camunda.RetryConfig{MaxRetries: 10, BaseDelay: 2 * time.Second, MaxDelay: 30 * time.Second}

func main() {
	var (
		cfg *config.Config
		err error
	)
	if path := os.Getenv("FANCLUB_CONFIG"); path != "" {
		cfg, err = config.LoadFromFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting fanclub server...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New(cfg.Observability.ServiceName, cfg.Observability.JaegerEndpoint)
	defer obs.Shutdown()

	ctx := context.Background()
	checks := map[string]api.ReadinessCheck{}

	// --- Init PostgreSQL with retry ---
	var db *sql.DB
	if cfg.Database.Postgres.Enabled {
		var pg *database.PostgresClient
		err = camunda.Retry(ctx, connectRetry, zapLog, "PostgreSQL connection", func(ctx context.Context) error {
			var err error
			if pg == nil {
				if pg, err = database.NewPostgres(cfg.Database.Postgres); err != nil {
					return err
				}
			}
			return pg.Ping(ctx)
		})
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		db = pg.DB
		checks["postgres"] = pg.Ping
		zapLog.Info("PostgreSQL connected successfully")
	}

	// --- Init Redis with retry ---
	var analyticsCache *cache.AnalyticsCache
	if cfg.Database.Redis.Enabled {
		var rc *database.RedisClient
		err = camunda.Retry(ctx, connectRetry, zapLog, "Redis connection", func(ctx context.Context) error {
			var err error
			if rc == nil {
				if rc, err = database.NewRedis(cfg.Database.Redis); err != nil {
					return err
				}
			}
			return rc.Ping(ctx)
		})
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rc.Close()
		analyticsCache = cache.NewAnalyticsCache(rc.Client, config.GetDuration(cfg.Cache.AnalyticsTTL))
		checks["redis"] = rc.Ping
		zapLog.Info("Redis connected successfully")
	}

	// --- Load catalog and build the store ---
	snap, err := catalog.Load(ctx, cfg.Catalog, db, cfg.Store.MaxTiersPerArtist)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}

	st, err := store.New(snap, cfg.App.CurrentUserID,
		store.WithMaxTiersPerArtist(cfg.Store.MaxTiersPerArtist),
		store.WithChangeHook(func(ctx context.Context, artistID string) {
			if err := analyticsCache.Invalidate(ctx, artistID); err != nil {
				log.Warn("analytics cache invalidation failed", map[string]interface{}{
					"artistId": artistID,
					"error":    err.Error(),
				})
			}
		}),
	)
	if err != nil {
		zapLog.Fatal("store init failed", zap.Error(err))
	}
	zapLog.Info("Catalog loaded",
		zap.String("source", cfg.Catalog.Source),
		zap.Int("artists", len(snap.Artists)),
		zap.Int("tiers", len(snap.Tiers)),
	)

	// --- Init artist search ---
	var searcher search.Searcher
	switch cfg.Search.Backend {
	case "elasticsearch":
		var esClient *database.ElasticsearchClient
		err = camunda.Retry(ctx, connectRetry, zapLog, "Elasticsearch connection", func(ctx context.Context) error {
			var err error
			if esClient == nil {
				if esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch); err != nil {
					return err
				}
			}
			return esClient.Ping(ctx)
		})
		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		searcher = search.NewElasticSearcher(esClient.Client, esClient.Index)
		checks["elasticsearch"] = esClient.Ping
		zapLog.Info("Elasticsearch connected successfully")
	default:
		searcher = search.NewMemorySearcher(cfg.Search.FuzzyMinLen)
	}
	if err := searcher.Index(ctx, st.ListArtists()); err != nil {
		zapLog.Fatal("artist indexing failed", zap.Error(err))
	}

	// --- Init notification clients ---
	var sesClient notify.SESService
	var snsClient notify.SNSService
	if cfg.Notifications.Email.Enabled || cfg.Notifications.Events.Enabled {
		s, n, err := aws.NewClients(ctx, cfg.Notifications.AWS.Region)
		if err != nil {
			zapLog.Fatal("aws clients failed", zap.Error(err))
		}
		sesClient, snsClient = s, n
	}
	notifier := notify.New(notify.Config{
		EmailEnabled:  cfg.Notifications.Email.Enabled,
		FromEmail:     cfg.Notifications.Email.FromEmail,
		EventsEnabled: cfg.Notifications.Events.Enabled,
		TopicARN:      cfg.Notifications.Events.TopicARN,
	}, sesClient, snsClient, log)

	// --- START: Register Workers ---
	var (
		zeebe   *camunda.Client
		workers []worker.JobWorker
	)
	if cfg.Camunda.Enabled {
		zeebe, err = camunda.NewClient(ctx, camunda.ConfigFrom(cfg.Camunda), zapLog)
		if err != nil {
			zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
		}
		checks["zeebe"] = zeebe.HealthCheck
		zapLog.Info("Zeebe client connected successfully")

		wc := func(taskType string) config.WorkerConfig { return config.GetWorkerConfig(cfg, taskType) }
		regs := []camunda.Registration{
			// --- 1. Listener Workers (5) ---
			{TaskType: fsu.TaskType, Handle: fsu.NewHandler(fsu.LoadConfig(wc(fsu.TaskType)), st, log).Handle},
			{TaskType: fcs.TaskType, Handle: fcs.NewHandler(fcs.LoadConfig(wc(fcs.TaskType)), st, log).Handle},
			{TaskType: fct.TaskType, Handle: fct.NewHandler(fct.LoadConfig(wc(fct.TaskType)), st, log).Handle},
			{TaskType: fca.TaskType, Handle: fca.NewHandler(fca.LoadConfig(wc(fca.TaskType)), st, log).Handle},
			{TaskType: fsa.TaskType, Handle: fsa.NewHandler(fsa.LoadConfig(wc(fsa.TaskType), cfg.Search), searcher, log).Handle},

			// --- 2. Artist Workers (3) ---
			{TaskType: amt.TaskType, Handle: amt.NewHandler(amt.LoadConfig(wc(amt.TaskType)), st, log).Handle},
			{TaskType: acc.TaskType, Handle: acc.NewHandler(acc.LoadConfig(wc(acc.TaskType)), st, log).Handle},
			{TaskType: aca.TaskType, Handle: aca.NewHandler(aca.LoadConfig(wc(aca.TaskType)), st, analyticsCache, log).Handle},

			// --- 3. Communication Workers (1) ---
			{TaskType: fns.TaskType, Handle: fns.NewHandler(fns.LoadConfig(wc(fns.TaskType)), st, notifier, log).Handle},
		}
		workers = camunda.StartAll(zeebe.GetClient(), cfg, regs, zapLog)
		zapLog.Info("Workers registered", zap.Int("started", len(workers)), zap.Int("total", len(regs)))
	} else {
		zapLog.Info("Camunda disabled, running HTTP API only")
	}

	// --- HTTP API ---
	srv := api.NewServer(api.Options{
		Store:         st,
		Searcher:      searcher,
		Cache:         analyticsCache,
		Logger:        log,
		Observability: obs,
		MaxResults:    cfg.Search.MaxResults,
		Checks:        checks,
	})
	httpServer := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      srv.Router(),
		ReadTimeout:  config.GetDuration(cfg.HTTP.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.HTTP.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.HTTP.Address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.HTTP.ShutdownTimeout))
	defer cancel()

	for _, jw := range workers {
		jw.Close()
		jw.AwaitClose()
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}
	if zeebe != nil {
		if err := zeebe.Close(); err != nil {
			zapLog.Error("Error closing Zeebe client", zap.Error(err))
		}
	}

	zapLog.Info("fanclub server stopped")
}
