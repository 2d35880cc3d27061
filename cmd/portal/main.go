// @title        Campus Card Portal Gateway
// @version      1.0
// @description  Session-holding gateway in front of the campus card registration API.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/campuscard/portal-gateway/internal/api"
	"github.com/campuscard/portal-gateway/internal/api/metrics"
	"github.com/campuscard/portal-gateway/internal/api/middleware"
	"github.com/campuscard/portal-gateway/internal/core/domain"
	"github.com/campuscard/portal-gateway/internal/core/ports"
	"github.com/campuscard/portal-gateway/internal/core/service"
	"github.com/campuscard/portal-gateway/internal/core/session"
	"github.com/campuscard/portal-gateway/internal/infrastructure/db/memory"
	"github.com/campuscard/portal-gateway/internal/infrastructure/db/mongo"
	"github.com/campuscard/portal-gateway/internal/infrastructure/db/redis"
	"github.com/campuscard/portal-gateway/internal/infrastructure/http/handlers"
	"github.com/campuscard/portal-gateway/internal/infrastructure/queue"
	"github.com/campuscard/portal-gateway/internal/infrastructure/remote"
	"github.com/campuscard/portal-gateway/internal/pkg/config"
	"github.com/campuscard/portal-gateway/pkg/logger"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "campuscard-portal",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("portal gateway stopped")
	}
}

// backends are the storage adapters selected by configuration.
type backends struct {
	store     ports.SessionStore
	submits   ports.SubmitGuard
	audit     ports.AuditRepository
	readiness map[string]handlers.Pinger
	closers   []func(context.Context) error
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	b, err := openBackends(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer b.close(log)

	client, err := remote.New(remote.Config{BaseURL: cfg.Remote.URL, Timeout: cfg.Remote.Timeout}, logger.Component("remote"))
	if err != nil {
		return err
	}
	b.readiness["remote_api"] = client.Ping

	registry, err := session.NewRegistry(b.store, cfg.Session.CacheSize, logger.Component("session"))
	if err != nil {
		return err
	}

	// Audit workers outlive the HTTP server so late session changes drain.
	auditCtx, stopAudit := context.WithCancel(context.Background())
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, b.audit, logger.Component("audit"))
	dispatcher.Start(auditCtx)

	registry.Subscribe(func(ch domain.SessionChange) {
		metrics.SessionChangesTotal.WithLabelValues(string(ch.Reason)).Inc()
	})
	registry.Subscribe(dispatcher.OnSessionChange)

	e := api.NewRouter(api.Deps{
		Registry: registry,
		Service:  service.NewPortalService(client, b.submits, logger.Component("portal")),
		Logger:   log,
		Session: middleware.SessionConfig{
			CookieName: cfg.Session.CookieName,
			TTL:        cfg.Session.TTL,
			Secure:     cfg.Session.CookieSecure,
		},
		LoginRate:  cfg.Session.LoginRateLimit,
		LoginBurst: cfg.Session.LoginRateBurst,
		Readiness:  b.readiness,
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("session_backend", cfg.Session.Backend).Msg("portal gateway listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err := <-srvErr:
		if err != nil {
			stopAudit()
			dispatcher.Wait()
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("http shutdown")
	}

	stopAudit()
	dispatcher.Wait()
	return nil
}

func (b *backends) close(log zerolog.Logger) {
	for _, closeFn := range b.closers {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := closeFn(ctx); err != nil {
			log.Warn().Err(err).Msg("close backend")
		}
		cancel()
	}
}

func openBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backends, error) {
	b := &backends{readiness: make(map[string]handlers.Pinger)}

	var mongoDB *mongodriver.Database
	if cfg.Mongo.URI != "" {
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		mongoDB = db
		b.closers = append(b.closers, client.Disconnect)
		b.readiness["mongodb"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		b.audit = mongo.NewAuditRepository(db)
	} else {
		b.audit = memory.NewAuditRepository(logger.Component("audit"))
	}

	switch cfg.Session.Backend {
	case config.BackendRedis:
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			b.close(log)
			return nil, fmt.Errorf("redis: %w", err)
		}
		store := redis.NewSessionStore(rdb, cfg.Session.TTL)
		b.store = store
		b.submits = redis.NewSubmitGuard(rdb, cfg.Session.ReviewLockTTL)
		b.readiness["redis"] = store.Ping
		b.closers = append(b.closers, func(context.Context) error { return rdb.Close() })

	case config.BackendMongo:
		store := mongo.NewSessionStore(mongoDB, cfg.Session.TTL)
		if err := store.EnsureIndexes(ctx); err != nil {
			b.close(log)
			return nil, fmt.Errorf("mongo session indexes: %w", err)
		}
		b.store = store
		b.submits = memory.NewSubmitGuard(cfg.Session.ReviewLockTTL)

	default:
		log.Warn().Msg("memory session backend: sessions are lost on restart")
		b.store = memory.NewSessionStore()
		b.submits = memory.NewSubmitGuard(cfg.Session.ReviewLockTTL)
	}
	return b, nil
}
