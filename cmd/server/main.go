// Command server runs the Proton marketplace API.
//
// @title                       Proton Marketplace API
// @version                     1.0
// @description                 Multi-role marketplace: vendors, buyers, investors, employees and admins.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/proton-market/marketplace-api/internal/api"
	"github.com/proton-market/marketplace-api/internal/api/handler"
	"github.com/proton-market/marketplace-api/internal/core/auth"
	"github.com/proton-market/marketplace-api/internal/core/ports"
	"github.com/proton-market/marketplace-api/internal/core/service"
	"github.com/proton-market/marketplace-api/internal/infrastructure/db/memory"
	mongodb "github.com/proton-market/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/proton-market/marketplace-api/internal/infrastructure/db/redis"
	"github.com/proton-market/marketplace-api/internal/infrastructure/queue"
	"github.com/proton-market/marketplace-api/internal/pkg/config"
	"github.com/proton-market/marketplace-api/pkg/logger"
)

const (
	serviceName     = "marketplace-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.OptionsFromEnv(cfg.Env, cfg.LogLevel, serviceName))
	if cfg.UsesDefaultSecret() {
		log.Warn().Msg("JWT_SECRET not set, using the development secret")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// storage groups the persistence adapters for the selected backend.
type storage struct {
	users  ports.UserRepository
	docs   ports.DocumentStore
	audit  ports.AuditRepository
	checks map[string]handler.Pinger
	close  func(context.Context)
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer store.close(context.Background())

	// Without Redis, Idempotency-Keys are tracked per process and login
	// throttling is off.
	var (
		idem    ports.IdempotencyStore = memory.NewIdempotencyStore(0)
		limiter ports.LoginLimiter
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		idem = redisdb.NewIdempotencyStore(rdb, 0)
		limiter = redisdb.NewLoginLimiter(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		store.checks["redis"] = redisdb.Pinger(rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, idempotency keys are process-local and login throttling is disabled")
	}

	dispatcherCtx, stopDispatcher := context.WithCancel(context.Background())
	dispatcher := queue.NewAuditDispatcher(cfg.Audit.Workers, store.audit, logger.Component("audit"))
	dispatcher.Start(dispatcherCtx)
	defer func() {
		stopDispatcher()
		dispatcher.Wait()
	}()

	codec := auth.NewTokenCodec(cfg.Auth.JWTSecret, cfg.TokenTTL())
	authService := service.NewAuthService(
		store.users,
		auth.NewHasher(cfg.Auth.BcryptCost),
		codec,
		limiter,
		dispatcher,
		service.AuthOptions{AllowAdminSignup: cfg.Auth.AllowAdminSignup},
		logger.Component("auth"),
	)
	if _, err := authService.EnsureAdmin(ctx, cfg.Auth.AdminName, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		return err
	}
	marketplace := service.NewMarketplaceService(store.docs, idem, logger.Component("marketplace"))

	e := api.NewRouter(api.Dependencies{
		Sessions:     auth.NewSessionResolver(codec, store.users),
		Auth:         authService,
		Marketplace:  marketplace,
		HealthChecks: store.checks,
		Log:          logger.Component("http"),
		AllowOrigins: cfg.AllowOrigins(),
		Registerer:   prometheus.DefaultRegisterer,
		Gatherer:     prometheus.DefaultGatherer,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreBackend).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.StoreBackend == "memory" {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		docs := memory.NewDocumentStore()
		return &storage{
			users:  memory.NewUserRepository(docs),
			docs:   docs,
			audit:  memory.NewAuditRepository(docs),
			checks: map[string]handler.Pinger{},
			close:  func(context.Context) {},
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database, AppName: serviceName})
	if err != nil {
		return nil, err
	}
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	return &storage{
		users:  mongodb.NewUserRepository(db),
		docs:   mongodb.NewDocumentStore(db),
		audit:  mongodb.NewAuditRepository(db),
		checks: map[string]handler.Pinger{"mongodb": mongodb.Pinger(db)},
		close: func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				log.Warn().Err(err).Msg("mongodb disconnect failed")
			}
		},
	}, nil
}
