package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	httptransport "github.com/behnamfe76/user-service/internal/api/http"
	"github.com/behnamfe76/user-service/internal/api/http/handlers"
	"github.com/behnamfe76/user-service/internal/auth"
	"github.com/behnamfe76/user-service/internal/config"
	"github.com/behnamfe76/user-service/internal/events"
	"github.com/behnamfe76/user-service/internal/observability"
	"github.com/behnamfe76/user-service/internal/persistence"
	"github.com/behnamfe76/user-service/internal/repository"
	"github.com/behnamfe76/user-service/internal/service"
	"github.com/behnamfe76/user-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if cfg.Auth.JWTSecret == config.DevJWTSecret {
		logger.Warn("using development JWT secret; set AUTH_JWT_SECRET")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var userRepo repository.UserRepository
	if pg.Enabled() {
		userRepo = repository.NewUserRepository(pg.PoolHandle())
	} else {
		userRepo = repository.NewMemoryUserRepository()
	}
	userRepo = repository.NewCachedUserRepository(userRepo, redis.Client, cfg.Redis.UserCacheTTL(), logger)

	memoryKiB, iterations, parallelism := cfg.Auth.Argon2Params()
	hasher := auth.NewPasswordHasher(auth.Argon2Config{
		MemoryKiB:   memoryKiB,
		Iterations:  iterations,
		Parallelism: parallelism,
	})
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL(), auth.SystemClock)
	authenticator := auth.NewAuthenticator(tokens, userRepo)

	dispatcher := events.NewInMemoryDispatcher()
	notifications := worker.NewNotificationWorker(
		service.NewNotificationService(logger, cfg.Notification), logger, worker.DefaultQueueSize)
	notifications.Subscribe(dispatcher)
	notifications.Start(ctx)

	authService := service.NewAuthService(service.AuthDependencies{
		UserRepo: userRepo,
		Hasher:   hasher,
		Tokens:   tokens,
		Logger:   logger,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo:   userRepo,
		Hasher:     hasher,
		Dispatcher: dispatcher,
		Logger:     logger,
	})

	metrics := observability.NewMetrics()
	app := httptransport.NewServer(httptransport.ServerOptions{
		AppName:        cfg.App.Name,
		Logger:         logger,
		Metrics:        metrics,
		RequestTimeout: cfg.App.RequestTimeout(),
		Routes: httptransport.RouteConfig{
			Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
			Users:          handlers.NewUsersHandler(userService),
			Auth:           handlers.NewAuthHandler(authService),
			AuthMiddleware: auth.NewAuthMiddleware(authenticator),
		},
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	cancel()
	notifications.Wait()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
