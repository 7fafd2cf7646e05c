package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/farmtrackhq/farmtrack-backend/api/routes"
	"github.com/farmtrackhq/farmtrack-backend/internal/activities"
	"github.com/farmtrackhq/farmtrack-backend/internal/auth"
	"github.com/farmtrackhq/farmtrack-backend/internal/crops"
	"github.com/farmtrackhq/farmtrack-backend/internal/notifications"
	"github.com/farmtrackhq/farmtrack-backend/internal/reminders"
	"github.com/farmtrackhq/farmtrack-backend/internal/resources"
	"github.com/farmtrackhq/farmtrack-backend/internal/users"
	"github.com/farmtrackhq/farmtrack-backend/pkg/auth/session"
	"github.com/farmtrackhq/farmtrack-backend/pkg/config"
	"github.com/farmtrackhq/farmtrack-backend/pkg/db"
	"github.com/farmtrackhq/farmtrack-backend/pkg/logger"
	"github.com/farmtrackhq/farmtrack-backend/pkg/metrics"
	"github.com/farmtrackhq/farmtrack-backend/pkg/migrate"
	"github.com/farmtrackhq/farmtrack-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	registerService, err := auth.NewRegisterService(auth.RegisterServiceParams{
		TxRunner: dbClient,
		UserRepoFactory: func(tx *gorm.DB) auth.RegisterUserRepository {
			return users.NewRepository(tx)
		},
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(ctx, "failed to create register service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	reminderMetrics := metrics.NewReminderMetrics(registry)

	notificationsRepo := notifications.NewRepository(dbClient.DB())

	evaluator, err := reminders.NewEvaluator(notificationsRepo, logg, reminderMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create reminder evaluator", err)
		os.Exit(1)
	}

	cropsRepo := crops.NewRepository(dbClient.DB())
	cropsService, err := crops.NewService(cropsRepo, dbClient, evaluator)
	if err != nil {
		logg.Error(ctx, "failed to create crops service", err)
		os.Exit(1)
	}

	resourcesService, err := resources.NewService(resources.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(ctx, "failed to create resources service", err)
		os.Exit(1)
	}

	activitiesService, err := activities.NewService(activities.NewRepository(dbClient.DB()), cropsRepo, evaluator)
	if err != nil {
		logg.Error(ctx, "failed to create activities service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notificationsRepo)
	if err != nil {
		logg.Error(ctx, "failed to create notifications service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Dependencies{
		Config:               cfg,
		Logger:               logg,
		DB:                   dbClient,
		Redis:                redisClient,
		SessionVerifier:      sessionManager,
		MetricsGatherer:      registry,
		AuthService:          authService,
		RegisterService:      registerService,
		CropsService:         cropsService,
		ResourcesService:     resourcesService,
		ActivitiesService:    activitiesService,
		NotificationsService: notificationsService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()

	var closeErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		closeErr = multierr.Append(closeErr, err)
	}
	if err := redisClient.Close(); err != nil {
		closeErr = multierr.Append(closeErr, err)
	}
	if err := dbClient.Close(); err != nil {
		closeErr = multierr.Append(closeErr, err)
	}
	if closeErr != nil {
		logg.Error(ctx, "shutdown completed with errors", closeErr)
		os.Exit(1)
	}
	logg.Info(ctx, "api server stopped cleanly")
}
