package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farmtrackhq/farmtrack-backend/api/controllers"
	"github.com/farmtrackhq/farmtrack-backend/api/middleware"
	"github.com/farmtrackhq/farmtrack-backend/internal/activities"
	"github.com/farmtrackhq/farmtrack-backend/internal/auth"
	"github.com/farmtrackhq/farmtrack-backend/internal/crops"
	"github.com/farmtrackhq/farmtrack-backend/internal/notifications"
	"github.com/farmtrackhq/farmtrack-backend/internal/resources"
	"github.com/farmtrackhq/farmtrack-backend/pkg/auth/session"
	"github.com/farmtrackhq/farmtrack-backend/pkg/config"
	"github.com/farmtrackhq/farmtrack-backend/pkg/logger"
	"github.com/farmtrackhq/farmtrack-backend/pkg/redis"
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

// redisBackend is the slice of the redis client the router wires into
// middleware and health checks.
type redisBackend interface {
	middleware.RateLimitStore
	redis.IdempotencyStore
	redis.Pinger
}

// Dependencies carries everything the router mounts.
type Dependencies struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              dbPinger
	Redis           redisBackend
	SessionVerifier session.AccessSessionChecker
	MetricsGatherer prometheus.Gatherer

	AuthService          auth.Service
	RegisterService      auth.RegisterService
	CropsService         crops.Service
	ResourcesService     resources.Service
	ActivitiesService    activities.Service
	NotificationsService notifications.Service
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	// deps.Redis stays a nil interface when no redis client is configured,
	// which the middleware nil checks rely on.
	var rateStore middleware.RateLimitStore
	var idemStore redis.IdempotencyStore
	var redisPinger redis.Pinger
	if deps.Redis != nil {
		rateStore = deps.Redis
		idemStore = deps.Redis
		redisPinger = deps.Redis
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, rateStore, logg)).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, rateStore, logg)).Post("/register", controllers.AuthRegister(deps.RegisterService, deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionVerifier, logg))
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/crops", func(r chi.Router) {
			r.Post("/", controllers.CreateCrop(deps.CropsService, logg))
			r.Get("/", controllers.ListCrops(deps.CropsService, logg))
			r.Get("/{cropId}", controllers.GetCrop(deps.CropsService, logg))
			r.Patch("/{cropId}", controllers.UpdateCrop(deps.CropsService, logg))
			r.Delete("/{cropId}", controllers.DeleteCrop(deps.CropsService, logg))
		})

		r.Route("/resources", func(r chi.Router) {
			r.Post("/", controllers.CreateResource(deps.ResourcesService, logg))
			r.Get("/", controllers.ListResources(deps.ResourcesService, logg))
			r.Get("/{resourceId}", controllers.GetResource(deps.ResourcesService, logg))
			r.Patch("/{resourceId}", controllers.UpdateResource(deps.ResourcesService, logg))
			r.Delete("/{resourceId}", controllers.DeleteResource(deps.ResourcesService, logg))
		})

		r.Route("/activities", func(r chi.Router) {
			r.Post("/", controllers.CreateActivity(deps.ActivitiesService, logg))
			r.Get("/", controllers.ListActivities(deps.ActivitiesService, logg))
			r.Get("/{activityId}", controllers.GetActivity(deps.ActivitiesService, logg))
			r.Patch("/{activityId}", controllers.UpdateActivity(deps.ActivitiesService, logg))
			r.Delete("/{activityId}", controllers.DeleteActivity(deps.ActivitiesService, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(deps.NotificationsService, logg))
			r.Post("/{notificationId}/read", controllers.MarkNotificationRead(deps.NotificationsService, logg))
		})
	})

	return r
}
