package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/teamokr/okr-system/internal/api/handler"
	"github.com/teamokr/okr-system/internal/api/middleware"
	"github.com/teamokr/okr-system/internal/core/domain"
	"github.com/teamokr/okr-system/internal/core/service"
	mongodb "github.com/teamokr/okr-system/internal/infrastructure/db/mongo"
	redisdb "github.com/teamokr/okr-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("okr"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	periodRepo := mongodb.NewPeriodRepository(db)
	objectiveRepo := mongodb.NewObjectiveRepository(db)
	keyResultRepo := mongodb.NewKeyResultRepository(db)

	var statsCache service.StatsCache
	if rdb != nil {
		statsCache = redisdb.NewStatsCache(rdb)
	}

	authService := service.NewAuthService(userRepo, jwtSecret, 24*time.Hour)
	objectiveService := service.NewObjectiveService(objectiveRepo, keyResultRepo, periodRepo, userRepo, statsCache, log)
	keyResultService := service.NewKeyResultService(keyResultRepo, objectiveRepo, userRepo, statsCache, log)
	periodService := service.NewPeriodService(periodRepo, objectiveRepo, log)
	dashboardService := service.NewDashboardService(objectiveRepo, keyResultRepo, periodRepo, userRepo, statsCache, log)
	userService := service.NewUserService(userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	objectiveHandler := handler.NewObjectiveHandler(objectiveService)
	keyResultHandler := handler.NewKeyResultHandler(keyResultService)
	periodHandler := handler.NewPeriodHandler(periodService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	userHandler := handler.NewUserHandler(userService)

	authMiddleware := middleware.Auth(jwtSecret)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware)

	v1.GET("/dashboard", dashboardHandler.Get)

	v1.POST("/objectives", objectiveHandler.Create)
	v1.GET("/objectives", objectiveHandler.List)
	v1.GET("/objectives/:id", objectiveHandler.Get)
	v1.PUT("/objectives/:id", objectiveHandler.Update)
	v1.DELETE("/objectives/:id", objectiveHandler.Delete)

	v1.POST("/key-results", keyResultHandler.Create)
	v1.GET("/key-results", keyResultHandler.List)
	v1.GET("/key-results/:id", keyResultHandler.Get)
	v1.PUT("/key-results/:id", keyResultHandler.Update)
	v1.DELETE("/key-results/:id", keyResultHandler.Delete)

	// Period listing is open to every authenticated user; mutations are
	// admin territory.
	v1.GET("/periods", periodHandler.List)
	v1.POST("/periods", periodHandler.Create, adminOnly)
	v1.PUT("/periods/:id", periodHandler.Update, adminOnly)
	v1.DELETE("/periods/:id", periodHandler.Delete, adminOnly)
	v1.POST("/periods/:id/activate", periodHandler.Activate, adminOnly)

	v1.GET("/users", userHandler.List, adminOnly)
	v1.PUT("/users/:id", userHandler.Update, adminOnly)

	return e
}
