package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/loinx/user-management/docs"
	"github.com/loinx/user-management/internal/api/handler"
	"github.com/loinx/user-management/internal/api/middleware"
	"github.com/loinx/user-management/internal/core/service"
	"github.com/loinx/user-management/internal/infrastructure/config"
	mongodb "github.com/loinx/user-management/internal/infrastructure/db/mongo"
	redisdb "github.com/loinx/user-management/internal/infrastructure/db/redis"
	"github.com/loinx/user-management/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("usersvc"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	lastLogin := redisdb.NewLastLoginTracker(rdb)
	authService := service.NewAuthService(userRepo, tokenService, lastLogin, log)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService, lastLogin)
	authMiddleware := middleware.Auth(tokenService, userRepo)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh, authMiddleware)

	// --- User routes (authentication gates authorization) ---
	users := e.Group("/users", authMiddleware)
	users.GET("", userHandler.List)
	users.POST("", userHandler.Create)
	users.GET("/me", userHandler.Me)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
