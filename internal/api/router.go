package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bookvault/book-api/internal/api/handler"
	"github.com/bookvault/book-api/internal/api/middleware"
	"github.com/bookvault/book-api/internal/core/domain"
	"github.com/bookvault/book-api/internal/core/ports"
	"github.com/bookvault/book-api/internal/core/service"
	mongodb "github.com/bookvault/book-api/internal/infrastructure/db/mongo"
	healthhandlers "github.com/bookvault/book-api/internal/infrastructure/http/handlers"
	"github.com/bookvault/book-api/internal/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The activity pipeline (recorder + service) is constructed by the caller
// because its worker lifecycle outlives any single request.
func NewRouter(
	db *mongo.Database,
	rdb *redis.Client,
	codec *token.Codec,
	recorder handler.ActivityRecorder,
	activity ports.ActivityService,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	authService := service.NewAuthService(userRepo, codec, log)
	bookService := service.NewBookService(bookRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService, recorder)
	bookHandler := handler.NewBookHandler(bookService, recorder)
	adminHandler := handler.NewAdminHandler(authService, activity)

	authRequired := middleware.Auth(codec)

	// --- Auth routes (no token required) ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Book routes (any authenticated principal) ---
	books := e.Group("/api/books", authRequired, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))
	books.GET("", bookHandler.List)
	books.POST("", bookHandler.Create)
	books.GET("/:id", bookHandler.Get)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authRequired, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.Users)
	admin.GET("/activity", adminHandler.Activity)

	// --- Health probes and metrics (no auth required) ---
	probes := healthhandlers.NewProbes(db, rdb)
	e.GET("/health", probes.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", probes.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}
