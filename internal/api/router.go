package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/bookvault/books-api/docs"
	"github.com/bookvault/books-api/internal/api/handler"
	"github.com/bookvault/books-api/internal/api/middleware"
	"github.com/bookvault/books-api/internal/core/service"
	"github.com/bookvault/books-api/internal/infrastructure/config"
	mongodb "github.com/bookvault/books-api/internal/infrastructure/db/mongo"
	redisdb "github.com/bookvault/books-api/internal/infrastructure/db/redis"
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
	e.Use(echoprometheus.NewMiddleware("books_api"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	tokenStore := redisdb.NewTokenStore(rdb)
	authService := service.NewAuthService(authRepo, tokenStore, cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)
	authHandler := handler.NewAuthHandler(authService)

	bookRepo := mongodb.NewBookRepository(db)
	bookService := service.NewBookService(bookRepo, log)
	bookHandler := handler.NewBookHandler(bookService)

	// --- Auth routes (open to anonymous callers) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)

	// --- Book routes (bearer token required) ---
	books := e.Group("/books", middleware.Auth(cfg.Auth.JWTSecret))
	books.GET("", bookHandler.List)
	books.POST("", bookHandler.Create)
	books.GET("/average-price-by-year", bookHandler.AveragePriceByYear)
	books.GET("/:id", bookHandler.Get)
	books.PUT("/:id", bookHandler.Update)
	books.DELETE("/:id", bookHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
