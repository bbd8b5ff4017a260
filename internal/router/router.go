package router // package router defines how HTTP routes are registered for the API

import (
	"time"

	"github.com/labstack/echo/v4"                       // Echo web framework for routing
	echomw "github.com/labstack/echo/v4/middleware"     // stock Echo middleware (CORS)
	"github.com/redis/go-redis/v9"                      // Redis client for the response cache

	"github.com/iliyamo/movie-catalog/internal/config"     // cache configuration
	"github.com/iliyamo/movie-catalog/internal/handler"    // handlers that implement business logic
	"github.com/iliyamo/movie-catalog/internal/middleware" // token auth and response cache middleware
)

// RegisterRoutes wires the whole HTTP surface onto the provided Echo
// instance: the liveness endpoint, the auth endpoints, the public movie
// listing (cached when Redis is available), the token-gated catalog
// mutations and the static admin console.
func RegisterRoutes(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, m *handler.MovieHandler, rdb *redis.Client, cacheCfg config.CacheConfig) {
	// The admin console is served from a different origin during
	// development, so CORS is open as in the original deployment.
	e.Use(echomw.CORS())

	// Liveness text for load balancers.
	e.GET("/", handler.Health)

	api := e.Group("/api")
	// Credential endpoints do not require a session.
	api.POST("/register", a.Register)
	api.POST("/login", a.Login)

	// Public read, cached per route when a Redis client is configured.
	api.GET("/movies", m.List, middleware.NewRedisCache(cacheCfg, rdb))

	// Every mutating catalog route sits behind the token gate.
	leeway := time.Duration(cfg.LeewaySec) * time.Second
	guarded := api.Group("", middleware.TokenAuth(cfg.JWTSecret, leeway))
	guarded.POST("/movies", m.Create)
	guarded.PUT("/movies/:id", m.Update)
	guarded.DELETE("/movies/:id", m.Delete)

	// Static admin console.
	e.File("/admin", "web/admin.html")
	e.Static("/static", "web/static")
}
