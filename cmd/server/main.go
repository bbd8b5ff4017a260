package main // Entry point package

import (
	"context"
	"database/sql"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // Optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/movie-catalog/internal/config"     // Internal config loader
	"github.com/iliyamo/movie-catalog/internal/database"   // MySQL pool + schema migration
	"github.com/iliyamo/movie-catalog/internal/handler"    // HTTP handlers
	"github.com/iliyamo/movie-catalog/internal/queue"      // Catalog event consumer
	"github.com/iliyamo/movie-catalog/internal/repository" // DB repositories
	"github.com/iliyamo/movie-catalog/internal/router"     // Internal router setup
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("database: %v", err)
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)

	if err := ensureAdmin(ctx, users, cfg); err != nil {
		log.Fatalf("bootstrap admin: %v", err)
	}

	// Redis is optional; a nil client disables response caching.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	if rdb == nil {
		log.Println("redis unavailable; response cache disabled")
	}

	// Consume catalog events in the background; the consumer keeps its own
	// reconnect loop and never takes the server down.
	go func() {
		if err := queue.StartCatalogConsumer(); err != nil {
			log.Printf("catalog consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	authHandler := handler.NewAuthHandler(cfg, users)
	movieHandler := handler.NewMovieHandler(movies, rdb, cacheCfg)
	router.RegisterRoutes(e, cfg, authHandler, movieHandler, rdb, cacheCfg)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}

// ensureAdmin creates the bootstrap admin credential on first run. The
// username and password come from configuration; the defaults are a dev
// convenience and should be overridden in any real deployment.
func ensureAdmin(ctx context.Context, users *repository.UserRepo, cfg config.Config) error {
	_, err := users.GetByUsername(ctx, cfg.AdminUser)
	if err == nil {
		log.Printf("admin %q already exists", cfg.AdminUser)
		return nil
	}
	if err != sql.ErrNoRows {
		return err
	}
	if _, err := users.Create(ctx, cfg.AdminUser, cfg.AdminPass, cfg.BcryptCost); err != nil {
		// A concurrent boot may have won the insert.
		if err == repository.ErrUserExists {
			return nil
		}
		return err
	}
	log.Printf("default admin created: username=%s", cfg.AdminUser)
	return nil
}
