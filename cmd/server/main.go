package main // Entry point package

import (
	"context" // Context for the migration run
	"log"     // Logging library
	"time"    // Timeout for the migration run

	"github.com/joho/godotenv"    // Optional .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/linkedup/internal/config"     // Internal config loader
	"github.com/iliyamo/linkedup/internal/database"   // Database open + migrations
	"github.com/iliyamo/linkedup/internal/handler"    // HTTP handlers
	"github.com/iliyamo/linkedup/internal/middleware" // Request ID, cache and rate limit middleware
	"github.com/iliyamo/linkedup/internal/queue"      // Activity event consumer
	"github.com/iliyamo/linkedup/internal/repository" // Data access layer
	"github.com/iliyamo/linkedup/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Apply schema migrations before serving traffic.
	mctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(mctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis is optional.  When the client comes back nil the cache and rate
	// limit middlewares turn into pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Repositories are constructed once and injected into the handlers, so
	// storage is swappable for tests.
	users := repository.NewUserRepo(db)
	activities := repository.NewActivityRepo(db)

	userH := handler.NewUserHandler(cfg, users)
	activityH := handler.NewActivityHandler(activities)
	membershipH := handler.NewMembershipHandler(activities)
	profileH := handler.NewProfileHandler(cfg, users)

	// The event consumer runs for the life of the process and reconnects on
	// broker failures.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	e := echo.New()             // Create Echo instance
	e.Use(middleware.RequestID()) // Tag and log every request
	router.RegisterRoutes(e)    // Health check
	router.RegisterAPI(e, userH, activityH, membershipH, profileH, cacheMW, rateMW)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
