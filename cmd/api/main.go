package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/dream-finder/internal/auth"
	"github.com/justsurfingit/dream-finder/internal/config"
	"github.com/justsurfingit/dream-finder/internal/database"
	"github.com/justsurfingit/dream-finder/internal/handlers"
	"github.com/justsurfingit/dream-finder/internal/middleware"
	"github.com/justsurfingit/dream-finder/internal/services"
	"github.com/justsurfingit/dream-finder/internal/store"
	"github.com/justsurfingit/dream-finder/internal/store/gormstore"
	"github.com/justsurfingit/dream-finder/internal/store/memstore"
	"github.com/justsurfingit/dream-finder/internal/store/mongostore"
	"github.com/justsurfingit/dream-finder/internal/textclean"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 2. Store
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	st, err := openStore(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Store setup failed: %v", err)
	}

	// 3. Rate limiter, shared through redis when configured
	var limiter middleware.Limiter = middleware.NewMemoryLimiter()
	var closeRedis func() error
	if cfg.RedisURL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			log.Printf("Redis unavailable, rate limiting per process: %v", err)
		} else {
			limiter = middleware.NewRedisLimiter(rdb)
			closeRedis = rdb.Close
			log.Println("Redis rate limiter connected")
		}
	}

	// 4. Auth gate and services
	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	gate := auth.NewGate(tokens, st)
	cleaner := textclean.New()

	h := handlers.Handlers{
		Jobs:         handlers.NewJobHandler(services.NewJobService(st, cleaner, cfg.JobsPageSize)),
		Users:        handlers.NewUserHandler(services.NewUserService(st), tokens),
		Companies:    handlers.NewCompanyHandler(services.NewCompanyService(st, cleaner)),
		Applications: handlers.NewApplicationHandler(services.NewApplicationService(st)),
		Bookmarks:    handlers.NewBookmarkHandler(services.NewBookmarkService(st, cfg.BookmarksPageSize)),
		Feedback:     handlers.NewFeedbackHandler(services.NewFeedbackService(st, cleaner)),
	}

	// 5. Router
	r := handlers.NewRouter(handlers.RouterConfig{
		Gate:        gate,
		CORSOrigins: cfg.CORSOrigins,
		Limiter:     limiter,
		RateLimit:   cfg.RateLimit,
	}, h)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		log.Printf("Dream Finder server starting on port %s (%s store)", cfg.Port, cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	if err := st.Close(shutdownCtx); err != nil {
		log.Printf("Store close error: %v", err)
	}
	if closeRedis != nil {
		if err := closeRedis(); err != nil {
			log.Printf("Redis close error: %v", err)
		}
	}
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL, gin.Mode() == gin.DebugMode)
		if err != nil {
			return nil, err
		}
		s := gormstore.New(db)
		if err := s.Migrate(); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		log.Println("Using the in-memory store; data is lost on restart")
		return memstore.New(), nil
	default:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		s := mongostore.New(client, cfg.MongoDatabase)
		if err := s.EnsureIndexes(ctx); err != nil {
			_ = s.Close(ctx)
			return nil, err
		}
		return s, nil
	}
}
