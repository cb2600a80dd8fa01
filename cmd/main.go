package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/devaraji08/HarvestHubFinal/internal/auth"
	"github.com/devaraji08/HarvestHubFinal/internal/cart"
	"github.com/devaraji08/HarvestHubFinal/internal/catalog"
	"github.com/devaraji08/HarvestHubFinal/internal/chatbot"
	"github.com/devaraji08/HarvestHubFinal/internal/checkout"
	"github.com/devaraji08/HarvestHubFinal/internal/config"
	h "github.com/devaraji08/HarvestHubFinal/internal/http"
	"github.com/devaraji08/HarvestHubFinal/internal/mealplanner"
	"github.com/devaraji08/HarvestHubFinal/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		errLogger := zerolog.New(os.Stderr)
		errLogger.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()

	ctx := context.Background()

	// Persistence backend for carts, stock ledgers, and orders
	var kv store.Store
	var redisClient *redis.Client
	switch cfg.StoreBackend {
	case "redis":
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		kv = store.NewRedisStore(redisClient)
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis store")
	case "memory":
		kv = store.NewMemoryStore()
		logger.Warn().Msg("using in-memory store, state will not survive restarts")
	default:
		sqliteStore, err := store.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open sqlite store")
		}
		defer sqliteStore.Close()
		if err := sqliteStore.RunMigrations(cfg.MigrationsDir); err != nil {
			logger.Fatal().Err(err).Msg("failed to run migrations")
		}
		kv = sqliteStore
		logger.Info().Str("path", cfg.SQLitePath).Msg("using sqlite store")
	}

	// Identity provider
	var authenticator auth.Authenticator
	if cfg.BackendAnonKey != "" {
		authenticator = auth.NewClient(cfg.BackendURL, cfg.BackendAnonKey, logger)
		logger.Info().Str("url", cfg.BackendURL).Msg("using hosted identity provider")
	} else {
		authenticator = auth.NewMemoryAuthenticator()
		logger.Warn().Msg("no backend anon key configured, using in-memory authenticator")
	}

	unsubscribe := authenticator.OnAuthChange(func(event auth.Event, session *auth.Session) {
		e := logger.Info().Str("event", string(event))
		if session != nil && session.User != nil {
			e = e.Str("user_id", session.User.ID)
		}
		e.Msg("auth state changed")
	})
	defer unsubscribe()

	// Product catalog, cached in redis when available
	var cat catalog.Catalog = catalog.NewRESTCatalog(cfg.BackendURL, cfg.BackendAnonKey)
	if redisClient != nil {
		cat = catalog.NewCachedCatalog(cat, redisClient, logger)
	}

	carts := cart.NewManager(kv, logger)
	checkoutService := checkout.NewService(kv, logger)
	planner := mealplanner.NewPlanner(cat)

	router := h.NewRouter(h.RouterDeps{
		Carts:          carts,
		Catalog:        cat,
		Auth:           authenticator,
		Checkout:       checkoutService,
		Planner:        planner,
		FarmingBot:     chatbot.NewFarmingBot(),
		MealPlannerBot: chatbot.NewMealPlannerBot(),
		Logger:         logger,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.HTTPPort).Msg("storefront starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}
