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

	"fit1-backend/internal/config"
	"fit1-backend/internal/database"
	"fit1-backend/internal/enrichment"
	"fit1-backend/internal/handlers"
	"fit1-backend/internal/identity"
	customMiddleware "fit1-backend/internal/middleware"
	"fit1-backend/internal/notify"
	"fit1-backend/internal/repository"
	"fit1-backend/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env; in production the variables are set directly
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}

	// The pool connects lazily; index creation below is the first use.
	pool := database.NewPool(cfg.MongoURI, cfg.DBName)

	// Initialize repositories
	userRepo := repository.NewUserRepo(pool)
	nutritionRepo := repository.NewNutritionRepo(pool)
	waterRepo := repository.NewWaterRepo(pool)
	weightRepo := repository.NewWeightRepo(pool)
	sleepRepo := repository.NewSleepRepo(pool)

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	for name, repo := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"user":      userRepo,
		"nutrition": nutritionRepo,
		"water":     waterRepo,
		"weight":    weightRepo,
		"sleep":     sleepRepo,
	} {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Printf("⚠️  Warning: failed to create %s indexes: %v", name, err)
		}
	}
	cancel()

	remote := enrichment.NewOpenAIStrategy(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	if remote == nil {
		log.Println("⚠️  OPENAI_API_KEY not set, using local calculations only")
	}
	enricher := enrichment.NewEnricher(remote, cfg.EnrichmentTimeout)

	if cfg.WorkOSClientID == "" {
		log.Println("⚠️  WORKOS_CLIENT_ID not set, sign-in is disabled")
	}
	provider := identity.NewWorkOSProvider(cfg.WorkOSAPIKey, cfg.WorkOSClientID, cfg.CallbackURL())

	revocations := session.NewRevocationStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if revocations == nil {
		log.Println("⚠️  REDIS_ADDR not set, sign-out will not revoke issued sessions")
	}
	issuer := session.NewIssuer(cfg.SessionSecret)
	resolver := session.NewResolver(issuer, revocations)

	notifier := notify.New(cfg.ResendAPIKey, cfg.FromEmail)

	// Initialize handlers
	h := handlers.Handlers{
		Auth: handlers.NewAuthHandler(provider, userRepo, issuer, resolver, revocations, notifier, handlers.AuthConfig{
			AppURL:       cfg.AppURL,
			CookieSecure: cfg.CookieSecure,
		}),
		User:      handlers.NewUserHandler(userRepo, enricher),
		Nutrition: handlers.NewNutritionHandler(nutritionRepo, userRepo, enricher),
		Water:     handlers.NewWaterHandler(waterRepo, userRepo, enricher),
		Weight:    handlers.NewWeightHandler(weightRepo, userRepo, enricher),
		Sleep:     handlers.NewSleepHandler(sleepRepo, userRepo, enricher),
	}

	// Setup chi router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(customMiddleware.SecurityHeaders)
	r.Use(customMiddleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	h.Mount(r, customMiddleware.SessionAuth(resolver))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 fit1 backend starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("🛑 Shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Graceful shutdown failed: %v", err)
	}
	if err := revocations.Close(); err != nil {
		log.Printf("⚠️  Failed to close redis: %v", err)
	}
	if err := pool.Close(shutdownCtx); err != nil {
		log.Printf("⚠️  Failed to close MongoDB: %v", err)
	}
}
