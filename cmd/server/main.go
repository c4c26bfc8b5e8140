package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"geoportal-backend/internal/config"
	"geoportal-backend/internal/handlers"
	"geoportal-backend/internal/logging"
	"geoportal-backend/internal/metrics"
	"geoportal-backend/internal/notify"
	"geoportal-backend/internal/repository"
	"geoportal-backend/internal/store"
	"geoportal-backend/internal/ws"

	chi "github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	logger := logging.New(os.Getenv("APP_ENV"))

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	// Pick the storage backend
	var st store.Store
	switch cfg.StoreBackend {
	case "mongo":
		ms, err := store.NewMongoStore(cfg.MongoURI, cfg.DBName)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
		}
		st = ms
	case "file":
		st = store.NewFileStore(cfg.DataDir)
	default:
		logger.Fatal().Str("backend", cfg.StoreBackend).Msg("unknown STORE_BACKEND")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, collection := range []string{store.Users, store.Feedbacks, store.Responses} {
		if err := st.Ensure(ctx, collection); err != nil {
			logger.Fatal().Err(err).Str("collection", collection).Msg("failed to initialize store")
		}
	}

	// Repositories
	userRepo := repository.NewUserRepo(st)
	feedbackRepo := repository.NewFeedbackRepo(st)
	responseRepo := repository.NewResponseRepo(st)

	// Response notifications: real email when a key is configured
	var notifier notify.Notifier
	if cfg.ResendAPIKey != "" {
		notifier = notify.NewEmailNotifier(cfg.ResendAPIKey, cfg.FromEmail, logger)
	} else {
		logger.Warn().Msg("RESEND_API_KEY not set, response emails are logged only")
		notifier = notify.NewLogNotifier(logger)
	}

	hub := ws.NewHub(logger)
	metrics.MustRegister(prometheus.DefaultRegisterer)

	// Handlers
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, logger)
	userHandler := handlers.NewUserHandler(userRepo, logger)
	feedbackHandler := handlers.NewFeedbackHandler(feedbackRepo, logger)
	responseHandler := handlers.NewResponseHandler(feedbackRepo, responseRepo, userRepo, notifier, hub, logger)
	wsHandler := ws.NewHandler(hub)

	// Setup chi router
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(limitBody(1 << 20))

	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	handlers.Mount(r, authHandler, userHandler, feedbackHandler, responseHandler, wsHandler)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info().Str("addr", addr).Str("store", cfg.StoreBackend).Msg("geoportal backend starting")
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

// limitBody caps JSON request bodies, matching the 1mb limit clients expect.
func limitBody(n int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, n)
			next.ServeHTTP(w, r)
		})
	}
}
