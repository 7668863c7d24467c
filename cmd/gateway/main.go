package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/hms-gateway/internal/adapters/events"
	"github.com/carebridge/hms-gateway/internal/adapters/session"
	"github.com/carebridge/hms-gateway/internal/api/handlers"
	"github.com/carebridge/hms-gateway/internal/api/routes"
	"github.com/carebridge/hms-gateway/internal/application/services"
	"github.com/carebridge/hms-gateway/internal/infrastructure/clients/hospital"
	redisclient "github.com/carebridge/hms-gateway/internal/infrastructure/clients/redis"
	"github.com/carebridge/hms-gateway/internal/infrastructure/observability"
	"github.com/carebridge/hms-gateway/pkg/config"
	"github.com/carebridge/hms-gateway/pkg/retry"
	"github.com/carebridge/hms-gateway/pkg/secrets"
	"github.com/carebridge/hms-gateway/pkg/validate"
)

const shutdownTimeout = 15 * time.Second

func main() {
	ctx := context.Background()

	// .env is optional; environment variables win
	_ = godotenv.Load()

	if res, err := secrets.Hydrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to hydrate secrets from vault")
	} else if res.Enabled {
		log.Info().Int("loaded", res.Loaded).Int("skipped", res.Skipped).Msg("Hydrated secrets from vault")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	if cfg.OTEL.Enabled {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize OpenTelemetry")
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shut down OpenTelemetry")
			}
		}()
	}

	var metrics *observability.Metrics
	if cfg.OTEL.Enabled {
		metrics, err = observability.InitMetrics()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize metrics, continuing without them")
			metrics = nil
		}
	}

	// Infrastructure connects are the only thing the gateway retries
	var redisClient *redisclient.Client
	err = retry.Do(ctx, retry.DefaultConfig(), func() error {
		var connErr error
		redisClient, connErr = redisclient.NewClient(ctx, &cfg.Redis)
		return connErr
	}, func(attempt int, err error, nextDelay time.Duration) {
		log.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("next_delay", nextDelay).
			Msg("Redis not reachable yet, retrying")
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	defer eventBus.Close()

	sessionStore := session.NewRedisStore(redisClient, eventBus, cfg.Session.TTL)

	hospitalClient := hospital.NewClient(&cfg.Hospital)

	requestValidator := validate.NewRequestValidator()

	accountService := services.NewAccountService(hospitalClient, sessionStore)
	bookingService := services.NewBookingService(hospitalClient)
	historyService := services.NewHistoryService(hospitalClient)
	outcomeService := services.NewOutcomeService(hospitalClient)
	pharmacyService := services.NewPharmacyService(hospitalClient)

	authHandler := handlers.NewAuthHandler(accountService, requestValidator, cfg.Session.CookieName, cfg.Session.TTL)
	bookingHandler := handlers.NewBookingHandler(bookingService, historyService, outcomeService, requestValidator)
	doctorHandler := handlers.NewDoctorHandler(historyService, outcomeService, accountService, requestValidator)
	pharmacyHandler := handlers.NewPharmacyHandler(pharmacyService)
	adminHandler := handlers.NewAdminHandler(accountService)
	profileHandler := handlers.NewProfileHandler(hospitalClient)
	sseHandler := handlers.NewSSEHandler(eventBus)

	router := routes.NewRouter(
		authHandler,
		bookingHandler,
		doctorHandler,
		pharmacyHandler,
		adminHandler,
		profileHandler,
		sseHandler,
		sessionStore,
		cfg.Session.CookieName,
		metrics,
	)

	server := &http.Server{
		Addr:         cfg.Server.ListenAddr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE streams stay open indefinitely
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("hospital_api", cfg.Hospital.BaseURL).
			Str("env", cfg.Env).
			Msg("Gateway listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down gateway")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
	log.Info().Msg("Gateway stopped")
}
