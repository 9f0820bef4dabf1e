package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"RestaurantPOS/config"
	"RestaurantPOS/internal/api/handlers"
	"RestaurantPOS/internal/domain/payment"
	"RestaurantPOS/internal/domain/session"
	"RestaurantPOS/internal/external/paystack"
	"RestaurantPOS/internal/migrations"
	session_repo "RestaurantPOS/internal/repo/session"
	"RestaurantPOS/pkg/health"
	"RestaurantPOS/pkg/logger"
	"RestaurantPOS/pkg/postgres"

	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func Run(cfg config.Config) {
	logger.Setup(logger.Options{
		Level:   cfg.LogLevel,
		Console: cfg.LogFormat == "console",
	})

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	paystackClient, err := paystack.New(paystack.Config{
		SecretKey:      cfg.PaystackSecretKey,
		BaseURL:        cfg.PaystackBaseURL,
		InitializePath: cfg.PaystackInitializePath,
		HTTPClient:     &http.Client{Timeout: cfg.HTTPPaystackClientTimeout},
	})
	if err != nil {
		fatal("api - Run - paystack.New", err)
	}

	sessionRepo, checker, closeStore := sessionStore(cfg)
	defer closeStore()

	paymentService := payment.NewService(paystackClient)

	paymentHandler := handlers.NewPaymentHandler(paymentService)
	posHandler := handlers.NewPOSHandler(sessionRepo, cfg.SessionTTL, cfg.SessionHydrationWait)

	engine := NewGinEngine()
	router := NewRouter(paymentHandler, posHandler, health.NewRegistry(checker.Backend(), checker))
	router.SetUp(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Starting API HTTP server", slog.Int("port", cfg.Port), slog.String("session_store", cfg.SessionStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down API service gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("API service stopped with error", slog.String("error", err.Error()))
	}
}

func sessionStore(cfg config.Config) (session.Repo, *health.SessionStoreChecker, func()) {
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			fatal("api - Run - redis.Ping", err)
		}

		return session_repo.NewRedisSessionRepo(client), health.RedisSessionStore(client), func() { _ = client.Close() }

	default:
		pool, err := postgres.New(cfg.PgURL, postgres.MaxPoolSize(cfg.PgPoolMax))
		if err != nil {
			fatal("api - Run - postgres.New", err)
		}

		if err := migrations.Apply(cfg.PgURL); err != nil {
			pool.Close()
			fatal("api - Run - migrations.Apply", err)
		}

		return session_repo.NewPgSessionRepo(pool), health.PostgresSessionStore(pool.Pool), pool.Close
	}
}

func fatal(op string, err error) {
	slog.Error(op, slog.String("error", err.Error()))
	os.Exit(1)
}
