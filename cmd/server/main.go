package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"cabinet/internal/notify"
	"cabinet/internal/platform/config"
	"cabinet/internal/platform/httpserver"
	"cabinet/internal/platform/logger"
	platformmetrics "cabinet/internal/platform/metrics"
	platformredis "cabinet/internal/platform/redis"
	"cabinet/internal/session/directory"
	"cabinet/internal/session/handler"
	sessionmetrics "cabinet/internal/session/metrics"
	"cabinet/internal/session/otp"
	"cabinet/internal/session/provider"
	"cabinet/internal/session/service"
	profilestore "cabinet/internal/session/store/profile"
	sessionstore "cabinet/internal/session/store/session"
	"cabinet/internal/token"
	transporthttp "cabinet/internal/transport/http"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := platformmetrics.NewRegistry()

	// Identity backend: configured provider or the unconfigured stand-in
	// that makes the controller run in its pure-mock variant.
	var backend provider.Backend = provider.NewUnconfigured()
	if cfg.Provider.APIKey != "" {
		backend = provider.NewHTTP(cfg.Provider.Endpoint, cfg.Provider.APIKey)
		log.Info("identity provider configured", "endpoint", cfg.Provider.Endpoint)
	} else {
		log.Info("no identity provider configured, directory is authoritative")
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Error("redis connection failed", "error", err)
		os.Exit(1)
	}

	var sessions sessionstore.Store = sessionstore.NewMemory()
	var profiles profilestore.Store = profilestore.NewMemory()
	if redisClient != nil {
		sessions = sessionstore.NewRedis(redisClient.Client)
		profiles = profilestore.NewRedis(redisClient.Client)
		log.Info("redis-backed stores enabled")
	} else if cfg.PostgresURL != "" {
		pool, poolErr := pgxpool.New(ctx, cfg.PostgresURL)
		if poolErr != nil {
			log.Error("postgres connection failed", "error", poolErr)
			os.Exit(1)
		}
		defer pool.Close()
		profiles = profilestore.NewPostgres(pool)
		log.Info("postgres-backed profile store enabled")
	}

	var notifier notify.Publisher = notify.NewMemory(notify.WithAsyncBuffer(256))
	if cfg.KafkaBrokers != "" {
		kafka, kafkaErr := notify.NewKafka(strings.Split(cfg.KafkaBrokers, ","), cfg.KafkaTopic, log)
		if kafkaErr != nil {
			log.Error("kafka connection failed", "error", kafkaErr)
			os.Exit(1)
		}
		notifier = kafka
		log.Info("kafka notifications enabled", "topic", cfg.KafkaTopic)
	}
	defer notifier.Close()

	controller := service.New(service.Deps{
		Backend:   backend,
		Directory: directory.New(),
		Sessions:  sessions,
		Profiles:  profiles,
		OTP:       otp.NewStore(),
		Notifier:  notifier,
		Logger:    log,
		Metrics:   sessionmetrics.New(registry),
	}, service.Config{
		AllowDemoFallback: cfg.AllowDemoFallback,
		MockLatency:       cfg.MockLatency,
		RestoreTimeout:    cfg.RestoreTimeout,
	})

	if err := controller.Restore(ctx); err != nil {
		log.Warn("session restore failed, starting logged out", "error", err)
	}

	tokens := token.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTTTL)
	router := transporthttp.NewRouter(transporthttp.Deps{
		Session:   handler.New(controller, tokens, log),
		Validator: token.NewAdapter(tokens),
		Registry:  registry,
		Logger:    log,
	})

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting cabinet server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}
