package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"bloodportal/internal/auth"
	"bloodportal/internal/config"
	"bloodportal/internal/events"
	"bloodportal/internal/handlers"
	"bloodportal/internal/metrics"
	"bloodportal/internal/repositories"
	"bloodportal/internal/seed"
	"bloodportal/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var seedFn repositories.SeedFunc
	if cfg.SeedSampleData {
		seedFn = seed.Sample(nil, time.Now().UTC())
	}
	store, err := repositories.NewStore(seedFn)
	if err != nil {
		log.Fatalf("failed to initialise store: %v", err)
	}

	var publisher events.Publisher = events.NewLogPublisher()
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		log.Printf("Publishing events to kafka topic %q via %v", cfg.KafkaTopic, cfg.KafkaBrokers)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Printf("failed to close event publisher: %v", err)
		}
	}()

	directoryService := services.NewDirectoryService(store, publisher, nil)
	accountService := services.NewAccountService(store.Users, publisher, 0)

	if cfg.AdminUsername != "" {
		if _, err := accountService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatalf("failed to bootstrap administrator: %v", err)
		}
	}

	sessions := auth.NewSessionStore(cfg.SessionTTL, nil)
	go sessions.RunPruner(ctx, cfg.SessionPruneInterval)

	router := gin.Default()

	handlers.RegisterRoutes(router, handlers.Deps{
		Directory: directoryService,
		Accounts:  accountService,
		Auth:      auth.NewMiddleware(sessions, accountService, cfg.CookieSecure),
		Metrics:   metrics.New(store.Sizes),
		Location:  cfg.Location,
	})

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	idle := make(chan struct{})
	go func() {
		defer close(idle)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("graceful shutdown failed: %v", err)
		}
	}()

	log.Printf("Starting server on %s", cfg.ServerAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
	<-idle
	log.Printf("Server stopped")
}
