package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"smart-menu/internal/config"
	"smart-menu/internal/database"
	"smart-menu/internal/logger"
	"smart-menu/internal/messaging"
	"smart-menu/internal/middleware"
	"smart-menu/internal/services/catalog"
	"smart-menu/internal/services/notification"
	"smart-menu/internal/services/order"
	"smart-menu/internal/services/reports"
	"smart-menu/internal/services/tracking"
	"smart-menu/internal/web"
)

func main() {
	var (
		mode     = flag.String("mode", "menu-service", "Service mode (menu-service, notification-subscriber)")
		prefetch = flag.Int("prefetch", 1, "RabbitMQ prefetch count for the subscriber")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(*mode, cfg.LogLevel)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", requestID, fmt.Sprintf("Starting %s", *mode), map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", requestID, "Received shutdown signal", nil)
		cancel()
	}()

	switch *mode {
	case "menu-service":
		err = runMenuService(ctx, cfg, log)
	case "notification-subscriber":
		err = runNotificationSubscriber(ctx, cfg, log, *prefetch)
	default:
		log.Error("validation_failed", requestID, fmt.Sprintf("Unknown mode: %s", *mode), nil, nil)
		os.Exit(1)
	}

	if err != nil {
		log.Error("service_failed", requestID, fmt.Sprintf("%s failed", *mode), err, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", requestID, "Service stopped gracefully", nil)
}

// runMenuService runs the HTTP API for customers and staff
func runMenuService(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", requestID, "Connected to PostgreSQL database", nil)

	if err := db.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", requestID, "Connected to RabbitMQ", nil)

	publisher := messaging.NewPublisher(conn, log)

	orderStore := order.NewPostgresStore(db)
	orderService := order.NewService(orderStore, publisher, log)
	orderHandler := order.NewHandler(orderService, log)

	trackingService := tracking.NewService(db, log)
	trackingHandler := tracking.NewHandler(trackingService, log)

	catalogService := catalog.NewService(db, log)
	catalogHandler := catalog.NewHandler(catalogService, log)

	reportsService := reports.NewService(db, log)
	reportsHandler := reports.NewHandler(reportsService, log)

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "api_key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", healthHandler(trackingService, log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", catalogHandler.TodayMenu)

		r.Post("/orders", orderHandler.CreateOrder)
		r.Get("/orders/{orderNumber}", trackingHandler.GetOrderStatus)

		r.Post("/feedback", orderHandler.SubmitFeedback)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))

			r.Post("/orders/{orderID}/status", orderHandler.UpdateStatus)
			r.Put("/daily-menu", catalogHandler.UpsertDailyEntry)
			r.Get("/reports", reportsHandler.Sales)
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		log.Info("server_listening", requestID, fmt.Sprintf("Menu service started on %s", addr), map[string]interface{}{
			"address": addr,
		})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server_failed", requestID, "HTTP server failed", err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	return server.Shutdown(shutdownCtx)
}

// runNotificationSubscriber consumes status change events
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)
	defer subscriber.Close()

	return subscriber.Start(ctx)
}

// healthHandler reports the health of the service dependencies
func healthHandler(trackingService *tracking.Service, log *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		healthy := trackingService.HealthCheck(ctx)

		status := http.StatusOK
		response := map[string]interface{}{
			"status":    "ok",
			"service":   "menu-service",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}
		if !healthy {
			status = http.StatusServiceUnavailable
			response["status"] = "unhealthy"
		}

		web.WriteJSON(w, status, response, log)
	}
}
