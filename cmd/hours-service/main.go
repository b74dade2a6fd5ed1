package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/internal/hours/export"
	"github.com/controlhoras/hours-backend/internal/hours/handler"
	"github.com/controlhoras/hours-backend/internal/hours/repository"
	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/pkg/config"
	"github.com/controlhoras/hours-backend/pkg/database"
	"github.com/controlhoras/hours-backend/pkg/httputil"
	"github.com/controlhoras/hours-backend/pkg/i18n"
	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
)

const serviceName = "hours-service"

func main() {
	// Load configuration with validation (fails fast in production if required config is missing)
	cfg, err := config.LoadWithValidation(serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.Server.Environment)
	log.Info().Str("environment", cfg.Server.Environment).Msg("starting Hours Service")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Str("database", cfg.Database.Target()).Msg("failed to connect to database")
	}
	defer db.Close()

	if cfg.Database.EnsureSchema {
		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to apply schema")
		}
	}

	// RabbitMQ is optional; events are dropped when it is disabled
	var rmq *messaging.RabbitMQ
	publisher := events.NewNopPublisher(log)
	if cfg.RabbitMQ.Enabled {
		rmq, err = messaging.New(&cfg.RabbitMQ, serviceName, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to RabbitMQ")
		}
		defer rmq.Close()
		go rmq.Watch(ctx)

		publisher, err = events.NewRabbitPublisher(rmq, serviceName, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create event publisher")
		}
	} else {
		log.Warn().Msg("rabbitmq disabled, events will not be published")
	}

	// Repositories
	employeeRepo := repository.NewEmployeeRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)

	// Services
	employeeService := service.NewEmployeeService(employeeRepo, publisher, log)
	timeEntryService := service.NewTimeEntryService(db, employeeRepo, timeEntryRepo, publisher, log)
	reportService := service.NewReportService(employeeRepo, timeEntryRepo, publisher,
		export.Options{CompanyName: cfg.Report.CompanyName}, log)

	handlers := handler.Handlers{
		Employees:   handler.NewEmployeeHandler(employeeService, log),
		TimeEntries: handler.NewTimeEntryHandler(timeEntryService, log),
		Reports:     handler.NewReportHandler(reportService, log),
		DayTypes:    handler.NewDayTypeHandler(),
	}

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(httputil.RequestID)
	r.Use(httputil.Logger(log))
	r.Use(httputil.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Language", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "Content-Language", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(i18n.NewMiddleware(cfg.Report.DefaultLocale))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := map[string]interface{}{
			"status":   "healthy",
			"service":  serviceName,
			"database": db.Health(r.Context()),
		}
		if rmq != nil {
			status["rabbitmq"] = rmq.Health()
		} else {
			status["rabbitmq"] = map[string]string{"status": "disabled"}
		}
		httputil.JSON(w, http.StatusOK, status)
	})

	r.Route("/api/v1", handlers.Register)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
