package main

import (
	"fmt"
	"os"

	"github.com/controlhoras/hours-backend/internal/cli"
	"github.com/controlhoras/hours-backend/internal/hours/events"
	"github.com/controlhoras/hours-backend/internal/hours/export"
	"github.com/controlhoras/hours-backend/internal/hours/repository"
	"github.com/controlhoras/hours-backend/internal/hours/service"
	"github.com/controlhoras/hours-backend/pkg/config"
	"github.com/controlhoras/hours-backend/pkg/database"
	"github.com/controlhoras/hours-backend/pkg/logger"
	"github.com/controlhoras/hours-backend/pkg/messaging"
)

const serviceName = "hours-report"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(serviceName)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// stdout carries command output; logs go to stderr
	log := logger.NewWithWriter(serviceName, os.Stderr).SetLevel(config.GetEnv("HOURS_LOG_LEVEL", "warn"))

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connecting to database %s: %w", cfg.Database.Target(), err)
	}
	defer db.Close()

	app := &cli.App{
		DefaultLocale: cfg.Report.DefaultLocale,
		OutputDir:     cfg.Report.OutputDir,
	}

	publisher := events.NewNopPublisher(log)
	if cfg.RabbitMQ.Enabled {
		rmq, err := messaging.New(&cfg.RabbitMQ, serviceName, log)
		if err != nil {
			return fmt.Errorf("connecting to RabbitMQ: %w", err)
		}
		defer rmq.Close()

		publisher, err = events.NewRabbitPublisher(rmq, serviceName, log)
		if err != nil {
			return fmt.Errorf("creating event publisher: %w", err)
		}
		app.Events = cli.NewRabbitEventSource(rmq, log)
	}

	employeeRepo := repository.NewEmployeeRepository(db)
	timeEntryRepo := repository.NewTimeEntryRepository(db)

	app.Employees = service.NewEmployeeService(employeeRepo, publisher, log)
	app.Reports = service.NewReportService(employeeRepo, timeEntryRepo, publisher,
		export.Options{CompanyName: cfg.Report.CompanyName}, log)

	return cli.NewRootCmd(app).Execute()
}
