package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/marminbh/job-intake-svc/internal/config"
	"github.com/marminbh/job-intake-svc/internal/crm"
	"github.com/marminbh/job-intake-svc/internal/database"
	"github.com/marminbh/job-intake-svc/internal/handlers"
	"github.com/marminbh/job-intake-svc/internal/intake"
	"github.com/marminbh/job-intake-svc/internal/ledger"
	"github.com/marminbh/job-intake-svc/internal/logger"
	"github.com/marminbh/job-intake-svc/internal/provisioning"
	"github.com/marminbh/job-intake-svc/internal/rabbitmq"
	"github.com/marminbh/job-intake-svc/internal/routes"
	"github.com/marminbh/job-intake-svc/internal/worker"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	if err := logger.Init(os.Getenv("LOG_LEVEL")); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()
	log := logger.Logger

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", zap.Error(err))
	}

	// PostgreSQL (job ledger)
	if err := database.RunMigrations(&cfg.Database, log); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	db, err := database.Connect(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, log); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()

	// RabbitMQ (provisioning hand-off queue)
	rmq := rabbitmq.NewConnection(&cfg.RabbitMQ, log)
	if err := rmq.Connect(); err != nil {
		log.Fatal("Failed to connect to RabbitMQ", zap.Error(err))
	}
	defer rmq.Close()
	if err := rmq.DeclareQueue(cfg.Worker.ProvisionQueue); err != nil {
		log.Fatal("Failed to declare provisioning queue", zap.Error(err))
	}

	// CRM client, shared by the intake pipeline and the provisioning worker
	crmClient := crm.NewClient(&cfg.CRM, log)

	// Google Drive/Sheets for job folder provisioning
	workspace, err := provisioning.NewGoogleWorkspace(context.Background(), cfg.Drive.CredentialsFile)
	if err != nil {
		log.Fatal("Failed to create Google Workspace clients", zap.Error(err))
	}

	provisioner := &provisioning.Provisioner{
		Drive:        workspace,
		Sheets:       workspace,
		RootFolderID: cfg.Drive.EstimatesFolderID,
		Structure:    provisioning.DiscoveryStructure(&cfg.Drive),
		Logger:       log,
	}

	// Provisioning worker
	w := worker.NewWorker(&cfg.Worker, rmq, provisioner, crmClient, log)
	if err := w.Start(); err != nil {
		log.Fatal("Failed to start provisioning worker", zap.Error(err))
	}

	// Intake pipeline
	pipeline := &intake.Pipeline{
		CRM:    crmClient,
		Ledger: ledger.NewPostgresStore(db),
		Queue:  rabbitmq.NewJobPublisher(rmq, cfg.Worker.ProvisionQueue),
		Logger: log,
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Job Intake Service",
		ServerHeader: "Fiber",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Setup routes
	routes.SetupRoutes(app,
		handlers.NewIntakeHandler(pipeline, log),
		handlers.NewJobsHandler(db, log),
		handlers.NewHealthHandler(db, rmq),
	)

	// Start server in a goroutine
	go func() {
		addr := cfg.Server.Host + ":" + cfg.Server.Port
		log.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error("Error during server shutdown", zap.Error(err))
	}

	if err := w.Stop(); err != nil {
		log.Error("Error stopping provisioning worker", zap.Error(err))
	}

	log.Info("Server stopped")
}
