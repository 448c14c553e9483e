package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/marminbh/job-intake-svc/internal/handlers"
)

// SetupRoutes configures all application routes with dependencies
func SetupRoutes(
	app *fiber.App,
	intakeHandler *handlers.IntakeHandler,
	jobsHandler *handlers.JobsHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Health check endpoint
	app.Get("/health", healthHandler.HealthCheck)

	// CRM webhook ingress
	app.Post("/webhooks/deals", intakeHandler.HandleDealWebhook)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/jobs", jobsHandler.GetJobs)
	}
}
