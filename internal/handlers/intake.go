package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/marminbh/job-intake-svc/internal/intake"
)

// IntakeHandler receives CRM deal webhooks and runs the intake pipeline
type IntakeHandler struct {
	Pipeline *intake.Pipeline
	Logger   *zap.Logger
}

func NewIntakeHandler(pipeline *intake.Pipeline, logger *zap.Logger) *IntakeHandler {
	return &IntakeHandler{
		Pipeline: pipeline,
		Logger:   logger,
	}
}

// HandleDealWebhook handles POST /webhooks/deals. The CRM posts the
// notification as flattened form-encoded key/value pairs; some installations
// append them to the query string instead, so both are collected.
//
// Suppressed and handed-off invocations alike acknowledge with the fixed
// receipt body; the CRM never learns whether a job was created. Pipeline
// errors surface as 500 so operators see the failed delivery.
func (h *IntakeHandler) HandleDealWebhook(c *fiber.Ctx) error {
	payload := intake.Payload{}
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		payload[string(key)] = string(value)
	})
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		if _, ok := payload[string(key)]; !ok {
			payload[string(key)] = string(value)
		}
	})

	outcome, err := h.Pipeline.Run(c.Context(), payload)
	if err != nil {
		h.Logger.Error("Intake pipeline failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "job intake failed",
		})
	}

	h.Logger.Debug("Webhook acknowledged", zap.String("outcome", string(outcome)))
	return c.JSON(fiber.Map{
		"message": "Request received.",
	})
}
