// Package worker consumes assembled jobs from the provisioning queue, drives
// folder and document provisioning, and writes the generated resource
// identifiers back to the CRM deal.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/marminbh/job-intake-svc/internal/config"
	"github.com/marminbh/job-intake-svc/internal/consumer"
	"github.com/marminbh/job-intake-svc/internal/crm"
	"github.com/marminbh/job-intake-svc/internal/fields"
	"github.com/marminbh/job-intake-svc/internal/models"
	"github.com/marminbh/job-intake-svc/internal/provisioning"
	"github.com/marminbh/job-intake-svc/internal/rabbitmq"
)

// Worker consumes provisioning messages and performs the Drive/Sheets side
// effects for each job
type Worker struct {
	cfg         *config.WorkerConfig
	conn        *rabbitmq.Connection
	provisioner *provisioning.Provisioner
	crm         *crm.Client
	logger      *zap.Logger
	ctx         context.Context
	cancel      context.CancelFunc
	consumerTag string
	started     bool
}

func NewWorker(
	cfg *config.WorkerConfig,
	conn *rabbitmq.Connection,
	provisioner *provisioning.Provisioner,
	crmClient *crm.Client,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		cfg:         cfg,
		conn:        conn,
		provisioner: provisioner,
		crm:         crmClient,
		logger:      logger,
		ctx:         ctx,
		cancel:      cancel,
		consumerTag: fmt.Sprintf("provision-worker-%d", time.Now().Unix()),
	}
}

// Start declares the provisioning queue and begins consuming
func (w *Worker) Start() error {
	if w.cfg.ProvisionQueue == "" {
		return fmt.Errorf("provision queue is required")
	}

	if err := w.conn.DeclareQueue(w.cfg.ProvisionQueue); err != nil {
		return err
	}
	if err := w.conn.SetQoS(w.cfg.PrefetchCount); err != nil {
		return err
	}

	if err := w.startConsuming(); err != nil {
		return err
	}

	w.started = true
	w.logger.Info("Provisioning worker started",
		zap.String("queue", w.cfg.ProvisionQueue),
		zap.String("consumer_tag", w.consumerTag),
	)
	return nil
}

func (w *Worker) startConsuming() error {
	messages, err := w.conn.ConsumeMessages(w.cfg.ProvisionQueue, w.consumerTag)
	if err != nil {
		return fmt.Errorf("failed to start consuming from queue %s: %w", w.cfg.ProvisionQueue, err)
	}

	go w.processMessages(messages)
	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() error {
	w.logger.Info("Stopping provisioning worker",
		zap.String("consumer_tag", w.consumerTag),
	)
	w.cancel()

	ch := w.conn.GetChannel()
	if ch != nil {
		if err := ch.Cancel(w.consumerTag, false); err != nil {
			w.logger.Error("Failed to cancel consumer",
				zap.String("consumer_tag", w.consumerTag),
				zap.Error(err),
			)
		}
	}

	w.logger.Info("Provisioning worker stopped")
	return nil
}

func (w *Worker) processMessages(messages <-chan amqp.Delivery) {
	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("Worker context cancelled, stopping message processing")
			return
		case msg, ok := <-messages:
			if !ok {
				w.logger.Warn("Message channel closed, attempting to restart consumer...",
					zap.String("queue", w.cfg.ProvisionQueue),
				)
				for w.started {
					select {
					case <-w.ctx.Done():
						return
					default:
					}

					time.Sleep(2 * time.Second)
					if !w.conn.IsHealthy() {
						continue
					}
					if err := w.startConsuming(); err != nil {
						w.logger.Error("Failed to restart consuming after channel close, will retry",
							zap.String("queue", w.cfg.ProvisionQueue),
							zap.Error(err),
						)
						time.Sleep(5 * time.Second)
						continue
					}
					// New processing goroutine took over
					return
				}
				return
			}
			consumer.ProcessMessage(w.logger, w.cfg.ProvisionQueue, msg, w)
		}
	}
}

// HandleMessage implements consumer.MessageHandler
func (w *Worker) HandleMessage(body []byte) error {
	var msg models.ProvisionMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		w.logger.Error("Failed to unmarshal provision message", zap.Error(err))
		// Malformed message; settling it as processed keeps it from looping
		return nil
	}
	return w.provisionJob(w.ctx, msg.Job)
}

func (w *Worker) provisionJob(ctx context.Context, job models.Job) error {
	log := w.logger.With(
		zap.String("intake_id", job.IntakeID),
		zap.Int("job_number", job.JobNumber),
		zap.String("deal_id", job.Deal.ID),
	)

	if err := w.provisioner.Provision(ctx, &job); err != nil {
		log.Error("Provisioning failed", zap.Error(err))
		return err
	}

	update := crm.DealUpdate{
		Fields: []crm.FieldUpdate{
			{CustomFieldID: fields.DealJobFolderURL, FieldValue: job.FolderURL},
			{CustomFieldID: fields.DealEstimateSheetID, FieldValue: job.EstimateSpreadsheetID},
			{CustomFieldID: fields.DealDriveFolderID, FieldValue: job.FolderID},
		},
	}
	if err := w.crm.UpdateDeal(ctx, job.Deal.ID, update); err != nil {
		log.Error("Folders created but deal not updated with resource ids", zap.Error(err))
		return err
	}

	log.Info("Job provisioned and deal updated with Drive resources",
		zap.String("folder_id", job.FolderID),
		zap.String("spreadsheet_id", job.EstimateSpreadsheetID),
	)
	return nil
}
