package intake

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marminbh/job-intake-svc/internal/crm"
	"github.com/marminbh/job-intake-svc/internal/fields"
	"github.com/marminbh/job-intake-svc/internal/ledger"
	"github.com/marminbh/job-intake-svc/internal/models"
)

// Publisher hands an assembled Job off to the provisioning queue
type Publisher interface {
	PublishJob(job models.Job) error
}

// Outcome is the terminal state of one pipeline invocation
type Outcome string

const (
	// OutcomeSuppressed: the event did not qualify, or the deal no longer
	// exists. Not an error; the caller still acknowledges the delivery.
	OutcomeSuppressed Outcome = "suppressed"
	// OutcomeHandedOff: a Job was assembled, recorded and published
	OutcomeHandedOff Outcome = "handed_off"
)

// Pipeline runs the whole intake for one webhook delivery. Invocations share
// nothing but the ledger, whose ReserveNext carries the only cross-invocation
// synchronization.
type Pipeline struct {
	CRM    *crm.Client
	Ledger ledger.Store
	Queue  Publisher
	Logger *zap.Logger

	// Now is the clock; nil means time.Now. Tests pin it.
	Now func() time.Time
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Run processes one webhook payload end to end. A suppressed outcome is
// success from the caller's point of view. Errors are fatal for the
// invocation: nothing downstream of the failing step runs, and CRM writes
// already performed are not rolled back.
func (p *Pipeline) Run(ctx context.Context, payload Payload) (Outcome, error) {
	classification := Classify(payload)
	if !classification.Qualifies {
		p.Logger.Debug("event does not qualify for job creation")
		return OutcomeSuppressed, nil
	}

	intakeID := uuid.New().String()
	log := p.Logger.With(
		zap.String("intake_id", intakeID),
		zap.String("deal_id", classification.DealID),
	)
	log.Info("deal moved into Discovery without a job number, starting intake")

	bundle, err := FetchBundle(ctx, p.CRM, classification.DealID, classification.ContactID)
	if err != nil {
		return "", fmt.Errorf("entity fetch failed: %w", err)
	}
	if bundle == nil {
		log.Warn("deal not found in CRM, aborting intake")
		return OutcomeSuppressed, nil
	}

	now := p.now()
	year := now.Year()

	jobNumber, err := p.Ledger.ReserveNext(ctx, year)
	if err != nil {
		return "", err
	}
	log.Info("job number allocated",
		zap.Int("job_number", jobNumber),
		zap.Int("year", year),
	)

	extracted := fields.Extract(*bundle)
	job := Assemble(jobNumber, year, intakeID, *bundle, extracted)

	// Stamp the deal before anything else can fail, matching the automation's
	// historical order. If a later step fails the stamp stays; redelivery of
	// the same event will then be suppressed by the job-number check.
	update := crm.DealUpdate{
		Title: strconv.Itoa(jobNumber) + " " + bundle.Deal.Title,
		Fields: []crm.FieldUpdate{
			{CustomFieldID: fields.DealJobNumber, FieldValue: strconv.Itoa(jobNumber)},
		},
	}
	if err := p.CRM.UpdateDeal(ctx, job.Deal.ID, update); err != nil {
		return "", fmt.Errorf("failed to stamp job number onto deal: %w", err)
	}

	if err := p.Ledger.Record(ctx, ledger.NewEntry(job, now)); err != nil {
		log.Error("deal stamped but ledger row not recorded", zap.Error(err))
		return "", err
	}

	if err := p.Queue.PublishJob(job); err != nil {
		log.Error("deal stamped and ledger recorded but hand-off failed", zap.Error(err))
		return "", fmt.Errorf("failed to hand job off to provisioning: %w", err)
	}

	log.Info("job handed off to provisioning",
		zap.Int("job_number", jobNumber),
		zap.String("folder_name", job.FullFolderName),
	)
	return OutcomeHandedOff, nil
}
