package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/marminbh/job-intake-svc/internal/models"
)

// JobPublisher publishes assembled jobs to the provisioning queue. It
// satisfies the intake pipeline's Publisher interface.
type JobPublisher struct {
	conn  *Connection
	queue string
}

func NewJobPublisher(conn *Connection, queue string) *JobPublisher {
	return &JobPublisher{conn: conn, queue: queue}
}

func (p *JobPublisher) PublishJob(job models.Job) error {
	body, err := json.Marshal(models.ProvisionMessage{Job: job})
	if err != nil {
		return fmt.Errorf("failed to marshal provision message: %w", err)
	}
	// Default exchange routes straight to the named queue
	return p.conn.PublishMessage("", p.queue, body)
}
