package ledger

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// PostgresStore backs the ledger with the job_counters and job_ledger tables
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ReserveNext increments the year's counter row and returns the new value.
// The single UPDATE ... RETURNING makes the read-and-reserve one atomic step;
// concurrent intakes serialize on the row lock and get consecutive numbers.
func (s *PostgresStore) ReserveNext(ctx context.Context, year int) (int, error) {
	var next int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Raw(`
			UPDATE job_counters
			SET last_number = last_number + 1, updated_at = now()
			WHERE year = $1
			RETURNING last_number
		`, year).Scan(&next)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrYearNotProvisioned
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to reserve job number for %d: %w", year, err)
	}
	return next, nil
}

// Record appends the intake row for a reserved job number
func (s *PostgresStore) Record(ctx context.Context, entry Entry) error {
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("failed to record ledger entry for job %d: %w", entry.JobNumber, err)
	}
	return nil
}
