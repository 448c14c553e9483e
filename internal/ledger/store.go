// Package ledger is the per-calendar-year job tracking store: it allocates
// sequential job numbers and records one intake row per job.
package ledger

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// ErrYearNotProvisioned means no counter row exists for the requested year.
// Year rows are provisioned by operators, never auto-created, so this is a
// fatal configuration error for the invocation that hits it.
var ErrYearNotProvisioned = errors.New("ledger: year not provisioned")

// StatusAwaitingInfo is the status every job carries at intake
const StatusAwaitingInfo = "Awaiting Info"

// Store allocates job numbers and records intake rows.
//
// ReserveNext must be atomic: concurrent calls for the same year return
// distinct consecutive numbers. Record appends the detail row for a number
// ReserveNext handed out.
type Store interface {
	ReserveNext(ctx context.Context, year int) (int, error)
	Record(ctx context.Context, entry Entry) error
}

// Entry is one job intake row
type Entry struct {
	ID               int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Year             int       `gorm:"not null" json:"year"`
	JobNumber        int       `gorm:"not null" json:"job_number"`
	IntakeID         uuid.UUID `gorm:"type:uuid;not null" json:"intake_id"`
	OwnerName        string    `json:"owner_name"`
	InquiryDate      string    `json:"inquiry_date"`
	Status           string    `json:"status"`
	ClientCompany    string    `json:"client_company"`
	ContactName      string    `json:"contact_name"`
	ContactJobTitle  string    `json:"contact_job_title"`
	Description      string    `json:"description"`
	EndUser          string    `json:"end_user"`
	FullFolderName   string    `json:"full_folder_name"`
	NDA              string    `gorm:"column:nda" json:"nda"`
	DateEstimateSent string    `json:"date_estimate_sent"`
	DealValue        string    `json:"deal_value"`
	Industry         string    `json:"industry"`
	LeadType         string    `json:"lead_type"`
	ClientEmail      string    `json:"client_email"`
	FirstNote        string    `json:"first_note"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (Entry) TableName() string {
	return "job_ledger"
}

// Row returns the entry as the tracking sheet's ordered column values. The
// order is a fixed contract with the sheet consumers; the three blank columns
// are deprecated but still occupy their positions.
func (e Entry) Row() []string {
	return []string{
		e.OwnerName,
		strconv.Itoa(e.JobNumber),
		e.InquiryDate,
		e.Status,
		e.ClientCompany,
		e.ContactName,
		e.ContactJobTitle,
		e.Description,
		e.EndUser,
		e.FullFolderName,
		e.NDA,
		e.DateEstimateSent,
		e.DealValue,
		"", // channel, deprecated
		"", // type, deprecated
		e.Industry,
		e.LeadType,
		"", // why dead, deprecated
		e.ClientEmail,
		e.FirstNote,
	}
}
