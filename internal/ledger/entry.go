package ledger

import (
	"time"

	"github.com/google/uuid"

	"github.com/marminbh/job-intake-svc/internal/models"
)

// date layouts the CRM ships for creation timestamps and date custom fields
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02",
}

// NewEntry builds the intake row for an assembled job. now supplies the
// inquiry date so callers (and tests) control the clock.
func NewEntry(job models.Job, now time.Time) Entry {
	return Entry{
		Year:             job.Year,
		JobNumber:        job.JobNumber,
		IntakeID:         uuid.MustParse(job.IntakeID),
		OwnerName:        job.OwnerName(),
		InquiryDate:      formatUSDate(now),
		Status:           StatusAwaitingInfo,
		ClientCompany:    job.OrganizationName(),
		ContactName:      job.ContactName(),
		ContactJobTitle:  job.Contact.JobTitle,
		Description:      job.Deal.Description,
		EndUser:          job.Deal.EndUser,
		FullFolderName:   job.FullFolderName,
		NDA:              job.Deal.NDA,
		DateEstimateSent: FormatUSDateString(job.Deal.DateEstimateSent),
		DealValue:        job.Deal.FormattedValue,
		Industry:         industry(job),
		LeadType:         job.Contact.LeadType,
		ClientEmail:      job.Contact.Email,
		FirstNote:        job.Deal.FirstNote,
	}
}

func industry(job models.Job) string {
	if job.Organization == nil {
		return ""
	}
	return job.Organization.Industry
}

// formatUSDate renders a time as M/D/YYYY, the sheet's en-US convention
func formatUSDate(t time.Time) string {
	return t.Format("1/2/2006")
}

// FormatUSDateString parses a CRM date value and renders it as M/D/YYYY.
// An empty value stays empty; an unparseable value passes through unchanged
// rather than losing the data.
func FormatUSDateString(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return formatUSDate(t)
		}
	}
	return raw
}
