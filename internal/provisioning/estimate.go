package provisioning

import (
	"strconv"
	"time"

	"github.com/marminbh/job-intake-svc/internal/models"
)

// EstimateRange is the information column of the estimate sheet
const EstimateRange = "Information!B3:B18"

// designerPlaceholder fills the designer row until one is assigned
const designerPlaceholder = "Designer"

// The shop's sheets render dates in a fixed UTC-7 offset year-round
var sheetZone = time.FixedZone("GMT-7", -7*60*60)

var sheetDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05-07:00",
	"2006-01-02",
}

// EstimateValues returns the sixteen values written into the estimate sheet's
// information column. The order is a fixed contract with the sheet template.
func EstimateValues(job models.Job) []string {
	orgName := ""
	orgPhone := ""
	if job.Organization != nil {
		orgName = job.Organization.Name
		orgPhone = job.Organization.Phone
	}

	return []string{
		job.OwnerName(),
		strconv.Itoa(job.JobNumber),
		job.Deal.Title,
		formatSheetDate(job.Deal.CreatedAt),
		job.ContactName(),
		orgName,
		orgPhone,
		job.Contact.Phone,
		job.Contact.Email,
		job.Deal.EndUser,
		designerPlaceholder,
		job.Deal.DeliveryLocation,
		formatSheetDate(job.Deal.DeliveryDate),
		formatSheetDate(job.Deal.InstallDate),
		formatSheetDate(job.Deal.StrikeDate),
		job.Deal.FormattedValue,
	}
}

// formatSheetDate renders a CRM date value as MM/dd/yyyy in the sheet zone.
// Empty stays empty; an unparseable value passes through unchanged.
func formatSheetDate(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range sheetDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(sheetZone).Format("01/02/2006")
		}
	}
	return raw
}
